package notify

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherFansOut(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	defer d.Close()

	a := d.Subscribe(4)
	b := d.Subscribe(4)

	d.Dispatch(Event{Action: ActionAppointmentCreated, Entity: "appointment", EntityID: 7})

	for _, sub := range []<-chan Event{a, b} {
		select {
		case ev := <-sub:
			assert.Equal(t, ActionAppointmentCreated, ev.Action)
			assert.Equal(t, 7, ev.EntityID)
		case <-time.After(time.Second):
			t.Fatal("expected the event on every subscriber")
		}
	}
}

func TestDispatcherDropsWhenSubscriberFull(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	defer d.Close()

	// A subscriber with a one-slot buffer that never reads: the second
	// event is dropped rather than blocking the dispatcher.
	slow := d.Subscribe(1)
	healthy := d.Subscribe(4)

	d.Dispatch(Event{Action: ActionAppointmentCreated, EntityID: 1})
	d.Dispatch(Event{Action: ActionAppointmentUpdated, EntityID: 2})

	got := make([]Event, 0, 2)
	for len(got) < 2 {
		select {
		case ev := <-healthy:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatal("healthy subscriber must receive both events")
		}
	}
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].EntityID)
	assert.Equal(t, 2, got[1].EntityID)

	ev := <-slow
	assert.Equal(t, 1, ev.EntityID)
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	sub := d.Subscribe(1)

	d.Close()
	d.Close()

	_, open := <-sub
	assert.False(t, open, "subscriber channels close with the dispatcher")
}

func TestDispatchAfterCloseDoesNotPanic(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAppointmentCreated})
	})
}
