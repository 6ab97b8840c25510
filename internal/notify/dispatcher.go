package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is a schedule state change pushed to subscribers: the explicit
// replacement for framework-bound reactive signals.
type Event struct {
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID int    `json:"entityId"`
	Metadata any    `json:"metadata,omitempty"`
}

const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentUpdated     = "appointment_updated"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentResized     = "appointment_resized"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentCompleted   = "appointment_completed"
)

// Dispatcher fans events out to subscribers through a buffered queue.
// Dispatch never blocks the caller: when the queue is full the event is
// dropped and logged, never allowed to break the request path.
type Dispatcher struct {
	log   zerolog.Logger
	queue chan Event

	mu     sync.RWMutex
	subs   []chan Event
	closed bool

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		d.mu.RLock()
		for _, sub := range d.subs {
			select {
			case sub <- ev:
			default:
				d.log.Warn().Str("action", ev.Action).Msg("subscriber queue full, dropping event")
			}
		}
		d.mu.RUnlock()

		d.log.Debug().
			Str("action", ev.Action).
			Str("entity", ev.Entity).
			Int("entity_id", ev.EntityID).
			Msg("schedule event")
	}
}

// Subscribe registers a new listener. The returned channel is owned by
// the dispatcher and closed on Close.
func (d *Dispatcher) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 16
	}

	ch := make(chan Event, buffer)
	d.mu.Lock()
	d.subs = append(d.subs, ch)
	d.mu.Unlock()
	return ch
}

// Dispatch enqueues without blocking; events sent after Close are
// discarded.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("event queue full, dropping event")
	}
}

func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()

		<-d.done

		d.mu.Lock()
		for _, sub := range d.subs {
			close(sub)
		}
		d.subs = nil
		d.mu.Unlock()
	})
}
