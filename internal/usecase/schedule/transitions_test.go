package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

func TestCancelAppointment(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewCancelAppointment(env.store, env.events, testNow)
	ctx := context.Background()

	cancelled, err := uc.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.True(t, cancelled.CancelledAt.Equal(testNow()))

	// Cancelling twice hits the state guard.
	_, err = uc.Execute(ctx, ap.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Execute(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteAppointment(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewCompleteAppointment(env.store, env.events, testNow)
	ctx := context.Background()

	completed, err := uc.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// A completed appointment can no longer be cancelled.
	cancel := NewCancelAppointment(env.store, env.events, testNow)
	_, err = cancel.Execute(ctx, ap.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestTransitionEventsDispatched(t *testing.T) {
	log := zerolog.Nop()
	m := store.NewMemory()
	events := notify.NewDispatcher(log)
	t.Cleanup(events.Close)

	sub := events.Subscribe(4)

	env := commitEnv{store: m, loader: NewSettingsLoader(m, log), events: events}
	ap := env.seed(t, 2)

	uc := NewCancelAppointment(m, events, testNow)
	_, err := uc.Execute(context.Background(), ap.ID)
	require.NoError(t, err)

	select {
	case ev := <-sub:
		assert.Equal(t, notify.ActionAppointmentCancelled, ev.Action)
		assert.Equal(t, "appointment", ev.Entity)
		assert.Equal(t, ap.ID, ev.EntityID)
	case <-time.After(time.Second):
		t.Fatal("expected a cancellation event")
	}
}

func TestRescheduleMovesAppointment(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)
	ctx := context.Background()

	start := time.Date(2026, time.September, 8, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	updated, err := uc.Execute(ctx, ap.ID, start, end, 3)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-08", updated.StartTime.Format("2006-01-02"))
	assert.Equal(t, 3, updated.DoctorID)
}

func TestRescheduleKeepsDoctorWhenUnspecified(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	start := time.Date(2026, time.September, 8, 14, 0, 0, 0, time.UTC)
	updated, err := uc.Execute(context.Background(), ap.ID, start, start.Add(time.Hour), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.DoctorID)
}

func TestRescheduleRejectsWeekend(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	start := time.Date(2026, time.September, 5, 14, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), ap.ID, start, start.Add(time.Hour), 0)
	require.Error(t, err)

	var avErr domain.AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, domain.CodeWeekend, avErr.Code)
}

func TestRescheduleRejectsCrossMidnightInterval(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	start := time.Date(2026, time.September, 7, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.September, 8, 0, 30, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), ap.ID, start, end, 0)
	require.Error(t, err)

	var avErr domain.AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, domain.CodeOutsideHours, avErr.Code)

	stored, _ := env.store.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "10:00", stored.StartTime.Format("15:04"))
}

func TestResizeToExtendsEnd(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	end := time.Date(2026, time.September, 7, 12, 0, 0, 0, time.UTC)
	updated, err := uc.ResizeTo(context.Background(), ap.ID, end)
	require.NoError(t, err)
	assert.Equal(t, "12:00", updated.EndTime.Format("15:04"))
	assert.Equal(t, "10:00", updated.StartTime.Format("15:04"))
}

func TestResizeToRejectsEndBeforeStart(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	end := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	_, err := uc.ResizeTo(context.Background(), ap.ID, end)
	require.Error(t, err)

	var avErr domain.AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, domain.CodeInvalidInterval, avErr.Code)

	stored, _ := env.store.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "11:00", stored.EndTime.Format("15:04"))
}

func TestResizeToRejectsEndPastMidnight(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	// 00:30 the next calendar day: both wall-clock bounds look fine in
	// isolation, but the interval crosses midnight.
	end := time.Date(2026, time.September, 8, 0, 30, 0, 0, time.UTC)
	_, err := uc.ResizeTo(context.Background(), ap.ID, end)
	require.Error(t, err)

	var avErr domain.AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, domain.CodeOutsideHours, avErr.Code)

	stored, _ := env.store.GetAppointment(context.Background(), ap.ID)
	assert.Equal(t, "11:00", stored.EndTime.Format("15:04"))
	assert.Equal(t, "2026-09-07", stored.EndTime.Format("2006-01-02"))
}

func TestResizeToRejectsOutsideHours(t *testing.T) {
	env := newCommitEnv(t)
	ap := env.seed(t, 2)
	uc := NewReschedule(env.store, env.loader, env.events, testNow)

	end := time.Date(2026, time.September, 7, 19, 0, 0, 0, time.UTC)
	_, err := uc.ResizeTo(context.Background(), ap.ID, end)
	require.Error(t, err)

	var avErr domain.AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, domain.CodeOutsideHours, avErr.Code)
}

func TestListCalendarEntriesJoinsNames(t *testing.T) {
	env := newCommitEnv(t)
	env.store.SeedDoctors(models.Doctor{ID: 2, Name: "Dr. Adams", Color: "#4f46e5"})
	env.store.SeedPatients(models.Patient{ID: 1, Name: "Blake"})
	ap := env.seed(t, 2)

	uc := NewListCalendarEntries(env.store)
	day := localdateOf(t, "2026-09-07")

	entries, err := uc.Execute(context.Background(), day, day, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, ap.ID, entries[0].ID)
	assert.Equal(t, "Dr. Adams", entries[0].DoctorName)
	assert.Equal(t, "#4f46e5", entries[0].DoctorColor)
	assert.Equal(t, "Blake", entries[0].PatientName)
}

func TestListCalendarEntriesRange(t *testing.T) {
	env := newCommitEnv(t)
	env.seed(t, 2)

	other := models.Appointment{
		PatientID: 1,
		DoctorID:  2,
		Title:     "follow-up",
		StartTime: time.Date(2026, time.September, 9, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.September, 9, 11, 0, 0, 0, time.UTC),
		Status:    "scheduled",
	}
	require.NoError(t, env.store.CreateAppointment(context.Background(), &other))

	uc := NewListCalendarEntries(env.store)

	entries, err := uc.Execute(
		context.Background(),
		localdateOf(t, "2026-09-07"),
		localdateOf(t, "2026-09-08"),
		0,
	)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "checkup", entries[0].Title)
}
