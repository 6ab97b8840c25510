package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

func newAvailability(t *testing.T, m *store.Memory) *GetAvailability {
	t.Helper()
	return NewGetAvailability(m, NewSettingsLoader(m, zerolog.Nop()), time.UTC)
}

func TestAvailabilityFullOpenDay(t *testing.T) {
	m := store.NewMemory()
	uc := newAvailability(t, m)

	out, err := uc.Execute(context.Background(), localdateOf(t, "2026-09-07"), 1, 30)
	require.NoError(t, err)

	assert.True(t, out.WorkingDay)
	assert.Empty(t, out.Reason)
	require.Len(t, out.Slots, 20)
	assert.Equal(t, "08:00", out.Slots[0].Start)
	assert.Equal(t, "08:30", out.Slots[0].End)
	assert.Equal(t, "17:30", out.Slots[19].Start)
	assert.Equal(t, "18:00", out.Slots[19].End)
}

func TestAvailabilityHoliday(t *testing.T) {
	m := store.NewMemory()
	m.SetHolidays([]models.Holiday{{Date: "2026-09-07", Title: "Labor Day"}})
	uc := newAvailability(t, m)

	out, err := uc.Execute(context.Background(), localdateOf(t, "2026-09-07"), 1, 30)
	require.NoError(t, err)

	assert.False(t, out.WorkingDay)
	assert.Equal(t, "holiday", out.Reason)
	assert.Empty(t, out.Slots)
}

func TestAvailabilityClosedDay(t *testing.T) {
	m := store.NewMemory()
	uc := newAvailability(t, m)

	out, err := uc.Execute(context.Background(), localdateOf(t, "2026-09-06"), 1, 30)
	require.NoError(t, err)

	assert.False(t, out.WorkingDay)
	assert.Equal(t, "closed", out.Reason)
}

func TestAvailabilityExcludesBookedSlots(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	booked := models.Appointment{
		PatientID: 1,
		DoctorID:  4,
		Title:     "checkup",
		StartTime: time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.September, 7, 11, 0, 0, 0, time.UTC),
		Status:    "scheduled",
	}
	require.NoError(t, m.CreateAppointment(ctx, &booked))

	uc := newAvailability(t, m)
	out, err := uc.Execute(ctx, localdateOf(t, "2026-09-07"), 4, 30)
	require.NoError(t, err)

	starts := make(map[string]bool)
	for _, s := range out.Slots {
		starts[s.Start] = true
	}
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:30"])
	assert.True(t, starts["09:30"])
	assert.True(t, starts["11:00"], "the slot starting at the booking's end is free")
	assert.Len(t, out.Slots, 18)
}

func TestAvailabilityIgnoresOtherDoctors(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	booked := models.Appointment{
		PatientID: 1,
		DoctorID:  4,
		StartTime: time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.September, 7, 11, 0, 0, 0, time.UTC),
		Status:    "scheduled",
	}
	require.NoError(t, m.CreateAppointment(ctx, &booked))

	uc := newAvailability(t, m)
	out, err := uc.Execute(ctx, localdateOf(t, "2026-09-07"), 5, 30)
	require.NoError(t, err)
	assert.Len(t, out.Slots, 20)
}

func TestAvailabilityExcludesLunch(t *testing.T) {
	m := store.NewMemory()
	m.SetWorkingHours(models.WorkingHours{
		Default: models.DayHours{Enabled: true, Start: "08:00", End: "18:00"},
		Lunch: &models.GlobalLunchBreak{
			Enabled:    true,
			Start:      "12:00",
			End:        "13:00",
			ApplyToAll: true,
		},
	})

	uc := newAvailability(t, m)
	out, err := uc.Execute(context.Background(), localdateOf(t, "2026-09-07"), 1, 30)
	require.NoError(t, err)

	starts := make(map[string]bool)
	for _, s := range out.Slots {
		starts[s.Start] = true
	}
	assert.False(t, starts["12:00"])
	assert.False(t, starts["12:30"])
	assert.True(t, starts["13:00"])
	assert.Len(t, out.Slots, 18)
}

// descendingStore returns appointments newest-first, the way a remote
// data store with no ordering promise might.
type descendingStore struct {
	*store.Memory
}

func (s *descendingStore) ListAppointments(ctx context.Context, f store.AppointmentFilter) ([]models.Appointment, error) {
	out, err := s.Memory.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func TestAvailabilityHandlesUnsortedStoreOrder(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	for _, start := range []int{14, 9} {
		ap := models.Appointment{
			PatientID: 1,
			DoctorID:  4,
			StartTime: time.Date(2026, time.September, 7, start, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, time.September, 7, start+1, 0, 0, 0, time.UTC),
			Status:    "scheduled",
		}
		require.NoError(t, m.CreateAppointment(ctx, &ap))
	}

	ds := &descendingStore{Memory: m}
	uc := NewGetAvailability(ds, NewSettingsLoader(ds, zerolog.Nop()), time.UTC)

	out, err := uc.Execute(ctx, localdateOf(t, "2026-09-07"), 4, 30)
	require.NoError(t, err)

	starts := make(map[string]bool)
	for _, s := range out.Slots {
		starts[s.Start] = true
	}
	assert.False(t, starts["09:00"])
	assert.False(t, starts["09:30"])
	assert.False(t, starts["14:00"])
	assert.False(t, starts["14:30"])
	assert.Len(t, out.Slots, 16)
}

func TestSettingsLoaderFallsBackToDefaults(t *testing.T) {
	// Point the loader at an unreachable store: every getter fails and
	// the documented defaults answer instead.
	c := store.NewClient("http://127.0.0.1:1", 50*time.Millisecond)
	loader := NewSettingsLoader(c, zerolog.Nop())

	s := loader.Load(context.Background())
	assert.Equal(t, "08:00", s.Hours.Default.Start)
	assert.Equal(t, "18:00", s.Hours.Default.End)
	assert.True(t, s.Days.Monday)
	assert.False(t, s.Days.Saturday)
	assert.Empty(t, s.Holidays)
}

func TestSettingsLoaderPrefersStoreValues(t *testing.T) {
	m := store.NewMemory()
	m.SetWorkingDays(models.WorkingDays{Monday: true, Saturday: true})
	m.SetWorkingHours(models.WorkingHours{
		Default: models.DayHours{Enabled: true, Start: "09:00", End: "17:00"},
	})

	loader := NewSettingsLoader(m, zerolog.Nop())
	s := loader.Load(context.Background())

	assert.Equal(t, "09:00", s.Hours.Default.Start)
	assert.True(t, s.Days.Saturday)
	assert.False(t, s.Days.Friday)
}
