package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resizeGeo() Geometry {
	return Geometry{
		View:       DayView,
		Bounds:     Bounds{Width: 400, Height: 960},
		SlotHeight: 40,
		Columns:    1,
	}
}

func TestResizeExtendEnd(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 100))

	// 40px down = one half-hour row.
	s.Update(140, resizeGeo(), 30*time.Minute)
	assert.Equal(t, "11:30", s.NewEnd().Format("15:04"))

	res, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, 7, res.AppointmentID)
	assert.Equal(t, "11:30", res.End.Format("15:04"))
	assert.Equal(t, PhaseCommitting, s.Phase())
}

func TestResizeShrinkEnd(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 100))

	s.Update(60, resizeGeo(), 30*time.Minute)
	assert.Equal(t, "10:30", s.NewEnd().Format("15:04"))
}

func TestResizeClampsAtStart(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 100))

	// Two rows up would land the end exactly on the start; the
	// candidate silently keeps its last valid value.
	s.Update(20, resizeGeo(), 30*time.Minute)
	assert.Equal(t, "11:00", s.NewEnd().Format("15:04"))

	// Past the start entirely.
	s.Update(-60, resizeGeo(), 30*time.Minute)
	assert.Equal(t, "11:00", s.NewEnd().Format("15:04"))
}

func TestResizeClampsAgainstClock(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, time.September, 7, 10, 45, 0, 0, time.UTC)
	}
	s := NewResizeSession(DefaultRules(), now)
	require.NoError(t, s.Start(dragAppt(), 100))

	// 10:30 is after the start but before the clock; rejected.
	s.Update(60, resizeGeo(), 30*time.Minute)
	assert.Equal(t, "11:00", s.NewEnd().Format("15:04"))
}

func TestResizeSetEnd(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 0))

	ap := dragAppt()
	assert.True(t, s.SetEnd(ap.StartTime.Add(2*time.Hour)))
	assert.Equal(t, "12:00", s.NewEnd().Format("15:04"))

	assert.False(t, s.SetEnd(ap.StartTime))
	assert.False(t, s.SetEnd(ap.StartTime.Add(-time.Hour)))
	assert.Equal(t, "12:00", s.NewEnd().Format("15:04"))
}

func TestResizeCompleteAutoCancelsOnInvalidEnd(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 100))

	// 19:00 passes the live clamps but is outside working hours, which
	// only Complete checks.
	s.Update(100+16*40, resizeGeo(), 30*time.Minute)

	_, err := s.Complete()
	require.Error(t, err)

	var avErr AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, CodeOutsideHours, avErr.Code)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestResizeRejectsEndPastMidnight(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 0))

	// 00:30 the next day survives the live clamps (it is after the
	// start and after the clock) but must not survive Complete.
	ap := dragAppt()
	nextDay := ap.EndTime.Add(13*time.Hour + 30*time.Minute)
	require.True(t, s.SetEnd(nextDay))

	_, err := s.Complete()
	require.Error(t, err)

	var avErr AvailabilityError
	require.ErrorAs(t, err, &avErr)
	assert.Equal(t, CodeOutsideHours, avErr.Code)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestResizeCommitLifecycle(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 100))
	s.Update(140, resizeGeo(), 30*time.Minute)

	_, err := s.Complete()
	require.NoError(t, err)

	res, err := s.BeginCommit()
	require.NoError(t, err)
	assert.Equal(t, "11:30", res.End.Format("15:04"))

	_, err = s.BeginCommit()
	assert.ErrorIs(t, err, ErrCommitInFlight)

	s.FinishCommit()
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestResizeCancelIsIdempotent(t *testing.T) {
	s := NewResizeSession(DefaultRules(), fixedNow)
	require.NoError(t, s.Start(dragAppt(), 100))

	s.Cancel()
	s.Cancel()
	assert.Equal(t, PhaseIdle, s.Phase())

	s.Update(140, resizeGeo(), 30*time.Minute)
	assert.True(t, s.NewEnd().IsZero())
}
