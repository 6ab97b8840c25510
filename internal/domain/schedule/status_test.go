package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelTransition(t *testing.T) {
	ap := dragAppt()
	now := fixedNow()

	require.NoError(t, Cancel(&ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.True(t, ap.CancelledAt.Equal(now))

	// Already cancelled: no second transition.
	assert.ErrorIs(t, Cancel(&ap, now.Add(time.Hour)), ErrInvalidState)
	assert.True(t, ap.CancelledAt.Equal(now))
}

func TestCompleteTransition(t *testing.T) {
	ap := dragAppt()
	now := fixedNow()

	require.NoError(t, Complete(&ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	assert.ErrorIs(t, Cancel(&ap, now), ErrInvalidState)
	assert.ErrorIs(t, Complete(&ap, now), ErrInvalidState)
}

func TestValidationErrorAccumulates(t *testing.T) {
	var v ValidationError
	assert.False(t, v.HasErrors())

	v.Add("date", CodePastDate, "date is in the past")
	v.Add("endTime", CodeInvalidInterval, "end time must be after start time")

	require.True(t, v.HasErrors())
	require.Len(t, v.Fields, 2)
	assert.Equal(t, "date", v.Fields[0].Field)
	assert.Contains(t, v.Error(), "date is in the past")
	assert.Contains(t, v.Error(), "endTime")
}
