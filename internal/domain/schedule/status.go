package schedule

import (
	"errors"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ======================================================
// Appointment status
// ======================================================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidState = errors.New("invalid appointment state")

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// ======================================================
// Domain actions
// ======================================================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
