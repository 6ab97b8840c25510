package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// AppointmentFilter narrows ListAppointments. Zero values mean "any".
type AppointmentFilter struct {
	Date      localdate.Date
	From      localdate.Date
	To        localdate.Date
	DoctorID  int
	PatientID int
	Status    string
}

// AppointmentPatch is a partial update; nil fields keep their stored
// value.
type AppointmentPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	PatientID   *int       `json:"patientId,omitempty"`
	DoctorID    *int       `json:"doctorId,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Status      *string    `json:"status,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Apply merges the patch onto an appointment.
func (p AppointmentPatch) Apply(ap *models.Appointment) {
	if p.Title != nil {
		ap.Title = *p.Title
	}
	if p.Description != nil {
		ap.Description = *p.Description
	}
	if p.PatientID != nil {
		ap.PatientID = *p.PatientID
	}
	if p.DoctorID != nil {
		ap.DoctorID = *p.DoctorID
	}
	if p.StartTime != nil {
		ap.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		ap.EndTime = *p.EndTime
	}
	if p.Status != nil {
		ap.Status = *p.Status
	}
	if p.CancelledAt != nil {
		ap.CancelledAt = p.CancelledAt
	}
	if p.CompletedAt != nil {
		ap.CompletedAt = p.CompletedAt
	}
}

// Store is the external data-store collaborator: the generic REST
// resource server that owns the clinic's records. The scheduling core
// only ever holds transient copies of what it returns.
type Store interface {
	ListAppointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id int) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, id int, patch AppointmentPatch) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id int) error

	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	ListPatients(ctx context.Context) ([]models.Patient, error)

	GetWorkingHours(ctx context.Context) (models.WorkingHours, error)
	GetWorkingDays(ctx context.Context) (models.WorkingDays, error)
	GetHolidays(ctx context.Context) ([]models.Holiday, error)
}

var ErrNotFound = errors.New("not found")

// TransportError marks the store as unreachable or rejecting: a
// recoverable failure the caller surfaces as a retryable notification.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportErr(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err is a store transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
