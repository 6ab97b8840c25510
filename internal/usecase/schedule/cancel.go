package schedule

import (
	"context"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

type CancelAppointment struct {
	store  store.Store
	events *notify.Dispatcher
	now    func() time.Time
}

func NewCancelAppointment(
	st store.Store,
	events *notify.Dispatcher,
	now func() time.Time,
) *CancelAppointment {
	if now == nil {
		now = time.Now
	}
	return &CancelAppointment{store: st, events: events, now: now}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID int,
) (*models.Appointment, error) {

	ap, err := uc.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, err
	}

	status := ap.Status
	patch := store.AppointmentPatch{
		Status:      &status,
		CancelledAt: ap.CancelledAt,
	}
	updated, err := uc.store.UpdateAppointment(ctx, ap.ID, patch)
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(notify.Event{
		Action:   notify.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: updated.ID,
	})

	return updated, nil
}
