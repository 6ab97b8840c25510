package schedule

import (
	"context"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// Reschedule moves an appointment to a new start/end and optionally a
// new doctor: the server-side counterpart of a confirmed drag from a
// remote calendar client. Same validation as CommitDrag.
type Reschedule struct {
	store    store.Store
	settings *SettingsLoader
	events   *notify.Dispatcher
	now      func() time.Time
}

func NewReschedule(
	st store.Store,
	settings *SettingsLoader,
	events *notify.Dispatcher,
	now func() time.Time,
) *Reschedule {
	if now == nil {
		now = time.Now
	}
	return &Reschedule{store: st, settings: settings, events: events, now: now}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID int,
	start time.Time,
	end time.Time,
	doctorID int,
) (*models.Appointment, error) {

	ap, err := uc.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if doctorID == 0 {
		doctorID = ap.DoctorID
	}

	rules := uc.settings.Rules(ctx)
	if err := checkTarget(
		ctx, uc.store, rules, uc.now(),
		ap.ID, ap.PatientID, doctorID,
		start, end,
	); err != nil {
		return nil, err
	}

	patch := store.AppointmentPatch{
		StartTime: &start,
		EndTime:   &end,
		DoctorID:  &doctorID,
	}
	updated, err := uc.store.UpdateAppointment(ctx, ap.ID, patch)
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(notify.Event{
		Action:   notify.ActionAppointmentRescheduled,
		Entity:   "appointment",
		EntityID: updated.ID,
	})
	return updated, nil
}

// ResizeTo adjusts only the end time, validating the way the resize
// gesture does: interval order, not in the past, inside working hours,
// not a weekend.
func (uc *Reschedule) ResizeTo(
	ctx context.Context,
	appointmentID int,
	end time.Time,
) (*models.Appointment, error) {

	ap, err := uc.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	session := domain.NewResizeSession(uc.settings.Rules(ctx), uc.now)
	if err := session.Start(*ap, 0); err != nil {
		return nil, err
	}

	if !session.SetEnd(end) {
		session.Cancel()
		if !end.After(ap.StartTime) {
			return nil, domain.AvailabilityError{Code: domain.CodeInvalidInterval, Message: "end time must be after start time"}
		}
		return nil, domain.AvailabilityError{Code: domain.CodePastDate, Message: "end time cannot be in the past"}
	}

	if _, err := session.Complete(); err != nil {
		return nil, err
	}

	res, err := session.BeginCommit()
	if err != nil {
		return nil, err
	}

	patch := store.AppointmentPatch{EndTime: &res.End}
	updated, err := uc.store.UpdateAppointment(ctx, res.AppointmentID, patch)
	session.FinishCommit()
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(notify.Event{
		Action:   notify.ActionAppointmentResized,
		Entity:   "appointment",
		EntityID: updated.ID,
	})
	return updated, nil
}
