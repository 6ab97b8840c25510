package schedule

import (
	"context"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// CommitDrag turns a confirmed drag into a store update. The session's
// candidate is re-validated (now including conflicts, against the
// freshest appointment list) before anything is written; any failure
// returns the session to Idle with the stored appointment untouched.
type CommitDrag struct {
	store    store.Store
	settings *SettingsLoader
	events   *notify.Dispatcher
	now      func() time.Time
}

func NewCommitDrag(
	st store.Store,
	settings *SettingsLoader,
	events *notify.Dispatcher,
	now func() time.Time,
) *CommitDrag {
	if now == nil {
		now = time.Now
	}
	return &CommitDrag{store: st, settings: settings, events: events, now: now}
}

func (uc *CommitDrag) Execute(
	ctx context.Context,
	session *domain.DragSession,
) (*models.Appointment, error) {

	res, err := session.BeginCommit()
	if err != nil {
		return nil, err
	}

	rules := uc.settings.Rules(ctx)
	if err := checkTarget(
		ctx, uc.store, rules, uc.now(),
		res.AppointmentID, res.PatientID, res.DoctorID,
		res.Start, res.End,
	); err != nil {
		session.FinishCommit()
		return nil, err
	}

	patch := store.AppointmentPatch{
		StartTime: &res.Start,
		EndTime:   &res.End,
		DoctorID:  &res.DoctorID,
	}
	ap, err := uc.store.UpdateAppointment(ctx, res.AppointmentID, patch)
	session.FinishCommit()
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(notify.Event{
		Action:   notify.ActionAppointmentRescheduled,
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	return ap, nil
}
