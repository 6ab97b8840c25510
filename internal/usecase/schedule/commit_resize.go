package schedule

import (
	"context"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// CommitResize writes the end-time-only update of a completed resize.
type CommitResize struct {
	store  store.Store
	events *notify.Dispatcher
}

func NewCommitResize(st store.Store, events *notify.Dispatcher) *CommitResize {
	return &CommitResize{store: st, events: events}
}

func (uc *CommitResize) Execute(
	ctx context.Context,
	session *domain.ResizeSession,
) (*models.Appointment, error) {

	res, err := session.BeginCommit()
	if err != nil {
		return nil, err
	}

	patch := store.AppointmentPatch{EndTime: &res.End}
	ap, err := uc.store.UpdateAppointment(ctx, res.AppointmentID, patch)
	session.FinishCommit()
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(notify.Event{
		Action:   notify.ActionAppointmentResized,
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	return ap, nil
}
