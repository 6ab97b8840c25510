package schedule

import (
	"context"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// checkTarget re-runs the availability checks for a reschedule target
// and, with the freshest appointment list, the conflict check the live
// drag pass deferred. Returns the first failure.
func checkTarget(
	ctx context.Context,
	st store.Store,
	rules domain.Rules,
	now time.Time,
	appointmentID int,
	patientID int,
	doctorID int,
	start time.Time,
	end time.Time,
) error {

	d := localdate.FromTime(start)

	switch {
	case start.Before(now):
		return domain.AvailabilityError{Code: domain.CodePastDate, Message: "cannot move an appointment into the past"}
	case !end.After(start):
		return domain.AvailabilityError{Code: domain.CodeInvalidInterval, Message: "end time must be after start time"}
	case !rules.IsWithinWorkingHours(d, start, end):
		return domain.AvailabilityError{Code: domain.CodeOutsideHours, Message: "outside working hours"}
	case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
		return domain.AvailabilityError{Code: domain.CodeWeekend, Message: "appointments cannot be scheduled on weekends"}
	case !rules.IsDayEnabled(d):
		return domain.AvailabilityError{Code: domain.CodeNonWorkingDay, Message: "not a working day"}
	case rules.IsHoliday(d):
		return domain.AvailabilityError{Code: domain.CodeHoliday, Message: "date is a holiday"}
	}

	existing, err := st.ListAppointments(ctx, store.AppointmentFilter{Date: d})
	if err != nil {
		return err
	}

	conflicts := domain.FindConflicts(domain.CandidateBooking{
		PatientID: patientID,
		DoctorID:  doctorID,
		Start:     start,
		End:       end,
		ExcludeID: appointmentID,
	}, existing)
	if len(conflicts) > 0 {
		return &domain.ConflictError{Conflicts: conflicts}
	}

	return nil
}
