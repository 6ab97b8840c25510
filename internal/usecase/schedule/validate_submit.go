package schedule

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ======================================================
// INPUT
// ======================================================

// FormValues is the scheduling form as submitted. ID zero means a new
// appointment; otherwise the identified appointment is updated.
type FormValues struct {
	ID int `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	PatientID int `json:"patientId"`
	DoctorID  int `json:"doctorId"`

	Date  string `json:"date"`      // "2006-01-02"
	Start string `json:"startTime"` // "HH:MM"
	End   string `json:"endTime"`   // "HH:MM"
}

// ======================================================
// USE CASE
// ======================================================

// ValidateAndSubmit runs the full scheduling-form pipeline: required
// fields short-circuit, availability failures accumulate per field,
// conflicts surface as a single top-level error, and only a fully valid
// submission reaches the store.
type ValidateAndSubmit struct {
	store    store.Store
	settings *SettingsLoader
	events   *notify.Dispatcher
	now      func() time.Time
	loc      *time.Location

	inFlight atomic.Bool
}

func NewValidateAndSubmit(
	st store.Store,
	settings *SettingsLoader,
	events *notify.Dispatcher,
	now func() time.Time,
	loc *time.Location,
) *ValidateAndSubmit {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &ValidateAndSubmit{
		store:    st,
		settings: settings,
		events:   events,
		now:      now,
		loc:      loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ValidateAndSubmit) Execute(
	ctx context.Context,
	in FormValues,
) (*models.Appointment, error) {

	// The form is not reentrant: a second submit while one is pending
	// is rejected, not interleaved.
	if !uc.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer uc.inFlight.Store(false)

	// --------------------------------------------------
	// 1. Required fields (short-circuit)
	// --------------------------------------------------
	var required domain.ValidationError
	if strings.TrimSpace(in.Title) == "" {
		required.Add("title", "required", "title is required")
	}
	if in.PatientID == 0 {
		required.Add("patientId", "required", "patient is required")
	}
	if in.DoctorID == 0 {
		required.Add("doctorId", "required", "doctor is required")
	}
	if in.Date == "" {
		required.Add("date", "required", "date is required")
	}
	if in.Start == "" {
		required.Add("startTime", "required", "start time is required")
	}
	if in.End == "" {
		required.Add("endTime", "required", "end time is required")
	}
	if required.HasErrors() {
		return nil, &required
	}

	// --------------------------------------------------
	// 2. Parse date and times
	// --------------------------------------------------
	var parse domain.ValidationError

	date, err := localdate.Parse(in.Date)
	if err != nil {
		parse.Add("date", "invalid", "invalid date")
	}
	startTOD, err := time.Parse("15:04", in.Start)
	if err != nil {
		parse.Add("startTime", "invalid", "invalid start time")
	}
	endTOD, err := time.Parse("15:04", in.End)
	if err != nil {
		parse.Add("endTime", "invalid", "invalid end time")
	}
	if parse.HasErrors() {
		return nil, &parse
	}

	start := date.At(startTOD.Hour(), startTOD.Minute(), uc.loc)
	end := date.At(endTOD.Hour(), endTOD.Minute(), uc.loc)

	// --------------------------------------------------
	// 3. Availability (accumulated field errors)
	// --------------------------------------------------
	rules := uc.settings.Rules(ctx)

	var errs domain.ValidationError
	if start.Before(uc.now()) {
		errs.Add("date", domain.CodePastDate, "cannot schedule in the past")
	}
	if !rules.IsDayEnabled(date) {
		errs.Add("date", domain.CodeNonWorkingDay, "not a working day")
	}
	if rules.IsHoliday(date) {
		errs.Add("date", domain.CodeHoliday, "date is a holiday")
	}
	if !end.After(start) {
		errs.Add("endTime", domain.CodeInvalidInterval, "end time must be after start time")
	} else {
		if !rules.IsStartWithinWorkingHours(date, start) {
			errs.Add("startTime", domain.CodeOutsideHours, "start time is outside working hours")
		}
		if !rules.IsEndWithinWorkingHours(date, end) {
			errs.Add("endTime", domain.CodeOutsideHours, "end time is outside working hours")
		}
	}
	if errs.HasErrors() {
		return nil, &errs
	}

	// --------------------------------------------------
	// 4. Conflicts against the target date's appointments
	// --------------------------------------------------
	existing, err := uc.store.ListAppointments(ctx, store.AppointmentFilter{Date: date})
	if err != nil {
		return nil, err
	}

	conflicts := domain.FindConflicts(domain.CandidateBooking{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Start:     start,
		End:       end,
		ExcludeID: in.ID,
	}, existing)
	if len(conflicts) > 0 {
		return nil, &domain.ConflictError{Conflicts: conflicts}
	}

	// --------------------------------------------------
	// 5. Submit
	// --------------------------------------------------
	if in.ID == 0 {
		ap := &models.Appointment{
			PatientID:   in.PatientID,
			DoctorID:    in.DoctorID,
			Title:       in.Title,
			Description: in.Description,
			StartTime:   start,
			EndTime:     end,
			Status:      string(domain.InitialStatus()),
		}
		if err := uc.store.CreateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		uc.events.Dispatch(notify.Event{
			Action:   notify.ActionAppointmentCreated,
			Entity:   "appointment",
			EntityID: ap.ID,
		})
		return ap, nil
	}

	patch := store.AppointmentPatch{
		Title:       &in.Title,
		Description: &in.Description,
		PatientID:   &in.PatientID,
		DoctorID:    &in.DoctorID,
		StartTime:   &start,
		EndTime:     &end,
	}
	ap, err := uc.store.UpdateAppointment(ctx, in.ID, patch)
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(notify.Event{
		Action:   notify.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: ap.ID,
	})
	return ap, nil
}
