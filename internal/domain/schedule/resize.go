package schedule

import (
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ======================================================
// Resize interaction state machine
// ======================================================

// ResizeResult is the end-time-only update a committed resize asks the
// store to apply.
type ResizeResult struct {
	AppointmentID int
	End           time.Time
}

// ResizeSession tracks an in-progress end-time resize, anchored at the
// appointment's fixed start. Same lifecycle as DragSession, scoped to
// the end time only. Not safe for concurrent use.
type ResizeSession struct {
	rules Rules
	now   func() time.Time

	phase    Phase
	inFlight bool

	appt        models.Appointment
	originalEnd time.Time
	newEnd      time.Time
	anchorY     float64
}

func NewResizeSession(rules Rules, now func() time.Time) *ResizeSession {
	if now == nil {
		now = time.Now
	}
	return &ResizeSession{rules: rules, now: now}
}

func (s *ResizeSession) Phase() Phase {
	return s.phase
}

func (s *ResizeSession) Appointment() models.Appointment {
	return s.appt
}

// NewEnd is the candidate end time, i.e. the last accepted value.
func (s *ResizeSession) NewEnd() time.Time {
	return s.newEnd
}

func (s *ResizeSession) Start(ap models.Appointment, pointerY float64) error {
	if s.phase != PhaseIdle {
		return ErrInteractionActive
	}

	s.appt = ap
	s.originalEnd = ap.EndTime
	s.newEnd = ap.EndTime
	s.anchorY = pointerY
	s.phase = PhaseActive
	return nil
}

// Update recomputes the candidate end time from the pointer delta. A
// result at or before the start time, or earlier than the current
// moment, is silently clamped: the candidate keeps its last valid
// value, no error is raised.
func (s *ResizeSession) Update(pointerY float64, geo Geometry, interval time.Duration) {
	if s.phase != PhaseActive {
		return
	}

	if interval <= 0 {
		interval = DefaultSlotMinutes * time.Minute
	}

	candidate := s.originalEnd.Add(geo.SnapDelta(pointerY-s.anchorY, interval))
	if !candidate.After(s.appt.StartTime) {
		return
	}
	if candidate.Before(s.now()) {
		return
	}
	s.newEnd = candidate
}

// SetEnd proposes a candidate end time directly, with the same
// clamping as Update; it reports whether the value was accepted.
func (s *ResizeSession) SetEnd(end time.Time) bool {
	if s.phase != PhaseActive {
		return false
	}
	if !end.After(s.appt.StartTime) {
		return false
	}
	if end.Before(s.now()) {
		return false
	}
	s.newEnd = end
	return true
}

// Validate re-checks the candidate end time, returning the first
// failing reason.
func (s *ResizeSession) Validate() error {
	if !s.newEnd.After(s.appt.StartTime) {
		return availabilityErr(CodeInvalidInterval, "end time must be after start time")
	}
	if s.newEnd.Before(s.now()) {
		return availabilityErr(CodePastDate, "end time cannot be in the past")
	}

	d := localdate.FromTime(s.newEnd)
	if !s.rules.IsWithinWorkingHours(d, s.appt.StartTime, s.newEnd) {
		return availabilityErr(CodeOutsideHours, "outside working hours")
	}
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return availabilityErr(CodeWeekend, "appointments cannot be scheduled on weekends")
	}
	return nil
}

// Complete validates the candidate. On failure it reports the error and
// auto-cancels, leaving no partial commit; on success the session parks
// in Committing for the end-time update.
func (s *ResizeSession) Complete() (ResizeResult, error) {
	if s.phase != PhaseActive {
		return ResizeResult{}, ErrNoPendingCommit
	}

	if err := s.Validate(); err != nil {
		s.reset()
		return ResizeResult{}, err
	}

	s.phase = PhaseCommitting
	return ResizeResult{AppointmentID: s.appt.ID, End: s.newEnd}, nil
}

// BeginCommit rejects a second commit while one is in flight.
func (s *ResizeSession) BeginCommit() (ResizeResult, error) {
	if s.phase != PhaseCommitting {
		return ResizeResult{}, ErrNoPendingCommit
	}
	if s.inFlight {
		return ResizeResult{}, ErrCommitInFlight
	}

	s.inFlight = true
	return ResizeResult{AppointmentID: s.appt.ID, End: s.newEnd}, nil
}

func (s *ResizeSession) FinishCommit() {
	s.reset()
}

// Cancel is idempotent and reachable from any phase.
func (s *ResizeSession) Cancel() {
	if s.phase == PhaseIdle {
		return
	}
	s.reset()
}

func (s *ResizeSession) reset() {
	s.phase = PhaseIdle
	s.inFlight = false
	s.appt = models.Appointment{}
	s.originalEnd = time.Time{}
	s.newEnd = time.Time{}
	s.anchorY = 0
}
