package schedule

import (
	"errors"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ======================================================
// Drag interaction state machine
// ======================================================

// Phase is the lifecycle of an in-progress interaction:
// Idle -> Active -> Committing -> Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCommitting
)

var (
	ErrNoPendingCommit = errors.New("no pending commit")
	ErrCommitInFlight  = errors.New("a commit is already in flight")
)

// DragContext carries the grid the pointer is moving over. Day view
// maps columns to doctors; week and month views map columns (and rows)
// to calendar days. The two are mutually exclusive per view.
type DragContext struct {
	Geometry Geometry
	Interval time.Duration

	// DoctorColumns is the doctor id per grid column (day view).
	DoctorColumns []int

	// BaseDate is the date of the first column (week view) or the
	// first cell (month view).
	BaseDate localdate.Date
}

// DragCandidate is the tentative placement produced by the gesture.
type DragCandidate struct {
	Start    time.Time
	End      time.Time
	DoctorID int
}

// DragDropConfirmation summarizes what a finished drag changed, for the
// confirmation prompt shown before commit.
type DragDropConfirmation struct {
	TimeChanged   bool `json:"timeChanged"`
	DoctorChanged bool `json:"doctorChanged"`
}

func (c DragDropConfirmation) NoChange() bool {
	return !c.TimeChanged && !c.DoctorChanged
}

// DragResult is the update a committed drag asks the store to apply.
type DragResult struct {
	AppointmentID int
	PatientID     int
	Start         time.Time
	End           time.Time
	DoctorID      int
}

// DragSession tracks one pointer-drag of an appointment card. All
// intermediate updates are local state only, so cancelling at any point
// leaves zero side effects. Not safe for concurrent use: the UI runs a
// single interaction at a time (see InteractionLock).
type DragSession struct {
	rules Rules
	now   func() time.Time

	phase    Phase
	inFlight bool

	appt models.Appointment

	originalStart  time.Time
	originalEnd    time.Time
	originalDoctor int

	newStart  time.Time
	newEnd    time.Time
	newDoctor int

	anchorX float64
	anchorY float64

	valid  bool
	code   string
	reason string
}

func NewDragSession(rules Rules, now func() time.Time) *DragSession {
	if now == nil {
		now = time.Now
	}
	return &DragSession{rules: rules, now: now}
}

func (s *DragSession) Phase() Phase {
	return s.phase
}

func (s *DragSession) Appointment() models.Appointment {
	return s.appt
}

func (s *DragSession) Candidate() DragCandidate {
	return DragCandidate{Start: s.newStart, End: s.newEnd, DoctorID: s.newDoctor}
}

// Validity reports whether the current candidate is a legal drop
// target, with the failing code and message when it is not.
func (s *DragSession) Validity() (ok bool, code, reason string) {
	return s.valid, s.code, s.reason
}

// Start captures the appointment's original placement and anchors the
// pointer. The candidate starts equal to the original.
func (s *DragSession) Start(ap models.Appointment, pointerX, pointerY float64) error {
	if s.phase != PhaseIdle {
		return ErrInteractionActive
	}

	s.appt = ap
	s.originalStart = ap.StartTime
	s.originalEnd = ap.EndTime
	s.originalDoctor = ap.DoctorID

	s.newStart = ap.StartTime
	s.newEnd = ap.EndTime
	s.newDoctor = ap.DoctorID

	s.anchorX = pointerX
	s.anchorY = pointerY

	s.valid = true
	s.code = ""
	s.reason = ""

	s.phase = PhaseActive
	return nil
}

// Update recomputes the candidate from the pointer position and
// re-validates it. Updates received after cancel or commit are
// idempotent no-ops.
func (s *DragSession) Update(pointerX, pointerY float64, ctx DragContext) {
	if s.phase != PhaseActive {
		return
	}

	interval := ctx.Interval
	if interval <= 0 {
		interval = DefaultSlotMinutes * time.Minute
	}

	duration := s.originalEnd.Sub(s.originalStart)
	s.newDoctor = s.originalDoctor

	switch ctx.Geometry.View {
	case DayView:
		s.newStart = s.originalStart.Add(ctx.Geometry.SnapDelta(pointerY-s.anchorY, interval))
		if col, ok := ctx.Geometry.ColumnAt(pointerX); ok && col < len(ctx.DoctorColumns) {
			s.newDoctor = ctx.DoctorColumns[col]
		}

	case WeekView:
		s.newStart = s.originalStart.Add(ctx.Geometry.SnapDelta(pointerY-s.anchorY, interval))
		if col, ok := ctx.Geometry.ColumnAt(pointerX); ok && !ctx.BaseDate.IsZero() {
			s.newStart = onDate(s.newStart, ctx.BaseDate.AddDays(col))
		}

	case MonthView:
		// Month cells carry whole days; the wall-clock time is kept.
		if row, col, ok := ctx.Geometry.CellAt(pointerX, pointerY); ok && !ctx.BaseDate.IsZero() {
			s.newStart = onDate(s.originalStart, ctx.BaseDate.AddDays(row*ctx.Geometry.Columns+col))
		}
	}

	s.newEnd = s.newStart.Add(duration)
	s.validate()
}

// onDate moves t to the given calendar date, keeping its wall clock.
func onDate(t time.Time, d localdate.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, t.Location())
}

// validate runs the live drop-target checks. Conflict detection is
// deliberately deferred to commit time, when the latest appointment
// set is fetched.
func (s *DragSession) validate() {
	d := localdate.FromTime(s.newStart)

	switch {
	case s.newStart.Before(s.now()):
		s.fail(CodePastDate, "cannot move an appointment into the past")
	case !s.newEnd.After(s.newStart):
		s.fail(CodeInvalidInterval, "end time must be after start time")
	case !s.rules.IsWithinWorkingHours(d, s.newStart, s.newEnd):
		s.fail(CodeOutsideHours, "outside working hours")
	case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
		s.fail(CodeWeekend, "appointments cannot be scheduled on weekends")
	case s.rules.IsHoliday(d):
		s.fail(CodeHoliday, "date is a holiday")
	default:
		s.valid = true
		s.code = ""
		s.reason = ""
	}
}

func (s *DragSession) fail(code, reason string) {
	s.valid = false
	s.code = code
	s.reason = reason
}

// Complete ends the gesture. When nothing changed it signals no-op and
// returns straight to Idle; otherwise the session parks in Committing
// pending external confirmation.
func (s *DragSession) Complete() (DragDropConfirmation, bool) {
	if s.phase != PhaseActive {
		return DragDropConfirmation{}, false
	}

	conf := DragDropConfirmation{
		TimeChanged:   !s.newStart.Equal(s.originalStart) || !s.newEnd.Equal(s.originalEnd),
		DoctorChanged: s.newDoctor != s.originalDoctor,
	}

	if conf.NoChange() {
		s.reset()
		return conf, false
	}

	s.phase = PhaseCommitting
	return conf, true
}

// BeginCommit hands the pending update to the committer. A second
// commit attempt while one is in flight is rejected, not interleaved.
func (s *DragSession) BeginCommit() (DragResult, error) {
	if s.phase != PhaseCommitting {
		return DragResult{}, ErrNoPendingCommit
	}
	if s.inFlight {
		return DragResult{}, ErrCommitInFlight
	}

	s.inFlight = true
	return DragResult{
		AppointmentID: s.appt.ID,
		PatientID:     s.appt.PatientID,
		Start:         s.newStart,
		End:           s.newEnd,
		DoctorID:      s.newDoctor,
	}, nil
}

// FinishCommit returns the session to Idle whether the commit succeeded
// or not; on failure the candidate is simply discarded and the stored
// appointment stays untouched.
func (s *DragSession) FinishCommit() {
	s.reset()
}

// Cancel discards the candidate and restores Idle. Reachable from any
// phase and idempotent: a second cancel is a no-op.
func (s *DragSession) Cancel() {
	if s.phase == PhaseIdle {
		return
	}
	s.reset()
}

func (s *DragSession) reset() {
	s.phase = PhaseIdle
	s.inFlight = false
	s.appt = models.Appointment{}
	s.originalStart = time.Time{}
	s.originalEnd = time.Time{}
	s.originalDoctor = 0
	s.newStart = time.Time{}
	s.newEnd = time.Time{}
	s.newDoctor = 0
	s.valid = false
	s.code = ""
	s.reason = ""
}
