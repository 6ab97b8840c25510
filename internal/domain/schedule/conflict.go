package schedule

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ======================================================
// Conflict detection
// ======================================================

type ConflictKind string

const (
	ConflictDoctor  ConflictKind = "doctor"
	ConflictPatient ConflictKind = "patient"
)

// CandidateBooking is the interval being checked against the existing
// appointment set. ExcludeID skips the appointment being edited so it
// is never reported against itself.
type CandidateBooking struct {
	PatientID int
	DoctorID  int
	Start     time.Time
	End       time.Time
	ExcludeID int
}

// Conflict pairs an overlapping appointment with the party it is
// double-booking.
type Conflict struct {
	Kind ConflictKind
	With models.Appointment
}

// Describe renders the conflict for a top-level user message, naming
// the already-booked interval.
func (c Conflict) Describe() string {
	return fmt.Sprintf(
		"%s already booked %s-%s",
		c.Kind,
		c.With.StartTime.Format("15:04"),
		c.With.EndTime.Format("15:04"),
	)
}

// Overlaps is the strict half-open interval test: touching endpoints do
// not overlap.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// FindConflicts reports every existing appointment that overlaps the
// candidate for the same patient or the same doctor, in input order. An
// appointment double-booking both parties yields two entries; cancelled
// appointments never conflict.
func FindConflicts(c CandidateBooking, existing []models.Appointment) []Conflict {
	var conflicts []Conflict

	for _, ap := range existing {
		if ap.ID == c.ExcludeID && c.ExcludeID != 0 {
			continue
		}
		if ap.Status == string(StatusCancelled) {
			continue
		}
		if !Overlaps(c.Start, c.End, ap.StartTime, ap.EndTime) {
			continue
		}
		if c.PatientID != 0 && ap.PatientID == c.PatientID {
			conflicts = append(conflicts, Conflict{Kind: ConflictPatient, With: ap})
		}
		if c.DoctorID != 0 && ap.DoctorID == c.DoctorID {
			conflicts = append(conflicts, Conflict{Kind: ConflictDoctor, With: ap})
		}
	}

	return conflicts
}
