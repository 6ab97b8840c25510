package models

import "time"

type Appointment struct {
	ID int `json:"id"`

	PatientID int `json:"patientId"`
	DoctorID  int `json:"doctorId"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	Status string `json:"status"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Duration is the booked length of the appointment.
func (a Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}
