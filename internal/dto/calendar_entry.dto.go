package dto

import "time"

// CalendarEntryDTO is the flattened appointment row the calendar views
// render, with doctor and patient names already joined in.
type CalendarEntryDTO struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
	DoctorID    int       `json:"doctorId"`
	DoctorName  string    `json:"doctorName"`
	DoctorColor string    `json:"doctorColor,omitempty"`
	PatientID   int       `json:"patientId"`
	PatientName string    `json:"patientName"`
}
