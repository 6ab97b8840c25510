package schedule

import (
	"fmt"
	"strings"
)

// ======================================================
// Error taxonomy
// ======================================================

// Availability failure codes. All of them are recoverable: the caller
// redisplays the message and keeps the user's input.
const (
	CodePastDate        = "past_date"
	CodeWeekend         = "weekend"
	CodeNonWorkingDay   = "non_working_day"
	CodeHoliday         = "holiday"
	CodeInvalidInterval = "invalid_interval"
	CodeOutsideHours    = "outside_working_hours"
	CodeLunchBreak      = "lunch_break"
)

// FieldError attaches a failure to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError accumulates field-level failures for redisplay.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AvailabilityError reports a date or time the clinic cannot take:
// past date, weekend, holiday, or outside working hours.
type AvailabilityError struct {
	Code    string
	Message string
}

func (e AvailabilityError) Error() string {
	return e.Message
}

func availabilityErr(code, message string) AvailabilityError {
	return AvailabilityError{Code: code, Message: message}
}

// ConflictError is the top-level double-booking failure, surfaced as a
// single prominent message rather than attached to a field.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return "scheduling conflict"
	}
	return "scheduling conflict: " + e.Conflicts[0].Describe()
}
