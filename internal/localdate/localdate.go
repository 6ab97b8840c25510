package localdate

import (
	"fmt"
	"time"
)

const isoLayout = "2006-01-02"

// Date is a local calendar date with no clock and no zone. Holiday,
// working-day and day-filtering comparisons all go through this type so
// a timestamp near midnight never classifies into the wrong day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime takes the wall-clock date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse reads an ISO calendar date ("2026-03-14").
func Parse(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return FromTime(t), nil
}

func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

// Midnight anchors the date at 00:00 in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At anchors the date at the given wall-clock time in loc.
func (d Date) At(hour, min int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, min, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return FromTime(d.Midnight(time.UTC).AddDate(0, 0, n))
}

func (d Date) Equal(o Date) bool {
	return d == o
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// SameMonthDay matches month and day ignoring year, used for recurring
// holidays.
func (d Date) SameMonthDay(o Date) bool {
	return d.Month == o.Month && d.Day == o.Day
}

// Location resolves an IANA timezone name, falling back to the system
// local zone when the name is empty or unknown.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
