package models

import (
	"strings"
	"time"
)

// LunchBreak is a per-day break window nested under a day's working hours.
// OverrideGlobal marks the day's own definition as taking precedence over
// the clinic-wide break, when the global config allows exceptions.
type LunchBreak struct {
	Enabled        bool   `json:"enabled"`
	Start          string `json:"start"`
	End            string `json:"end"`
	OverrideGlobal bool   `json:"overrideGlobal,omitempty"`
}

// DayHours is the working window for a single weekday. Start and End are
// zero-padded wall-clock times ("08:00").
type DayHours struct {
	Enabled bool        `json:"enabled"`
	Start   string      `json:"start"`
	End     string      `json:"end"`
	Lunch   *LunchBreak `json:"lunchBreak,omitempty"`
}

// GlobalLunchBreak is the clinic-wide break applied across weekdays.
type GlobalLunchBreak struct {
	Enabled         bool   `json:"enabled"`
	Start           string `json:"start"`
	End             string `json:"end"`
	ApplyToAll      bool   `json:"applyToAll"`
	AllowExceptions bool   `json:"allowExceptions"`
}

// WorkingHours holds the per-weekday windows plus the default used for
// weekdays without an entry of their own. Days is keyed by lowercase
// weekday name ("monday".."sunday") as stored by the settings resource.
type WorkingHours struct {
	Default DayHours            `json:"default"`
	Days    map[string]DayHours `json:"days,omitempty"`
	Lunch   *GlobalLunchBreak   `json:"globalLunchBreak,omitempty"`
}

// ForWeekday resolves the working window for a weekday, falling back to
// the default entry.
func (wh WorkingHours) ForWeekday(wd time.Weekday) DayHours {
	if wh.Days != nil {
		if dh, ok := wh.Days[WeekdayKey(wd)]; ok {
			return dh
		}
	}
	return wh.Default
}

// WeekdayKey is the settings-resource key for a weekday.
func WeekdayKey(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// WorkingDays flags which weekdays the clinic opens at all.
type WorkingDays struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

func (wd WorkingDays) IsEnabled(d time.Weekday) bool {
	switch d {
	case time.Monday:
		return wd.Monday
	case time.Tuesday:
		return wd.Tuesday
	case time.Wednesday:
		return wd.Wednesday
	case time.Thursday:
		return wd.Thursday
	case time.Friday:
		return wd.Friday
	case time.Saturday:
		return wd.Saturday
	default:
		return wd.Sunday
	}
}

// Holiday is a non-working calendar date. Date is an ISO calendar date
// ("2026-12-25"); Recurring holidays match on month and day every year.
type Holiday struct {
	ID        int    `json:"id,omitempty"`
	Date      string `json:"date"`
	Title     string `json:"title,omitempty"`
	Recurring bool   `json:"recurring,omitempty"`
}
