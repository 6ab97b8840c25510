package schedule

import (
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// Rules evaluates availability against the clinic settings. All
// predicates are total: unknown or malformed settings fall back to the
// documented defaults instead of failing.
type Rules struct {
	settings Settings
}

func NewRules(s Settings) Rules {
	return Rules{settings: s}
}

func DefaultRules() Rules {
	return NewRules(DefaultSettings())
}

// HoursFor resolves the working window for a date, applying defaults
// for missing or malformed start/end times.
func (r Rules) HoursFor(d localdate.Date) models.DayHours {
	dh := r.settings.Hours.ForWeekday(d.Weekday())
	if _, ok := parseHM(dh.Start); !ok {
		dh.Start = DefaultDayStart
	}
	if _, ok := parseHM(dh.End); !ok {
		dh.End = DefaultDayEnd
	}
	return dh
}

// IsHoliday compares by local calendar date; recurring holidays match
// on month and day every year.
func (r Rules) IsHoliday(d localdate.Date) bool {
	for _, h := range r.settings.Holidays {
		hd, err := localdate.Parse(h.Date)
		if err != nil {
			continue
		}
		if hd.Equal(d) {
			return true
		}
		if h.Recurring && hd.SameMonthDay(d) {
			return true
		}
	}
	return false
}

// IsDayEnabled checks the two weekday gates: the WorkingDays flag and
// the day's working-hours entry being enabled. Holidays are a separate
// predicate.
func (r Rules) IsDayEnabled(d localdate.Date) bool {
	if !r.settings.Days.IsEnabled(d.Weekday()) {
		return false
	}
	return r.settings.Hours.ForWeekday(d.Weekday()).Enabled
}

// IsWorkingDay requires the weekday flag, the day's working-hours entry
// being enabled, and the date not being a holiday.
func (r Rules) IsWorkingDay(d localdate.Date) bool {
	return r.IsDayEnabled(d) && !r.IsHoliday(d)
}

// lunchWindow resolves which lunch break, if any, applies to a date.
// A clinic-wide break that applies to all days wins, unless the day
// overrides it and the global config allows exceptions. Without a
// global break the day's own definition is used.
func (r Rules) lunchWindow(d localdate.Date) (start, end string, ok bool) {
	day := r.settings.Hours.ForWeekday(d.Weekday()).Lunch
	global := r.settings.Hours.Lunch

	if global != nil && global.Enabled && global.ApplyToAll {
		if day != nil && day.OverrideGlobal && global.AllowExceptions {
			if !day.Enabled {
				return "", "", false
			}
			return day.Start, day.End, true
		}
		return global.Start, global.End, true
	}

	if day != nil && day.Enabled {
		return day.Start, day.End, true
	}
	return "", "", false
}

// IsLunchBreak reports whether a "HH:MM" slot falls inside the lunch
// break resolved for the date. The window is half open: a slot equal to
// the break's end is not in lunch. Lexicographic comparison is valid
// because both sides are zero padded.
func (r Rules) IsLunchBreak(d localdate.Date, slot string) bool {
	start, end, ok := r.lunchWindow(d)
	if !ok {
		return false
	}
	if _, valid := parseHM(start); !valid {
		return false
	}
	if _, valid := parseHM(end); !valid {
		return false
	}
	return start <= slot && slot < end
}

// IsStartWithinWorkingHours checks the opening bound only.
func (r Rules) IsStartWithinWorkingHours(d localdate.Date, start time.Time) bool {
	workStart, _ := parseHM(r.HoursFor(d).Start)
	return start.Hour()*60+start.Minute() >= workStart
}

// IsEndWithinWorkingHours checks the closing bound only. The end may
// touch the window's end exactly.
func (r Rules) IsEndWithinWorkingHours(d localdate.Date, end time.Time) bool {
	workEnd, _ := parseHM(r.HoursFor(d).End)
	return end.Hour()*60+end.Minute() <= workEnd
}

// IsWithinWorkingHours checks that a candidate interval stays inside
// the day's working window. An interval whose end falls on a different
// calendar day than its start crosses midnight and is never within
// hours, regardless of what its wall-clock minutes look like.
func (r Rules) IsWithinWorkingHours(d localdate.Date, start, end time.Time) bool {
	if !localdate.FromTime(start).Equal(localdate.FromTime(end)) {
		return false
	}
	return r.IsStartWithinWorkingHours(d, start) && r.IsEndWithinWorkingHours(d, end)
}
