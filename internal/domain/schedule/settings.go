package schedule

import "github.com/clinicdesk/clinic-scheduler/internal/models"

// Fallbacks used whenever the settings store has no answer.
const (
	DefaultDayStart = "08:00"
	DefaultDayEnd   = "18:00"

	DefaultSlotMinutes = 30
)

// Settings bundles the clinic configuration the rules engine reads.
type Settings struct {
	Hours    models.WorkingHours
	Days     models.WorkingDays
	Holidays []models.Holiday
}

// DefaultSettings is the documented fallback: 08:00-18:00, Monday to
// Friday, no holidays, no lunch break.
func DefaultSettings() Settings {
	return Settings{
		Hours: models.WorkingHours{
			Default: models.DayHours{
				Enabled: true,
				Start:   DefaultDayStart,
				End:     DefaultDayEnd,
			},
		},
		Days: models.WorkingDays{
			Monday:    true,
			Tuesday:   true,
			Wednesday: true,
			Thursday:  true,
			Friday:    true,
		},
	}
}
