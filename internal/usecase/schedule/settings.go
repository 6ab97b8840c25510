package schedule

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// SettingsLoader fetches the clinic settings from the data store,
// falling back to the documented defaults whenever the store is
// unreachable. Availability evaluation therefore always has an answer.
type SettingsLoader struct {
	store store.Store
	log   zerolog.Logger
}

func NewSettingsLoader(st store.Store, log zerolog.Logger) *SettingsLoader {
	return &SettingsLoader{store: st, log: log}
}

func (l *SettingsLoader) Load(ctx context.Context) domain.Settings {
	settings := domain.DefaultSettings()

	if wh, err := l.store.GetWorkingHours(ctx); err != nil {
		l.log.Warn().Err(err).Msg("working hours unavailable, using defaults")
	} else if wh.Default.Enabled || len(wh.Days) > 0 {
		settings.Hours = wh
	}

	if wd, err := l.store.GetWorkingDays(ctx); err != nil {
		l.log.Warn().Err(err).Msg("working days unavailable, using defaults")
	} else if wd != (models.WorkingDays{}) {
		settings.Days = wd
	}

	if hs, err := l.store.GetHolidays(ctx); err != nil {
		l.log.Warn().Err(err).Msg("holidays unavailable, assuming none")
	} else {
		settings.Holidays = hs
	}

	return settings
}

// Rules loads settings and builds the availability rules in one step.
func (l *SettingsLoader) Rules(ctx context.Context) domain.Rules {
	return domain.NewRules(l.Load(ctx))
}
