package schedule

import (
	"context"
	"sort"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// DayAvailability is what the calendar needs to paint one day for one
// doctor: whether the day takes bookings at all, and the free slots.
type DayAvailability struct {
	Date       string            `json:"date"`
	DoctorID   int               `json:"doctorId"`
	WorkingDay bool              `json:"workingDay"`
	Reason     string            `json:"reason,omitempty"`
	Slots      []domain.TimeSlot `json:"slots"`
}

type GetAvailability struct {
	store    store.Store
	settings *SettingsLoader
	loc      *time.Location
}

func NewGetAvailability(st store.Store, settings *SettingsLoader, loc *time.Location) *GetAvailability {
	if loc == nil {
		loc = time.Local
	}
	return &GetAvailability{store: st, settings: settings, loc: loc}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date localdate.Date,
	doctorID int,
	intervalMinutes int,
) (DayAvailability, error) {

	if intervalMinutes <= 0 {
		intervalMinutes = domain.DefaultSlotMinutes
	}

	out := DayAvailability{
		Date:     date.String(),
		DoctorID: doctorID,
		Slots:    []domain.TimeSlot{},
	}

	rules := uc.settings.Rules(ctx)

	switch {
	case rules.IsHoliday(date):
		out.Reason = "holiday"
		return out, nil
	case !rules.IsDayEnabled(date):
		out.Reason = "closed"
		return out, nil
	}
	out.WorkingDay = true

	appointments, err := uc.store.ListAppointments(ctx, store.AppointmentFilter{
		Date:     date,
		DoctorID: doctorID,
	})
	if err != nil {
		return DayAvailability{}, err
	}

	// The scan below advances through the list by start time; the
	// external data store makes no ordering promise, so sort here.
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].StartTime.Before(appointments[j].StartTime)
	})

	interval := time.Duration(intervalMinutes) * time.Minute
	apIdx := 0

	for _, hm := range domain.StartSlots(rules.HoursFor(date), intervalMinutes) {
		if rules.IsLunchBreak(date, hm) {
			continue
		}

		tod, err := time.Parse("15:04", hm)
		if err != nil {
			continue
		}
		slotStart := date.At(tod.Hour(), tod.Minute(), uc.loc)
		slotEnd := slotStart.Add(interval)

		// skip appointments that ended before this slot
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(appointments); i++ {
			ap := appointments[i]
			if ap.Status == string(domain.StatusCancelled) {
				continue
			}
			if !ap.StartTime.Before(slotEnd) {
				break
			}
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			out.Slots = append(out.Slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return out, nil
}
