package schedule

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/dto"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
)

// ListCalendarEntries resolves the appointments of a day or range into
// the flattened rows the month, week and day views render.
type ListCalendarEntries struct {
	store store.Store
}

func NewListCalendarEntries(st store.Store) *ListCalendarEntries {
	return &ListCalendarEntries{store: st}
}

func (uc *ListCalendarEntries) Execute(
	ctx context.Context,
	from localdate.Date,
	to localdate.Date,
	doctorID int,
) ([]dto.CalendarEntryDTO, error) {

	filter := store.AppointmentFilter{DoctorID: doctorID}
	if from.Equal(to) {
		filter.Date = from
	} else {
		filter.From = from
		filter.To = to
	}

	appointments, err := uc.store.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	doctors, err := uc.store.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := uc.store.ListPatients(ctx)
	if err != nil {
		return nil, err
	}

	doctorNames := make(map[int]int, len(doctors))
	for i, d := range doctors {
		doctorNames[d.ID] = i
	}
	patientNames := make(map[int]int, len(patients))
	for i, p := range patients {
		patientNames[p.ID] = i
	}

	out := make([]dto.CalendarEntryDTO, 0, len(appointments))
	for _, ap := range appointments {
		entry := dto.CalendarEntryDTO{
			ID:        ap.ID,
			Title:     ap.Title,
			StartTime: ap.StartTime,
			EndTime:   ap.EndTime,
			Status:    ap.Status,
			DoctorID:  ap.DoctorID,
			PatientID: ap.PatientID,
		}
		if i, ok := doctorNames[ap.DoctorID]; ok {
			entry.DoctorName = doctors[i].Name
			entry.DoctorColor = doctors[i].Color
		}
		if i, ok := patientNames[ap.PatientID]; ok {
			entry.PatientName = patients[i].Name
		}
		out = append(out, entry)
	}

	return out, nil
}
