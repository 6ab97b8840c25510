package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// Memory is an in-process Store used by tests and by local runs without
// an external data store configured.
type Memory struct {
	mu sync.RWMutex

	appointments map[int]models.Appointment
	doctors      []models.Doctor
	patients     []models.Patient

	workingHours models.WorkingHours
	workingDays  models.WorkingDays
	holidays     []models.Holiday

	nextID int
}

func NewMemory() *Memory {
	return &Memory{
		appointments: make(map[int]models.Appointment),
		nextID:       1,
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (m *Memory) SeedDoctors(doctors ...models.Doctor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors = append(m.doctors, doctors...)
}

func (m *Memory) SeedPatients(patients ...models.Patient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients = append(m.patients, patients...)
}

func (m *Memory) SetWorkingHours(wh models.WorkingHours) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workingHours = wh
}

func (m *Memory) SetWorkingDays(wd models.WorkingDays) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workingDays = wd
}

func (m *Memory) SetHolidays(hs []models.Holiday) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays = hs
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (m *Memory) ListAppointments(_ context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range m.appointments {
		if !matches(ap, f) {
			continue
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func matches(ap models.Appointment, f AppointmentFilter) bool {
	day := localdate.FromTime(ap.StartTime)

	if !f.Date.IsZero() && !day.Equal(f.Date) {
		return false
	}
	if !f.From.IsZero() && day.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && f.To.Before(day) {
		return false
	}
	if f.DoctorID != 0 && ap.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != 0 && ap.PatientID != f.PatientID {
		return false
	}
	if f.Status != "" && ap.Status != f.Status {
		return false
	}
	return true
}

func (m *Memory) GetAppointment(_ context.Context, id int) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ap, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ap, nil
}

func (m *Memory) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ap.ID = m.nextID
	m.nextID++
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	m.appointments[ap.ID] = *ap
	return nil
}

func (m *Memory) UpdateAppointment(_ context.Context, id int, patch AppointmentPatch) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ap, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}

	patch.Apply(&ap)
	ap.UpdatedAt = time.Now()
	m.appointments[id] = ap
	return &ap, nil
}

func (m *Memory) DeleteAppointment(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(m.appointments, id)
	return nil
}

// --------------------------------------------------
// Doctors / Patients
// --------------------------------------------------

func (m *Memory) ListDoctors(_ context.Context) ([]models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Doctor(nil), m.doctors...), nil
}

func (m *Memory) ListPatients(_ context.Context) ([]models.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Patient(nil), m.patients...), nil
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (m *Memory) GetWorkingHours(_ context.Context) (models.WorkingHours, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workingHours, nil
}

func (m *Memory) GetWorkingDays(_ context.Context) (models.WorkingDays, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workingDays, nil
}

func (m *Memory) GetHolidays(_ context.Context) ([]models.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Holiday(nil), m.holidays...), nil
}
