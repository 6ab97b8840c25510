package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-scheduler/internal/config"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/logging"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
	ucschedule "github.com/clinicdesk/clinic-scheduler/internal/usecase/schedule"
)

// A scripted run of the drag and resize state machines against a seeded
// in-memory store, useful for eyeballing the full gesture lifecycle
// without a calendar front-end.
func main() {

	cfg := config.Load()
	logging.Init("clinic-scheduler-simulate", cfg.Env)

	ctx := context.Background()
	loc := localdate.Location(cfg.Timezone)

	st := store.NewMemory()
	st.SeedDoctors(
		models.Doctor{ID: 1, Name: "Dr. Alhonso", Specialty: "Cardiology", Color: "#4f86c6"},
		models.Doctor{ID: 2, Name: "Dr. Reiter", Specialty: "Dermatology", Color: "#c64f4f"},
	)
	st.SeedPatients(
		models.Patient{ID: 1, Name: "Maria Gomes"},
		models.Patient{ID: 2, Name: "John Ferro"},
	)

	day := nextWorkingDay(localdate.Today(loc).AddDays(1))

	ap := &models.Appointment{
		PatientID: 1,
		DoctorID:  1,
		Title:     "Checkup",
		StartTime: day.At(10, 0, loc),
		EndTime:   day.At(11, 0, loc),
		Status:    string(domain.InitialStatus()),
	}
	if err := st.CreateAppointment(ctx, ap); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	events := notify.NewDispatcher(log.Logger)
	defer events.Close()

	settings := ucschedule.NewSettingsLoader(st, log.Logger)
	commitDrag := ucschedule.NewCommitDrag(st, settings, events, time.Now)

	// ------------------------------
	// Drag: move the appointment two slots down and one doctor over
	// ------------------------------
	var lock domain.InteractionLock
	token, err := lock.Acquire()
	if err != nil {
		log.Fatal().Err(err).Msg("lock")
	}

	session := domain.NewDragSession(settings.Rules(ctx), time.Now)
	if err := session.Start(*ap, 100, 200); err != nil {
		log.Fatal().Err(err).Msg("start drag")
	}

	dragCtx := domain.DragContext{
		Geometry: domain.Geometry{
			View:       domain.DayView,
			Bounds:     domain.Bounds{X: 0, Y: 0, Width: 400, Height: 960},
			SlotHeight: 40,
			Columns:    2,
		},
		Interval:      30 * time.Minute,
		DoctorColumns: []int{1, 2},
	}

	session.Update(100, 240, dragCtx)
	session.Update(300, 280, dragCtx)

	cand := session.Candidate()
	ok, code, reason := session.Validity()
	log.Info().
		Time("start", cand.Start).
		Time("end", cand.End).
		Int("doctor_id", cand.DoctorID).
		Bool("valid", ok).
		Str("code", code).
		Str("reason", reason).
		Msg("drag candidate")

	if conf, pending := session.Complete(); pending {
		log.Info().
			Bool("time_changed", conf.TimeChanged).
			Bool("doctor_changed", conf.DoctorChanged).
			Msg("drag confirmation")

		updated, err := commitDrag.Execute(ctx, session)
		if err != nil {
			log.Error().Err(err).Msg("drag commit refused")
		} else {
			log.Info().Int("id", updated.ID).Time("start", updated.StartTime).Msg("drag committed")
		}
	}
	lock.Release(token)

	// ------------------------------
	// Resize: pull the end time one slot further
	// ------------------------------
	token, err = lock.Acquire()
	if err != nil {
		log.Fatal().Err(err).Msg("lock")
	}

	current, err := st.GetAppointment(ctx, ap.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("reload")
	}

	resize := domain.NewResizeSession(settings.Rules(ctx), time.Now)
	if err := resize.Start(*current, 400); err != nil {
		log.Fatal().Err(err).Msg("start resize")
	}
	resize.Update(440, dragCtx.Geometry, dragCtx.Interval)

	if _, err := resize.Complete(); err != nil {
		log.Error().Err(err).Msg("resize rejected")
	} else {
		commitResize := ucschedule.NewCommitResize(st, events)
		updated, err := commitResize.Execute(ctx, resize)
		if err != nil {
			log.Error().Err(err).Msg("resize commit refused")
		} else {
			log.Info().Int("id", updated.ID).Time("end", updated.EndTime).Msg("resize committed")
		}
	}
	lock.Release(token)
}

func nextWorkingDay(d localdate.Date) localdate.Date {
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDays(1)
	}
	return d
}
