package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-scheduler/internal/config"
	"github.com/clinicdesk/clinic-scheduler/internal/handlers"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	"github.com/clinicdesk/clinic-scheduler/internal/notify"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
	ucschedule "github.com/clinicdesk/clinic-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, st store.Store, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	loc := localdate.Location(cfg.Timezone)

	events := notify.NewDispatcher(log.Logger)

	settingsLoader := ucschedule.NewSettingsLoader(st, log.Logger)

	// ======================================================
	// USE CASES
	// ======================================================
	submitUC := ucschedule.NewValidateAndSubmit(
		st,
		settingsLoader,
		events,
		time.Now,
		loc,
	)

	rescheduleUC := ucschedule.NewReschedule(
		st,
		settingsLoader,
		events,
		time.Now,
	)

	cancelUC := ucschedule.NewCancelAppointment(st, events, time.Now)
	completeUC := ucschedule.NewCompleteAppointment(st, events, time.Now)

	availabilityUC := ucschedule.NewGetAvailability(st, settingsLoader, loc)
	listUC := ucschedule.NewListCalendarEntries(st)

	// ======================================================
	// HANDLERS
	// ======================================================
	scheduleHandler := handlers.NewScheduleHandler(availabilityUC, settingsLoader, cfg.SlotMinutes)

	appointmentHandler := handlers.NewAppointmentHandler(
		submitUC,
		rescheduleUC,
		cancelUC,
		completeUC,
		listUC,
		st,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// SCHEDULE
		// ------------------------------
		api.GET("/schedule/days/:date", scheduleHandler.Day)
		api.GET("/schedule/slots", scheduleHandler.Slots)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.GET("/appointments", appointmentHandler.List)
		api.POST("/appointments", appointmentHandler.Create)
		api.PUT("/appointments/:id", appointmentHandler.Update)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/resize", appointmentHandler.Resize)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
	}
}
