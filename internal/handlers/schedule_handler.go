package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/httpresp"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	ucschedule "github.com/clinicdesk/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	availability *ucschedule.GetAvailability
	settings     *ucschedule.SettingsLoader
	interval     int
}

func NewScheduleHandler(
	availability *ucschedule.GetAvailability,
	settings *ucschedule.SettingsLoader,
	intervalMinutes int,
) *ScheduleHandler {
	if intervalMinutes <= 0 {
		intervalMinutes = domain.DefaultSlotMinutes
	}
	return &ScheduleHandler{
		availability: availability,
		settings:     settings,
		interval:     intervalMinutes,
	}
}

// intervalFrom reads the ?interval override, falling back to the
// configured slot length.
func (h *ScheduleHandler) intervalFrom(c *gin.Context) int {
	if v := c.Query("interval"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return h.interval
}

// ======================================================
// AVAILABILITY
// ======================================================

// Day returns one day's schedulability and free slots for a doctor.
// GET /api/schedule/days/:date?doctor_id=1&interval=30
func (h *ScheduleHandler) Day(c *gin.Context) {
	date, err := localdate.Parse(c.Param("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	doctorID, _ := strconv.Atoi(c.Query("doctor_id"))

	out, err := h.availability.Execute(c.Request.Context(), date, doctorID, h.intervalFrom(c))
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// SLOTS
// ======================================================

// Slots lists the selectable times for the booking form's pickers.
// Without ?start it returns start slots; with ?start it returns the end
// slots for that start, optionally forcing ?must_include into the list.
// GET /api/schedule/slots?date=2026-09-07&start=09:00&must_include=09:45
func (h *ScheduleHandler) Slots(c *gin.Context) {
	date, err := localdate.Parse(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	interval := h.intervalFrom(c)

	rules := h.settings.Rules(c.Request.Context())
	hours := rules.HoursFor(date)

	if start := c.Query("start"); start != "" {
		httpresp.OK(c, gin.H{
			"date":  date.String(),
			"start": start,
			"slots": domain.EndSlots(start, hours, interval, c.Query("must_include")),
		})
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date.String(),
		"slots": domain.StartSlots(hours, interval),
	})
}
