package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/httpresp"
	"github.com/clinicdesk/clinic-scheduler/internal/localdate"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
	ucschedule "github.com/clinicdesk/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	submit     *ucschedule.ValidateAndSubmit
	reschedule *ucschedule.Reschedule
	cancel     *ucschedule.CancelAppointment
	complete   *ucschedule.CompleteAppointment
	list       *ucschedule.ListCalendarEntries
	store      store.Store
}

func NewAppointmentHandler(
	submit *ucschedule.ValidateAndSubmit,
	reschedule *ucschedule.Reschedule,
	cancel *ucschedule.CancelAppointment,
	complete *ucschedule.CompleteAppointment,
	list *ucschedule.ListCalendarEntries,
	st store.Store,
) *AppointmentHandler {
	return &AppointmentHandler{
		submit:     submit,
		reschedule: reschedule,
		cancel:     cancel,
		complete:   complete,
		list:       list,
		store:      st,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RescheduleRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	DoctorID  int       `json:"doctorId"`
}

type ResizeRequest struct {
	EndTime time.Time `json:"endTime" binding:"required"`
}

// ======================================================
// CREATE / UPDATE (scheduling form)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var form ucschedule.FormValues
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	form.ID = 0

	ap, err := h.submit.Execute(c.Request.Context(), form)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var form ucschedule.FormValues
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	form.ID = id

	ap, err := h.submit.Execute(c.Request.Context(), form)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST (calendar views)
// ======================================================

// List returns the flattened calendar rows for a day or range.
// GET /api/appointments?date=2026-09-07
// GET /api/appointments?from=2026-09-01&to=2026-09-30&doctor_id=2
func (h *AppointmentHandler) List(c *gin.Context) {
	doctorID, _ := strconv.Atoi(c.Query("doctor_id"))

	var from, to localdate.Date
	var err error

	if dateStr := c.Query("date"); dateStr != "" {
		from, err = localdate.Parse(dateStr)
		to = from
	} else {
		from, err = localdate.Parse(c.Query("from"))
		if err == nil {
			to, err = localdate.Parse(c.Query("to"))
		}
	}
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date or range.")
		return
	}

	entries, err := h.list.Execute(c.Request.Context(), from, to, doctorID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, entries)
}

// ======================================================
// RESCHEDULE / RESIZE (drag and resize commits)
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.reschedule.Execute(
		c.Request.Context(),
		id,
		req.StartTime,
		req.EndTime,
		req.DoctorID,
	)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Resize(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.reschedule.ResizeTo(c.Request.Context(), id, req.EndTime)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.store.DeleteAppointment(c.Request.Context(), id); err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.NoContent(c)
}
