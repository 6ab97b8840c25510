package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/store"
	ucschedule "github.com/clinicdesk/clinic-scheduler/internal/usecase/schedule"
)

// From maps a scheduling failure onto the wire. Field-level validation
// and availability failures are recoverable 422s, double bookings are
// 409s, store transport failures are retryable 502s.
func From(c *gin.Context, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		Fields(c, validation.Fields)
		return
	}

	var availability domain.AvailabilityError
	if errors.As(err, &availability) {
		Unprocessable(c, availability.Code, availability.Message)
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		Conflict(c, "scheduling_conflict", conflict.Error())
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "not_found", "appointment not found")
	case errors.Is(err, domain.ErrInvalidState):
		Conflict(c, "invalid_state", "appointment is not in a state that allows this change")
	case errors.Is(err, ucschedule.ErrSubmitInFlight):
		Conflict(c, "submit_in_flight", "a submission is already in progress")
	case errors.Is(err, domain.ErrCommitInFlight):
		Conflict(c, "commit_in_flight", "a commit is already in progress")
	case store.IsTransport(err):
		BadGateway(c, "store_unreachable", "data store unavailable, try again")
	default:
		Internal(c, "internal_error", "unexpected error")
	}
}
