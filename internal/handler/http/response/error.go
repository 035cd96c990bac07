package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
)

// GenericFailure is shown when the backend could not be reached or understood.
const GenericFailure = "Something went wrong, please try again"

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Backend business failures carry their own message
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		Rejected(w, apiErr.Message)
		return
	}

	switch {
	// Identity domain errors
	case errors.Is(err, identity.ErrMissingIdentity):
		Unauthorized(w, "Please log in")
	case errors.Is(err, identity.ErrInvalidRole):
		Forbidden(w, err.Error())

	// Time tracking domain errors
	case errors.Is(err, timetracking.ErrRequestInFlight):
		TooManyRequests(w, err.Error())
	case errors.Is(err, timetracking.ErrAlreadyClockedIn),
		errors.Is(err, timetracking.ErrNotClockedIn),
		errors.Is(err, timetracking.ErrAlreadyOnBreak),
		errors.Is(err, timetracking.ErrNotOnBreak),
		errors.Is(err, timetracking.ErrBreakAlreadyTaken):
		Conflict(w, err.Error())

	// Backend reachability
	case errors.Is(err, backend.ErrUnavailable):
		BadGateway(w, GenericFailure)

	// Leave domain errors without a backend message
	case errors.Is(err, leave.ErrSubmitFailed):
		BadGateway(w, "Failed to submit leave request")
	case errors.Is(err, leave.ErrListFailed):
		BadGateway(w, "Failed to load leave requests")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
