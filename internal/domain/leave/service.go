package leave

import (
	"context"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

type LeaveService interface {
	// ComputeDays validates a date range given as YYYY-MM-DD strings.
	ComputeDays(req DaysRequest) (DaysResponse, error)

	// ListMyLeaveRequests returns the seeker's history, newest first.
	ListMyLeaveRequests(ctx context.Context, id identity.Identity) ([]LeaveRequest, error)

	// Submit posts the form, resets it on success and returns the reloaded history.
	Submit(ctx context.Context, id identity.Identity, form *Form) ([]LeaveRequest, error)
}
