package leave

import (
	"context"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

// LeaveRequestRepository is the backend's leave API.
type LeaveRequestRepository interface {
	List(ctx context.Context, id identity.Identity) ([]LeaveRequest, error)
	Create(ctx context.Context, submission Submission) error
}
