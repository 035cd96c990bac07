package leave

import (
	"strings"
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "Approved"
	LeaveRequestStatusCancelled LeaveRequestStatus = "Cancelled"
)

// ParseStatus maps a backend status string onto the known statuses.
// Anything unrecognised is treated as still pending.
func ParseStatus(raw string) LeaveRequestStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved", "approve":
		return LeaveRequestStatusApproved
	case "cancelled", "canceled", "cancel":
		return LeaveRequestStatusCancelled
	default:
		return LeaveRequestStatusPending
	}
}

// DefaultLeaveType is sent when the form does not choose one.
const DefaultLeaveType = "Casual Leave"

// LeaveRequest entity. Status changes are made by the backend only.
type LeaveRequest struct {
	ID        string
	LeaveType string
	Reason    string
	From      time.Time
	To        time.Time
	Days      int

	Status    LeaveRequestStatus
	RawStatus string

	CreatedAt time.Time
}

// Submission is what gets posted to create a leave request.
type Submission struct {
	JobseekerID string
	EmployeeID  *string
	CompanyID   *string
	LeaveType   string
	From        time.Time
	To          time.Time
	Days        int
	Reason      string

	// Token is forwarded to the backend as a bearer token.
	Token string
}
