package remote

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
)

const leavesPath = "/api/seeker/leaves"

type leavePayload struct {
	ID            FlexString `json:"id"`
	Reason        string     `json:"reason"`
	LeaveType     string     `json:"leave_type"`
	ApplyStrtDate string     `json:"apply_strt_date"`
	ApplyEndDate  string     `json:"apply_end_date"`
	NumAprvDay    FlexInt    `json:"num_aprv_day"`
	Status        string     `json:"status"`
	CreatedAt     *string    `json:"created_at"`
}

func (p leavePayload) toEntity(loc *time.Location) leave.LeaveRequest {
	lr := leave.LeaveRequest{
		ID:        string(p.ID),
		LeaveType: p.LeaveType,
		Reason:    p.Reason,
		Days:      int(p.NumAprvDay),
		Status:    leave.ParseStatus(p.Status),
		RawStatus: p.Status,
	}
	if from, ok := parseDate(p.ApplyStrtDate, loc); ok {
		lr.From = from
	}
	if to, ok := parseDate(p.ApplyEndDate, loc); ok {
		lr.To = to
	}
	if created, err := parseTimestamp(p.CreatedAt, lr.From, loc); err == nil && created != nil {
		lr.CreatedAt = *created
	}
	if lr.Days == 0 {
		if days, ok := leave.ComputeDays(&lr.From, &lr.To); ok {
			lr.Days = days
		}
	}
	return lr
}

type leaveRepositoryImpl struct {
	client *backend.Client
	loc    *time.Location
}

func NewLeaveRepository(client *backend.Client, loc *time.Location) leave.LeaveRequestRepository {
	if loc == nil {
		loc = time.Local
	}
	return &leaveRepositoryImpl{client: client, loc: loc}
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, id identity.Identity) ([]leave.LeaveRequest, error) {
	var payloads []leavePayload
	query := url.Values{"jobseeker_id": {id.JobseekerID}}
	if err := r.client.Get(ctx, leavesPath+"/list", query, id.Token, &payloads); err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	requests := make([]leave.LeaveRequest, 0, len(payloads))
	for _, p := range payloads {
		requests = append(requests, p.toEntity(r.loc))
	}

	// Newest first; requests without a creation time fall back to their start date.
	sort.SliceStable(requests, func(i, j int) bool {
		return sortKey(requests[i]).After(sortKey(requests[j]))
	})
	return requests, nil
}

func sortKey(lr leave.LeaveRequest) time.Time {
	if !lr.CreatedAt.IsZero() {
		return lr.CreatedAt
	}
	return lr.From
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, s leave.Submission) error {
	form := url.Values{
		"jobseeker_id":    {s.JobseekerID},
		"leave_type":      {s.LeaveType},
		"apply_strt_date": {s.From.In(r.loc).Format("2006-01-02")},
		"apply_end_date":  {s.To.In(r.loc).Format("2006-01-02")},
		"num_aprv_day":    {strconv.Itoa(s.Days)},
		"reason":          {s.Reason},
	}
	if s.EmployeeID != nil {
		form.Set("employee_id", *s.EmployeeID)
	}
	if s.CompanyID != nil {
		form.Set("company_id", *s.CompanyID)
	}

	if err := r.client.PostForm(ctx, leavesPath+"/create", form, s.Token, nil); err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}
