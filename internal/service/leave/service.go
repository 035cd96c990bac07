package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/sse"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	resolver identity.Resolver
	hub      *sse.Hub
	loc      *time.Location
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	resolver identity.Resolver,
	hub *sse.Hub,
	loc *time.Location,
) leave.LeaveService {
	if loc == nil {
		loc = time.Local
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		resolver:               resolver,
		hub:                    hub,
		loc:                    loc,
	}
}

// ComputeDays implements leave.LeaveService.
func (l *LeaveServiceImpl) ComputeDays(req leave.DaysRequest) (leave.DaysResponse, error) {
	var errs validator.ValidationErrors
	form := &leave.Form{}

	if !validator.IsEmpty(req.From) {
		from, ok := validator.IsValidDateIn(req.From, l.loc)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
		} else {
			form.SetFrom(from)
		}
	}
	if !validator.IsEmpty(req.To) {
		to, ok := validator.IsValidDateIn(req.To, l.loc)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
		} else {
			form.SetTo(to)
		}
	}
	if len(errs) > 0 {
		return leave.DaysResponse{}, errs
	}

	var resp leave.DaysResponse
	if form.From() != nil {
		resp.From = form.From().Format("2006-01-02")
	}
	if form.To() != nil {
		resp.To = form.To().Format("2006-01-02")
	}
	if days, ok := form.Days(); ok {
		resp.Days = &days
	}
	return resp, nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, id identity.Identity) ([]leave.LeaveRequest, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	requests, err := l.LeaveRequestRepository.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", leave.ErrListFailed, err)
	}
	return requests, nil
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, id identity.Identity, form *leave.Form) ([]leave.LeaveRequest, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}
	if err := leave.ValidateForm(form); err != nil {
		return nil, err
	}

	days, _ := form.Days()

	// A missing company id does not block submission.
	resolved, err := l.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	leaveType := form.LeaveType
	if validator.IsEmpty(leaveType) {
		leaveType = leave.DefaultLeaveType
	}

	submission := leave.Submission{
		JobseekerID: id.JobseekerID,
		EmployeeID:  resolved.EmployeeIDPtr(),
		CompanyID:   resolved.CompanyIDPtr(),
		LeaveType:   leaveType,
		From:        *form.From(),
		To:          *form.To(),
		Days:        days,
		Reason:      form.Reason,
		Token:       id.Token,
	}

	if err := l.LeaveRequestRepository.Create(ctx, submission); err != nil {
		slog.Warn("leave submission failed", "jobseeker_id", id.JobseekerID, "error", err)
		return nil, fmt.Errorf("%w: %w", leave.ErrSubmitFailed, err)
	}

	slog.Info("leave request submitted",
		"jobseeker_id", id.JobseekerID,
		"days", days,
		"company_source", resolved.CompanySource,
		"employee_source", resolved.EmployeeSource,
	)
	form.Reset()

	if l.hub != nil {
		l.hub.Publish(id.JobseekerID, sse.Event{Event: sse.EventLeaveSubmitted})
	}

	requests, err := l.LeaveRequestRepository.List(ctx, id)
	if err != nil {
		slog.Warn("leave history reload failed", "jobseeker_id", id.JobseekerID, "error", err)
		return nil, nil
	}
	return requests, nil
}
