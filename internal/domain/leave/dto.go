package leave

import (
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	Reason    string `json:"reason"`
	From      string `json:"from"`
	To        string `json:"to"`
	LeaveType string `json:"leave_type,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if !validator.MaxLength(r.Reason, 1000) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if validator.IsEmpty(r.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from is required",
		})
	} else if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to is required",
		})
	} else if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToForm builds a form the same way the UI fills it: from first, then to.
func (r *CreateLeaveRequestRequest) ToForm(loc *time.Location) *Form {
	form := &Form{Reason: r.Reason, LeaveType: r.LeaveType}
	if from, ok := validator.IsValidDateIn(r.From, loc); ok {
		form.SetFrom(from)
	}
	if to, ok := validator.IsValidDateIn(r.To, loc); ok {
		form.SetTo(to)
	}
	return form
}

// ValidateForm checks a form right before submission.
func ValidateForm(f *Form) error {
	var errs validator.ValidationErrors

	if f == nil || validator.IsEmpty(f.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if f == nil || f.From() == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from is required",
		})
	}
	if f == nil || f.To() == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DaysRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type DaysResponse struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	Days *int   `json:"days"`
}

type LeaveRequestResponse struct {
	ID        string `json:"id"`
	LeaveType string `json:"leave_type,omitempty"`
	Reason    string `json:"reason"`
	From      string `json:"from"`
	To        string `json:"to"`
	Days      int    `json:"days"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:        lr.ID,
		LeaveType: lr.LeaveType,
		Reason:    lr.Reason,
		From:      lr.From.Format("2006-01-02"),
		To:        lr.To.Format("2006-01-02"),
		Days:      lr.Days,
		Status:    string(lr.Status),
	}
	if !lr.CreatedAt.IsZero() {
		resp.CreatedAt = lr.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func NewLeaveRequestResponses(list []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(list))
	for _, lr := range list {
		out = append(out, NewLeaveRequestResponse(lr))
	}
	return out
}
