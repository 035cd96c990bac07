package timetracking

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInRequest struct {
	Location   string `json:"location"`
	DeviceInfo string `json:"-"`
	IPAddress  string `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.MaxLength(r.Location, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StartBreakRequest struct {
	BreakType string `json:"break_type"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BreakType) {
		r.BreakType = string(BreakLunch)
	}

	if !validator.IsInSlice(r.BreakType, BreakTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: fmt.Sprintf("break_type must be one of %v", BreakTypes),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// VIEW DTOs
// ========================================

type SessionResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      string  `json:"employee_id,omitempty"`
	CompanyID       string  `json:"company_id,omitempty"`
	Date            string  `json:"date"`
	ClockInTime     *string `json:"clock_in_time"`
	ClockOutTime    *string `json:"clock_out_time"`
	BreakStartTime  *string `json:"break_start_time"`
	BreakEndTime    *string `json:"break_end_time"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	TotalBreakHours float64 `json:"total_break_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	IsActive        bool    `json:"is_active"`
}

type EntryResponse struct {
	Type      string `json:"type"`
	At        string `json:"at"`
	BreakType string `json:"break_type,omitempty"`
}

type ElapsedResponse struct {
	WorkedSeconds int64  `json:"worked_seconds"`
	BreakSeconds  int64  `json:"break_seconds"`
	Worked        string `json:"worked"`
	Break         string `json:"break"`
}

type ControlsResponse struct {
	ClockIn    bool `json:"clock_in"`
	StartBreak bool `json:"start_break"`
	EndBreak   bool `json:"end_break"`
	ClockOut   bool `json:"clock_out"`
}

type ViewResponse struct {
	Date     string            `json:"date"`
	IsToday  bool              `json:"is_today"`
	Now      *string           `json:"now,omitempty"`
	State    string            `json:"state"`
	Active   *SessionResponse  `json:"active_session"`
	Sessions []SessionResponse `json:"sessions"`
	Entries  []EntryResponse   `json:"entries"`
	Session  ElapsedResponse   `json:"session"`
	Day      ElapsedResponse   `json:"day"`
	Loading  bool              `json:"loading"`
	Controls ControlsResponse  `json:"controls"`
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// FormatDuration renders d as HH:MM:SS, hours unbounded.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func NewSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		CompanyID:       s.CompanyID,
		Date:            s.Date.Format("2006-01-02"),
		ClockInTime:     timePtrToString(s.ClockInTime),
		ClockOutTime:    timePtrToString(s.ClockOutTime),
		BreakStartTime:  timePtrToString(s.BreakStartTime),
		BreakEndTime:    timePtrToString(s.BreakEndTime),
		TotalWorkHours:  s.TotalWorkHours,
		TotalBreakHours: s.TotalBreakHours,
		OvertimeHours:   s.OvertimeHours,
		IsActive:        s.IsActive,
	}
}

func newElapsedResponse(e Elapsed) ElapsedResponse {
	return ElapsedResponse{
		WorkedSeconds: int64(e.Worked / time.Second),
		BreakSeconds:  int64(e.Break / time.Second),
		Worked:        FormatDuration(e.Worked),
		Break:         FormatDuration(e.Break),
	}
}

func NewViewResponse(v View) ViewResponse {
	resp := ViewResponse{
		Date:     v.Date.Format("2006-01-02"),
		IsToday:  v.IsToday,
		State:    string(v.State),
		Sessions: make([]SessionResponse, 0, len(v.Sessions)),
		Entries:  make([]EntryResponse, 0, len(v.Entries)),
		Session:  newElapsedResponse(v.Session),
		Day:      newElapsedResponse(v.Day),
		Loading:  v.Loading,
		Controls: ControlsResponse{
			ClockIn:    v.Controls.CanClockIn,
			StartBreak: v.Controls.CanStartBreak,
			EndBreak:   v.Controls.CanEndBreak,
			ClockOut:   v.Controls.CanClockOut,
		},
	}
	if !v.Now.IsZero() {
		resp.Now = timePtrToString(&v.Now)
	}
	if v.Active != nil {
		active := NewSessionResponse(*v.Active)
		resp.Active = &active
	}
	for _, s := range v.Sessions {
		resp.Sessions = append(resp.Sessions, NewSessionResponse(s))
	}
	for _, e := range v.Entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			Type:      string(e.Type),
			At:        e.At.Format(time.RFC3339),
			BreakType: e.BreakType,
		})
	}
	return resp
}
