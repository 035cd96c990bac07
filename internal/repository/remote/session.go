package remote

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
)

const timeTrackingPath = "/api/seeker/time-tracking"

type sessionPayload struct {
	ID              FlexInt    `json:"id"`
	EmployeeID      FlexString `json:"employee_id"`
	CompanyID       FlexString `json:"company_id"`
	Date            string     `json:"date"`
	ClockInTime     *string    `json:"clock_in_time"`
	ClockOutTime    *string    `json:"clock_out_time"`
	BreakStartTime  *string    `json:"break_start_time"`
	BreakEndTime    *string    `json:"break_end_time"`
	BreakType       string     `json:"break_type"`
	TotalWorkHours  FlexFloat  `json:"total_work_hours"`
	TotalBreakHours FlexFloat  `json:"total_break_hours"`
	OvertimeHours   FlexFloat  `json:"overtime_hours"`
	IsActive        FlexBool   `json:"is_active"`
}

func (p sessionPayload) toEntity(fallbackDay time.Time, loc *time.Location) (timetracking.Session, error) {
	day, ok := parseDate(p.Date, loc)
	if !ok {
		day = timetracking.StartOfDay(fallbackDay, loc)
	}

	s := timetracking.Session{
		ID:              int64(p.ID),
		EmployeeID:      string(p.EmployeeID),
		CompanyID:       string(p.CompanyID),
		Date:            day,
		BreakType:       p.BreakType,
		TotalWorkHours:  float64(p.TotalWorkHours),
		TotalBreakHours: float64(p.TotalBreakHours),
		OvertimeHours:   float64(p.OvertimeHours),
		IsActive:        bool(p.IsActive),
	}

	var err error
	if s.ClockInTime, err = parseTimestamp(p.ClockInTime, day, loc); err != nil {
		return s, fmt.Errorf("clock_in_time: %w", err)
	}
	if s.ClockOutTime, err = parseTimestamp(p.ClockOutTime, day, loc); err != nil {
		return s, fmt.Errorf("clock_out_time: %w", err)
	}
	if s.BreakStartTime, err = parseTimestamp(p.BreakStartTime, day, loc); err != nil {
		return s, fmt.Errorf("break_start_time: %w", err)
	}
	if s.BreakEndTime, err = parseTimestamp(p.BreakEndTime, day, loc); err != nil {
		return s, fmt.Errorf("break_end_time: %w", err)
	}
	return s, nil
}

type sessionRepositoryImpl struct {
	client *backend.Client
	loc    *time.Location
	now    func() time.Time
}

func NewSessionRepository(client *backend.Client, loc *time.Location) timetracking.SessionRepository {
	if loc == nil {
		loc = time.Local
	}
	return &sessionRepositoryImpl{
		client: client,
		loc:    loc,
		now:    time.Now,
	}
}

// GetActiveSession implements timetracking.SessionRepository.
func (r *sessionRepositoryImpl) GetActiveSession(ctx context.Context, id identity.Identity) (*timetracking.Session, error) {
	var payload *sessionPayload
	query := url.Values{"jobseeker_id": {id.JobseekerID}}
	if err := r.client.Get(ctx, timeTrackingPath+"/active_session", query, id.Token, &payload); err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if payload == nil || (payload.ID == 0 && payload.ClockInTime == nil) {
		return nil, nil
	}

	session, err := payload.toEntity(r.now(), r.loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse active session: %w: %v", backend.ErrUnavailable, err)
	}
	if !session.IsOpen() {
		return nil, nil
	}
	return &session, nil
}

// ListSessions implements timetracking.SessionRepository.
func (r *sessionRepositoryImpl) ListSessions(ctx context.Context, id identity.Identity, date time.Time) ([]timetracking.Session, error) {
	var payloads []sessionPayload
	query := url.Values{
		"jobseeker_id": {id.JobseekerID},
		"date":         {date.In(r.loc).Format("2006-01-02")},
	}
	if err := r.client.Get(ctx, timeTrackingPath+"/sessions", query, id.Token, &payloads); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]timetracking.Session, 0, len(payloads))
	for _, p := range payloads {
		s, err := p.toEntity(date, r.loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session %d: %w: %v", p.ID, backend.ErrUnavailable, err)
		}
		sessions = append(sessions, s)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i].ClockInTime, sessions[j].ClockInTime
		if a == nil || b == nil {
			return a != nil
		}
		return a.Before(*b)
	})
	return sessions, nil
}

// ClockIn implements timetracking.SessionRepository.
func (r *sessionRepositoryImpl) ClockIn(ctx context.Context, id identity.Identity, req timetracking.ClockInRequest) error {
	form := url.Values{
		"jobseeker_id": {id.JobseekerID},
		"location":     {req.Location},
		"device_info":  {req.DeviceInfo},
		"ip_address":   {req.IPAddress},
	}
	if err := r.client.PostForm(ctx, timeTrackingPath+"/clock_in", form, id.Token, nil); err != nil {
		return fmt.Errorf("failed to clock in: %w", err)
	}
	return nil
}

// StartBreak implements timetracking.SessionRepository.
func (r *sessionRepositoryImpl) StartBreak(ctx context.Context, id identity.Identity, breakType timetracking.BreakType) error {
	form := url.Values{
		"jobseeker_id": {id.JobseekerID},
		"break_type":   {string(breakType)},
	}
	if err := r.client.PostForm(ctx, timeTrackingPath+"/start_break", form, id.Token, nil); err != nil {
		return fmt.Errorf("failed to start break: %w", err)
	}
	return nil
}

// EndBreak implements timetracking.SessionRepository.
func (r *sessionRepositoryImpl) EndBreak(ctx context.Context, id identity.Identity) error {
	form := url.Values{"jobseeker_id": {id.JobseekerID}}
	if err := r.client.PostForm(ctx, timeTrackingPath+"/end_break", form, id.Token, nil); err != nil {
		return fmt.Errorf("failed to end break: %w", err)
	}
	return nil
}

// ClockOut implements timetracking.SessionRepository.
func (r *sessionRepositoryImpl) ClockOut(ctx context.Context, id identity.Identity, sessionID *int64) error {
	form := url.Values{"jobseeker_id": {id.JobseekerID}}
	if sessionID != nil {
		form.Set("session_id", strconv.FormatInt(*sessionID, 10))
	}
	if err := r.client.PostForm(ctx, timeTrackingPath+"/clock_out", form, id.Token, nil); err != nil {
		return fmt.Errorf("failed to clock out: %w", err)
	}
	return nil
}
