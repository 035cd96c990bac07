package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seeker = identity.Identity{JobseekerID: "42", Role: identity.RoleJobseeker, Token: "tok"}

func newClient(t *testing.T, mux *http.ServeMux) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, 5*time.Second)
}

func TestSessionRepository_GetActiveSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/time-tracking/active_session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("jobseeker_id"))
		fmt.Fprint(w, `{"success":true,"data":{
			"id":"7","employee_id":5,"company_id":"c-1","date":"2024-03-01",
			"clock_in_time":"09:00:00","break_start_time":"12:00:00","break_end_time":null,
			"is_active":"1"}}`)
	})
	repo := NewSessionRepository(newClient(t, mux), time.UTC)

	s, err := repo.GetActiveSession(context.Background(), seeker)

	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "5", s.EmployeeID)
	assert.Equal(t, "c-1", s.CompanyID)
	assert.True(t, s.IsActive)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), *s.ClockInTime)
	assert.True(t, s.OnBreak())
	assert.Equal(t, timetracking.StateOnBreak, timetracking.StateOf(s))
}

func TestSessionRepository_GetActiveSession_None(t *testing.T) {
	for _, body := range []string{
		`{"success":true,"data":null}`,
		`{"success":true,"data":{}}`,
		`{"success":true,"data":{"id":3,"clock_in_time":"2024-03-01 09:00:00","clock_out_time":"2024-03-01 17:00:00","is_active":0}}`,
	} {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/seeker/time-tracking/active_session", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		})
		repo := NewSessionRepository(newClient(t, mux), time.UTC)

		s, err := repo.GetActiveSession(context.Background(), seeker)
		require.NoError(t, err)
		assert.Nil(t, s, body)
	}
}

func TestSessionRepository_GetActiveSession_BadTimeIsUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/time-tracking/active_session", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"id":1,"clock_in_time":"soon"}}`)
	})
	repo := NewSessionRepository(newClient(t, mux), time.UTC)

	_, err := repo.GetActiveSession(context.Background(), seeker)
	assert.ErrorIs(t, err, backend.ErrUnavailable)
}

func TestSessionRepository_ListSessions_SortsByClockIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/time-tracking/sessions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("date"))
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":2,"clock_in_time":"14:00","clock_out_time":"16:00","is_active":false},
			{"id":1,"clock_in_time":"09:00","clock_out_time":"12:00","is_active":false}]}`)
	})
	repo := NewSessionRepository(newClient(t, mux), time.UTC)

	sessions, err := repo.ListSessions(context.Background(), seeker, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, int64(1), sessions[0].ID)
	assert.Equal(t, int64(2), sessions[1].ID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), sessions[1].Date)
}

func TestSessionRepository_Mutations(t *testing.T) {
	got := map[string]map[string]string{}
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		fields := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		got[r.URL.Path] = fields
		fmt.Fprint(w, `{"success":true,"message":"ok"}`)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler)
	repo := NewSessionRepository(newClient(t, mux), time.UTC)
	ctx := context.Background()

	require.NoError(t, repo.ClockIn(ctx, seeker, timetracking.ClockInRequest{Location: "HQ", DeviceInfo: "cli", IPAddress: "10.0.0.1"}))
	require.NoError(t, repo.StartBreak(ctx, seeker, timetracking.BreakLunch))
	require.NoError(t, repo.EndBreak(ctx, seeker))
	sid := int64(9)
	require.NoError(t, repo.ClockOut(ctx, seeker, &sid))

	assert.Equal(t, map[string]string{"jobseeker_id": "42", "location": "HQ", "device_info": "cli", "ip_address": "10.0.0.1"},
		got["/api/seeker/time-tracking/clock_in"])
	assert.Equal(t, map[string]string{"jobseeker_id": "42", "break_type": "Lunch"}, got["/api/seeker/time-tracking/start_break"])
	assert.Equal(t, map[string]string{"jobseeker_id": "42"}, got["/api/seeker/time-tracking/end_break"])
	assert.Equal(t, map[string]string{"jobseeker_id": "42", "session_id": "9"}, got["/api/seeker/time-tracking/clock_out"])
}

func TestSessionRepository_ClockOutWithoutSessionID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/time-tracking/clock_out", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.Value["session_id"]
		assert.False(t, ok)
		fmt.Fprint(w, `{"success":false,"message":"No active session"}`)
	})
	repo := NewSessionRepository(newClient(t, mux), time.UTC)

	err := repo.ClockOut(context.Background(), seeker, nil)

	require.Error(t, err)
	assert.Equal(t, "No active session", backend.Message(err, "generic"))
}

func TestLeaveRepository_List(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/leaves/list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("jobseeker_id"))
		fmt.Fprint(w, `{"success":true,"data":[
			{"id":1,"reason":"trip","apply_strt_date":"2024-01-02","apply_end_date":"2024-01-04","num_aprv_day":"3","status":"approved","created_at":"2024-01-01 10:00:00"},
			{"id":2,"reason":"flu","apply_strt_date":"2024-02-10","apply_end_date":"2024-02-10","status":"rejected","created_at":"2024-02-09T08:00:00Z"}]}`)
	})
	repo := NewLeaveRepository(newClient(t, mux), time.UTC)

	list, err := repo.List(context.Background(), seeker)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, leave.LeaveRequestStatusPending, list[0].Status)
	assert.Equal(t, "rejected", list[0].RawStatus)
	assert.Equal(t, 1, list[0].Days)
	assert.Equal(t, "1", list[1].ID)
	assert.Equal(t, leave.LeaveRequestStatusApproved, list[1].Status)
	assert.Equal(t, 3, list[1].Days)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), list[1].From)
}

func TestLeaveRepository_Create(t *testing.T) {
	var fields map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/leaves/create", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fields = r.MultipartForm.Value
		fmt.Fprint(w, `{"success":true}`)
	})
	repo := NewLeaveRepository(newClient(t, mux), time.UTC)
	emp := "e-5"

	err := repo.Create(context.Background(), leave.Submission{
		JobseekerID: "42",
		EmployeeID:  &emp,
		LeaveType:   leave.DefaultLeaveType,
		From:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Days:        3,
		Reason:      "family",
		Token:       "tok",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, fields["jobseeker_id"])
	assert.Equal(t, []string{"e-5"}, fields["employee_id"])
	assert.NotContains(t, fields, "company_id")
	assert.Equal(t, []string{"2024-05-01"}, fields["apply_strt_date"])
	assert.Equal(t, []string{"2024-05-03"}, fields["apply_end_date"])
	assert.Equal(t, []string{"3"}, fields["num_aprv_day"])
	assert.Equal(t, []string{"Casual Leave"}, fields["leave_type"])
	assert.Equal(t, []string{"family"}, fields["reason"])
}

func TestEmployerRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/seeker/profile/hiring_employers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":[{"employer_id":11,"employee_id":"e-1","company_name":"Acme"},{"company_id":"c-2","employee_id":2}]}`)
	})
	mux.HandleFunc("/api/seeker/profile/is_hired", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"is_hired":1}}`)
	})
	repo := NewEmployerRepository(newClient(t, mux))
	ctx := context.Background()

	employers, err := repo.ListHiringEmployers(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, []identity.Employer{
		{CompanyID: "11", EmployeeID: "e-1", CompanyName: "Acme"},
		{CompanyID: "c-2", EmployeeID: "2"},
	}, employers)

	hired, err := repo.IsHired(ctx, seeker)
	require.NoError(t, err)
	assert.True(t, hired)
}
