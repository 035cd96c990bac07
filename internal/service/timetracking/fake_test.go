package timetracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
)

// fakeRepo emulates the backend's session workflow in memory.
type fakeRepo struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions []timetracking.Session
	nextID   int64
	calls    []string
	clockOut []*int64

	failList error
	failNext error
	gate     chan struct{}
	entered  chan struct{}
}

func newFakeRepo(now func() time.Time) *fakeRepo {
	return &fakeRepo{now: now, nextID: 1}
}

func (f *fakeRepo) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeRepo) open() *timetracking.Session {
	for i := range f.sessions {
		if f.sessions[i].IsOpen() {
			return &f.sessions[i]
		}
	}
	return nil
}

func (f *fakeRepo) GetActiveSession(ctx context.Context, id identity.Identity) (*timetracking.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s := f.open(); s != nil {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListSessions(ctx context.Context, id identity.Identity, date time.Time) ([]timetracking.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failList != nil {
		return nil, f.failList
	}
	var out []timetracking.Session
	for _, s := range f.sessions {
		if timetracking.SameDay(s.Date, date, time.UTC) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ClockIn(ctx context.Context, id identity.Identity, req timetracking.ClockInRequest) error {
	if f.gate != nil {
		f.entered <- struct{}{}
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("clock_in"); err != nil {
		return err
	}
	now := f.now()
	f.sessions = append(f.sessions, timetracking.Session{
		ID:          f.nextID,
		EmployeeID:  "emp-1",
		CompanyID:   "co-1",
		Date:        timetracking.StartOfDay(now, time.UTC),
		ClockInTime: &now,
		IsActive:    true,
	})
	f.nextID++
	return nil
}

func (f *fakeRepo) StartBreak(ctx context.Context, id identity.Identity, breakType timetracking.BreakType) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("start_break"); err != nil {
		return err
	}
	s := f.open()
	if s == nil {
		return errors.New("no open session")
	}
	now := f.now()
	s.BreakStartTime = &now
	s.BreakType = string(breakType)
	return nil
}

func (f *fakeRepo) EndBreak(ctx context.Context, id identity.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("end_break"); err != nil {
		return err
	}
	s := f.open()
	if s == nil {
		return errors.New("no open session")
	}
	now := f.now()
	s.BreakEndTime = &now
	return nil
}

func (f *fakeRepo) ClockOut(ctx context.Context, id identity.Identity, sessionID *int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.record("clock_out"); err != nil {
		return err
	}
	f.clockOut = append(f.clockOut, sessionID)
	s := f.open()
	if s == nil {
		return errors.New("no open session")
	}
	now := f.now()
	s.ClockOutTime = &now
	s.IsActive = false
	return nil
}

func (f *fakeRepo) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

// testClock is a settable clock shared by the fake and the service.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
