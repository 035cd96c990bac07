package timetracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
)

// State is what the store holds for one job seeker.
type State struct {
	Active   *timetracking.Session
	Date     time.Time
	Sessions []timetracking.Session
	LoadedAt time.Time
}

// Store caches the backend's view of each job seeker's sessions. Every
// refresh replaces the cached state wholesale; nothing is merged and
// nothing is persisted.
type Store struct {
	repo  timetracking.SessionRepository
	loc   *time.Location
	now   func() time.Time
	mu    sync.RWMutex
	state map[string]State
}

func NewStore(repo timetracking.SessionRepository, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		repo:  repo,
		loc:   loc,
		now:   time.Now,
		state: make(map[string]State),
	}
}

// Refresh reloads the active session and the sessions of date. On error
// the previously cached state is left untouched.
func (s *Store) Refresh(ctx context.Context, id identity.Identity, date time.Time) (State, error) {
	if err := id.Require(); err != nil {
		return State{}, err
	}
	day := timetracking.StartOfDay(date, s.loc)

	active, err := s.repo.GetActiveSession(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("failed to refresh active session: %w", err)
	}

	sessions, err := s.repo.ListSessions(ctx, id, day)
	if err != nil {
		return State{}, fmt.Errorf("failed to refresh sessions for %s: %w", day.Format("2006-01-02"), err)
	}

	next := State{
		Active:   active,
		Date:     day,
		Sessions: sessions,
		LoadedAt: s.now(),
	}

	s.mu.Lock()
	s.state[id.JobseekerID] = next
	s.mu.Unlock()

	return next, nil
}

// Snapshot returns the cached state of a job seeker.
func (s *Store) Snapshot(jobseekerID string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.state[jobseekerID]
	return st, ok
}
