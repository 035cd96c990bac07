package timetracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/sse"
)

// Config holds time tracking service settings.
type Config struct {
	Location     *time.Location
	TickInterval time.Duration
	// MaxSnapshotAge bounds how long a cached state may back a clock action
	// before it is reloaded from the backend.
	MaxSnapshotAge time.Duration
	Now            func() time.Time
}

type service struct {
	repo  timetracking.SessionRepository
	store *Store
	hub   *sse.Hub
	cfg   Config

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewTimeTrackingService wires the clock controller. hub may be nil when no
// other views need to hear about session changes.
func NewTimeTrackingService(repo timetracking.SessionRepository, store *Store, hub *sse.Hub, cfg Config) timetracking.TimeTrackingService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.MaxSnapshotAge == 0 {
		cfg.MaxSnapshotAge = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	store.loc = cfg.Location
	store.now = cfg.Now

	return &service{
		repo:     repo,
		store:    store,
		hub:      hub,
		cfg:      cfg,
		inFlight: make(map[string]struct{}),
	}
}

// Today implements timetracking.TimeTrackingService.
func (s *service) Today() time.Time {
	return timetracking.StartOfDay(s.cfg.Now(), s.cfg.Location)
}

// View implements timetracking.TimeTrackingService.
func (s *service) View(ctx context.Context, id identity.Identity, date time.Time) (timetracking.View, error) {
	state, err := s.store.Refresh(ctx, id, date)
	if err != nil {
		return timetracking.View{}, err
	}
	return s.derive(state, s.isLoading(id.JobseekerID)), nil
}

// Derive implements timetracking.TimeTrackingService.
func (s *service) Derive(id identity.Identity, date time.Time) (timetracking.View, bool) {
	state, ok := s.store.Snapshot(id.JobseekerID)
	if !ok || !state.Date.Equal(timetracking.StartOfDay(date, s.cfg.Location)) {
		return timetracking.View{}, false
	}
	return s.derive(state, s.isLoading(id.JobseekerID)), true
}

func (s *service) derive(state State, loading bool) timetracking.View {
	now := s.cfg.Now()
	isToday := timetracking.SameDay(state.Date, now, s.cfg.Location)

	sessions := state.Sessions
	if isToday && state.Active != nil && state.Active.ClockInTime != nil &&
		timetracking.SameDay(*state.Active.ClockInTime, now, s.cfg.Location) {
		sessions = timetracking.MergeActive(sessions, state.Active)
	}
	entries := timetracking.BuildEntries(sessions)

	// Other dates are frozen at their last recorded event.
	ref := now
	if !isToday {
		ref = state.Date
		if last, ok := timetracking.LastEventAt(entries); ok {
			ref = last
		}
	}

	clockState := timetracking.StateOf(state.Active)

	view := timetracking.View{
		Date:     state.Date,
		IsToday:  isToday,
		Now:      ref,
		State:    clockState,
		Active:   state.Active,
		Sessions: sessions,
		Entries:  entries,
		Day:      timetracking.DayElapsed(sessions, ref),
		Loading:  loading,
	}

	switch {
	case isToday && state.Active != nil:
		view.Session = timetracking.SessionElapsed(*state.Active, ref)
	case !isToday && len(sessions) > 0:
		view.Session = timetracking.SessionElapsed(sessions[len(sessions)-1], ref)
	}

	if isToday {
		view.Controls = timetracking.DeriveControls(clockState, timetracking.HasBreakStart(entries), loading)
	}
	return view
}

func (s *service) isLoading(jobseekerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.inFlight[jobseekerID]
	return ok
}

func (s *service) acquire(jobseekerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inFlight[jobseekerID]; ok {
		return false
	}
	s.inFlight[jobseekerID] = struct{}{}
	return true
}

func (s *service) release(jobseekerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, jobseekerID)
}

// stateForToday returns today's cached state, loading it when the store
// holds nothing or another date.
func (s *service) stateForToday(ctx context.Context, id identity.Identity, today time.Time) (State, error) {
	state, ok := s.store.Snapshot(id.JobseekerID)
	if ok && state.Date.Equal(today) && s.cfg.Now().Sub(state.LoadedAt) <= s.cfg.MaxSnapshotAge {
		return state, nil
	}
	return s.store.Refresh(ctx, id, today)
}

// mutate runs one clock action under the in-flight guard: check the
// precondition against today's state, call the backend, then refresh.
func (s *service) mutate(
	ctx context.Context,
	id identity.Identity,
	action string,
	check func(state State, entries []timetracking.Entry) error,
	call func(ctx context.Context, state State) error,
) (timetracking.View, error) {
	if err := id.Require(); err != nil {
		return timetracking.View{}, err
	}
	if !s.acquire(id.JobseekerID) {
		return timetracking.View{}, timetracking.ErrRequestInFlight
	}
	defer s.release(id.JobseekerID)

	today := s.Today()
	state, err := s.stateForToday(ctx, id, today)
	if err != nil {
		return timetracking.View{}, err
	}

	current := s.derive(state, false)
	if err := check(state, current.Entries); err != nil {
		return current, err
	}

	if err := call(ctx, state); err != nil {
		slog.Warn("time tracking action failed", "action", action, "jobseeker_id", id.JobseekerID, "error", err)
		return current, err
	}

	if s.hub != nil {
		s.hub.Publish(id.JobseekerID, sse.Event{Event: sse.EventSessionChanged, Data: action})
	}

	fresh, err := s.store.Refresh(ctx, id, today)
	if err != nil {
		slog.Warn("refresh after time tracking action failed", "action", action, "jobseeker_id", id.JobseekerID, "error", err)
		return current, nil
	}
	return s.derive(fresh, false), nil
}

// ClockIn implements timetracking.TimeTrackingService.
func (s *service) ClockIn(ctx context.Context, id identity.Identity, req timetracking.ClockInRequest) (timetracking.View, error) {
	if err := req.Validate(); err != nil {
		return timetracking.View{}, err
	}
	return s.mutate(ctx, id, "clock_in",
		func(state State, _ []timetracking.Entry) error {
			if timetracking.StateOf(state.Active) != timetracking.StateOffClock {
				return timetracking.ErrAlreadyClockedIn
			}
			return nil
		},
		func(ctx context.Context, _ State) error {
			return s.repo.ClockIn(ctx, id, req)
		},
	)
}

// StartBreak implements timetracking.TimeTrackingService.
func (s *service) StartBreak(ctx context.Context, id identity.Identity, req timetracking.StartBreakRequest) (timetracking.View, error) {
	if err := req.Validate(); err != nil {
		return timetracking.View{}, err
	}
	return s.mutate(ctx, id, "start_break",
		func(state State, entries []timetracking.Entry) error {
			switch timetracking.StateOf(state.Active) {
			case timetracking.StateOnBreak:
				return timetracking.ErrAlreadyOnBreak
			case timetracking.StateOffClock:
				return timetracking.ErrNotClockedIn
			}
			if timetracking.HasBreakStart(entries) {
				return timetracking.ErrBreakAlreadyTaken
			}
			return nil
		},
		func(ctx context.Context, _ State) error {
			return s.repo.StartBreak(ctx, id, timetracking.BreakType(req.BreakType))
		},
	)
}

// EndBreak implements timetracking.TimeTrackingService.
func (s *service) EndBreak(ctx context.Context, id identity.Identity) (timetracking.View, error) {
	return s.mutate(ctx, id, "end_break",
		func(state State, _ []timetracking.Entry) error {
			if timetracking.StateOf(state.Active) != timetracking.StateOnBreak {
				return timetracking.ErrNotOnBreak
			}
			return nil
		},
		func(ctx context.Context, _ State) error {
			return s.repo.EndBreak(ctx, id)
		},
	)
}

// ClockOut implements timetracking.TimeTrackingService.
func (s *service) ClockOut(ctx context.Context, id identity.Identity) (timetracking.View, error) {
	return s.mutate(ctx, id, "clock_out",
		func(state State, _ []timetracking.Entry) error {
			switch timetracking.StateOf(state.Active) {
			case timetracking.StateOffClock:
				return timetracking.ErrNotClockedIn
			case timetracking.StateOnBreak:
				return timetracking.ErrAlreadyOnBreak
			}
			return nil
		},
		func(ctx context.Context, state State) error {
			var sessionID *int64
			if state.Active != nil && state.Active.ID != 0 {
				sid := state.Active.ID
				sessionID = &sid
			}
			return s.repo.ClockOut(ctx, id, sessionID)
		},
	)
}

// Watch implements timetracking.TimeTrackingService.
func (s *service) Watch(ctx context.Context, id identity.Identity, date time.Time, emit func(timetracking.View) error) error {
	view, err := s.View(ctx, id, date)
	if err != nil {
		return err
	}
	if err := emit(view); err != nil {
		return err
	}

	var events <-chan sse.Event
	if s.hub != nil {
		ch, cleanup := s.hub.Subscribe(id.JobseekerID)
		defer cleanup()
		events = ch
	}

	var tick <-chan time.Time
	if view.IsToday {
		ticker := time.NewTicker(s.cfg.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-tick:
			view, ok := s.Derive(id, date)
			if !ok {
				if view, err = s.View(ctx, id, date); err != nil {
					slog.Warn("time tracking view reload failed", "jobseeker_id", id.JobseekerID, "error", err)
					continue
				}
			}
			// The viewed day has passed; its figures are frozen from here on.
			if !view.IsToday {
				tick = nil
			}
			if err := emit(view); err != nil {
				return err
			}

		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			view, err := s.View(ctx, id, date)
			if err != nil {
				slog.Warn("time tracking view reload failed", "jobseeker_id", id.JobseekerID, "error", err)
				continue
			}
			if err := emit(view); err != nil {
				return err
			}
		}
	}
}
