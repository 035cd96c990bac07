package timetracking

import (
	"context"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

// SessionRepository is the backend's time tracking API.
// The backend is the only source of truth; nothing here caches.
type SessionRepository interface {
	// GetActiveSession returns the open session, or nil when off the clock.
	GetActiveSession(ctx context.Context, id identity.Identity) (*Session, error)

	// ListSessions returns every session recorded on date.
	ListSessions(ctx context.Context, id identity.Identity, date time.Time) ([]Session, error)

	ClockIn(ctx context.Context, id identity.Identity, req ClockInRequest) error
	StartBreak(ctx context.Context, id identity.Identity, breakType BreakType) error
	EndBreak(ctx context.Context, id identity.Identity) error

	// ClockOut closes the open session; sessionID is sent when known.
	ClockOut(ctx context.Context, id identity.Identity, sessionID *int64) error
}
