package timetracking

import (
	"context"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

// TimeTrackingService mediates every clock mutation and derives views.
type TimeTrackingService interface {
	// View reloads the store for date and derives the view.
	View(ctx context.Context, id identity.Identity, date time.Time) (View, error)

	// Derive recomputes a view from cached state without a backend round trip.
	Derive(id identity.Identity, date time.Time) (View, bool)

	ClockIn(ctx context.Context, id identity.Identity, req ClockInRequest) (View, error)
	StartBreak(ctx context.Context, id identity.Identity, req StartBreakRequest) (View, error)
	EndBreak(ctx context.Context, id identity.Identity) (View, error)
	ClockOut(ctx context.Context, id identity.Identity) (View, error)

	// Watch emits a view immediately, then once per second while date is
	// today, and again whenever the seeker's sessions change. It returns
	// when ctx is done or emit fails.
	Watch(ctx context.Context, id identity.Identity, date time.Time, emit func(View) error) error

	// Today returns midnight of the current day.
	Today() time.Time
}
