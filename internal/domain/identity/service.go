package identity

import "context"

// Resolver consolidates the company/employee id fallback chains.
type Resolver interface {
	// Resolve is best-effort: lookup failures leave fields empty instead of failing.
	Resolve(ctx context.Context, id Identity) (Resolved, error)

	// IsHired gates whether the time tracker is available at all.
	IsHired(ctx context.Context, id Identity) (bool, error)
}
