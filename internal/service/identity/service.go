package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
)

// ActiveSessionFinder is the part of the session API the resolver reads.
type ActiveSessionFinder interface {
	GetActiveSession(ctx context.Context, id identity.Identity) (*timetracking.Session, error)
}

type ResolverImpl struct {
	cache     identity.CompanyCache
	sessions  ActiveSessionFinder
	employers identity.EmployerRepository
}

func NewResolver(cache identity.CompanyCache, sessions ActiveSessionFinder, employers identity.EmployerRepository) identity.Resolver {
	return &ResolverImpl{
		cache:     cache,
		sessions:  sessions,
		employers: employers,
	}
}

// lookups fetches each remote source at most once per resolution.
type lookups struct {
	r  *ResolverImpl
	id identity.Identity

	active       *timetracking.Session
	activeLoaded bool

	employers       []identity.Employer
	employersLoaded bool
}

func (l *lookups) activeSession(ctx context.Context) *timetracking.Session {
	if l.activeLoaded {
		return l.active
	}
	l.activeLoaded = true
	if l.r.sessions == nil {
		return nil
	}
	active, err := l.r.sessions.GetActiveSession(ctx, l.id)
	if err != nil {
		slog.Warn("identity: active session lookup failed", "jobseeker_id", l.id.JobseekerID, "error", err)
		return nil
	}
	l.active = active
	return active
}

func (l *lookups) hiringEmployers(ctx context.Context) []identity.Employer {
	if l.employersLoaded {
		return l.employers
	}
	l.employersLoaded = true
	if l.r.employers == nil {
		return nil
	}
	employers, err := l.r.employers.ListHiringEmployers(ctx, l.id)
	if err != nil {
		slog.Warn("identity: hiring employer lookup failed", "jobseeker_id", l.id.JobseekerID, "error", err)
		return nil
	}
	l.employers = employers
	return employers
}

// Resolve implements identity.Resolver.
func (r *ResolverImpl) Resolve(ctx context.Context, id identity.Identity) (identity.Resolved, error) {
	if err := id.Require(); err != nil {
		return identity.Resolved{}, err
	}

	l := &lookups{r: r, id: id}
	var resolved identity.Resolved

	resolved.CompanyID, resolved.CompanySource = r.resolveCompany(ctx, l)
	resolved.EmployeeID, resolved.EmployeeSource = r.resolveEmployee(ctx, l, resolved.CompanyID)

	return resolved, nil
}

// resolveCompany walks cache, active session, hiring lookup, then the cookie.
func (r *ResolverImpl) resolveCompany(ctx context.Context, l *lookups) (string, identity.Source) {
	if r.cache != nil {
		companyID, ok, err := r.cache.Get(ctx, l.id.JobseekerID)
		if err != nil {
			slog.Warn("identity: company cache read failed", "jobseeker_id", l.id.JobseekerID, "error", err)
		} else if ok && companyID != "" {
			return companyID, identity.SourceCache
		}
	}

	if active := l.activeSession(ctx); active != nil && active.CompanyID != "" {
		r.remember(ctx, l.id.JobseekerID, active.CompanyID)
		return active.CompanyID, identity.SourceSession
	}

	for _, e := range l.hiringEmployers(ctx) {
		if e.CompanyID != "" {
			r.remember(ctx, l.id.JobseekerID, e.CompanyID)
			return e.CompanyID, identity.SourceLookup
		}
	}

	if l.id.EmployerID != "" {
		return l.id.EmployerID, identity.SourceCookie
	}

	return "", identity.SourceNone
}

// resolveEmployee prefers the active session, then the hiring employer
// matching companyID, then any hiring employer.
func (r *ResolverImpl) resolveEmployee(ctx context.Context, l *lookups, companyID string) (string, identity.Source) {
	if active := l.activeSession(ctx); active != nil && active.EmployeeID != "" {
		return active.EmployeeID, identity.SourceSession
	}

	employers := l.hiringEmployers(ctx)
	for _, e := range employers {
		if e.EmployeeID != "" && companyID != "" && e.CompanyID == companyID {
			return e.EmployeeID, identity.SourceLookup
		}
	}
	for _, e := range employers {
		if e.EmployeeID != "" {
			return e.EmployeeID, identity.SourceLookup
		}
	}

	return "", identity.SourceNone
}

func (r *ResolverImpl) remember(ctx context.Context, jobseekerID, companyID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Put(ctx, jobseekerID, companyID); err != nil {
		slog.Warn("identity: company cache write failed", "jobseeker_id", jobseekerID, "error", err)
	}
}

// IsHired implements identity.Resolver.
func (r *ResolverImpl) IsHired(ctx context.Context, id identity.Identity) (bool, error) {
	if err := id.Require(); err != nil {
		return false, err
	}
	hired, err := r.employers.IsHired(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check hiring status: %w", err)
	}
	return hired, nil
}
