package identity

import (
	"context"
	"time"
)

// CompanyCache remembers the company id resolved for a job seeker.
type CompanyCache interface {
	// Get returns the cached company id; ok is false on a miss.
	Get(ctx context.Context, jobseekerID string) (companyID string, ok bool, err error)

	Put(ctx context.Context, jobseekerID string, companyID string) error

	// PurgeOlderThan removes entries cached before cutoff and returns how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EmployerRepository reads hiring relationships from the backend.
type EmployerRepository interface {
	ListHiringEmployers(ctx context.Context, id Identity) ([]Employer, error)
	IsHired(ctx context.Context, id Identity) (bool, error)
}
