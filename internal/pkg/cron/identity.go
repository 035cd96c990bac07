package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

type IdentityJobs struct {
	cache    identity.CompanyCache
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewIdentityJobs(cache identity.CompanyCache, ttl, interval time.Duration) *IdentityJobs {
	return &IdentityJobs{
		cache:    cache,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

func (j *IdentityJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_identity_cache", j.interval, j.PurgeIdentityCache)
}

// PurgeIdentityCache drops company ids cached longer than the TTL so that a
// seeker who changes employer is resolved again.
func (j *IdentityJobs) PurgeIdentityCache(ctx context.Context) error {
	cutoff := j.now().Add(-j.ttl)

	removed, err := j.cache.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge identity cache: %w", err)
	}
	if removed > 0 {
		slog.Info("Cron: purged identity cache entries", "removed", removed, "cutoff", cutoff)
	}
	return nil
}
