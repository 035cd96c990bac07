package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

type cacheEntry struct {
	companyID string
	cachedAt  time.Time
}

// companyCacheImpl keeps resolved company ids for the life of the process.
type companyCacheImpl struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCompanyCache() identity.CompanyCache {
	return newCompanyCache(time.Now)
}

func newCompanyCache(now func() time.Time) *companyCacheImpl {
	return &companyCacheImpl{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

// Get implements identity.CompanyCache.
func (c *companyCacheImpl) Get(ctx context.Context, jobseekerID string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[jobseekerID]
	return e.companyID, ok, nil
}

// Put implements identity.CompanyCache.
func (c *companyCacheImpl) Put(ctx context.Context, jobseekerID string, companyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[jobseekerID] = cacheEntry{companyID: companyID, cachedAt: c.now()}
	return nil
}

// PurgeOlderThan implements identity.CompanyCache.
func (c *companyCacheImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int64
	for id, e := range c.entries {
		if e.cachedAt.Before(cutoff) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed, nil
}
