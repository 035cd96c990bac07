package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyCacheImpl struct {
	db *database.DB
}

// NewCompanyCache returns a company cache shared by every gateway replica.
func NewCompanyCache(db *database.DB) identity.CompanyCache {
	return &companyCacheImpl{db: db}
}

// EnsureSchema creates the cache table when missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		statements := []string{
			`CREATE TABLE IF NOT EXISTS identity_company_cache (
				jobseeker_id TEXT PRIMARY KEY,
				company_id   TEXT NOT NULL,
				cached_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_identity_company_cache_cached_at
				ON identity_company_cache (cached_at)`,
		}
		for _, stmt := range statements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure identity cache schema: %w", err)
			}
		}
		return nil
	})
}

// Get implements identity.CompanyCache.
func (c *companyCacheImpl) Get(ctx context.Context, jobseekerID string) (string, bool, error) {
	q := GetQuerier(ctx, c.db)

	var companyID string
	err := q.QueryRow(ctx, `
		SELECT company_id
		FROM identity_company_cache
		WHERE jobseeker_id = $1
	`, jobseekerID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read company cache: %w", err)
	}
	return companyID, true, nil
}

// Put implements identity.CompanyCache.
func (c *companyCacheImpl) Put(ctx context.Context, jobseekerID string, companyID string) error {
	q := GetQuerier(ctx, c.db)

	_, err := q.Exec(ctx, `
		INSERT INTO identity_company_cache (jobseeker_id, company_id, cached_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (jobseeker_id)
		DO UPDATE SET company_id = EXCLUDED.company_id, cached_at = EXCLUDED.cached_at
	`, jobseekerID, companyID)
	if err != nil {
		return fmt.Errorf("failed to write company cache: %w", err)
	}
	return nil
}

// PurgeOlderThan implements identity.CompanyCache.
func (c *companyCacheImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `DELETE FROM identity_company_cache WHERE cached_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge company cache: %w", err)
	}
	return tag.RowsAffected(), nil
}
