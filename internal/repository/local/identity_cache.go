package local

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

// CompanyCacheEntry is one remembered company id.
type CompanyCacheEntry struct {
	JobseekerID string    `gorm:"primaryKey"`
	CompanyID   string    `gorm:"not null"`
	CachedAt    time.Time `gorm:"index"`
}

type companyCacheImpl struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCompanyCache(db *gorm.DB) identity.CompanyCache {
	return &companyCacheImpl{db: db, now: time.Now}
}

// Get implements identity.CompanyCache.
func (c *companyCacheImpl) Get(ctx context.Context, jobseekerID string) (string, bool, error) {
	var entry CompanyCacheEntry
	err := c.db.WithContext(ctx).Where("jobseeker_id = ?", jobseekerID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read company cache: %w", err)
	}
	return entry.CompanyID, true, nil
}

// Put implements identity.CompanyCache.
func (c *companyCacheImpl) Put(ctx context.Context, jobseekerID string, companyID string) error {
	entry := CompanyCacheEntry{
		JobseekerID: jobseekerID,
		CompanyID:   companyID,
		CachedAt:    c.now(),
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "jobseeker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_id", "cached_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write company cache: %w", err)
	}
	return nil
}

// PurgeOlderThan implements identity.CompanyCache.
func (c *companyCacheImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := c.db.WithContext(ctx).Where("cached_at < ?", cutoff).Delete(&CompanyCacheEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge company cache: %w", result.Error)
	}
	return result.RowsAffected, nil
}
