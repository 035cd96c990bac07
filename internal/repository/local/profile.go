package local

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
)

const profileRowID = 1

// Profile is the signed-in job seeker of this machine, kept between runs.
type Profile struct {
	ID          uint   `gorm:"primaryKey"`
	JobseekerID string `gorm:"not null"`
	EmployerID  string
	Role        string
	Token       string
	DeviceID    string
	UpdatedAt   time.Time
}

func (p Profile) Identity() identity.Identity {
	role := identity.Role(p.Role)
	if !role.Valid() {
		role = identity.RoleJobseeker
	}
	return identity.Identity{
		JobseekerID: p.JobseekerID,
		EmployerID:  p.EmployerID,
		Role:        role,
		Token:       p.Token,
	}
}

type ProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Load returns the stored profile; ok is false when nobody is logged in.
func (s *ProfileStore) Load(ctx context.Context) (Profile, bool, error) {
	var p Profile
	err := s.db.WithContext(ctx).First(&p, profileRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Profile{}, false, nil
		}
		return Profile{}, false, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, p.JobseekerID != "", nil
}

// Save replaces the stored profile. The device id survives re-logins.
func (s *ProfileStore) Save(ctx context.Context, p Profile) (Profile, error) {
	existing, _, err := s.Load(ctx)
	if err != nil {
		return Profile{}, err
	}

	p.ID = profileRowID
	if p.DeviceID == "" {
		p.DeviceID = existing.DeviceID
	}
	if p.DeviceID == "" {
		p.DeviceID = uuid.NewString()
	}

	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// Clear logs out by wiping credentials while keeping the device id.
func (s *ProfileStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Model(&Profile{}).
		Where("id = ?", profileRowID).
		Updates(map[string]interface{}{
			"jobseeker_id": "",
			"employer_id":  "",
			"role":         "",
			"token":        "",
		}).Error
	if err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}
