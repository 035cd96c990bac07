package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/cmlabs-hris/seeker-tracker/internal/config"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/cron"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/validator"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/local"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/remote"
	identityService "github.com/cmlabs-hris/seeker-tracker/internal/service/identity"
	leaveService "github.com/cmlabs-hris/seeker-tracker/internal/service/leave"
	timeTrackingService "github.com/cmlabs-hris/seeker-tracker/internal/service/timetracking"
)

// app holds what every command needs, opened once per invocation.
type app struct {
	cfg      *config.Config
	loc      *time.Location
	db       *gorm.DB
	profiles *local.ProfileStore

	resolver identity.Resolver
	tracking timetracking.TimeTrackingService
	leaves   leave.LeaveService
}

func (a *app) open(ctx context.Context) error {
	if a.db != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := local.Open(cfg.DatabasePath(local.DatabaseFile))
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	sessionRepo := remote.NewSessionRepository(client, loc)
	companyCache := local.NewCompanyCache(db)

	// The CLI runs too briefly for the ticker; housekeeping jobs run once on start.
	scheduler := cron.NewScheduler(ctx)
	cron.NewIdentityJobs(companyCache, cfg.IdentityCache.TTL, cfg.IdentityCache.PurgeInterval).RegisterJobs(scheduler)
	if err := scheduler.RunOnce(ctx); err != nil {
		slog.Warn("identity cache purge failed", "error", err)
	}
	scheduler.Stop()

	a.cfg = cfg
	a.loc = loc
	a.db = db
	a.profiles = local.NewProfileStore(db)
	a.resolver = identityService.NewResolver(companyCache, sessionRepo, remote.NewEmployerRepository(client))
	a.tracking = timeTrackingService.NewTimeTrackingService(
		sessionRepo,
		timeTrackingService.NewStore(sessionRepo, loc),
		nil,
		timeTrackingService.Config{Location: loc},
	)
	a.leaves = leaveService.NewLeaveService(remote.NewLeaveRepository(client, loc), a.resolver, nil, loc)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := local.Close(a.db)
	a.db = nil
	return err
}

// identity returns the logged-in seeker.
func (a *app) identity(ctx context.Context) (identity.Identity, error) {
	profile, ok, err := a.profiles.Load(ctx)
	if err != nil {
		return identity.Identity{}, err
	}
	if !ok {
		return identity.Identity{}, identity.ErrMissingIdentity
	}
	return profile.Identity(), nil
}

func (a *app) deviceInfo(ctx context.Context) string {
	info := "seeker-tracker/" + version
	if profile, ok, err := a.profiles.Load(ctx); err == nil && ok && profile.DeviceID != "" {
		info += " (" + profile.DeviceID + ")"
	}
	return info
}

// date parses a --date flag value, defaulting to today.
func (a *app) date(raw string) (time.Time, error) {
	if validator.IsEmpty(raw) {
		return a.tracking.Today(), nil
	}
	date, ok := validator.IsValidDateIn(raw, a.loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}
