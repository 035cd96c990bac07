package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/seeker-tracker/internal/config"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	appHTTP "github.com/cmlabs-hris/seeker-tracker/internal/handler/http"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/cron"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/sse"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/local"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/memory"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/postgresql"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/remote"
	identityService "github.com/cmlabs-hris/seeker-tracker/internal/service/identity"
	leaveService "github.com/cmlabs-hris/seeker-tracker/internal/service/leave"
	timeTrackingService "github.com/cmlabs-hris/seeker-tracker/internal/service/timetracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.ValidateGateway(); err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var companyCache identity.CompanyCache
	switch cfg.IdentityCache.Driver {
	case config.CacheDriverMemory:
		companyCache = memory.NewCompanyCache()
	case config.CacheDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database:", err)
		}
		defer db.Close()
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			log.Fatal("Failed to prepare identity cache schema:", err)
		}
		companyCache = postgresql.NewCompanyCache(db)
	case config.CacheDriverSQLite:
		db, err := local.Open(cfg.DatabasePath(local.DatabaseFile))
		if err != nil {
			log.Fatal("Failed to open identity cache database:", err)
		}
		defer local.Close(db)
		companyCache = local.NewCompanyCache(db)
	default:
		log.Fatal("Unsupported identity cache: ", cfg.IdentityCache.Driver)
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	sessionRepo := remote.NewSessionRepository(client, loc)
	leaveRepo := remote.NewLeaveRepository(client, loc)
	employerRepo := remote.NewEmployerRepository(client)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	resolver := identityService.NewResolver(companyCache, sessionRepo, employerRepo)
	trackingService := timeTrackingService.NewTimeTrackingService(
		sessionRepo,
		timeTrackingService.NewStore(sessionRepo, loc),
		hub,
		timeTrackingService.Config{Location: loc},
	)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, resolver, hub, loc)

	scheduler := cron.NewScheduler(ctx)
	cron.NewIdentityJobs(companyCache, cfg.IdentityCache.TTL, cfg.IdentityCache.PurgeInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	trackerHandler := appHTTP.NewTimeTrackingHandler(trackingService, resolver, loc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, loc)

	router := appHTTP.NewRouter(cfg, JWTService, trackerHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Println("Server error:", err)
	}
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
