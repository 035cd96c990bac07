package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/seeker-tracker/internal/config"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/handler/http/middleware"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(cfg *config.Config, JWTService jwt.Service, trackerHandler TimeTrackingHandler, leaveHandler LeaveHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "seeker-tracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	origins := cfg.App.FrontendURLs
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1/tracker", func(r chi.Router) {
		r.Use(middleware.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
		r.Use(middleware.RequireRole(identity.RoleJobseeker, identity.RoleStudent))

		r.Get("/hired", trackerHandler.Hired)
		r.Get("/identity", trackerHandler.Identity)

		// SSE
		r.Get("/stream", trackerHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentEncoding("application/json"))

			r.Get("/view", trackerHandler.View)
			r.Post("/clock-in", trackerHandler.ClockIn)
			r.Route("/breaks", func(r chi.Router) {
				r.Post("/start", trackerHandler.StartBreak)
				r.Post("/end", trackerHandler.EndBreak)
			})
			r.Post("/clock-out", trackerHandler.ClockOut)

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.GetMyRequests)
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/days", leaveHandler.ComputeDays)
			})
		})
	})
	return r
}
