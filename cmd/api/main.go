// Package main is the entry point for the Travel Planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdelgad/travel-planner/internal/catalog"
	"github.com/jdelgad/travel-planner/internal/config"
	"github.com/jdelgad/travel-planner/internal/handler"
	"github.com/jdelgad/travel-planner/internal/middleware"
	"github.com/jdelgad/travel-planner/internal/repo"
	"github.com/jdelgad/travel-planner/internal/service"
	"github.com/jdelgad/travel-planner/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Repos, services, handlers ---------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	activityRepo := repo.NewActivityRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	destinationRepo := repo.NewDestinationRepo(pool)

	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret))
	tripSvc := service.NewTripService(tripRepo)
	activitySvc := service.NewActivityService(tripRepo, activityRepo)
	itinerarySvc := service.NewItineraryService(tripRepo, activityRepo)
	exportSvc := service.NewExportService(tripRepo, activityRepo)
	catalogStore := catalog.NewStore(service.NewDestinationService(destinationRepo))

	srv := handler.NewServer(authSvc, tripSvc, activitySvc, itinerarySvc, exportSvc, catalogStore, spec.OpenAPI)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body-size limit. The JWT authenticator guards only the routes
	// that need a user, wired inside srv.Routes.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", srv.Routes(middleware.NewAuthenticator(authSvc)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout is generous because /api/destinations/events holds the
	// response open for the life of the subscription.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
