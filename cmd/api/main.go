// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the sign-in HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (optional, remembered identity only).
//  4. Register Prometheus collectors.
//  5. Build the simulated authentication backend.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/utils/clock"

	"github.com/taibuivan/signin/internal/api"
	"github.com/taibuivan/signin/internal/login"
	"github.com/taibuivan/signin/internal/platform/config"
	"github.com/taibuivan/signin/internal/platform/constants"
	"github.com/taibuivan/signin/internal/platform/i18n"
	"github.com/taibuivan/signin/internal/platform/metrics"
	redisstore "github.com/taibuivan/signin/internal/platform/redis"
	"github.com/taibuivan/signin/internal/remember"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "signin"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "signin"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.UsesRedis()),
	)

	// Root context lives until shutdown; background loops stop with it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	// Without REDIS_URL the remembered identity lives in process memory.
	var primary remember.Store
	health := api.HealthDependencies{}

	if cfg.UsesRedis() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		primary = remember.NewRedisStore(rdb, cfg.RememberKey)
		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	store := remember.NewFallbackStore(primary, log)
	health.RememberDegraded = store.Degraded

	// ── 4. Metrics ────────────────────────────────────────────────────────
	recorder, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	must(log, err, "register login metrics")

	httpMetrics, err := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	must(log, err, "register http metrics")

	// ── 5. Authentication Backend ─────────────────────────────────────────
	authService := login.NewMockService(login.FixtureAccounts(), login.ServiceConfig{
		Latency: login.Latency{
			Login:  cfg.LoginLatency,
			Social: cfg.SocialLatency,
			Reset:  cfg.ResetLatency,
		},
		Clock:  clock.RealClock{},
		Logger: log,
	})

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	loginHandler := login.NewHandler(login.HandlerConfig{
		Auth:    authService,
		Store:   store,
		Metrics: recorder,
		Clock:   clock.RealClock{},
		Timings: login.Timings{
			RedirectDelay:       cfg.RedirectDelay,
			SignupRedirectDelay: cfg.SignupRedirectDelay,
			ValidationDebounce:  cfg.ValidationDebounce,
		},
		NotificationTTL: cfg.NotificationTTL,
		SessionTTL:      cfg.SessionTTL,
		DefaultLanguage: i18n.Parse(cfg.DefaultLanguage),
		Logger:          log,
	})

	sessionsDone := make(chan struct{})
	go func() {
		defer close(sessionsDone)
		loginHandler.Run(rootCtx)
	}()

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Metrics:     metrics.Handler(prometheus.DefaultGatherer),
		HTTPMetrics: httpMetrics,
		Login:       loginHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	shutdownErr := server.Shutdown(shutdownTimeout)

	// Pending redirects and notification timers are dropped with their sessions.
	log.Info("closing login sessions", slog.Int("open", loginHandler.Sessions().Len()))
	rootCancel()
	<-sessionsDone

	if shutdownErr != nil {
		log.Error("shutdown error", slog.Any("error", shutdownErr))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
