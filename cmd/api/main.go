// Copyright (c) 2026 Vendora Commerce. All rights reserved.

// Command api is the entry point for the Vendora admin API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
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

	"github.com/vendora/vendora/internal/api"
	"github.com/vendora/vendora/internal/audit"
	"github.com/vendora/vendora/internal/catalog/banner"
	"github.com/vendora/vendora/internal/catalog/brand"
	"github.com/vendora/vendora/internal/catalog/currency"
	"github.com/vendora/vendora/internal/catalog/flashsale"
	"github.com/vendora/vendora/internal/catalog/theme"
	"github.com/vendora/vendora/internal/geo/city"
	"github.com/vendora/vendora/internal/geo/country"
	"github.com/vendora/vendora/internal/geo/timezone"
	"github.com/vendora/vendora/internal/identity/auth"
	"github.com/vendora/vendora/internal/platform/config"
	"github.com/vendora/vendora/internal/platform/constants"
	"github.com/vendora/vendora/internal/platform/migration"
	pgstore "github.com/vendora/vendora/internal/platform/postgres"
	redisstore "github.com/vendora/vendora/internal/platform/redis"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/settings/colorsetting"
	"github.com/vendora/vendora/internal/settings/fontsetting"
	"github.com/vendora/vendora/internal/tenants/member"
	"github.com/vendora/vendora/internal/tenants/tenant"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	auditRepository := audit.NewPostgresRepository(pool)
	auditRecorder := audit.NewRecorder(auditRepository, log)
	auditHandler := audit.NewHandler(audit.NewService(auditRepository, log))

	tenantRepository := tenant.NewPostgresRepository(pool)
	tenantHandler := tenant.NewHandler(tenant.NewService(tenantRepository, log))

	memberRepository := member.NewPostgresRepository(pool)
	memberHandler := member.NewHandler(member.NewService(memberRepository, auditRecorder, log))

	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(memberRepository, tenantRepository, sessionRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	brandHandler := brand.NewHandler(brand.NewService(brand.NewPostgresRepository(pool), auditRecorder, log))
	themeHandler := theme.NewHandler(theme.NewService(theme.NewPostgresRepository(pool), auditRecorder, log))
	bannerHandler := banner.NewHandler(banner.NewService(banner.NewPostgresRepository(pool), auditRecorder, log))
	flashSaleHandler := flashsale.NewHandler(flashsale.NewService(flashsale.NewPostgresRepository(pool), auditRecorder, log))

	colorSettingHandler := colorsetting.NewHandler(
		colorsetting.NewService(colorsetting.NewPostgresRepository(pool), auditRecorder, log))
	fontSettingHandler := fontsetting.NewHandler(
		fontsetting.NewService(fontsetting.NewPostgresRepository(pool), auditRecorder, log))

	currencyHandler := currency.NewHandler(currency.NewService(currency.NewPostgresRepository(pool), log))
	countryHandler := country.NewHandler(country.NewService(country.NewPostgresRepository(pool), log))
	cityHandler := city.NewHandler(city.NewService(city.NewPostgresRepository(pool), log))
	timezoneHandler := timezone.NewHandler(timezone.NewService(timezone.NewPostgresRepository(pool), log))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,

		Auth: authHandler,

		Brand:     brandHandler,
		Theme:     themeHandler,
		Banner:    bannerHandler,
		FlashSale: flashSaleHandler,

		ColorSetting: colorSettingHandler,
		FontSetting:  fontSettingHandler,

		Currency: currencyHandler,
		Country:  countryHandler,
		City:     cityHandler,
		Timezone: timezoneHandler,

		Tenant: tenantHandler,
		Member: memberHandler,

		Audit: auditHandler,
	}

	// The app context outlives startup: it keeps background middleware
	// routines (rate-limiter cleanup) alive until the process exits.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
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
