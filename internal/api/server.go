// Copyright (c) 2026 Vendora Commerce. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

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
	"github.com/vendora/vendora/internal/platform/middleware"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/settings/colorsetting"
	"github.com/vendora/vendora/internal/settings/fontsetting"
	"github.com/vendora/vendora/internal/tenants/member"
	"github.com/vendora/vendora/internal/tenants/tenant"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (login, refresh, logout).
	Auth *auth.Handler

	// Catalog surface of one store.
	Brand     *brand.Handler
	Theme     *theme.Handler
	Banner    *banner.Handler
	FlashSale *flashsale.Handler

	// Theme-nested configuration.
	ColorSetting *colorsetting.Handler
	FontSetting  *fontsetting.Handler

	// Platform-wide reference data.
	Currency *currency.Handler
	Country  *country.Handler
	City     *city.Handler
	Timezone *timezone.Handler

	// Tenancy administration.
	Tenant *tenant.Handler
	Member *member.Handler

	// Audit exposes the change log of the tenant.
	Audit *audit.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.ResolveTenant())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Global reference data: any authenticated admin, no tenant scope.
		api.Group(func(g chi.Router) {
			g.Use(middleware.RequireAuth)
			g.Mount("/currencies", h.Currency.Routes())
			g.Mount("/countries", h.Country.Routes())
			g.Mount("/cities", h.City.Routes())
			g.Mount("/timezones", h.Timezone.Routes())
		})

		// Tenant-scoped resources.
		api.Group(func(g chi.Router) {
			g.Use(middleware.RequireAuth)
			g.Use(middleware.RequireTenant)
			g.Mount("/brands", h.Brand.Routes())
			g.Mount("/themes", h.Theme.Routes())
			g.Mount("/themes/{themeID}/color-settings", h.ColorSetting.Routes())
			g.Mount("/themes/{themeID}/font-settings", h.FontSetting.Routes())
			g.Mount("/banners", h.Banner.Routes())
			g.Mount("/flash-sales", h.FlashSale.Routes())
			g.Route("/audit-log", func(r chi.Router) {
				h.Audit.RegisterRoutes(r)
			})
		})

		// Member management requires admin within the tenant.
		api.Group(func(g chi.Router) {
			g.Use(middleware.RequireRole(sec.RoleAdmin))
			g.Use(middleware.RequireTenant)
			g.Mount("/members", h.Member.Routes())
		})

		// The tenant registry is platform tooling, owners only.
		api.Group(func(g chi.Router) {
			g.Use(middleware.RequireRole(sec.RoleOwner))
			g.Mount("/tenants", h.Tenant.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
