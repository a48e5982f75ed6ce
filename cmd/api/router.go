package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jirareport/worklog-report/internal/config"
	"github.com/jirareport/worklog-report/internal/handler"
	"github.com/jirareport/worklog-report/internal/middleware"
)

// routerDeps holds everything setupRouter mounts. verifier and limiter
// are nil when API key auth or rate limiting is not configured.
type routerDeps struct {
	handler  *handler.Handler
	health   *handler.HealthHandler
	reports  *handler.ReportHandler
	runs     *handler.RunsHandler
	metrics  *handler.MetricsHandler
	verifier middleware.KeyVerifier
	limiter  middleware.IPRateLimiter
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps *routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Unauthenticated endpoints
	r.Get("/", deps.handler.Welcome)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Report generation; auth runs before request validation
	var reportMiddleware []func(http.Handler) http.Handler
	if deps.verifier != nil {
		reportMiddleware = append(reportMiddleware, middleware.APIKeyAuth(middleware.AuthConfig{
			Logger:   logger,
			Verifier: deps.verifier,
		}))
	}
	reportMiddleware = append(reportMiddleware, middleware.RequireJSON, middleware.RateLimitReport(middleware.RateLimitConfig{
		Logger:        logger,
		Limiter:       deps.limiter,
		Enabled:       cfg.RateLimitReportEnabled,
		RatePerMinute: cfg.RateLimitReportPerMinute,
		Burst:         cfg.RateLimitReportBurst,
	}))
	r.With(reportMiddleware...).Post("/api/generate-report", deps.reports.Generate)

	// Report run log
	r.Route("/api/v1/reports", func(r chi.Router) {
		if deps.verifier != nil {
			r.Use(middleware.APIKeyAuth(middleware.AuthConfig{
				Logger:   logger,
				Verifier: deps.verifier,
			}))
		}
		r.Get("/runs", deps.runs.List)
		r.Get("/runs/{id}", deps.runs.Get)
	})

	// 404 and 405 handlers
	r.NotFound(deps.handler.NotFound)
	r.MethodNotAllowed(deps.handler.MethodNotAllowed)

	return r
}
