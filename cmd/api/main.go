// Package main is the entrypoint for the worklog report API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/jirareport/worklog-report/internal/auth"
	"github.com/jirareport/worklog-report/internal/cache"
	"github.com/jirareport/worklog-report/internal/config"
	"github.com/jirareport/worklog-report/internal/handler"
	"github.com/jirareport/worklog-report/internal/jira"
	"github.com/jirareport/worklog-report/internal/metrics"
	"github.com/jirareport/worklog-report/internal/middleware"
	"github.com/jirareport/worklog-report/internal/repository"
	"github.com/jirareport/worklog-report/internal/server"
	"github.com/jirareport/worklog-report/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if !cfg.HasJiraCredentials() {
		logger.Warn("JIRA_USERNAME or JIRA_TOKEN is empty, Jira will likely reject report searches")
	}
	if cfg.IsProduction() && cfg.ReportAPIKeyHash == "" {
		logger.Warn("REPORT_API_KEY_HASH is empty, report generation is open to anyone who can reach the service")
	}

	jiraClient := jira.NewClient(jira.Config{
		BaseURL:    cfg.JiraBaseURL,
		Username:   cfg.JiraUsername,
		Token:      cfg.JiraToken,
		APIVersion: cfg.JiraAPIVersion,
		JQL:        cfg.JiraJQL,
		Fields:     cfg.JiraFields,
		Expand:     "worklog",
		Timeout:    cfg.JiraTimeout,
	})

	srvShutdown := make([]namedShutdown, 0, 2)

	// Optional database for the report run log
	var repo *repository.Repository
	if cfg.DatabaseURL != "" {
		repo, err = repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("failed to apply migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
			os.Exit(1)
		}
		srvShutdown = append(srvShutdown, namedShutdown{"database", func(context.Context) error {
			repo.Close()
			return nil
		}})
		logger.Info("connected to database")
	}

	// Optional cache for rate limiting and verified keys
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		srvShutdown = append(srvShutdown, namedShutdown{"redis", func(context.Context) error {
			return cacheClient.Close()
		}})
		logger.Info("connected to Redis")
	}

	deps, err := buildDeps(cfg, logger, jiraClient, repo, cacheClient)
	if err != nil {
		logger.Error("failed to initialize API", "error", err)
		os.Exit(1)
	}

	r := setupRouter(deps, cfg, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	for _, s := range srvShutdown {
		srv.OnShutdown(s.name, s.fn)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"jira_search_url", jiraClient.SearchURL(),
		"run_log", repo != nil,
		"rate_limit", cacheClient != nil && cfg.RateLimitReportEnabled,
		"api_key_auth", cfg.ReportAPIKeyHash != "",
		"archive_dir", cfg.ReportArchiveDir,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

type namedShutdown struct {
	name string
	fn   server.ShutdownFunc
}

// buildDeps wires services and handlers. repo and cacheClient may be nil;
// the interfaces handed to handlers then stay nil as well.
func buildDeps(cfg *config.Config, logger *slog.Logger, searcher service.Searcher, repo *repository.Repository, cacheClient *cache.Cache) (*routerDeps, error) {
	var (
		dbCheck    handler.HealthChecker
		cacheCheck handler.HealthChecker
		runs       service.RunRecorder
		runLister  handler.RunLister
		verified   auth.VerifiedCache
		limiter    middleware.IPRateLimiter
	)
	if repo != nil {
		dbCheck, runs, runLister = repo, repo, repo
	}
	if cacheClient != nil {
		cacheCheck, verified, limiter = cacheClient, cacheClient, cacheClient
	}

	metricsRecorder := metrics.NewInMemory()

	reportService := service.NewReportService(searcher, logger, service.ReportServiceOptions{
		Runs:       runs,
		Metrics:    metricsRecorder,
		ArchiveDir: cfg.ReportArchiveDir,
	})

	deps := &routerDeps{
		handler: handler.New(),
		health:  handler.NewHealthHandler(dbCheck, cacheCheck),
		reports: handler.NewReportHandler(reportService, logger),
		runs:    handler.NewRunsHandler(runLister, logger),
		metrics: handler.NewMetricsHandler(metricsRecorder),
		limiter: limiter,
	}

	if cfg.ReportAPIKeyHash != "" {
		verifier, err := auth.NewVerifier(cfg.ReportAPIKeyHash, verified)
		if err != nil {
			return nil, err
		}
		deps.verifier = verifier
	}

	return deps, nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
