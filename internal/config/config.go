// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. Report generation waits on Jira, so writes get more room.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`

	// Jira upstream
	JiraBaseURL    string        `env:"JIRA_BASE_URL,required"`
	JiraUsername   string        `env:"JIRA_USERNAME"`
	JiraToken      string        `env:"JIRA_TOKEN"`
	JiraAPIVersion string        `env:"JIRA_API_VERSION" envDefault:"2"`
	JiraJQL        string        `env:"JIRA_JQL" envDefault:"timespent > 0"`
	JiraFields     string        `env:"JIRA_FIELDS" envDefault:"worklog,summary,assignee,project,key"`
	JiraTimeout    time.Duration `env:"JIRA_TIMEOUT" envDefault:"60s"`

	// Optional directory receiving a copy of every generated report
	ReportArchiveDir string `env:"REPORT_ARCHIVE_DIR"`

	// Optional argon2id hash of the API key guarding report generation
	ReportAPIKeyHash string `env:"REPORT_API_KEY_HASH"`

	// Database (PostgreSQL), optional: enables the report run log
	DatabaseURL string `env:"DATABASE_URL"`

	// Cache (Redis), optional: enables rate limiting
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting
	RateLimitReportEnabled   bool `env:"RATE_LIMIT_REPORT_ENABLED" envDefault:"true"`
	RateLimitReportPerMinute int  `env:"RATE_LIMIT_REPORT_PER_MINUTE" envDefault:"10"`
	RateLimitReportBurst     int  `env:"RATE_LIMIT_REPORT_BURST" envDefault:"5"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HasJiraCredentials reports whether both Jira username and token are set.
func (c *Config) HasJiraCredentials() bool {
	return c.JiraUsername != "" && c.JiraToken != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load reads an optional .env file, parses environment variables and returns a Config.
// Variables already present in the environment win over the file.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv file paths. Missing files are ignored.
func LoadFiles(files ...string) (*Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.RateLimitReportPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REPORT_PER_MINUTE must be positive, got %d", cfg.RateLimitReportPerMinute)
	}
	return cfg, nil
}
