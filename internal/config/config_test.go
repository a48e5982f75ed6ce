package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net")

	cfg, err := LoadFiles()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.JiraBaseURL != "https://example.atlassian.net" {
		t.Errorf("expected JiraBaseURL to be set, got %s", cfg.JiraBaseURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// Ensure required vars are unset
	t.Setenv("JIRA_BASE_URL", "")
	os.Unsetenv("JIRA_BASE_URL")

	_, err := LoadFiles()
	if err == nil {
		t.Fatal("expected error for missing JIRA_BASE_URL, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net")

	cfg, err := LoadFiles()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if cfg.JiraAPIVersion != "2" {
		t.Errorf("expected default JiraAPIVersion '2', got %s", cfg.JiraAPIVersion)
	}

	if cfg.JiraJQL != "timespent > 0" {
		t.Errorf("expected default JiraJQL, got %s", cfg.JiraJQL)
	}

	if cfg.JiraTimeout != 60*time.Second {
		t.Errorf("expected default JiraTimeout 60s, got %s", cfg.JiraTimeout)
	}

	if cfg.DatabaseURL != "" || cfg.RedisURL != "" {
		t.Error("expected database and redis to be optional")
	}
}

func TestLoadFiles_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "JIRA_BASE_URL=https://dotenv.atlassian.net\nJIRA_USERNAME=dotenv-user\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	// Existing environment wins over the file
	t.Setenv("JIRA_USERNAME", "env-user")
	t.Setenv("JIRA_BASE_URL", "")
	os.Unsetenv("JIRA_BASE_URL")

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("JIRA_BASE_URL") })

	if cfg.JiraBaseURL != "https://dotenv.atlassian.net" {
		t.Errorf("expected JiraBaseURL from .env, got %s", cfg.JiraBaseURL)
	}
	if cfg.JiraUsername != "env-user" {
		t.Errorf("expected JiraUsername from environment, got %s", cfg.JiraUsername)
	}
}

func TestLoadFiles_MissingFileIgnored(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net")

	if _, err := LoadFiles(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net")
	t.Setenv("RATE_LIMIT_REPORT_PER_MINUTE", "0")

	if _, err := LoadFiles(); err == nil {
		t.Fatal("expected error for zero rate limit")
	}
}

func TestConfig_HasJiraCredentials(t *testing.T) {
	cfg := &Config{JiraUsername: "user"}
	if cfg.HasJiraCredentials() {
		t.Error("expected HasJiraCredentials to be false without token")
	}

	cfg.JiraToken = "token"
	if !cfg.HasJiraCredentials() {
		t.Error("expected HasJiraCredentials to be true")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example.com, ,https://b.example.com "}

	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins %v", origins)
	}

	if (&Config{}).GetCORSAllowedOrigins() != nil {
		t.Error("expected nil origins when unset")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}

	cfg.AppEnv = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction to return false")
	}
}
