package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockHealthChecker is a mock implementation of HealthChecker for testing.
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	// Liveness never consults dependencies, even broken ones.
	h := NewHealthHandler(&mockHealthChecker{err: errors.New("down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Status != "ok" || response.Checks != nil {
		t.Errorf("unexpected liveness response %+v", response)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name         string
		db           HealthChecker
		cache        HealthChecker
		wantStatus   int
		wantBody     string
		wantPostgres string
		wantRedis    string
	}{
		{
			name:         "jira only deployment",
			wantStatus:   http.StatusOK,
			wantBody:     "ok",
			wantPostgres: "not configured",
			wantRedis:    "not configured",
		},
		{
			name:         "all configured and healthy",
			db:           &mockHealthChecker{},
			cache:        &mockHealthChecker{},
			wantStatus:   http.StatusOK,
			wantBody:     "ok",
			wantPostgres: "ok",
			wantRedis:    "ok",
		},
		{
			name:         "run log database down",
			db:           &mockHealthChecker{err: errors.New("connection refused")},
			cache:        &mockHealthChecker{},
			wantStatus:   http.StatusServiceUnavailable,
			wantBody:     "unhealthy",
			wantPostgres: "error: connection refused",
			wantRedis:    "ok",
		},
		{
			name:         "rate limit cache down without database",
			cache:        &mockHealthChecker{err: errors.New("i/o timeout")},
			wantStatus:   http.StatusServiceUnavailable,
			wantBody:     "unhealthy",
			wantPostgres: "not configured",
			wantRedis:    "error: i/o timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()

			h.Readyz(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.Status != tt.wantBody {
				t.Errorf("status = %q, want %q", response.Status, tt.wantBody)
			}
			if response.Checks["postgres"] != tt.wantPostgres {
				t.Errorf("postgres check = %q, want %q", response.Checks["postgres"], tt.wantPostgres)
			}
			if response.Checks["redis"] != tt.wantRedis {
				t.Errorf("redis check = %q, want %q", response.Checks["redis"], tt.wantRedis)
			}
		})
	}
}
