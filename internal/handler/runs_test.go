package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jirareport/worklog-report/internal/handler/dto"
	"github.com/jirareport/worklog-report/internal/model"
	"github.com/jirareport/worklog-report/internal/repository"
)

type stubRunLister struct {
	runs       []*model.ReportRun
	nextCursor string
	err        error

	gotFilter repository.ReportRunFilter
	gotCursor string
	gotLimit  int
	gotID     string
}

func (s *stubRunLister) GetReportRunByID(ctx context.Context, id string) (*model.ReportRun, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	if len(s.runs) == 0 {
		return nil, repository.ErrReportRunNotFound
	}
	return s.runs[0], nil
}

func (s *stubRunLister) ListReportRuns(ctx context.Context, filter repository.ReportRunFilter, cursor string, limit int) ([]*model.ReportRun, string, error) {
	s.gotFilter, s.gotCursor, s.gotLimit = filter, cursor, limit
	return s.runs, s.nextCursor, s.err
}

func getRuns(h *RunsHandler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	return rec
}

func TestRunsHandler_List(t *testing.T) {
	stub := &stubRunLister{
		runs: []*model.ReportRun{{
			ID:          "01HQ0000000000000000000001",
			StartDate:   "2024-01-01",
			EndDate:     "2024-01-31",
			Status:      model.RunStatusSucceeded,
			RowCount:    4,
			ProjectKeys: []string{"OPS"},
			CreatedAt:   time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		}},
		nextCursor: "next",
	}
	h := NewRunsHandler(stub, discardLogger())

	rec := getRuns(h, "/api/v1/reports/runs?limit=1&status=succeeded&cursor=abc")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if stub.gotLimit != 1 || stub.gotCursor != "abc" || stub.gotFilter.Status != model.RunStatusSucceeded {
		t.Errorf("unexpected query: limit=%d cursor=%q filter=%+v", stub.gotLimit, stub.gotCursor, stub.gotFilter)
	}

	var response dto.ReportRunListResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Data) != 1 || response.Data[0].RowCount != 4 {
		t.Errorf("unexpected data %+v", response.Data)
	}
	if !response.Pagination.HasMore || response.Pagination.NextCursor != "next" {
		t.Errorf("unexpected pagination %+v", response.Pagination)
	}
}

func TestRunsHandler_List_DefaultLimit(t *testing.T) {
	stub := &stubRunLister{}
	h := NewRunsHandler(stub, discardLogger())

	rec := getRuns(h, "/api/v1/reports/runs")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if stub.gotLimit != defaultRunsLimit {
		t.Errorf("limit = %d, want %d", stub.gotLimit, defaultRunsLimit)
	}

	var response dto.ReportRunListResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data == nil || len(response.Data) != 0 {
		t.Errorf("expected empty data array, got %v", response.Data)
	}
	if response.Pagination.HasMore {
		t.Error("expected has_more false")
	}
}

func TestRunsHandler_List_Errors(t *testing.T) {
	tests := []struct {
		name       string
		runs       RunLister
		target     string
		wantStatus int
		wantCode   string
	}{
		{"no database", nil, "/api/v1/reports/runs", http.StatusServiceUnavailable, "RUN_LOG_DISABLED"},
		{"limit too large", &stubRunLister{}, "/api/v1/reports/runs?limit=500", http.StatusBadRequest, "INVALID_LIMIT"},
		{"limit not a number", &stubRunLister{}, "/api/v1/reports/runs?limit=ten", http.StatusBadRequest, "INVALID_LIMIT"},
		{"unknown status", &stubRunLister{}, "/api/v1/reports/runs?status=pending", http.StatusBadRequest, "INVALID_STATUS"},
		{"bad cursor", &stubRunLister{err: repository.ErrInvalidCursor}, "/api/v1/reports/runs?cursor=x", http.StatusBadRequest, "INVALID_CURSOR"},
		{"db failure", &stubRunLister{err: errors.New("conn reset")}, "/api/v1/reports/runs", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRunsHandler(tt.runs, discardLogger())

			rec := getRuns(h, tt.target)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", response.Code, tt.wantCode)
			}
		})
	}
}

func getRun(h *RunsHandler, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/v1/reports/runs/{id}", h.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/runs/"+id, nil))
	return rec
}

func TestRunsHandler_Get(t *testing.T) {
	stub := &stubRunLister{runs: []*model.ReportRun{{
		ID:          "01HQ0000000000000000000001",
		KeyPrefix:   "a1b2c3",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
		Status:      model.RunStatusSucceeded,
		ProjectKeys: []string{"OPS"},
		CreatedAt:   time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	}}}
	h := NewRunsHandler(stub, discardLogger())

	rec := getRun(h, "01HQ0000000000000000000001")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.gotID != "01HQ0000000000000000000001" {
		t.Errorf("looked up %q", stub.gotID)
	}

	var response dto.ReportRunResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.KeyPrefix != "a1b2c3" || response.Status != "succeeded" {
		t.Errorf("unexpected run %+v", response)
	}
}

func TestRunsHandler_Get_Errors(t *testing.T) {
	tests := []struct {
		name       string
		runs       RunLister
		wantStatus int
		wantCode   string
	}{
		{"no database", nil, http.StatusServiceUnavailable, "RUN_LOG_DISABLED"},
		{"unknown id", &stubRunLister{}, http.StatusNotFound, "RUN_NOT_FOUND"},
		{"db failure", &stubRunLister{err: errors.New("conn reset")}, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := getRun(NewRunsHandler(tt.runs, discardLogger()), "01HQMISSING")

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", response.Code, tt.wantCode)
			}
		})
	}
}
