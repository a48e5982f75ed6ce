package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jirareport/worklog-report/internal/handler/dto"
	"github.com/jirareport/worklog-report/internal/model"
	"github.com/jirareport/worklog-report/internal/repository"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// RunLister reads the report run log.
type RunLister interface {
	ListReportRuns(ctx context.Context, filter repository.ReportRunFilter, cursor string, limit int) ([]*model.ReportRun, string, error)
	GetReportRunByID(ctx context.Context, id string) (*model.ReportRun, error)
}

// RunsHandler serves the report run log.
type RunsHandler struct {
	runs   RunLister
	logger *slog.Logger
}

// NewRunsHandler creates a new RunsHandler. A nil lister means no database
// is configured and every request gets 503.
func NewRunsHandler(runs RunLister, logger *slog.Logger) *RunsHandler {
	return &RunsHandler{
		runs:   runs,
		logger: logger.With("component", "handler.runs"),
	}
}

// List handles GET /api/v1/reports/runs.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "RUN_LOG_DISABLED", "Report run log is not configured")
		return
	}

	query := r.URL.Query()

	limit := defaultRunsLimit
	if l := query.Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > maxRunsLimit {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	filter := repository.ReportRunFilter{}
	if s := query.Get("status"); s != "" {
		status := model.RunStatus(s)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS", "status must be succeeded, upstream_error or failed")
			return
		}
		filter.Status = status
	}

	runs, nextCursor, err := h.runs.ListReportRuns(r.Context(), filter, query.Get("cursor"), limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			writeError(w, http.StatusBadRequest, "INVALID_CURSOR", "Invalid pagination cursor")
			return
		}
		h.logger.Error("failed to list report runs", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToReportRunListResponse(runs, nextCursor, nextCursor != ""))
}

// Get handles GET /api/v1/reports/runs/{id}.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "RUN_LOG_DISABLED", "Report run log is not configured")
		return
	}

	run, err := h.runs.GetReportRunByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrReportRunNotFound) {
			writeError(w, http.StatusNotFound, "RUN_NOT_FOUND", "Report run not found")
			return
		}
		h.logger.Error("failed to get report run", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToReportRunResponse(run))
}
