package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jirareport/worklog-report/internal/auth"
	"github.com/jirareport/worklog-report/internal/handler/dto"
	"github.com/jirareport/worklog-report/internal/jira"
	"github.com/jirareport/worklog-report/internal/middleware"
	"github.com/jirareport/worklog-report/internal/model"
	"github.com/jirareport/worklog-report/internal/render"
	"github.com/jirareport/worklog-report/internal/report"
	"github.com/jirareport/worklog-report/internal/service"
)

// ReportIDHeader carries the generated report's ID.
const ReportIDHeader = middleware.ReportIDHeader

// ReportGenerator builds a worklog report for a validated request.
type ReportGenerator interface {
	Generate(ctx context.Context, req model.ReportRequest) (*service.ReportResult, error)
}

// ReportHandler handles report generation requests.
type ReportHandler struct {
	svc    ReportGenerator
	logger *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc ReportGenerator, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		svc:    svc,
		logger: logger.With("component", "handler.report"),
	}
}

// Generate handles POST /api/generate-report.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var body dto.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		// Bodies without a Content-Length are only caught while reading.
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	requestID := middleware.GetRequestID(r.Context())

	req, err := report.NewRequest(body.StartDate, body.EndDate, requestID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if p := auth.PrincipalFromContext(r.Context()); p != nil {
		req.KeyPrefix = p.KeyPrefix
	}

	result, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.Header().Set(ReportIDHeader, result.ID)
	w.WriteHeader(http.StatusOK)

	// Headers are already sent; a failed write can only be logged.
	if _, err := w.Write(result.Content); err != nil {
		h.logger.Error("report download failed",
			"report_id", result.ID,
			"request_id", requestID,
			"error", err,
		)
	}
}

// handleServiceError maps report errors to HTTP responses.
func (h *ReportHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if statusErr, ok := jira.AsStatusError(err); ok {
		h.logger.Warn("upstream_error",
			"request_id", middleware.GetRequestID(r.Context()),
			"status_code", statusErr.StatusCode,
			"status", statusErr.Status,
		)
		writeError(w, statusErr.StatusCode, "UPSTREAM_ERROR", statusErr.Status)
		return
	}

	switch {
	case errors.Is(err, report.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, "INVALID_DATE_RANGE", err.Error())
	default:
		h.logger.Error("internal_error",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
	}
}
