// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/jirareport/worklog-report/internal/model"
)

// GenerateReportRequest represents the request body for POST /api/generate-report.
type GenerateReportRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ReportRunResponse represents a report run in API responses.
type ReportRunResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	KeyPrefix   string    `json:"api_key_prefix,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	IssueCount  int       `json:"issue_count"`
	RowCount    int       `json:"row_count"`
	ProjectKeys []string  `json:"project_keys"`
	Error       string    `json:"error,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportRunListResponse represents a paginated list of report runs.
type ReportRunListResponse struct {
	Data       []ReportRunResponse `json:"data"`
	Pagination *Pagination         `json:"pagination"`
}

// Pagination provides cursor-based pagination info.
type Pagination struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// ToReportRunResponse converts a ReportRun model to its DTO.
func ToReportRunResponse(run *model.ReportRun) ReportRunResponse {
	keys := run.ProjectKeys
	if keys == nil {
		keys = []string{}
	}
	return ReportRunResponse{
		ID:          run.ID,
		RequestID:   run.RequestID,
		KeyPrefix:   run.KeyPrefix,
		StartDate:   run.StartDate,
		EndDate:     run.EndDate,
		Status:      string(run.Status),
		IssueCount:  run.IssueCount,
		RowCount:    run.RowCount,
		ProjectKeys: keys,
		Error:       run.Error,
		DurationMs:  run.DurationMs,
		CreatedAt:   run.CreatedAt,
	}
}

// ToReportRunListResponse converts runs to a paginated list response.
func ToReportRunListResponse(runs []*model.ReportRun, nextCursor string, hasMore bool) *ReportRunListResponse {
	data := make([]ReportRunResponse, len(runs))
	for i, run := range runs {
		data[i] = ToReportRunResponse(run)
	}

	return &ReportRunListResponse{
		Data: data,
		Pagination: &Pagination{
			NextCursor: nextCursor,
			HasMore:    hasMore,
		},
	}
}
