package model

import "time"

// RunStatus is the outcome of a report generation.
type RunStatus string

const (
	RunStatusSucceeded     RunStatus = "succeeded"
	RunStatusUpstreamError RunStatus = "upstream_error"
	RunStatusFailed        RunStatus = "failed"
)

// ReportRun is an audit record of one report generation.
// The generated spreadsheet itself is never stored.
type ReportRun struct {
	ID          string    `json:"id"` // ULID
	RequestID   string    `json:"request_id,omitempty"`
	KeyPrefix   string    `json:"api_key_prefix,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      RunStatus `json:"status"`
	IssueCount  int       `json:"issue_count"`
	RowCount    int       `json:"row_count"`
	ProjectKeys []string  `json:"project_keys"`
	Error       string    `json:"error,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// Valid reports whether s is a known run status.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusSucceeded, RunStatusUpstreamError, RunStatusFailed:
		return true
	}
	return false
}
