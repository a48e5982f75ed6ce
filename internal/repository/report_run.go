package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/jirareport/worklog-report/internal/model"
)

// Common errors for report run repository operations.
var (
	ErrReportRunNotFound = errors.New("report run not found")
	ErrInvalidCursor     = errors.New("invalid pagination cursor")
)

// ReportRunFilter defines filters for listing report runs.
type ReportRunFilter struct {
	Status model.RunStatus
}

// PaginationCursor represents decoded cursor for pagination.
type PaginationCursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReportRun inserts a report run record.
func (r *Repository) CreateReportRun(ctx context.Context, run *model.ReportRun) error {
	query := `
		INSERT INTO report_runs (id, request_id, api_key_prefix, start_date, end_date, status, issue_count, row_count, project_keys, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	keys := run.ProjectKeys
	if keys == nil {
		keys = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.RequestID,
		run.KeyPrefix,
		run.StartDate,
		run.EndDate,
		string(run.Status),
		run.IssueCount,
		run.RowCount,
		pq.Array(keys),
		run.Error,
		run.DurationMs,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report run: %w", err)
	}

	return nil
}

// GetReportRunByID retrieves a report run by its ID.
func (r *Repository) GetReportRunByID(ctx context.Context, id string) (*model.ReportRun, error) {
	query := `
		SELECT id, request_id, api_key_prefix, start_date, end_date, status, issue_count, row_count, project_keys, error, duration_ms, created_at
		FROM report_runs
		WHERE id = $1
	`

	run, err := scanReportRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportRunNotFound
		}
		return nil, fmt.Errorf("failed to get report run: %w", err)
	}

	return run, nil
}

// ListReportRuns retrieves report runs newest first.
// It returns the page and a cursor for the next page, empty when there is none.
func (r *Repository) ListReportRuns(ctx context.Context, filter ReportRunFilter, cursor string, limit int) ([]*model.ReportRun, string, error) {
	var cursorData *PaginationCursor
	if cursor != "" {
		var err error
		cursorData, err = decodeCursor(cursor)
		if err != nil {
			return nil, "", ErrInvalidCursor
		}
	}

	var where []string
	var args []any

	if cursorData != nil {
		args = append(args, cursorData.CreatedAt, cursorData.ID)
		where = append(where, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `
		SELECT id, request_id, api_key_prefix, start_date, end_date, status, issue_count, row_count, project_keys, error, duration_ms, created_at
		FROM report_runs
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	args = append(args, limit+1) // Fetch one extra to determine hasMore
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list report runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*model.ReportRun, 0, limit)
	for rows.Next() {
		run, err := scanReportRun(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan report run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating report runs: %w", err)
	}

	var nextCursor string
	if len(runs) > limit {
		runs = runs[:limit]
		last := runs[len(runs)-1]
		nextCursor = encodeCursor(&PaginationCursor{
			ID:        last.ID,
			CreatedAt: last.CreatedAt,
		})
	}

	return runs, nextCursor, nil
}

// scanReportRun scans a row into a ReportRun. pgx.Rows satisfies pgx.Row.
func scanReportRun(row pgx.Row) (*model.ReportRun, error) {
	var run model.ReportRun
	var status string
	var keys []string

	err := row.Scan(
		&run.ID,
		&run.RequestID,
		&run.KeyPrefix,
		&run.StartDate,
		&run.EndDate,
		&status,
		&run.IssueCount,
		&run.RowCount,
		pq.Array(&keys),
		&run.Error,
		&run.DurationMs,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Status = model.RunStatus(status)
	if keys == nil {
		keys = []string{}
	}
	run.ProjectKeys = keys
	return &run, nil
}

// encodeCursor encodes pagination cursor to base64.
func encodeCursor(cursor *PaginationCursor) string {
	data, _ := json.Marshal(cursor)
	return base64.URLEncoding.EncodeToString(data)
}

// decodeCursor decodes base64 pagination cursor.
func decodeCursor(s string) (*PaginationCursor, error) {
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}

	var cursor PaginationCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, err
	}
	if cursor.ID == "" || cursor.CreatedAt.IsZero() {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}
