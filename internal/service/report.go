// Package service provides business logic for the application.
package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jirareport/worklog-report/internal/jira"
	"github.com/jirareport/worklog-report/internal/metrics"
	"github.com/jirareport/worklog-report/internal/model"
	"github.com/jirareport/worklog-report/internal/render"
	"github.com/jirareport/worklog-report/internal/report"
)

// runRecordTimeout bounds how long recording a run may take.
const runRecordTimeout = 5 * time.Second

// Searcher fetches the issue collection for a report.
type Searcher interface {
	Search(ctx context.Context) (*model.SearchResult, error)
}

// RunRecorder stores report run audit records.
type RunRecorder interface {
	CreateReportRun(ctx context.Context, run *model.ReportRun) error
}

// ReportResult is a generated spreadsheet ready to stream.
type ReportResult struct {
	ID          string
	FileName    string
	Content     []byte
	IssueCount  int
	RowCount    int
	ProjectKeys []string
}

// ReportService runs the fetch, flatten, sort and render pipeline.
type ReportService struct {
	searcher   Searcher
	runs       RunRecorder
	metrics    metrics.Recorder
	archiveDir string
	logger     *slog.Logger
}

// ReportServiceOptions holds the optional collaborators of a ReportService.
type ReportServiceOptions struct {
	// Runs records an audit row per generation. Nil disables recording.
	Runs RunRecorder
	// Metrics receives report counters. Nil uses a no-op recorder.
	Metrics metrics.Recorder
	// ArchiveDir, when set, receives a uniquely named copy of every report.
	ArchiveDir string
}

// NewReportService creates a new ReportService.
func NewReportService(searcher Searcher, logger *slog.Logger, opts ReportServiceOptions) *ReportService {
	recorder := opts.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		searcher:   searcher,
		runs:       opts.Runs,
		metrics:    recorder,
		archiveDir: opts.ArchiveDir,
		logger:     logger,
	}
}

// Generate builds the worklog report for req.
// Upstream status failures are returned as *jira.StatusError.
func (s *ReportService) Generate(ctx context.Context, req model.ReportRequest) (*ReportResult, error) {
	started := time.Now()
	run := &model.ReportRun{
		ID:          ulid.Make().String(),
		RequestID:   req.RequestID,
		KeyPrefix:   req.KeyPrefix,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProjectKeys: []string{},
		CreatedAt:   started.UTC(),
	}

	result, err := s.build(ctx, req, run)
	run.DurationMs = time.Since(started).Milliseconds()

	if err != nil {
		run.Error = err.Error()
		run.Status = model.RunStatusFailed
		reason := metrics.ReasonInternal
		if _, ok := jira.AsStatusError(err); ok {
			run.Status = model.RunStatusUpstreamError
			reason = metrics.ReasonUpstream
		}
		s.metrics.IncReportFailed(reason)
		s.recordRun(ctx, run)
		return nil, err
	}

	run.Status = model.RunStatusSucceeded
	s.metrics.IncReportGenerated()
	s.metrics.ObserveReportRows(result.RowCount)
	s.recordRun(ctx, run)

	s.logger.Info("report_generated",
		"report_id", result.ID,
		"request_id", req.RequestID,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"issues", result.IssueCount,
		"rows", result.RowCount,
		"duration_ms", run.DurationMs,
	)

	return result, nil
}

func (s *ReportService) build(ctx context.Context, req model.ReportRequest, run *model.ReportRun) (*ReportResult, error) {
	fetchStart := time.Now()
	search, err := s.searcher.Search(ctx)
	s.metrics.ObserveUpstreamDuration(time.Since(fetchStart))
	if err != nil {
		return nil, fmt.Errorf("fetch worklogs: %w", err)
	}

	rows, skipped := report.Flatten(search.Issues, req.Range)
	if skipped > 0 {
		s.metrics.IncWorklogsSkipped(skipped)
		s.logger.Warn("worklogs skipped",
			"request_id", req.RequestID,
			"reason", "unparseable_started",
			"count", skipped,
		)
	}
	report.SortRows(rows)

	run.IssueCount = len(search.Issues)
	run.RowCount = len(rows)
	run.ProjectKeys = report.ProjectKeys(rows)

	renderStart := time.Now()
	var buf bytes.Buffer
	if err := render.Render(rows, &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	s.metrics.ObserveRenderDuration(time.Since(renderStart))

	result := &ReportResult{
		ID:          run.ID,
		FileName:    render.FileName(req.StartDate, req.EndDate),
		Content:     buf.Bytes(),
		IssueCount:  run.IssueCount,
		RowCount:    run.RowCount,
		ProjectKeys: run.ProjectKeys,
	}

	s.archive(req, result)

	return result, nil
}

// archive writes a copy of the report to the archive directory.
// Failures are logged only; the caller still gets the report.
func (s *ReportService) archive(req model.ReportRequest, result *ReportResult) {
	if s.archiveDir == "" {
		return
	}

	path := filepath.Join(s.archiveDir, render.ArchiveName(req.StartDate, req.EndDate, result.ID))
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		s.metrics.IncArchiveFailed()
		s.logger.Error("report archive failed",
			"report_id", result.ID,
			"path", path,
			"error", err,
		)
	}
}

func (s *ReportService) recordRun(ctx context.Context, run *model.ReportRun) {
	if s.runs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runRecordTimeout)
	defer cancel()

	if err := s.runs.CreateReportRun(ctx, run); err != nil {
		s.logger.Error("record report run failed",
			"report_id", run.ID,
			"error", err,
		)
	}
}
