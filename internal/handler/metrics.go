package handler

import (
	"fmt"
	"net/http"

	"github.com/jirareport/worklog-report/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "worklog_report_generated_total %d\n", snap.ReportsGenerated)
	writeMetric(w, "worklog_report_failed_total{reason=\"upstream\"} %d\n", snap.ReportsFailedUpstream)
	writeMetric(w, "worklog_report_failed_total{reason=\"internal\"} %d\n", snap.ReportsFailedInternal)
	writeMetric(w, "worklog_report_rows_total %d\n", snap.ReportRowsTotal)
	writeMetric(w, "worklog_report_worklogs_skipped_total %d\n", snap.WorklogsSkipped)
	writeMetric(w, "worklog_report_archive_failures_total %d\n", snap.ArchiveFailures)

	writeMetric(w, "worklog_report_upstream_duration_seconds_count %d\n", snap.UpstreamDurationCount)
	writeMetric(w, "worklog_report_upstream_duration_seconds_sum %.6f\n", float64(snap.UpstreamDurationTotalNs)/1e9)
	writeMetric(w, "worklog_report_render_duration_seconds_count %d\n", snap.RenderDurationCount)
	writeMetric(w, "worklog_report_render_duration_seconds_sum %.6f\n", float64(snap.RenderDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
