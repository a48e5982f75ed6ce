package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ReportsGenerated        uint64
	ReportsFailedUpstream   uint64
	ReportsFailedInternal   uint64
	ReportRowsTotal         uint64
	WorklogsSkipped         uint64
	UpstreamDurationCount   uint64
	UpstreamDurationTotalNs int64
	RenderDurationCount     uint64
	RenderDurationTotalNs   int64
	ArchiveFailures         uint64
}

// InMemoryRecorder stores metrics in memory using atomic counters.
type InMemoryRecorder struct {
	reportsGenerated        uint64
	reportsFailedUpstream   uint64
	reportsFailedInternal   uint64
	reportRowsTotal         uint64
	worklogsSkipped         uint64
	upstreamDurationCount   uint64
	upstreamDurationTotalNs int64
	renderDurationCount     uint64
	renderDurationTotalNs   int64
	archiveFailures         uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ReportsGenerated:        atomic.LoadUint64(&m.reportsGenerated),
		ReportsFailedUpstream:   atomic.LoadUint64(&m.reportsFailedUpstream),
		ReportsFailedInternal:   atomic.LoadUint64(&m.reportsFailedInternal),
		ReportRowsTotal:         atomic.LoadUint64(&m.reportRowsTotal),
		WorklogsSkipped:         atomic.LoadUint64(&m.worklogsSkipped),
		UpstreamDurationCount:   atomic.LoadUint64(&m.upstreamDurationCount),
		UpstreamDurationTotalNs: atomic.LoadInt64(&m.upstreamDurationTotalNs),
		RenderDurationCount:     atomic.LoadUint64(&m.renderDurationCount),
		RenderDurationTotalNs:   atomic.LoadInt64(&m.renderDurationTotalNs),
		ArchiveFailures:         atomic.LoadUint64(&m.archiveFailures),
	}
}

// IncReportGenerated increments the generated report counter.
func (m *InMemoryRecorder) IncReportGenerated() {
	atomic.AddUint64(&m.reportsGenerated, 1)
}

// IncReportFailed increments the failure counter for reason.
func (m *InMemoryRecorder) IncReportFailed(reason string) {
	if reason == ReasonUpstream {
		atomic.AddUint64(&m.reportsFailedUpstream, 1)
		return
	}
	atomic.AddUint64(&m.reportsFailedInternal, 1)
}

// ObserveReportRows adds rows to the emitted row total.
func (m *InMemoryRecorder) ObserveReportRows(rows int) {
	atomic.AddUint64(&m.reportRowsTotal, uint64(rows))
}

// IncWorklogsSkipped counts worklogs dropped for unparseable timestamps.
func (m *InMemoryRecorder) IncWorklogsSkipped(count int) {
	atomic.AddUint64(&m.worklogsSkipped, uint64(count))
}

// ObserveUpstreamDuration records a Jira search duration.
func (m *InMemoryRecorder) ObserveUpstreamDuration(duration time.Duration) {
	atomic.AddUint64(&m.upstreamDurationCount, 1)
	atomic.AddInt64(&m.upstreamDurationTotalNs, duration.Nanoseconds())
}

// ObserveRenderDuration records a spreadsheet render duration.
func (m *InMemoryRecorder) ObserveRenderDuration(duration time.Duration) {
	atomic.AddUint64(&m.renderDurationCount, 1)
	atomic.AddInt64(&m.renderDurationTotalNs, duration.Nanoseconds())
}

// IncArchiveFailed increments the archive failure counter.
func (m *InMemoryRecorder) IncArchiveFailed() {
	atomic.AddUint64(&m.archiveFailures, 1)
}
