package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncReportGenerated is a no-op.
func (n *NoopRecorder) IncReportGenerated() {}

// IncReportFailed is a no-op.
func (n *NoopRecorder) IncReportFailed(reason string) {}

// ObserveReportRows is a no-op.
func (n *NoopRecorder) ObserveReportRows(rows int) {}

// IncWorklogsSkipped is a no-op.
func (n *NoopRecorder) IncWorklogsSkipped(count int) {}

// ObserveUpstreamDuration is a no-op.
func (n *NoopRecorder) ObserveUpstreamDuration(duration time.Duration) {}

// ObserveRenderDuration is a no-op.
func (n *NoopRecorder) ObserveRenderDuration(duration time.Duration) {}

// IncArchiveFailed is a no-op.
func (n *NoopRecorder) IncArchiveFailed() {}
