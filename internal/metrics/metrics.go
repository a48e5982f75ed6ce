// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Failure reasons for IncReportFailed.
const (
	ReasonUpstream = "upstream"
	ReasonInternal = "internal"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Report generation
	IncReportGenerated()
	IncReportFailed(reason string) // reason: "upstream" or "internal"
	ObserveReportRows(rows int)
	IncWorklogsSkipped(count int)

	// Stage timings
	ObserveUpstreamDuration(duration time.Duration)
	ObserveRenderDuration(duration time.Duration)

	// Archive copies
	IncArchiveFailed()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
