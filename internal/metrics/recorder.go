// Package metrics provides observability hooks for the generate and strip
// workflows. Components receive a Recorder through dependency injection and
// default to NoopRecorder, so metrics cost nothing unless a real recorder is
// wired in (watch mode with --metrics-addr).
package metrics

import "time"

// ResultLabel enumerates per-mutation outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks. Implementations must be safe for
// concurrent use.
type Recorder interface {
	IncDirsDiscovered(n int)
	IncFilesGenerated(n int)
	IncJobResult(result ResultLabel)
	ObserveScanDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDirsDiscovered(int)             {}
func (NoopRecorder) IncFilesGenerated(int)             {}
func (NoopRecorder) IncJobResult(ResultLabel)          {}
func (NoopRecorder) ObserveScanDuration(time.Duration) {}
