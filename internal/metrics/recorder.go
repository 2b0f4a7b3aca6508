package metrics

import "time"

// ResultLabel enumerates chapter result categories for counters.
type ResultLabel string

const (
	ResultRewritten ResultLabel = "rewritten" // references resolved and definitions appended
	ResultUnchanged ResultLabel = "unchanged" // no eligible references
	ResultFatal     ResultLabel = "fatal"
)

// Recorder defines observability hooks for the rewriting pipeline.
type Recorder interface {
	ObserveChapterDuration(d time.Duration)
	IncChapterResult(result ResultLabel)
	AddLinksResolved(n int)
	ObserveResolverDuration(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveChapterDuration(time.Duration)       {}
func (NoopRecorder) IncChapterResult(ResultLabel)               {}
func (NoopRecorder) AddLinksResolved(int)                       {}
func (NoopRecorder) ObserveResolverDuration(time.Duration, bool) {}
