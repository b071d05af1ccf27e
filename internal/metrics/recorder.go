package metrics

import "time"

// FileOutcome enumerates per-file result categories for counters.
type FileOutcome string

const (
	OutcomeInjected     FileOutcome = "injected"
	OutcomeUnchanged    FileOutcome = "unchanged"
	OutcomeNoNavigation FileOutcome = "no_navigation"
	OutcomeFailed       FileOutcome = "failed"
	OutcomeDuplicate    FileOutcome = "duplicate"
)

// Recorder defines observability hooks for one processing run.
type Recorder interface {
	IncFileOutcome(outcome FileOutcome)
	SetVersionsResolved(n int)
	IncSearchIndexRewrite(changed bool)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFileOutcome(FileOutcome)       {}
func (NoopRecorder) SetVersionsResolved(int)          {}
func (NoopRecorder) IncSearchIndexRewrite(bool)       {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
