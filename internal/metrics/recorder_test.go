package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	outcomes map[FileOutcome]int
	versions int
	rewrites map[bool]int
	runs     int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{outcomes: map[FileOutcome]int{}, rewrites: map[bool]int{}}
}

func (t *testRecorder) IncFileOutcome(o FileOutcome)     { t.outcomes[o]++ }
func (t *testRecorder) SetVersionsResolved(n int)        { t.versions = n }
func (t *testRecorder) IncSearchIndexRewrite(c bool)     { t.rewrites[c]++ }
func (t *testRecorder) ObserveRunDuration(time.Duration) { t.runs++ }

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var _ Recorder = newTestRecorder()
}

func TestNoopRecorderDoesNothing(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncFileOutcome(OutcomeInjected)
	r.SetVersionsResolved(3)
	r.IncSearchIndexRewrite(true)
	r.ObserveRunDuration(time.Second)
}

func TestTestRecorderCounts(t *testing.T) {
	r := newTestRecorder()
	r.IncFileOutcome(OutcomeInjected)
	r.IncFileOutcome(OutcomeInjected)
	r.IncFileOutcome(OutcomeFailed)
	if r.outcomes[OutcomeInjected] != 2 || r.outcomes[OutcomeFailed] != 1 {
		t.Fatalf("unexpected outcome counts: %v", r.outcomes)
	}
}
