package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveTemplateCompile("page", time.Millisecond, true)
	r.ObservePageRender("Class", time.Millisecond, false)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.SetPagesWritten(3)
}

func TestResultLabel(t *testing.T) {
	if got := resultLabel(true); got != "success" {
		t.Fatalf("resultLabel(true) = %q", got)
	}
	if got := resultLabel(false); got != "failed" {
		t.Fatalf("resultLabel(false) = %q", got)
	}
}
