package metrics

import "time"

// BuildOutcomeLabel is the final status of a site build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	// BuildOutcomeWarning means some pages failed but the build continued.
	BuildOutcomeWarning BuildOutcomeLabel = "warning"
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// Recorder defines observability hooks for template compilation, page
// rendering and whole builds.
type Recorder interface {
	ObserveTemplateCompile(template string, d time.Duration, success bool)
	ObservePageRender(category string, d time.Duration, success bool)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetPagesWritten(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTemplateCompile(string, time.Duration, bool) {}
func (NoopRecorder) ObservePageRender(string, time.Duration, bool)      {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                 {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                  {}
func (NoopRecorder) SetPagesWritten(int)                                {}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
