package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrender/internal/comments"
	"git.home.luguber.info/inful/docrender/internal/docmodel"
	"git.home.luguber.info/inful/docrender/internal/markup"
	"git.home.luguber.info/inful/docrender/internal/metrics"
)

type testContext struct {
	content docmodel.ContentFormatter
}

func (c *testContext) NamespaceURL(ns docmodel.Namespace) string {
	return "/api/" + ns.NamespaceName() + "/index.html"
}

func (c *testContext) MemberURL(m docmodel.Member) string {
	return "/api/" + docmodel.QualifiedName(m) + ".html"
}

func (c *testContext) TopicURL(t docmodel.Topic) string {
	return "/topics/" + t.TopicTitle() + ".html"
}

func (c *testContext) ContentFormatter() docmodel.ContentFormatter { return c.content }

type stepRecorder struct{ steps []string }

func (s *stepRecorder) Step(description string) { s.steps = append(s.steps, description) }

type renderObservation struct {
	category string
	success  bool
}

type testRecorder struct {
	renders  []renderObservation
	compiles int
}

func (r *testRecorder) ObserveTemplateCompile(string, time.Duration, bool) { r.compiles++ }
func (r *testRecorder) ObservePageRender(category string, _ time.Duration, success bool) {
	r.renders = append(r.renders, renderObservation{category: category, success: success})
}
func (r *testRecorder) ObserveBuildDuration(time.Duration)         {}
func (r *testRecorder) IncBuildOutcome(metrics.BuildOutcomeLabel) {}
func (r *testRecorder) SetPagesWritten(int)                       {}

func newTestRenderer(t *testing.T, format markup.Format, opts Options) *Renderer {
	t.Helper()
	opts.Context = &testContext{content: comments.NewFormatter(format, nil)}
	r, err := New(opts)
	require.NoError(t, err)
	return r
}
