package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docrender"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	compileDuration *prom.HistogramVec
	renderDuration  *prom.HistogramVec
	renderResults   *prom.CounterVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	pagesWritten    prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		compileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "template_compile_duration_seconds",
			Help:      "Duration of template compilation",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Duration of individual page renders by page category",
			Buckets:   prom.DefBuckets,
		}, []string{"category"}),
		renderResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Page render counts by page category and result",
		}, []string{"category", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pagesWritten: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_written",
			Help:      "Pages written by the last build",
		}),
	}
	reg.MustRegister(pr.compileDuration, pr.renderDuration, pr.renderResults, pr.buildDuration, pr.buildOutcome, pr.pagesWritten)
	return pr
}

// Template names are not used as labels; sites can have hundreds of topic templates.
func (p *PrometheusRecorder) ObserveTemplateCompile(_ string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.compileDuration.WithLabelValues(resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePageRender(category string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(category).Observe(d.Seconds())
	p.renderResults.WithLabelValues(category, resultLabel(success)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPagesWritten(n int) {
	if p == nil {
		return
	}
	p.pagesWritten.Set(float64(n))
}
