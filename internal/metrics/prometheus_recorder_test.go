package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveTemplateCompile("class", 2*time.Millisecond, true)
	pr.ObservePageRender("Class", 150*time.Millisecond, true)
	pr.ObservePageRender("Class", 10*time.Millisecond, false)
	pr.ObservePageRender("Topic", 10*time.Millisecond, true)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeWarning)
	pr.SetPagesWritten(2)

	require.InDelta(t, 1, gathered(t, reg, "docrender_page_renders_total", "category", "Class", "result", "failed"), 0)
	require.InDelta(t, 1, gathered(t, reg, "docrender_page_renders_total", "category", "Topic", "result", "success"), 0)
	require.InDelta(t, 1, gathered(t, reg, "docrender_build_outcomes_total", "outcome", "warning"), 0)
	require.InDelta(t, 2, gathered(t, reg, "docrender_pages_written"), 0)
}

// gathered returns the counter or gauge value of the named metric whose
// labels include the given name/value pairs.
func gathered(t *testing.T, reg *prom.Registry, name string, labelPairs ...string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for i := 0; i+1 < len(labelPairs); i += 2 {
				if labels[labelPairs[i]] != labelPairs[i+1] {
					continue metrics
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, labelPairs)
	return 0
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObservePageRender("Class", time.Millisecond, true)
	pr.IncBuildOutcome(BuildOutcomeFailed)
}

func TestWriteTextfileAndHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetPagesWritten(7)

	path := filepath.Join(t.TempDir(), "docrender.prom")
	require.NoError(t, WriteTextfile(reg, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "docrender_pages_written 7")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "docrender_pages_written")
}
