// Package metrics provides build and page render metrics for DocRender.
//
// Components receive a Recorder through their options and default to
// NoopRecorder, so metrics collection never needs nil checks at call sites:
//
//	r, err := templates.New(templates.Options{
//	    Context:  ctx,
//	    Recorder: metrics.NewPrometheusRecorder(reg),
//	})
//
// The Prometheus implementation registers its collectors on the registry it
// is given. The registry can be served over HTTP (HTTPHandler) while watching
// or written to a node_exporter textfile after a build (WriteTextfile).
package metrics
