// Package metrics records build metrics for journalsite.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless enabled:
//
//	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	builder := build.NewService(cfg).WithRecorder(recorder)
//
// A PrometheusRecorder can be exported once per build with WriteTextfile (for
// the node_exporter textfile collector) or served with HTTPHandler while
// previewing.
package metrics
