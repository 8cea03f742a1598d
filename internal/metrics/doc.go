// Package metrics provides run metrics for the publisher.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder backs the same interface
// with a Prometheus registry that can be exported to a node_exporter textfile
// after a run:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	pub := pipeline.New(cfg, pipeline.WithRecorder(rec))
//	...
//	_ = metrics.WriteTextfile(path, reg)
package metrics
