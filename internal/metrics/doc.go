// Package metrics provides run metrics for docversions.
//
// Components receive a Recorder through their configuration. NoopRecorder is
// the default; PrometheusRecorder is activated when the CLI is asked to
// export metrics:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	proc := &injector.Processor{Recorder: rec}
//	...
//	_ = metrics.WriteTextfile("/var/lib/node_exporter/docversions.prom", reg)
//
// The textfile output is meant for a node-exporter textfile collector in CI,
// where the process is too short-lived to be scraped.
package metrics
