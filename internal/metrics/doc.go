// Package metrics records per-run statistics of the link rewriting pipeline.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	proc := stdlinks.NewProcessor(resolver, stdlinks.WithRecorder(recorder))
//
// PrometheusRecorder registers counters and histograms on a caller supplied
// registry. A preprocessor run is short lived and is not scraped, so the CLI
// writes the registry to a text file in the Prometheus exposition format with
// WriteTextfile; node_exporter's textfile collector can pick it up from there.
package metrics
