// Package attrs provides reusable OpenTelemetry attribute key constants
// to avoid duplication across middlewares.
package attrs

const (
	// AttrBenchmarkID represents the telemetry attribute key carrying the
	// benchmark identifier a chart is rendered for. This attribute helps
	// correlate render spans and counters with individual benchmarks.
	AttrBenchmarkID = "benchmark.id"
	// AttrGroupID represents the telemetry attribute key carrying the benchmark
	// group identifier a summary is assembled for. This attribute helps monitor
	// summary workloads across groups of related benchmarks.
	AttrGroupID = "group.id"
	// AttrSampleSize represents the telemetry attribute key for measuring the
	// number of measurements in the sample backing a chart. This metric helps
	// identify charts assembled from undersized or oversized samples.
	AttrSampleSize = "sample.size"
	// AttrChartCount represents the telemetry attribute key for measuring the
	// number of chart handles produced by an operation. This metric helps
	// monitor fan-out operations that emit one chart per statistic or benchmark.
	AttrChartCount = "chart.count"
	// AttrEngine represents the telemetry attribute key carrying the name of
	// the render engine in use. This attribute helps separate gnuplot renders
	// from script-only runs when analyzing latency.
	AttrEngine = "engine"
)
