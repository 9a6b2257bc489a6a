// Package constants defines default configuration values and engine types
// for the benchplot system. It provides the standard chart dimensions, KDE
// resolution, directory layout names, and supported render engine types.
package constants

const (
	// DefaultKDEPoints is the number of points sampled along a kernel density sweep.
	DefaultKDEPoints = 500
	// DefaultWidth is the default chart width in pixels.
	DefaultWidth = 1280
	// DefaultHeight is the default chart height in pixels.
	DefaultHeight = 720
	// DefaultFont is the default chart font face.
	DefaultFont = "Helvetica"
	// DefaultLineWidth is the default line width for curves and markers.
	DefaultLineWidth = 2.0
	// DefaultPointSize is the default point size for scatter series.
	DefaultPointSize = 0.75
	// DefaultConfidenceLevel is the confidence level attached to ingested estimates.
	DefaultConfidenceLevel = 0.95

	// DefaultOutputDir is the directory benchmark artifacts are read from and
	// charts are written to when no directory is configured.
	DefaultOutputDir = ".benchplot"

	// GnuplotEngine is the name of the gnuplot render engine.
	// It spawns one gnuplot process per chart and streams the script on stdin.
	GnuplotEngine = "gnuplot"
	// ScriptEngine is the name of the script render engine.
	// It writes the chart script to disk instead of spawning a renderer,
	// serving tests and hosts without a gnuplot installation.
	ScriptEngine = "script"

	// NewSample is the directory name of the current result generation.
	NewSample = "new"
	// BaseSample is the directory name of the previous result generation.
	BaseSample = "base"
	// ChangeDir is the directory name holding change charts (relative
	// distributions and the Welch t test).
	ChangeDir = "change"
	// BothDir is the directory name holding base-vs-new comparison overlays.
	BothDir = "both"
	// SummaryDir is the directory name holding group summary charts. Benchmark
	// enumeration skips it so summaries are never treated as entries.
	SummaryDir = "summary"

	// EstimatesFile is the per-generation statistical estimates artifact.
	EstimatesFile = "estimates.json"
	// SampleFile is the per-generation raw sample artifact.
	SampleFile = "sample.json"

	// DebugScriptExtension is the extension of the debug script written next
	// to a chart when debug output is enabled.
	DebugScriptExtension = ".gnuplot"
	// DefaultScriptExtension is the extension the script engine writes chart
	// scripts with. It differs from DebugScriptExtension so the two can
	// coexist next to one output path.
	DefaultScriptExtension = ".plt"
	// RenderSumExtension is the extension of the incremental-render digest
	// sidecar written next to a chart.
	RenderSumExtension = ".sum"
)
