package benchplot

import (
	"runtime"

	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/pkg/charts"
	"github.com/hyp3rd/benchplot/pkg/engine"
)

// Config is a struct that wraps all the configuration options to setup a `Plotter` and its render engine.
type Config[T engine.IEngineConstrain] struct {
	// EngineType selects the render engine constructor from the registry.
	EngineType string
	// GnuplotOptions is a slice of options that can be used to configure the `Gnuplot` engine.
	GnuplotOptions []engine.Option[engine.Gnuplot]
	// ScriptOptions is a slice of options that can be used to configure the `Script` engine.
	ScriptOptions []engine.Option[engine.Script]
	// PlotterOptions is a slice of options that can be used to configure the `Plotter`.
	PlotterOptions []Option[T]
}

// NewConfig returns a new `Config` struct with default values:
//   - `GnuplotOptions` is empty
//   - `ScriptOptions` is empty
//   - `PlotterOptions` is set to:
//     -- `WithOutputDir[T](constants.DefaultOutputDir)`
//     -- `WithWorkers[T](runtime.NumCPU())`
//
// Each of the above options can be overridden by appending a different option
// to `PlotterOptions`; later options win.
func NewConfig[T engine.IEngineConstrain](engineType string) *Config[T] {
	return &Config[T]{
		EngineType:     engineType,
		GnuplotOptions: []engine.Option[engine.Gnuplot]{},
		ScriptOptions:  []engine.Option[engine.Script]{},
		PlotterOptions: []Option[T]{
			WithOutputDir[T](constants.DefaultOutputDir),
			WithWorkers[T](runtime.NumCPU()),
		},
	}
}

// Option is a function type that can be used to configure the `Plotter` struct.
type Option[T engine.IEngineConstrain] func(*Plotter[T])

// ApplyPlotterOptions applies the given options to the given plotter.
func ApplyPlotterOptions[T engine.IEngineConstrain](plotter *Plotter[T], options ...Option[T]) {
	for _, option := range options {
		option(plotter)
	}
}

// WithOutputDir is an option that sets the directory chart artifacts are
// written under. Operations that derive paths from a benchmark or group id
// resolve them against this directory.
func WithOutputDir[T engine.IEngineConstrain](dir string) Option[T] {
	return func(plotter *Plotter[T]) {
		if dir == "" {
			dir = constants.DefaultOutputDir
		}

		plotter.outputDir = dir
	}
}

// WithSettings is an option that replaces the chart styling settings of the
// `Plotter` struct: font, canvas size, palette, line and point sizing, and
// the density-estimation resolution.
func WithSettings[T engine.IEngineConstrain](settings charts.Settings) Option[T] {
	return func(plotter *Plotter[T]) {
		plotter.settings = settings
	}
}

// WithDebug is an option that enables writing the render script next to each
// artifact with a .gnuplot extension before rendering. A script write failure
// is logged and does not fail the render.
func WithDebug[T engine.IEngineConstrain](enabled bool) Option[T] {
	return func(plotter *Plotter[T]) {
		plotter.debug = enabled
	}
}

// WithIncrementalRenders is an option that enables skipping renders whose
// script digest matches the previous run. The digest is kept in a .sum file
// next to the artifact; a digest match with an existing artifact returns a
// completed handle without launching the engine.
func WithIncrementalRenders[T engine.IEngineConstrain](enabled bool) Option[T] {
	return func(plotter *Plotter[T]) {
		plotter.incremental = enabled
	}
}

// WithWorkers is an option that sets the size of the render worker pool used
// by the fan-out operations.
func WithWorkers[T engine.IEngineConstrain](workers int) Option[T] {
	return func(plotter *Plotter[T]) {
		// If the workers count is less than 1, fall back to one worker per CPU.
		if workers < 1 {
			workers = runtime.NumCPU()
		}

		plotter.workers = workers
	}
}

// WithLogger is an option that sets the logger used for the non-fatal
// warnings the pipeline emits.
func WithLogger[T engine.IEngineConstrain](logger Logger) Option[T] {
	return func(plotter *Plotter[T]) {
		if logger == nil {
			return
		}

		plotter.logger = logger
	}
}

// WithReportHTTP is an option that enables the report HTTP server on the
// given address. Pass "127.0.0.1:0" for an ephemeral port and read the bound
// address from `ReportHTTPAddress`.
func WithReportHTTP[T engine.IEngineConstrain](addr string, opts ...ReportHTTPOption) Option[T] {
	return func(plotter *Plotter[T]) {
		plotter.reportAddr = addr
		plotter.reportOptions = opts
	}
}
