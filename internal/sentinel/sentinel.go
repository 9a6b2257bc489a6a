// Package sentinel provides standardized error definitions for the benchplot system.
// This package centralizes all error types used across the benchplot components,
// ensuring consistent error handling and messaging throughout the pipeline.
//
// The errors defined here cover various scenarios including:
// - Invalid inputs to the geometry and statistics routines (empty samples, mismatched lengths)
// - Domain-contract violations (interpolation outside a curve's domain, empty windows)
// - Component lookup failures (render engines, serializers)
// - Figure assembly and render invocation errors (missing output path, invalid size)
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidEngineType is returned when an unknown render engine type is requested.
	ErrInvalidEngineType = ewrap.New("invalid engine type")

	// ErrEngineNotFound is returned when a render engine is not registered.
	ErrEngineNotFound = ewrap.New("render engine not found")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrEmptySample is returned when a statistic is requested over a sample with no observations.
	ErrEmptySample = ewrap.New("empty sample")

	// ErrMismatchedLengths is returned when paired sequences do not have the same length.
	ErrMismatchedLengths = ewrap.New("mismatched sequence lengths")

	// ErrOutOfDomain is returned when an interpolation target lies outside the curve domain.
	ErrOutOfDomain = ewrap.New("value outside curve domain")

	// ErrEmptyWindow is returned when a confidence window does not intersect the curve domain.
	ErrEmptyWindow = ewrap.New("window outside curve domain")

	// ErrDegenerateCurve is returned when interpolation hits two identical consecutive x values.
	ErrDegenerateCurve = ewrap.New("degenerate curve segment")

	// ErrInvalidEstimate is returned when an estimate does not sit inside its own confidence interval.
	ErrInvalidEstimate = ewrap.New("point estimate outside confidence interval")

	// ErrInvalidFences is returned when outlier fences are not monotonically ordered.
	ErrInvalidFences = ewrap.New("fences not monotonically ordered")

	// ErrMissingOutput is returned when a figure has no output path set.
	ErrMissingOutput = ewrap.New("figure output path not set")

	// ErrInvalidSize is returned when a figure size has a non-positive dimension.
	ErrInvalidSize = ewrap.New("invalid figure size")

	// ErrNoSeries is returned when a figure carries no series to plot.
	ErrNoSeries = ewrap.New("figure has no series")

	// ErrStatisticNotFound is returned when an estimate is missing for a reported statistic.
	ErrStatisticNotFound = ewrap.New("statistic not found in estimates")

	// ErrPlotterStopped is returned when an operation is invoked on a stopped plotter.
	ErrPlotterStopped = ewrap.New("plotter stopped")

	// ErrReportHTTPShutdownTimeout is returned when the report HTTP server shutdown exceeds the context deadline.
	ErrReportHTTPShutdownTimeout = ewrap.New("report http shutdown timeout")

	// ErrPathOutsideOutputDir is returned when a report request resolves outside the output directory.
	ErrPathOutsideOutputDir = ewrap.New("path escapes output directory")

	// ErrNotEnoughRuns is returned when ingest finds fewer than two runs for a benchmark.
	ErrNotEnoughRuns = ewrap.New("not enough benchmark runs")
)
