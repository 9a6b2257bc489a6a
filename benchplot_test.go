package benchplot_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// newScriptPlotter builds a plotter on the script engine writing into a
// temporary directory, so tests can inspect the emitted chart scripts.
func newScriptPlotter(t *testing.T, opts ...benchplot.Option[engine.Script]) *benchplot.Plotter[engine.Script] {
	t.Helper()

	cfg := benchplot.NewConfig[engine.Script](constants.ScriptEngine)
	cfg.PlotterOptions = append(cfg.PlotterOptions, benchplot.WithOutputDir[engine.Script](t.TempDir()))
	cfg.PlotterOptions = append(cfg.PlotterOptions, opts...)

	plotter, err := benchplot.New(context.Background(), benchplot.GetDefaultManager(), cfg)
	assert.NoError(t, err)

	return plotter
}

func testEstimate(lb, point, ub float64) stats.Estimate {
	return stats.Estimate{
		ConfidenceInterval: stats.ConfidenceInterval{
			ConfidenceLevel: 0.95,
			LowerBound:      lb,
			UpperBound:      ub,
		},
		PointEstimate: point,
		StandardError: (ub - lb) / 4,
	}
}

func TestNewUnknownEngineType(t *testing.T) {
	cfg := benchplot.NewConfig[engine.Script]("raster")

	_, err := benchplot.New(context.Background(), benchplot.GetDefaultManager(), cfg)
	assert.True(t, err != nil)
	assert.True(t, errors.Is(err, sentinel.ErrEngineNotFound))
}

func TestNewMismatchedConstructor(t *testing.T) {
	// A gnuplot constructor registered under the script name cannot produce
	// engines of the requested type parameter.
	manager := benchplot.NewEmptyEngineManager()
	manager.RegisterEngine(constants.ScriptEngine, benchplot.GnuplotEngineConstructor{})

	cfg := benchplot.NewConfig[engine.Script](constants.ScriptEngine)

	_, err := benchplot.New(context.Background(), manager, cfg)
	assert.True(t, err != nil)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidEngineType))
}

func TestNewScriptWithDefaults(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	plotter, err := benchplot.NewScriptWithDefaults(ctx, dir)
	assert.NoError(t, err)

	defer plotter.Stop(ctx)

	assert.Equal(t, dir, plotter.OutputDir())
	assert.Equal(t, constants.ScriptEngine, plotter.EngineType())
	assert.Equal(t, constants.ScriptEngine, plotter.EngineKind())
	assert.Equal(t, "", plotter.ReportHTTPAddress())
}

func TestDensitySmallWritesScript(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	defer plotter.Stop(ctx)

	path := filepath.Join(plotter.OutputDir(), "walk_dir", "new", "pdf_small.svg")

	handle, err := plotter.DensitySmall(ctx, stats.Sample{10, 11, 12, 13, 14}, path, figure.Size{})
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())

	scriptPath := filepath.Join(filepath.Dir(path), "pdf_small.plt")
	assert.Equal(t, scriptPath, handle.Path())

	script, err := os.ReadFile(scriptPath)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(script), "plot"))
	assert.True(t, strings.Contains(string(script), "set output"))
}

func TestAbsDistributionsCanonicalOrder(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	defer plotter.Stop(ctx)

	dist := stats.Distribution{10, 11, 12, 13, 14}
	dists := stats.Distributions{
		stats.Median: dist,
		stats.Mean:   dist,
	}
	ests := stats.Estimates{
		stats.Mean:   testEstimate(11, 12, 13),
		stats.Median: testEstimate(11, 12, 13),
	}

	handles, err := plotter.AbsDistributions(ctx, dists, ests, "alloc")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(handles))
	assert.NoError(t, engine.WaitAll(handles))

	// mean precedes median regardless of map iteration order
	assert.True(t, strings.HasSuffix(handles[0].Path(), filepath.Join("alloc", "new", "mean.plt")))
	assert.True(t, strings.HasSuffix(handles[1].Path(), filepath.Join("alloc", "new", "median.plt")))

	for _, handle := range handles {
		_, err := os.Stat(handle.Path())
		assert.NoError(t, err)
	}
}

func TestAbsDistributionsMissingEstimate(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	defer plotter.Stop(ctx)

	dists := stats.Distributions{
		stats.Mean:   {10, 11, 12, 13, 14},
		stats.Median: {10, 11, 12, 13, 14},
	}
	ests := stats.Estimates{
		stats.Mean: testEstimate(11, 12, 13),
	}

	_, err := plotter.AbsDistributions(ctx, dists, ests, "alloc")
	assert.True(t, err != nil)
	assert.True(t, errors.Is(err, sentinel.ErrStatisticNotFound))
}

func TestRelDistributions(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	defer plotter.Stop(ctx)

	dist := stats.Distribution{0.04, 0.05, 0.06, 0.05, 0.045}
	dists := stats.Distributions{
		stats.Mean:   dist,
		stats.Median: dist,
	}
	ests := stats.Estimates{
		stats.Mean:   testEstimate(0.045, 0.05, 0.055),
		stats.Median: testEstimate(0.045, 0.05, 0.055),
	}

	handles, err := plotter.RelDistributions(ctx, dists, ests, "alloc", 0.02)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(handles))
	assert.NoError(t, engine.WaitAll(handles))

	assert.True(t, strings.HasSuffix(handles[0].Path(), filepath.Join("alloc", "change", "mean.plt")))
	assert.True(t, strings.HasSuffix(handles[1].Path(), filepath.Join("alloc", "change", "median.plt")))
}

func TestTTestWritesUnderChange(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	defer plotter.Stop(ctx)

	handle, err := plotter.TTest(ctx, 2.5, stats.Distribution{-1.5, -0.5, 0, 0.5, 1.5}, "alloc")
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())
	assert.True(t, strings.HasSuffix(handle.Path(), filepath.Join("alloc", "change", "t-test.plt")))
}

func TestComparisonChartsWriteUnderBoth(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	defer plotter.Stop(ctx)

	baseSample := stats.Sample{10, 11, 12, 13, 14}
	newSample := stats.Sample{9, 10, 11, 12, 13}

	handle, err := plotter.ComparisonDensity(ctx, baseSample, newSample, "alloc")
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())
	assert.True(t, strings.HasSuffix(handle.Path(), filepath.Join("alloc", "both", "pdf.plt")))

	baseData, err := stats.NewData([]float64{100, 200, 300}, []float64{1000, 2000, 3000})
	assert.NoError(t, err)

	newData, err := stats.NewData([]float64{100, 200, 300}, []float64{900, 1800, 2700})
	assert.NoError(t, err)

	handle, err = plotter.ComparisonRegression(ctx,
		baseData, newData,
		testEstimate(9.5, 10, 10.5), testEstimate(8.5, 9, 9.5),
		"alloc")
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())
	assert.True(t, strings.HasSuffix(handle.Path(), filepath.Join("alloc", "both", "regression.plt")))
}

func TestDebugWritesScriptSidecar(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t, benchplot.WithDebug[engine.Script](true))

	defer plotter.Stop(ctx)

	path := filepath.Join(plotter.OutputDir(), "alloc", "new", "pdf_small.svg")

	handle, err := plotter.DensitySmall(ctx, stats.Sample{10, 11, 12, 13, 14}, path, figure.Size{})
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())

	debugPath := filepath.Join(filepath.Dir(path), "pdf_small"+constants.DebugScriptExtension)

	_, err = os.Stat(debugPath)
	assert.NoError(t, err)
}

func TestIncrementalRendersSkipUnchanged(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t, benchplot.WithIncrementalRenders[engine.Script](true))

	defer plotter.Stop(ctx)

	sample := stats.Sample{10, 11, 12, 13, 14}
	path := filepath.Join(plotter.OutputDir(), "alloc", "new", "pdf_small.svg")
	scriptPath := filepath.Join(filepath.Dir(path), "pdf_small.plt")

	handle, err := plotter.DensitySmall(ctx, sample, path, figure.Size{})
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())

	// digest sidecar recorded next to the output
	_, err = os.Stat(path + constants.RenderSumExtension)
	assert.NoError(t, err)

	// simulate the rendered artifact and drop the script so a re-render
	// would be observable
	assert.NoError(t, os.WriteFile(path, []byte("svg"), 0o644))
	assert.NoError(t, os.Remove(scriptPath))

	handle, err = plotter.DensitySmall(ctx, sample, path, figure.Size{})
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())
	assert.Equal(t, path, handle.Path())

	_, err = os.Stat(scriptPath)
	assert.True(t, os.IsNotExist(err))

	// a different sample changes the digest and forces the render
	handle, err = plotter.DensitySmall(ctx, stats.Sample{20, 21, 22, 23, 24}, path, figure.Size{})
	assert.NoError(t, err)
	assert.NoError(t, handle.Wait())
	assert.Equal(t, scriptPath, handle.Path())

	_, err = os.Stat(scriptPath)
	assert.NoError(t, err)
}

func TestStopRejectsFurtherOperations(t *testing.T) {
	ctx := context.Background()
	plotter := newScriptPlotter(t)

	assert.NoError(t, plotter.Stop(ctx))
	// stopping twice is harmless
	assert.NoError(t, plotter.Stop(ctx))

	_, err := plotter.DensitySmall(ctx, stats.Sample{10, 11, 12}, filepath.Join(plotter.OutputDir(), "pdf.svg"), figure.Size{})
	assert.True(t, errors.Is(err, sentinel.ErrPlotterStopped))

	_, err = plotter.Summarize(ctx, "group", []string{"a", "b"})
	assert.True(t, errors.Is(err, sentinel.ErrPlotterStopped))
}
