// Package benchplot renders benchmark-report charts from measured samples and
// their precomputed statistical estimates. It assembles declarative chart
// descriptions (density curves, regression fits, bootstrap distributions,
// comparison overlays, and group summaries) and hands them to a pluggable
// render engine, collecting one handle per pending render so callers drain
// them when the report is assembled.
package benchplot

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/artifact"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/internal/introspect"
	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/charts"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

const scriptFilePerm = 0o644

// Plotter is the benchmark chart pipeline. It owns a render engine, a worker
// pool that parallelizes chart assembly, and the output directory layout the
// artifacts are written under. The chart operations derive paths from
// benchmark and group ids, assemble the figures, and launch the renders
// without blocking; every operation returns handles the caller drains.
type Plotter[T engine.IEngineConstrain] struct {
	engine        engine.IEngine[T] // render engine the assembled charts are launched on
	engineType    string            // registry name the engine was constructed from
	outputDir     string            // directory chart artifacts are written under
	settings      charts.Settings   // chart styling: font, canvas, palette, KDE resolution
	debug         bool              // write the render script next to each artifact
	incremental   bool              // skip renders whose script digest is unchanged
	workers       int               // size of the assembly worker pool
	pool          *WorkerPool       // worker pool the fan-out operations assemble charts on
	logger        Logger            // sink for non-fatal warnings
	reportAddr    string            // address of the optional report HTTP server
	reportOptions []ReportHTTPOption
	reportHTTP    *ReportHTTPServer
	stopped       atomic.Bool // set by Stop; operations fail fast afterwards
}

// New initializes a new Plotter with the given configuration.
// The EngineType in the config selects the engine constructor from the
// manager's registry; the registered constructor must produce engines of the
// type parameter T.
func New[T engine.IEngineConstrain](ctx context.Context, manager *EngineManager, config *Config[T]) (*Plotter[T], error) {
	plotter := &Plotter[T]{
		engineType: config.EngineType,
		outputDir:  constants.DefaultOutputDir,
		settings:   charts.DefaultSettings(),
		workers:    runtime.NumCPU(),
		logger:     stdLogger{},
	}

	// Apply options
	ApplyPlotterOptions(plotter, config.PlotterOptions...)

	constructor, ok := manager.engineRegistry[config.EngineType]
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrEngineNotFound, "engine type %q", config.EngineType)
	}

	typed, ok := constructor.(IEngineConstructor[T])
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidEngineType,
			"constructor registered for %q does not produce the requested engine type", config.EngineType)
	}

	renderEngine, err := typed.Create(config)
	if err != nil {
		return nil, ewrap.Wrap(err, "creating render engine")
	}

	plotter.engine = renderEngine
	plotter.pool = NewWorkerPool(plotter.workers)

	if plotter.reportAddr != "" {
		plotter.reportHTTP = NewReportHTTPServer(plotter.reportAddr, plotter.reportOptions...)

		err = plotter.reportHTTP.Start(ctx, plotter)
		if err != nil {
			plotter.pool.Shutdown()

			return nil, ewrap.Wrap(err, "starting report http server")
		}
	}

	return plotter, nil
}

// NewGnuplotWithDefaults creates a new Plotter backed by the gnuplot engine
// with default configuration, writing artifacts under outputDir.
func NewGnuplotWithDefaults(ctx context.Context, outputDir string) (*Plotter[engine.Gnuplot], error) {
	config := NewConfig[engine.Gnuplot](constants.GnuplotEngine)
	config.PlotterOptions = append(config.PlotterOptions, WithOutputDir[engine.Gnuplot](outputDir))

	return New(ctx, GetDefaultManager(), config)
}

// NewScriptWithDefaults creates a new Plotter backed by the script engine
// with default configuration, writing artifacts under outputDir. The script
// engine renders nothing; it writes the chart scripts instead.
func NewScriptWithDefaults(ctx context.Context, outputDir string) (*Plotter[engine.Script], error) {
	config := NewConfig[engine.Script](constants.ScriptEngine)
	config.PlotterOptions = append(config.PlotterOptions, WithOutputDir[engine.Script](outputDir))

	return New(ctx, GetDefaultManager(), config)
}

// OutputDir returns the directory chart artifacts are written under.
func (p *Plotter[T]) OutputDir() string {
	return p.outputDir
}

// EngineType returns the registry name the render engine was constructed from.
func (p *Plotter[T]) EngineType() string {
	return p.engineType
}

// EngineKind reports which engine implementation actually backs the plotter,
// resolved by runtime inspection rather than the registry name.
func (p *Plotter[T]) EngineKind() string {
	checker := &introspect.EngineChecker[T]{
		Engine:     p.engine,
		EngineType: p.engineType,
	}

	switch {
	case checker.IsGnuplot():
		return constants.GnuplotEngine
	case checker.IsScript():
		return constants.ScriptEngine
	default:
		return checker.GetRegisteredType()
	}
}

// Debug reports whether render scripts are written next to the artifacts.
func (p *Plotter[T]) Debug() bool {
	return p.debug
}

// IncrementalRenders reports whether unchanged renders are skipped.
func (p *Plotter[T]) IncrementalRenders() bool {
	return p.incremental
}

// Workers returns the size of the assembly worker pool.
func (p *Plotter[T]) Workers() int {
	return p.workers
}

// Settings returns the chart styling settings.
func (p *Plotter[T]) Settings() charts.Settings {
	return p.settings
}

// ReportHTTPAddress returns the bound address of the report HTTP server.
// Empty when the server is not enabled.
func (p *Plotter[T]) ReportHTTPAddress() string {
	if p.reportHTTP == nil {
		return ""
	}

	return p.reportHTTP.Address()
}

// Stop shuts down the worker pool and the report HTTP server. Operations
// invoked after Stop fail with ErrPlotterStopped. Stop does not wait for
// handles returned earlier; drain them before stopping.
func (p *Plotter[T]) Stop(ctx context.Context) error {
	if !p.stopped.CompareAndSwap(false, true) {
		return nil
	}

	p.pool.Shutdown()

	if p.reportHTTP != nil {
		err := p.reportHTTP.Shutdown(ctx)
		if err != nil {
			return ewrap.Wrap(err, "stopping report http server")
		}
	}

	return nil
}

// running guards every operation against use after Stop.
func (p *Plotter[T]) running() error {
	if p.stopped.Load() {
		return sentinel.ErrPlotterStopped
	}

	return nil
}

// DensitySmall renders the compact density chart of a sample to path.
func (p *Plotter[T]) DensitySmall(
	ctx context.Context,
	sample stats.Sample,
	path string,
	size figure.Size,
) (engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	err = artifact.MkdirP(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	fig, err := charts.DensitySmall(p.settings, sample, path, size)
	if err != nil {
		return nil, err
	}

	return p.render(ctx, fig)
}

// Density renders the full density chart of a benchmark to path, with the
// sample scattered by outlier class and the Tukey fences marked.
func (p *Plotter[T]) Density(
	ctx context.Context,
	data *stats.Data,
	labeled *stats.LabeledSample,
	id, path string,
	size figure.Size,
) (engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	err = artifact.MkdirP(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	fig, err := charts.Density(p.settings, data, labeled, id, path, size)
	if err != nil {
		return nil, err
	}

	return p.render(ctx, fig)
}

// Regression renders the linear-regression chart of a benchmark to path.
// In thumbnail mode the title and key are suppressed.
func (p *Plotter[T]) Regression(
	ctx context.Context,
	data *stats.Data,
	slope stats.Estimate,
	id, path string,
	size figure.Size,
	thumbnail bool,
) (engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	err = artifact.MkdirP(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	fig, err := charts.Regression(p.settings, data, slope, id, path, size, thumbnail)
	if err != nil {
		return nil, err
	}

	return p.render(ctx, fig)
}

// AbsDistributions renders one bootstrap-distribution chart per statistic
// under {outputDir}/{id}/new, returning the handles in the canonical
// statistic order. Every statistic in dists must carry an estimate in ests.
func (p *Plotter[T]) AbsDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
) ([]engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(p.outputDir, id, constants.NewSample)

	err = artifact.MkdirP(dir)
	if err != nil {
		return nil, err
	}

	statistics := dists.Statistics()

	figs, err := p.assemble(len(statistics), func(i int) (*figure.Figure, error) {
		statistic := statistics[i]

		estimate, ok := ests[statistic]
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrStatisticNotFound, "%s", statistic)
		}

		path := filepath.Join(dir, string(statistic)+".svg")

		return charts.AbsDistribution(p.settings, stats.Sample(dists[statistic]), estimate, statistic, id, path)
	})
	if err != nil {
		return nil, err
	}

	return p.renderAll(ctx, figs)
}

// RelDistributions renders one relative-change chart per statistic under
// {outputDir}/{id}/change, returning the handles in the canonical statistic
// order. The charts share one base figure; each render clones it, so the
// cloned skeleton is assembled only once.
func (p *Plotter[T]) RelDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
	noiseThreshold float64,
) ([]engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(p.outputDir, id, constants.ChangeDir)

	err = artifact.MkdirP(dir)
	if err != nil {
		return nil, err
	}

	statistics := dists.Statistics()
	base := charts.NewRelDistributionBase(p.settings)

	figs, err := p.assemble(len(statistics), func(i int) (*figure.Figure, error) {
		statistic := statistics[i]

		estimate, ok := ests[statistic]
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrStatisticNotFound, "%s", statistic)
		}

		path := filepath.Join(dir, string(statistic)+".svg")

		return charts.RelDistribution(base, p.settings, stats.Sample(dists[statistic]), estimate, statistic, id, path, noiseThreshold)
	})
	if err != nil {
		return nil, err
	}

	return p.renderAll(ctx, figs)
}

// TTest renders the Welch t-test chart of a comparison under
// {outputDir}/{id}/change.
func (p *Plotter[T]) TTest(
	ctx context.Context,
	tScore float64,
	dist stats.Distribution,
	id string,
) (engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(p.outputDir, id, constants.ChangeDir)

	err = artifact.MkdirP(dir)
	if err != nil {
		return nil, err
	}

	fig, err := charts.TTest(p.settings, tScore, stats.Sample(dist), id, filepath.Join(dir, "t-test.svg"))
	if err != nil {
		return nil, err
	}

	return p.render(ctx, fig)
}

// ComparisonDensity renders the overlaid base/new density chart of a
// comparison under {outputDir}/{id}/both.
func (p *Plotter[T]) ComparisonDensity(
	ctx context.Context,
	baseAvgTimes, newAvgTimes stats.Sample,
	id string,
) (engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(p.outputDir, id, constants.BothDir)

	err = artifact.MkdirP(dir)
	if err != nil {
		return nil, err
	}

	fig, err := charts.ComparisonDensity(p.settings, baseAvgTimes, newAvgTimes, id, filepath.Join(dir, "pdf.svg"), figure.Size{})
	if err != nil {
		return nil, err
	}

	return p.render(ctx, fig)
}

// ComparisonRegression renders the overlaid base/new regression chart of a
// comparison under {outputDir}/{id}/both.
func (p *Plotter[T]) ComparisonRegression(
	ctx context.Context,
	baseData, newData *stats.Data,
	baseSlope, newSlope stats.Estimate,
	id string,
) (engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(p.outputDir, id, constants.BothDir)

	err = artifact.MkdirP(dir)
	if err != nil {
		return nil, err
	}

	fig, err := charts.ComparisonRegression(
		p.settings, baseData, newData, baseSlope, newSlope, id, filepath.Join(dir, "regression.svg"), figure.Size{})
	if err != nil {
		return nil, err
	}

	return p.render(ctx, fig)
}

// assemble runs one chart-assembly job per index on the worker pool and
// waits for the batch. Jobs capture their results locally, so assembly
// failures never reach the pool's error channel; they are collected here and
// reported together. The returned figures keep index order.
func (p *Plotter[T]) assemble(count int, job func(i int) (*figure.Figure, error)) ([]*figure.Figure, error) {
	figs := make([]*figure.Figure, count)
	errs := make([]error, count)

	var wg sync.WaitGroup

	wg.Add(count)

	for i := range count {
		p.pool.Enqueue(func() error {
			defer wg.Done()

			figs[i], errs[i] = job(i)

			return nil
		})
	}

	wg.Wait()

	eg := ewrap.NewErrorGroup()
	for _, err := range errs {
		if err != nil {
			eg.Add(err)
		}
	}

	err := eg.ErrorOrNil()
	if err != nil {
		return nil, err
	}

	return figs, nil
}

// renderAll launches the assembled figures in order. A launch failure aborts
// the batch: the handles already launched are drained so no render is left
// running, and their failures are reported together with the launch error.
func (p *Plotter[T]) renderAll(ctx context.Context, figs []*figure.Figure) ([]engine.Handle, error) {
	handles := make([]engine.Handle, 0, len(figs))

	for _, fig := range figs {
		handle, err := p.render(ctx, fig)
		if err != nil {
			eg := ewrap.NewErrorGroup()
			eg.Add(err)

			waitErr := engine.WaitAll(handles)
			if waitErr != nil {
				eg.Add(waitErr)
			}

			return nil, eg.ErrorOrNil()
		}

		handles = append(handles, handle)
	}

	return handles, nil
}

// render serializes the figure once and hands it to the engine, honoring the
// debug and incremental settings.
func (p *Plotter[T]) render(ctx context.Context, fig *figure.Figure) (engine.Handle, error) {
	script, err := fig.Script()
	if err != nil {
		return nil, err
	}

	if p.debug {
		p.writeDebugScript(fig.Output, script)
	}

	if p.incremental {
		handle, cached := p.cachedRender(fig.Output, script)
		if cached {
			return handle, nil
		}
	}

	return p.engine.Render(ctx, script, fig.Output)
}

// writeDebugScript writes the render script next to the output artifact.
// Failures are warnings; the render itself proceeds.
func (p *Plotter[T]) writeDebugScript(output, script string) {
	path := output[:len(output)-len(filepath.Ext(output))] + constants.DebugScriptExtension

	err := os.WriteFile(path, []byte(script), scriptFilePerm)
	if err != nil {
		p.logger.Printf("writing debug script %s: %v", path, err)
	}
}

// cachedRender reports whether the artifact at output is already the result
// of rendering exactly this script, comparing the script digest against the
// .sum sidecar. On a miss the new digest is recorded before the render is
// launched; sidecar write failures are warnings, never render failures.
func (p *Plotter[T]) cachedRender(output, script string) (engine.Handle, bool) {
	digest := strconv.FormatUint(xxhash.Sum64String(script), 16)
	sumPath := output + constants.RenderSumExtension

	previous, err := os.ReadFile(sumPath)
	if err == nil && string(previous) == digest {
		_, statErr := os.Stat(output)
		if statErr == nil {
			return engine.NewCompletedHandle(output, nil), true
		}
	}

	err = os.WriteFile(sumPath, []byte(digest), scriptFilePerm)
	if err != nil {
		p.logger.Printf("writing render digest %s: %v", sumPath, err)
	}

	return nil, false
}
