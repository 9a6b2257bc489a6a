// Package ingest converts `go test -bench` output into the on-disk artifact
// layout the plotter consumes. Each benchmark name becomes one directory of
// the current generation holding the raw sample and its statistical
// estimates, so a result file produced with `-count=N` can feed the charting
// pipeline directly.
package ingest

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"

	"github.com/hyp3rd/benchplot/internal/artifact"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

const (
	// minRuns is the smallest run count an estimate is meaningful for.
	minRuns = 2

	nanosPerSecond = 1e9
)

// Entry describes one ingested benchmark.
type Entry struct {
	// Name is the full benchmark name, including sub-benchmark path and
	// GOMAXPROCS suffix. It doubles as the benchmark identifier.
	Name string
	// Runs is the number of runs aggregated into the sample.
	Runs int
	// Dir is the generation directory the artifacts were written to.
	Dir string
}

// Ingest parses the named benchmark result files, groups the results by full
// benchmark name, and writes each group's sample and estimates artifacts
// under outputDir. Names with fewer than two runs are skipped, matching the
// summary aggregator's degradation policy. Entries are returned in first-seen
// order.
func Ingest(files []string, outputDir string) ([]Entry, error) {
	if len(files) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "benchmark result files")
	}

	groups, order, err := scan(files)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(order))
	errGroup := ewrap.NewErrorGroup()

	for _, name := range order {
		raw := groups[name]

		estimates, err := estimate(raw)
		if errors.Is(err, sentinel.ErrNotEnoughRuns) {
			continue
		}

		if err != nil {
			errGroup.Add(ewrap.Wrapf(err, "estimating %s", name))

			continue
		}

		entry, err := write(name, raw, estimates, outputDir)
		if err != nil {
			errGroup.Add(err)

			continue
		}

		entries = append(entries, entry)
	}

	err = errGroup.ErrorOrNil()
	if err != nil {
		return entries, err
	}

	return entries, nil
}

// scan reads every benchmark result record from the files and accumulates
// per-run iteration counts and total elapsed nanoseconds per benchmark name.
// Records without a time value and malformed lines are skipped.
func scan(files []string) (map[string]stats.RawSample, []string, error) {
	groups := make(map[string]stats.RawSample)
	order := make([]string, 0, len(files))

	benchFiles := &benchfmt.Files{Paths: files, AllowLabels: true}
	for benchFiles.Scan() {
		result, ok := benchFiles.Result().(*benchfmt.Result)
		if !ok {
			continue
		}

		secPerOp, ok := result.Value("sec/op")
		if !ok {
			continue
		}

		name := string(result.Name)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}

		iters := float64(result.Iters)
		raw := groups[name]
		raw.Iters = append(raw.Iters, iters)
		raw.Times = append(raw.Times, secPerOp*nanosPerSecond*iters)
		groups[name] = raw
	}

	err := benchFiles.Err()
	if err != nil {
		return nil, nil, ewrap.Wrap(err, "reading benchmark files")
	}

	return groups, order, nil
}

// estimate summarizes a raw sample into the Mean, Median, and Slope
// estimates the charts consume. Mean uses the normal-assumption summary,
// Median the assumption-free one. Slope is the least-squares fit through the
// origin over (iterations, total time); its interval reuses the mean
// summary's spread re-centered on the fitted slope.
func estimate(raw stats.RawSample) (stats.Estimates, error) {
	if len(raw.Iters) < minRuns {
		return nil, ewrap.Wrapf(sentinel.ErrNotEnoughRuns, "%d run(s)", len(raw.Iters))
	}

	avgTimes, err := raw.AvgTimes()
	if err != nil {
		return nil, err
	}

	thresholds := benchmath.DefaultThresholds
	sample := benchmath.NewSample(avgTimes, &thresholds)

	meanSummary := benchmath.AssumeNormal.Summary(sample, constants.DefaultConfidenceLevel)
	medianSummary := benchmath.AssumeNothing.Summary(sample, constants.DefaultConfidenceLevel)

	slope := fitSlope(raw.Iters, raw.Times)

	return stats.Estimates{
		stats.Mean:   summaryEstimate(meanSummary.Center, meanSummary.Lo, meanSummary.Hi),
		stats.Median: summaryEstimate(medianSummary.Center, medianSummary.Lo, medianSummary.Hi),
		stats.Slope: summaryEstimate(slope,
			slope-(meanSummary.Center-meanSummary.Lo),
			slope+(meanSummary.Hi-meanSummary.Center)),
	}, nil
}

// summaryEstimate brackets a point estimate with a confidence interval at the
// default level. The standard error is approximated from the interval width,
// matching the normal-quantile spread at 95% confidence.
func summaryEstimate(center, lower, upper float64) stats.Estimate {
	return stats.Estimate{
		ConfidenceInterval: stats.ConfidenceInterval{
			ConfidenceLevel: constants.DefaultConfidenceLevel,
			LowerBound:      lower,
			UpperBound:      upper,
		},
		PointEstimate: center,
		StandardError: (upper - lower) / 4,
	}
}

// fitSlope fits y = slope*x through the origin by least squares.
func fitSlope(xs, ys []float64) float64 {
	var xy, xx float64

	for i, x := range xs {
		xy += x * ys[i]
		xx += x * x
	}

	if xx == 0 {
		return 0
	}

	return xy / xx
}

// write sorts the runs by ascending iteration count and stores the sample and
// estimates artifacts under {outputDir}/{name}/new.
func write(name string, raw stats.RawSample, estimates stats.Estimates, outputDir string) (Entry, error) {
	sort.Sort(byIters{&raw})

	dir := filepath.Join(outputDir, name, constants.NewSample)

	err := artifact.MkdirP(dir)
	if err != nil {
		return Entry{}, ewrap.Wrapf(err, "creating generation directory for %s", name)
	}

	err = artifact.Store(filepath.Join(dir, constants.SampleFile), raw)
	if err != nil {
		return Entry{}, ewrap.Wrapf(err, "storing sample for %s", name)
	}

	err = artifact.Store(filepath.Join(dir, constants.EstimatesFile), estimates)
	if err != nil {
		return Entry{}, ewrap.Wrapf(err, "storing estimates for %s", name)
	}

	return Entry{Name: name, Runs: len(raw.Iters), Dir: dir}, nil
}

// byIters sorts a raw sample's paired runs by iteration count.
type byIters struct {
	raw *stats.RawSample
}

func (b byIters) Len() int { return len(b.raw.Iters) }

func (b byIters) Less(i, j int) bool { return b.raw.Iters[i] < b.raw.Iters[j] }

func (b byIters) Swap(i, j int) {
	b.raw.Iters[i], b.raw.Iters[j] = b.raw.Iters[j], b.raw.Iters[i]
	b.raw.Times[i], b.raw.Times[j] = b.raw.Times[j], b.raw.Times[i]
}
