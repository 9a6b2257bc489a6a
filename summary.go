package benchplot

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/artifact"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/charts"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// summaryEntry is one benchmark of a group with the artifacts of a single
// generation loaded.
type summaryEntry struct {
	label     string
	input     float64
	numeric   bool
	estimates stats.Estimates
	avgTimes  stats.Sample
}

// Summarize renders the summary charts of a benchmark group: per-statistic
// charts of every benchmark in the group, for the new and the base result
// generation independently. When every benchmark label parses as a
// non-negative number the group is treated as a sweep over an input size and
// summarized with error-bar charts over that input; otherwise the benchmarks
// are ranked by point estimate and summarized with ordinal charts plus a
// violin plot of the full timing distributions.
//
// Benchmarks whose artifacts are missing or unreadable are skipped, and a
// generation with fewer than two usable benchmarks produces no charts.
func (p *Plotter[T]) Summarize(ctx context.Context, groupID string, ids []string) ([]engine.Handle, error) {
	err := p.running()
	if err != nil {
		return nil, err
	}

	var handles []engine.Handle

	for _, generation := range []string{constants.NewSample, constants.BaseSample} {
		generationHandles, err := p.summarizeGeneration(ctx, groupID, ids, generation)
		if err != nil {
			eg := ewrap.NewErrorGroup()
			eg.Add(err)

			waitErr := engine.WaitAll(handles)
			if waitErr != nil {
				eg.Add(waitErr)
			}

			return nil, eg.ErrorOrNil()
		}

		handles = append(handles, generationHandles...)
	}

	return handles, nil
}

func (p *Plotter[T]) summarizeGeneration(
	ctx context.Context,
	groupID string,
	ids []string,
	generation string,
) ([]engine.Handle, error) {
	entries := p.loadSummaryEntries(ids, generation)
	// A summary of a single benchmark carries no information.
	if len(entries) < 2 {
		return nil, nil
	}

	summaryDir := filepath.Join(p.outputDir, groupID, constants.SummaryDir, generation)

	err := artifact.MkdirP(summaryDir)
	if err != nil {
		p.logger.Printf("creating summary directory %s: %v", summaryDir, err)

		return nil, nil
	}

	if allNumeric(entries) {
		return p.summarizeNumeric(ctx, groupID, entries, summaryDir)
	}

	return p.summarizeRanked(ctx, groupID, entries, summaryDir)
}

// loadSummaryEntries loads the per-benchmark artifacts of one generation.
// Ids that are not directories, name the summary directory, or whose
// artifacts fail to load are skipped.
func (p *Plotter[T]) loadSummaryEntries(ids []string, generation string) []summaryEntry {
	entries := make([]summaryEntry, 0, len(ids))

	for _, id := range ids {
		dir := filepath.Join(p.outputDir, id)
		if filepath.Base(dir) == constants.SummaryDir {
			continue
		}

		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		generationDir := filepath.Join(dir, generation)

		estimates, ok := artifact.Load[stats.Estimates](filepath.Join(generationDir, constants.EstimatesFile))
		if !ok {
			continue
		}

		raw, ok := artifact.Load[stats.RawSample](filepath.Join(generationDir, constants.SampleFile))
		if !ok {
			continue
		}

		avgTimes, err := raw.AvgTimes()
		if err != nil {
			continue
		}

		entry := summaryEntry{
			label:     filepath.Base(dir),
			estimates: estimates,
			avgTimes:  avgTimes,
		}
		entry.input, entry.numeric = parseInputLabel(entry.label)

		entries = append(entries, entry)
	}

	return entries
}

// parseInputLabel parses a benchmark label as a numeric input size. Labels
// that do not parse, or parse negative or non-finite, force the ranked
// summary mode for the whole group.
func parseInputLabel(label string) (float64, bool) {
	value, err := strconv.ParseFloat(label, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, false
	}

	return value, true
}

func allNumeric(entries []summaryEntry) bool {
	for _, entry := range entries {
		if !entry.numeric {
			return false
		}
	}

	return true
}

// statisticEstimates collects the statistic's estimate from every entry, in
// entry order.
func statisticEstimates(entries []summaryEntry, statistic stats.Statistic) ([]stats.Estimate, error) {
	estimates := make([]stats.Estimate, len(entries))

	for i, entry := range entries {
		estimate, ok := entry.estimates[statistic]
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrStatisticNotFound, "%s of %s", statistic, entry.label)
		}

		estimates[i] = estimate
	}

	return estimates, nil
}

// summarizeNumeric renders the per-statistic error-bar charts of a group
// whose benchmarks sweep a numeric input size. Entries are drawn in
// ascending input order.
func (p *Plotter[T]) summarizeNumeric(
	ctx context.Context,
	groupID string,
	entries []summaryEntry,
	summaryDir string,
) ([]engine.Handle, error) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].input < entries[j].input
	})

	inputs := make([]float64, len(entries))
	for i, entry := range entries {
		inputs[i] = entry.input
	}

	statistics := []stats.Statistic{stats.Mean, stats.Median, stats.Slope}

	figs, err := p.assemble(len(statistics), func(i int) (*figure.Figure, error) {
		statistic := statistics[i]

		estimates, err := statisticEstimates(entries, statistic)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(summaryDir, fmt.Sprintf("%ss.svg", statistic))

		return charts.SummaryErrorBars(p.settings, groupID, statistic, inputs, estimates, path)
	})
	if err != nil {
		return nil, err
	}

	return p.renderAll(ctx, figs)
}

// summarizeRanked renders the per-statistic ranked charts of a categorical
// group plus the violin plot. Each pass re-sorts the entries by descending
// point estimate of its statistic; the Median pass runs last so the violin
// rows inherit the median ranking.
func (p *Plotter[T]) summarizeRanked(
	ctx context.Context,
	groupID string,
	entries []summaryEntry,
	summaryDir string,
) ([]engine.Handle, error) {
	statistics := []stats.Statistic{stats.Mean, stats.Slope, stats.Median}

	type rankedPass struct {
		statistic stats.Statistic
		labels    []string
		estimates []stats.Estimate
	}

	passes := make([]rankedPass, len(statistics))

	for passIndex, statistic := range statistics {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].estimates[statistic].PointEstimate > entries[j].estimates[statistic].PointEstimate
		})

		estimates, err := statisticEstimates(entries, statistic)
		if err != nil {
			return nil, err
		}

		labels := make([]string, len(entries))
		for i, entry := range entries {
			labels[i] = entry.label
		}

		passes[passIndex] = rankedPass{statistic: statistic, labels: labels, estimates: estimates}
	}

	violinLabels := make([]string, len(entries))
	violinSamples := make([]stats.Sample, len(entries))

	for i, entry := range entries {
		violinLabels[i] = entry.label
		violinSamples[i] = entry.avgTimes
	}

	figs, err := p.assemble(len(passes)+1, func(i int) (*figure.Figure, error) {
		if i < len(passes) {
			pass := passes[i]
			path := filepath.Join(summaryDir, fmt.Sprintf("%ss.svg", pass.statistic))

			return charts.SummaryRanked(p.settings, groupID, pass.statistic, pass.labels, pass.estimates, path)
		}

		return charts.Violin(p.settings, groupID, violinLabels, violinSamples, filepath.Join(summaryDir, "violin_plot.svg"))
	})
	if err != nil {
		return nil, err
	}

	return p.renderAll(ctx, figs)
}
