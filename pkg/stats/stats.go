// Package stats holds the benchmark-statistics data model consumed by the
// chart assemblers: samples and paired measurement data, bootstrap
// distributions, point estimates with their confidence intervals, and the
// Tukey outlier classification.
//
// The package does not compute bootstrap estimates itself. Estimates are
// produced upstream and loaded from the on-disk artifacts; this package
// validates and exposes them.
package stats

import (
	"sort"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// Statistic identifies one of the reported sample statistics. The string
// value doubles as the artifact map key and as the display name used in
// chart titles and file names.
type Statistic string

const (
	// Mean is the arithmetic mean of the sample.
	Mean Statistic = "mean"
	// Median is the 50th percentile of the sample.
	Median Statistic = "median"
	// MedianAbsDev is the median absolute deviation of the sample.
	MedianAbsDev Statistic = "MAD"
	// Slope is the slope of the regression line through the origin.
	Slope Statistic = "slope"
	// StdDev is the standard deviation of the sample.
	StdDev Statistic = "SD"
)

// statisticRank orders statistics canonically for deterministic iteration.
//
//nolint:gochecknoglobals
var statisticRank = map[Statistic]int{
	Mean:         0,
	Median:       1,
	MedianAbsDev: 2,
	Slope:        3,
	StdDev:       4,
}

// ConfidenceInterval brackets a point estimate at a confidence level.
type ConfidenceInterval struct {
	ConfidenceLevel float64 `json:"confidence_level"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// Estimate is a point estimate of a statistic plus its confidence interval,
// produced by a bootstrap upstream of this library.
type Estimate struct {
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	PointEstimate      float64            `json:"point_estimate"`
	StandardError      float64            `json:"standard_error"`
}

// Valid reports whether the interval brackets the point estimate.
func (e Estimate) Valid() error {
	ci := e.ConfidenceInterval
	if ci.LowerBound > e.PointEstimate || e.PointEstimate > ci.UpperBound {
		return ewrap.Wrapf(sentinel.ErrInvalidEstimate,
			"point estimate %g outside interval [%g, %g]",
			e.PointEstimate, ci.LowerBound, ci.UpperBound)
	}

	return nil
}

// Estimates maps each reported statistic to its estimate.
type Estimates map[Statistic]Estimate

// Statistics returns the statistic keys in canonical order (mean, median,
// MAD, slope, SD; unknown statistics after, alphabetically). Iterating the
// map through this method keeps chart emission order deterministic.
func (e Estimates) Statistics() []Statistic {
	return sortStatistics(len(e), func(out []Statistic) []Statistic {
		for statistic := range e {
			out = append(out, statistic)
		}

		return out
	})
}

// Distribution is the bootstrap distribution of one statistic: the resampled
// scalar values, in no particular order.
type Distribution []float64

// Distributions maps each reported statistic to its bootstrap distribution.
// The key set is one-to-one with the Estimates of the same run.
type Distributions map[Statistic]Distribution

// Statistics returns the statistic keys in canonical order, matching
// Estimates.Statistics.
func (d Distributions) Statistics() []Statistic {
	return sortStatistics(len(d), func(out []Statistic) []Statistic {
		for statistic := range d {
			out = append(out, statistic)
		}

		return out
	})
}

func sortStatistics(capacity int, collect func([]Statistic) []Statistic) []Statistic {
	out := collect(make([]Statistic, 0, capacity))

	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := statisticRank[out[i]]
		rj, jKnown := statisticRank[out[j]]

		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i] < out[j]
		}
	})

	return out
}
