// Package kde sweeps Gaussian kernel density estimates over benchmark
// samples. The sweep grid is either caller-supplied or derived from the
// sample extrema padded by three bandwidths, with the bandwidth picked by
// Silverman's rule of thumb.
package kde

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// minBandwidth is the floor applied to the Silverman bandwidth. A sample
// with zero variance would otherwise produce a zero bandwidth and a sweep
// full of NaNs instead of a finite spike.
const minBandwidth = 1e-12

// windowPadding is the number of bandwidths added on both sides of the
// sample extrema when no explicit sweep window is given.
const windowPadding = 3.0

// Window bounds a density sweep to an explicit [Lo, Hi] interval.
type Window struct {
	Lo float64
	Hi float64
}

// Bandwidth returns the Silverman rule-of-thumb bandwidth for the sample,
// floored at minBandwidth.
func Bandwidth(sample []float64) float64 {
	n := float64(len(sample))
	sigma := stats.StdDev(sample)

	bandwidth := sigma * math.Pow(4/(3*n), 0.2)
	if bandwidth < minBandwidth {
		return minBandwidth
	}

	return bandwidth
}

// Sweep evaluates the Gaussian kernel density estimate of the sample on a
// grid of the given number of points. A nil window spans the sample extrema
// padded by three bandwidths on both sides.
func Sweep(sample []float64, points int, window *Window) (xs, ys []float64, err error) {
	if len(sample) == 0 {
		return nil, nil, ewrap.Wrap(sentinel.ErrEmptySample, "kde sweep")
	}

	if points < 2 {
		return nil, nil, ewrap.Wrapf(sentinel.ErrInvalidSize, "kde sweep needs at least 2 points, got %d", points)
	}

	bandwidth := Bandwidth(sample)

	var lo, hi float64

	if window != nil {
		lo, hi = window.Lo, window.Hi
	} else {
		low, high := stats.Bounds(sample)
		lo = low - windowPadding*bandwidth
		hi = high + windowPadding*bandwidth
	}

	xs = vec.Linspace(lo, hi, points)
	ys = make([]float64, points)

	for i, x := range xs {
		ys[i] = estimate(sample, bandwidth, x)
	}

	return xs, ys, nil
}

// estimate evaluates the density at a single point.
func estimate(sample []float64, bandwidth, x float64) float64 {
	var sum float64

	for _, observation := range sample {
		u := (x - observation) / bandwidth
		sum += math.Exp(-u*u/2) / math.Sqrt(2*math.Pi)
	}

	return sum / (float64(len(sample)) * bandwidth)
}
