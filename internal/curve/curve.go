// Package curve derives marker and fill geometry from sampled curves.
// Given a curve sampled on an ascending grid it interpolates heights at
// arbitrary x values, locates the inclusive index window spanned by a pair
// of bounds, and builds vertical marker segments.
package curve

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// InterpolateY returns the curve height at p by linear interpolation between
// the two grid points bracketing it. The grid must be ascending and p must lie
// strictly past the first grid point; values outside the grid fail with
// ErrOutOfDomain and a zero-width bracket fails with ErrDegenerateCurve.
func InterpolateY(xs, ys []float64, p float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, ewrap.Wrapf(sentinel.ErrMismatchedLengths, "xs has %d points, ys has %d", len(xs), len(ys))
	}

	idx := -1

	for i, x := range xs {
		if x >= p {
			idx = i

			break
		}
	}

	if idx <= 0 {
		return 0, ewrap.Wrapf(sentinel.ErrOutOfDomain, "p=%g outside curve domain", p)
	}

	run := xs[idx] - xs[idx-1]
	if run == 0 {
		return 0, ewrap.Wrapf(sentinel.ErrDegenerateCurve, "duplicate grid point at index %d", idx)
	}

	slope := (ys[idx] - ys[idx-1]) / run

	return ys[idx-1] + slope*(p-xs[idx-1]), nil
}

// Window returns the inclusive index span [start, end] of the grid points
// falling inside [lb, ub]: start is the first index with xs[start] >= lb and
// end is the last index with xs[end] <= ub. It fails with ErrEmptyWindow when
// either bound falls entirely outside the grid.
func Window(xs []float64, lb, ub float64) (start, end int, err error) {
	start = -1

	for i, x := range xs {
		if x >= lb {
			start = i

			break
		}
	}

	end = -1

	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] <= ub {
			end = i

			break
		}
	}

	if start < 0 || end < 0 {
		return 0, 0, ewrap.Wrapf(sentinel.ErrEmptyWindow, "bounds [%g, %g] outside curve domain", lb, ub)
	}

	return start, end, nil
}

// Marker returns the two endpoints of a vertical segment at x = p rising from
// zero to the given height.
func Marker(p, height float64) (xs, ys [2]float64) {
	return [2]float64{p, p}, [2]float64{0, height}
}
