package stats

import (
	moremath "github.com/aclements/go-moremath/stats"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// Sample is an ordered collection of benchmark observations, typically
// average times in nanoseconds.
type Sample []float64

// Min returns the smallest observation.
func (s Sample) Min() float64 {
	min, _ := moremath.Bounds(s)

	return min
}

// Max returns the largest observation.
func (s Sample) Max() float64 {
	_, max := moremath.Bounds(s)

	return max
}

// Mean returns the arithmetic mean of the sample.
func (s Sample) Mean() float64 {
	return moremath.Mean(s)
}

// Median returns the 50th percentile of the sample.
func (s Sample) Median() float64 {
	return moremath.Sample{Xs: s}.Quantile(0.5)
}

// StdDev returns the sample standard deviation.
func (s Sample) StdDev() float64 {
	return moremath.StdDev(s)
}

// Data is a paired sequence of measurements: per-run iteration counts on x
// and total elapsed times on y.
type Data struct {
	xs []float64
	ys []float64
}

// NewData pairs iteration counts with elapsed times. Both sequences must be
// non-empty and of equal length.
func NewData(xs, ys []float64) (*Data, error) {
	if len(xs) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptySample, "paired data")
	}

	if len(xs) != len(ys) {
		return nil, ewrap.Wrapf(sentinel.ErrMismatchedLengths, "xs has %d points, ys has %d", len(xs), len(ys))
	}

	return &Data{xs: xs, ys: ys}, nil
}

// X returns the iteration counts.
func (d *Data) X() []float64 {
	return d.xs
}

// Y returns the elapsed times.
func (d *Data) Y() []float64 {
	return d.ys
}

// MaxX returns the largest iteration count.
func (d *Data) MaxX() float64 {
	_, max := moremath.Bounds(d.xs)

	return max
}

// MaxY returns the largest elapsed time.
func (d *Data) MaxY() float64 {
	_, max := moremath.Bounds(d.ys)

	return max
}

// Len returns the number of measurement pairs.
func (d *Data) Len() int {
	return len(d.xs)
}

// AvgTimes divides each elapsed time by its iteration count, yielding the
// per-iteration average-time sample the density charts consume.
func (d *Data) AvgTimes() Sample {
	avg := make(Sample, len(d.xs))
	for i, iters := range d.xs {
		avg[i] = d.ys[i] / iters
	}

	return avg
}

// RawSample mirrors the sample artifact on disk: per-run iteration counts
// and the total time elapsed by each run, in nanoseconds.
type RawSample struct {
	Iters []float64 `json:"iters"`
	Times []float64 `json:"times"`
}

// AvgTimes divides each elapsed time by its iteration count, yielding the
// per-iteration average-time sample the density charts consume.
func (r RawSample) AvgTimes() (Sample, error) {
	data, err := r.Data()
	if err != nil {
		return nil, err
	}

	return data.AvgTimes(), nil
}

// Data pairs the iteration counts with the elapsed times.
func (r RawSample) Data() (*Data, error) {
	return NewData(r.Iters, r.Times)
}
