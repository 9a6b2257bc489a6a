package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/internal/telemetry/attrs"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next  benchplot.Service
	meter metric.Meter

	// instruments
	calls     metric.Int64Counter
	durations metric.Float64Histogram
	charts    metric.Int64Counter
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next benchplot.Service, meter metric.Meter) (benchplot.Service, error) {
	calls, err := meter.Int64Counter("benchplot.calls")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("benchplot.duration.ms")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	charts, err := meter.Int64Counter("benchplot.charts")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	return &OTelMetricsMiddleware{next: next, meter: meter, calls: calls, durations: durations, charts: charts}, nil
}

// DensitySmall implements Service.DensitySmall with metrics.
func (mw *OTelMetricsMiddleware) DensitySmall(
	ctx context.Context,
	sample stats.Sample,
	path string,
	size figure.Size,
) (engine.Handle, error) {
	start := time.Now()
	handle, err := mw.next.DensitySmall(ctx, sample, path, size)
	mw.rec(ctx, "DensitySmall", start, err, 1, attribute.Int(attrs.AttrSampleSize, len(sample)))

	return handle, err
}

// Density implements Service.Density with metrics.
func (mw *OTelMetricsMiddleware) Density(
	ctx context.Context,
	data *stats.Data,
	labeled *stats.LabeledSample,
	id, path string,
	size figure.Size,
) (engine.Handle, error) {
	start := time.Now()
	handle, err := mw.next.Density(ctx, data, labeled, id, path, size)
	mw.rec(ctx, "Density", start, err, 1,
		attribute.String(attrs.AttrBenchmarkID, id),
		attribute.Int(attrs.AttrSampleSize, data.Len()))

	return handle, err
}

// Regression implements Service.Regression with metrics.
func (mw *OTelMetricsMiddleware) Regression(
	ctx context.Context,
	data *stats.Data,
	slope stats.Estimate,
	id, path string,
	size figure.Size,
	thumbnail bool,
) (engine.Handle, error) {
	start := time.Now()
	handle, err := mw.next.Regression(ctx, data, slope, id, path, size, thumbnail)
	mw.rec(ctx, "Regression", start, err, 1,
		attribute.String(attrs.AttrBenchmarkID, id),
		attribute.Bool("thumbnail", thumbnail))

	return handle, err
}

// AbsDistributions implements Service.AbsDistributions with metrics.
func (mw *OTelMetricsMiddleware) AbsDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
) ([]engine.Handle, error) {
	start := time.Now()
	handles, err := mw.next.AbsDistributions(ctx, dists, ests, id)
	mw.rec(ctx, "AbsDistributions", start, err, int64(len(handles)),
		attribute.String(attrs.AttrBenchmarkID, id))

	return handles, err
}

// RelDistributions implements Service.RelDistributions with metrics.
func (mw *OTelMetricsMiddleware) RelDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
	noiseThreshold float64,
) ([]engine.Handle, error) {
	start := time.Now()
	handles, err := mw.next.RelDistributions(ctx, dists, ests, id, noiseThreshold)
	mw.rec(ctx, "RelDistributions", start, err, int64(len(handles)),
		attribute.String(attrs.AttrBenchmarkID, id))

	return handles, err
}

// TTest implements Service.TTest with metrics.
func (mw *OTelMetricsMiddleware) TTest(
	ctx context.Context,
	tScore float64,
	dist stats.Distribution,
	id string,
) (engine.Handle, error) {
	start := time.Now()
	handle, err := mw.next.TTest(ctx, tScore, dist, id)
	mw.rec(ctx, "TTest", start, err, 1, attribute.String(attrs.AttrBenchmarkID, id))

	return handle, err
}

// ComparisonDensity implements Service.ComparisonDensity with metrics.
func (mw *OTelMetricsMiddleware) ComparisonDensity(
	ctx context.Context,
	baseAvgTimes, newAvgTimes stats.Sample,
	id string,
) (engine.Handle, error) {
	start := time.Now()
	handle, err := mw.next.ComparisonDensity(ctx, baseAvgTimes, newAvgTimes, id)
	mw.rec(ctx, "ComparisonDensity", start, err, 1, attribute.String(attrs.AttrBenchmarkID, id))

	return handle, err
}

// ComparisonRegression implements Service.ComparisonRegression with metrics.
func (mw *OTelMetricsMiddleware) ComparisonRegression(
	ctx context.Context,
	baseData, newData *stats.Data,
	baseSlope, newSlope stats.Estimate,
	id string,
) (engine.Handle, error) {
	start := time.Now()
	handle, err := mw.next.ComparisonRegression(ctx, baseData, newData, baseSlope, newSlope, id)
	mw.rec(ctx, "ComparisonRegression", start, err, 1, attribute.String(attrs.AttrBenchmarkID, id))

	return handle, err
}

// Summarize implements Service.Summarize with metrics.
func (mw *OTelMetricsMiddleware) Summarize(ctx context.Context, groupID string, ids []string) ([]engine.Handle, error) {
	start := time.Now()
	handles, err := mw.next.Summarize(ctx, groupID, ids)
	mw.rec(ctx, "Summarize", start, err, int64(len(handles)),
		attribute.String(attrs.AttrGroupID, groupID),
		attribute.Int("benchmarks.count", len(ids)))

	return handles, err
}

// OutputDir returns the output directory of the wrapped service.
func (mw *OTelMetricsMiddleware) OutputDir() string { return mw.next.OutputDir() }

// Stop stops the underlying service.
func (mw *OTelMetricsMiddleware) Stop(ctx context.Context) error { return mw.next.Stop(ctx) }

// rec records call count, duration, and the number of charts launched, with attributes.
func (mw *OTelMetricsMiddleware) rec(
	ctx context.Context,
	method string,
	start time.Time,
	err error,
	launched int64,
	attributes ...attribute.KeyValue,
) {
	base := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.Bool("error", err != nil),
	}
	if len(attributes) > 0 {
		base = append(base, attributes...)
	}

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))
	mw.durations.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(base...))

	if err == nil && launched > 0 {
		mw.charts.Add(ctx, launched, metric.WithAttributes(base...))
	}
}
