package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/internal/telemetry/attrs"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// OTelTracingMiddleware wraps benchplot.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   benchplot.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next benchplot.Service, tracer trace.Tracer, opts ...OTelTracingOption) benchplot.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// DensitySmall implements Service.DensitySmall with tracing.
func (mw OTelTracingMiddleware) DensitySmall(
	ctx context.Context,
	sample stats.Sample,
	path string,
	size figure.Size,
) (engine.Handle, error) {
	ctx, span := mw.startSpan(ctx, "benchplot.DensitySmall", attribute.Int(attrs.AttrSampleSize, len(sample)))
	defer span.End()

	handle, err := mw.next.DensitySmall(ctx, sample, path, size)
	if err != nil {
		span.RecordError(err)
	}

	return handle, err
}

// Density implements Service.Density with tracing.
func (mw OTelTracingMiddleware) Density(
	ctx context.Context,
	data *stats.Data,
	labeled *stats.LabeledSample,
	id, path string,
	size figure.Size,
) (engine.Handle, error) {
	ctx, span := mw.startSpan(
		ctx, "benchplot.Density",
		attribute.String(attrs.AttrBenchmarkID, id),
		attribute.Int(attrs.AttrSampleSize, data.Len()))
	defer span.End()

	handle, err := mw.next.Density(ctx, data, labeled, id, path, size)
	if err != nil {
		span.RecordError(err)
	}

	return handle, err
}

// Regression implements Service.Regression with tracing.
func (mw OTelTracingMiddleware) Regression(
	ctx context.Context,
	data *stats.Data,
	slope stats.Estimate,
	id, path string,
	size figure.Size,
	thumbnail bool,
) (engine.Handle, error) {
	ctx, span := mw.startSpan(
		ctx, "benchplot.Regression",
		attribute.String(attrs.AttrBenchmarkID, id),
		attribute.Bool("thumbnail", thumbnail))
	defer span.End()

	handle, err := mw.next.Regression(ctx, data, slope, id, path, size, thumbnail)
	if err != nil {
		span.RecordError(err)
	}

	return handle, err
}

// AbsDistributions implements Service.AbsDistributions with tracing.
func (mw OTelTracingMiddleware) AbsDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
) ([]engine.Handle, error) {
	ctx, span := mw.startSpan(ctx, "benchplot.AbsDistributions", attribute.String(attrs.AttrBenchmarkID, id))
	defer span.End()

	handles, err := mw.next.AbsDistributions(ctx, dists, ests, id)
	if err != nil {
		span.RecordError(err)
	}

	span.SetAttributes(attribute.Int(attrs.AttrChartCount, len(handles)))

	return handles, err
}

// RelDistributions implements Service.RelDistributions with tracing.
func (mw OTelTracingMiddleware) RelDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
	noiseThreshold float64,
) ([]engine.Handle, error) {
	ctx, span := mw.startSpan(
		ctx, "benchplot.RelDistributions",
		attribute.String(attrs.AttrBenchmarkID, id),
		attribute.Float64("noise.threshold", noiseThreshold))
	defer span.End()

	handles, err := mw.next.RelDistributions(ctx, dists, ests, id, noiseThreshold)
	if err != nil {
		span.RecordError(err)
	}

	span.SetAttributes(attribute.Int(attrs.AttrChartCount, len(handles)))

	return handles, err
}

// TTest implements Service.TTest with tracing.
func (mw OTelTracingMiddleware) TTest(
	ctx context.Context,
	tScore float64,
	dist stats.Distribution,
	id string,
) (engine.Handle, error) {
	ctx, span := mw.startSpan(
		ctx, "benchplot.TTest",
		attribute.String(attrs.AttrBenchmarkID, id),
		attribute.Float64("t.score", tScore))
	defer span.End()

	handle, err := mw.next.TTest(ctx, tScore, dist, id)
	if err != nil {
		span.RecordError(err)
	}

	return handle, err
}

// ComparisonDensity implements Service.ComparisonDensity with tracing.
func (mw OTelTracingMiddleware) ComparisonDensity(
	ctx context.Context,
	baseAvgTimes, newAvgTimes stats.Sample,
	id string,
) (engine.Handle, error) {
	ctx, span := mw.startSpan(ctx, "benchplot.ComparisonDensity", attribute.String(attrs.AttrBenchmarkID, id))
	defer span.End()

	handle, err := mw.next.ComparisonDensity(ctx, baseAvgTimes, newAvgTimes, id)
	if err != nil {
		span.RecordError(err)
	}

	return handle, err
}

// ComparisonRegression implements Service.ComparisonRegression with tracing.
func (mw OTelTracingMiddleware) ComparisonRegression(
	ctx context.Context,
	baseData, newData *stats.Data,
	baseSlope, newSlope stats.Estimate,
	id string,
) (engine.Handle, error) {
	ctx, span := mw.startSpan(ctx, "benchplot.ComparisonRegression", attribute.String(attrs.AttrBenchmarkID, id))
	defer span.End()

	handle, err := mw.next.ComparisonRegression(ctx, baseData, newData, baseSlope, newSlope, id)
	if err != nil {
		span.RecordError(err)
	}

	return handle, err
}

// Summarize implements Service.Summarize with tracing.
func (mw OTelTracingMiddleware) Summarize(ctx context.Context, groupID string, ids []string) ([]engine.Handle, error) {
	ctx, span := mw.startSpan(
		ctx, "benchplot.Summarize",
		attribute.String(attrs.AttrGroupID, groupID),
		attribute.Int("benchmarks.count", len(ids)))
	defer span.End()

	handles, err := mw.next.Summarize(ctx, groupID, ids)
	if err != nil {
		span.RecordError(err)
	}

	span.SetAttributes(attribute.Int(attrs.AttrChartCount, len(handles)))

	return handles, err
}

// OutputDir returns the output directory of the wrapped service.
func (mw OTelTracingMiddleware) OutputDir() string { return mw.next.OutputDir() }

// Stop stops the service with a span.
func (mw OTelTracingMiddleware) Stop(ctx context.Context) error {
	_, span := mw.startSpan(ctx, "benchplot.Stop")
	defer span.End()

	return mw.next.Stop(ctx)
}

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}
