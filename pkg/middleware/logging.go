// Package middleware provides various middleware implementations for the benchplot service.
// This package includes logging middleware that wraps the benchplot service to provide
// execution time logging and method call tracing for debugging and monitoring purposes.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// Tested with logrus, and Uber's Zap (high-performance), but should work with any other logger that matches the interface.
type Logger interface {
	Printf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the benchplot.Service interface.
type LoggingMiddleware struct {
	next   benchplot.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next benchplot.Service, logger Logger) benchplot.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// DensitySmall logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) DensitySmall(
	ctx context.Context,
	sample stats.Sample,
	path string,
	size figure.Size,
) (engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method DensitySmall took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("DensitySmall method invoked with %d observations, path: %s", len(sample), path)

	return mw.next.DensitySmall(ctx, sample, path, size)
}

// Density logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Density(
	ctx context.Context,
	data *stats.Data,
	labeled *stats.LabeledSample,
	id, path string,
	size figure.Size,
) (engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Density took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Density method invoked for benchmark: %s", id)

	return mw.next.Density(ctx, data, labeled, id, path, size)
}

// Regression logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Regression(
	ctx context.Context,
	data *stats.Data,
	slope stats.Estimate,
	id, path string,
	size figure.Size,
	thumbnail bool,
) (engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Regression took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Regression method invoked for benchmark: %s thumbnail: %t", id, thumbnail)

	return mw.next.Regression(ctx, data, slope, id, path, size, thumbnail)
}

// AbsDistributions logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) AbsDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
) ([]engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method AbsDistributions took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("AbsDistributions method invoked for benchmark: %s statistics: %d", id, len(dists))

	return mw.next.AbsDistributions(ctx, dists, ests, id)
}

// RelDistributions logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) RelDistributions(
	ctx context.Context,
	dists stats.Distributions,
	ests stats.Estimates,
	id string,
	noiseThreshold float64,
) ([]engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method RelDistributions took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("RelDistributions method invoked for benchmark: %s noise threshold: %g", id, noiseThreshold)

	return mw.next.RelDistributions(ctx, dists, ests, id, noiseThreshold)
}

// TTest logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) TTest(
	ctx context.Context,
	tScore float64,
	dist stats.Distribution,
	id string,
) (engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method TTest took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("TTest method invoked for benchmark: %s t: %g", id, tScore)

	return mw.next.TTest(ctx, tScore, dist, id)
}

// ComparisonDensity logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) ComparisonDensity(
	ctx context.Context,
	baseAvgTimes, newAvgTimes stats.Sample,
	id string,
) (engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method ComparisonDensity took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("ComparisonDensity method invoked for benchmark: %s", id)

	return mw.next.ComparisonDensity(ctx, baseAvgTimes, newAvgTimes, id)
}

// ComparisonRegression logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) ComparisonRegression(
	ctx context.Context,
	baseData, newData *stats.Data,
	baseSlope, newSlope stats.Estimate,
	id string,
) (engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method ComparisonRegression took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("ComparisonRegression method invoked for benchmark: %s", id)

	return mw.next.ComparisonRegression(ctx, baseData, newData, baseSlope, newSlope, id)
}

// Summarize logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Summarize(ctx context.Context, groupID string, ids []string) ([]engine.Handle, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Summarize took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Summarize method invoked for group: %s benchmarks: %d", groupID, len(ids))

	return mw.next.Summarize(ctx, groupID, ids)
}

// OutputDir returns the output directory of the wrapped service.
func (mw LoggingMiddleware) OutputDir() string {
	return mw.next.OutputDir()
}

// Stop logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Stop(ctx context.Context) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Stop took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Stop method invoked")

	return mw.next.Stop(ctx)
}
