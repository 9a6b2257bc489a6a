package benchplot

import (
	"context"

	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// Service is the chart-rendering surface of the plotter.
// It enables middleware to be added to the service.
type Service interface {
	charting
	// Summarize renders the summary charts of a benchmark group
	Summarize(ctx context.Context, groupID string, ids []string) ([]engine.Handle, error)
	// OutputDir returns the directory chart artifacts are written under
	OutputDir() string
	// Stop shuts down the render pool and the report server
	Stop(ctx context.Context) error
}

type charting interface {
	// DensitySmall renders the compact density chart of a sample to path
	DensitySmall(ctx context.Context, sample stats.Sample, path string, size figure.Size) (engine.Handle, error)
	// Density renders the full density chart with outlier scatter and fences to path
	Density(ctx context.Context, data *stats.Data, labeled *stats.LabeledSample, id, path string, size figure.Size) (engine.Handle, error)
	// Regression renders the linear-regression chart to path
	Regression(ctx context.Context, data *stats.Data, slope stats.Estimate, id, path string, size figure.Size, thumbnail bool) (engine.Handle, error)
	// AbsDistributions renders one bootstrap-distribution chart per statistic under {out}/{id}/new
	AbsDistributions(ctx context.Context, dists stats.Distributions, ests stats.Estimates, id string) ([]engine.Handle, error)
	// RelDistributions renders one relative-change chart per statistic under {out}/{id}/change
	RelDistributions(ctx context.Context, dists stats.Distributions, ests stats.Estimates, id string, noiseThreshold float64) ([]engine.Handle, error)
	// TTest renders the Welch t-test chart under {out}/{id}/change
	TTest(ctx context.Context, tScore float64, dist stats.Distribution, id string) (engine.Handle, error)
	// ComparisonDensity renders the overlaid base/new density chart under {out}/{id}/both
	ComparisonDensity(ctx context.Context, baseAvgTimes, newAvgTimes stats.Sample, id string) (engine.Handle, error)
	// ComparisonRegression renders the overlaid base/new regression chart under {out}/{id}/both
	ComparisonRegression(ctx context.Context, baseData, newData *stats.Data, baseSlope, newSlope stats.Estimate, id string) (engine.Handle, error)
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
