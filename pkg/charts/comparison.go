package charts

import (
	"fmt"
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/kde"
	"github.com/hyp3rd/benchplot/internal/scale"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// ComparisonDensity assembles the overlaid density curves of the base and
// new samples of a benchmark, red for the base run and blue for the new one.
func ComparisonDensity(
	settings Settings,
	baseSample, newSample stats.Sample,
	id, path string,
	size figure.Size,
) (*figure.Figure, error) {
	baseXs, baseYs, err := kde.Sweep(baseSample, settings.KDEPoints, nil)
	if err != nil {
		return nil, ewrap.Wrap(err, "estimating base sample density")
	}

	newXs, newYs, err := kde.Sweep(newSample, settings.KDEPoints, nil)
	if err != nil {
		return nil, ewrap.Wrap(err, "estimating new sample density")
	}

	maxX := math.Max(stats.Sample(baseXs).Max(), stats.Sample(newXs).Max())
	xScale, prefix := scale.Time(maxX)

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.sizeOrDefault(size),
		Title:  escapeUnderscores(id),
		Output: path,
		BottomX: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			ScaleFactor: xScale,
		},
		LeftY: figure.Axis{Label: "Density (a.u.)"},
		Key:   keyOutsideTopRight(),
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   baseXs,
			Ys:   baseYs,
			Style: figure.Style{
				Color:   &settings.DarkRed,
				Label:   "Base PDF",
				Opacity: 0.25,
			},
		},
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   newXs,
			Ys:   newYs,
			Style: figure.Style{
				Color:   &settings.DarkBlue,
				Label:   "New PDF",
				Opacity: 0.25,
			},
		},
	)

	return fig, nil
}

// ComparisonRegression assembles the regression lines of the base and new
// samples on shared axes, each with its confidence band. The raw scatter is
// omitted so the two fits stay readable.
func ComparisonRegression(
	settings Settings,
	baseData, newData *stats.Data,
	baseSlope, newSlope stats.Estimate,
	id, path string,
	size figure.Size,
) (*figure.Figure, error) {
	if err := baseSlope.Valid(); err != nil {
		return nil, ewrap.Wrap(err, "validating base slope estimate")
	}

	if err := newSlope.Valid(); err != nil {
		return nil, ewrap.Wrap(err, "validating new slope estimate")
	}

	maxIters := math.Max(baseData.MaxX(), newData.MaxX())

	basePoint := baseSlope.PointEstimate * maxIters
	newPoint := newSlope.PointEstimate * maxIters

	yScale, prefix := scale.Time(math.Max(basePoint, newPoint))
	xScale, xLabel := scale.Count(maxIters)

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.sizeOrDefault(size),
		Title:  escapeUnderscores(id),
		Output: path,
		BottomX: figure.Axis{
			Label:       xLabel,
			ScaleFactor: xScale,
			MajorGrid:   true,
		},
		LeftY: figure.Axis{
			Label:       fmt.Sprintf("Total time (%ss)", prefix),
			ScaleFactor: yScale,
			MajorGrid:   true,
		},
		Key: keyInsideTopLeft(),
	}

	appendFit := func(slope stats.Estimate, label string, color *figure.Color) {
		fig.Series = append(fig.Series,
			figure.Series{
				Kind: figure.FilledCurve,
				Xs:   []float64{0, maxIters},
				Ys:   []float64{0, slope.ConfidenceInterval.LowerBound * maxIters},
				Y2:   []float64{0, slope.ConfidenceInterval.UpperBound * maxIters},
				Style: figure.Style{
					Color:   color,
					Opacity: 0.25,
				},
			},
			figure.Series{
				Kind: figure.Lines,
				Xs:   []float64{0, maxIters},
				Ys:   []float64{0, slope.PointEstimate * maxIters},
				Style: figure.Style{
					Color:     color,
					Label:     label,
					LineWidth: settings.LineWidth,
				},
			},
		)
	}

	appendFit(baseSlope, "Base sample", &settings.DarkRed)
	appendFit(newSlope, "New sample", &settings.DarkBlue)

	return fig, nil
}
