package charts

import (
	"fmt"
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/curve"
	"github.com/hyp3rd/benchplot/internal/kde"
	"github.com/hyp3rd/benchplot/internal/scale"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// ciWindowDivisor pads the density sweep of a bootstrap distribution so the
// confidence interval sits one ninth of its own width away from either edge.
const ciWindowDivisor = 9.0

// AbsDistribution assembles the bootstrap-distribution chart of one absolute
// statistic: the density curve, the shaded confidence interval beneath it,
// and a dashed marker at the point estimate.
func AbsDistribution(
	settings Settings,
	distribution stats.Sample,
	estimate stats.Estimate,
	statistic stats.Statistic,
	id, path string,
) (*figure.Figure, error) {
	if err := estimate.Valid(); err != nil {
		return nil, ewrap.Wrapf(err, "validating %s estimate", statistic)
	}

	lb := estimate.ConfidenceInterval.LowerBound
	ub := estimate.ConfidenceInterval.UpperBound

	span := (ub - lb) / ciWindowDivisor
	window := kde.Window{Lo: lb - span, Hi: ub + span}

	xs, ys, err := kde.Sweep(distribution, settings.KDEPoints, &window)
	if err != nil {
		return nil, ewrap.Wrapf(err, "estimating %s bootstrap density", statistic)
	}

	point := estimate.PointEstimate

	pointY, err := curve.InterpolateY(xs, ys, point)
	if err != nil {
		return nil, ewrap.Wrap(err, "locating point estimate on density curve")
	}

	start, end, err := curve.Window(xs, lb, ub)
	if err != nil {
		return nil, ewrap.Wrap(err, "locating confidence interval on density curve")
	}

	pointXs, pointYs := curve.Marker(point, pointY)

	curveXs := stats.Sample(xs)
	xScale, prefix := scale.Time(curveXs.Max())
	yScale := 1 / xScale

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.Size,
		Title:  fmt.Sprintf("%s: %s", escapeUnderscores(id), statistic),
		Output: path,
		BottomX: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			Range:       &figure.Range{Min: curveXs.Min() * xScale, Max: curveXs.Max() * xScale},
			ScaleFactor: xScale,
		},
		LeftY: figure.Axis{
			Label:       "Density (a.u.)",
			ScaleFactor: yScale,
		},
		Key: keyOutsideTopRight(),
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.Lines,
			Xs:   xs,
			Ys:   ys,
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Bootstrap distribution",
				LineWidth: settings.LineWidth,
			},
		},
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   xs[start : end+1],
			Ys:   ys[start : end+1],
			Style: figure.Style{
				Color:   &settings.DarkBlue,
				Label:   "Confidence interval",
				Opacity: 0.25,
			},
		},
		figure.Series{
			Kind: figure.Lines,
			Xs:   pointXs[:],
			Ys:   pointYs[:],
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Point estimate",
				LineWidth: settings.LineWidth,
				LineStyle: figure.Dash,
			},
		},
	)

	return fig, nil
}

// NewRelDistributionBase builds the figure skeleton shared by every
// relative-distribution chart of a comparison: font, size, density axis and
// key placement. Callers clone it once per statistic and hand the clone to
// RelDistribution, so the per-statistic work never mutates shared state.
func NewRelDistributionBase(settings Settings) *figure.Figure {
	return &figure.Figure{
		Font:  settings.Font,
		Size:  settings.Size,
		LeftY: figure.Axis{Label: "Density (a.u.)"},
		Key:   keyOutsideTopRight(),
	}
}

// RelDistribution completes a clone of the base figure into the
// bootstrap-distribution chart of one relative statistic. The x axis is the
// relative change in percent, and the noise threshold is drawn as a band
// around zero, clamped to the visible range; when the whole range clears the
// threshold the band collapses to a zero-width sliver at the center.
func RelDistribution(
	base *figure.Figure,
	settings Settings,
	distribution stats.Sample,
	estimate stats.Estimate,
	statistic stats.Statistic,
	id, path string,
	noiseThreshold float64,
) (*figure.Figure, error) {
	if err := estimate.Valid(); err != nil {
		return nil, ewrap.Wrapf(err, "validating %s estimate", statistic)
	}

	xs, ys, err := kde.Sweep(distribution, settings.KDEPoints, nil)
	if err != nil {
		return nil, ewrap.Wrapf(err, "estimating %s bootstrap density", statistic)
	}

	point := estimate.PointEstimate

	pointY, err := curve.InterpolateY(xs, ys, point)
	if err != nil {
		return nil, ewrap.Wrap(err, "locating point estimate on density curve")
	}

	start, end, err := curve.Window(xs, estimate.ConfidenceInterval.LowerBound, estimate.ConfidenceInterval.UpperBound)
	if err != nil {
		return nil, ewrap.Wrap(err, "locating confidence interval on density curve")
	}

	pointXs, pointYs := curve.Marker(point, pointY)

	curveXs := stats.Sample(xs)
	xMin := curveXs.Min()
	xMax := curveXs.Max()

	var bandStart, bandEnd float64
	if noiseThreshold < xMin || -noiseThreshold > xMax {
		center := (xMin + xMax) / 2
		bandStart, bandEnd = center, center
	} else {
		bandStart = math.Max(-noiseThreshold, xMin)
		bandEnd = math.Min(noiseThreshold, xMax)
	}

	fig := base.Clone()
	fig.Title = fmt.Sprintf("%s: %s", escapeUnderscores(id), statistic)
	fig.Output = path
	fig.BottomX = figure.Axis{
		Label:       "Relative change (%)",
		Range:       &figure.Range{Min: xMin * 100, Max: xMax * 100},
		ScaleFactor: 100,
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.Lines,
			Xs:   xs,
			Ys:   ys,
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Bootstrap distribution",
				LineWidth: settings.LineWidth,
			},
		},
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   xs[start : end+1],
			Ys:   ys[start : end+1],
			Style: figure.Style{
				Color:   &settings.DarkBlue,
				Label:   "Confidence interval",
				Opacity: 0.25,
			},
		},
		figure.Series{
			Kind: figure.Lines,
			Xs:   pointXs[:],
			Ys:   pointYs[:],
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Point estimate",
				LineWidth: settings.LineWidth,
				LineStyle: figure.Dash,
			},
		},
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   []float64{bandStart, bandEnd},
			Ys:   []float64{1, 1},
			Y2:   []float64{0, 0},
			Style: figure.Style{
				Color:      &settings.DarkRed,
				Label:      "Noise threshold",
				Opacity:    0.1,
				SecondaryY: true,
			},
		},
	)

	return fig, nil
}
