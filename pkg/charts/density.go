package charts

import (
	"fmt"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/curve"
	"github.com/hyp3rd/benchplot/internal/kde"
	"github.com/hyp3rd/benchplot/internal/scale"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// DensitySmall assembles the compact probability-density chart of a sample of
// average iteration times. The chart carries no title and no key, so it can
// be embedded as a thumbnail next to the full report.
func DensitySmall(settings Settings, sample stats.Sample, path string, size figure.Size) (*figure.Figure, error) {
	xs, ys, err := kde.Sweep(sample, settings.KDEPoints, nil)
	if err != nil {
		return nil, ewrap.Wrap(err, "estimating sample density")
	}

	mean := sample.Mean()

	meanY, err := curve.InterpolateY(xs, ys, mean)
	if err != nil {
		return nil, ewrap.Wrap(err, "locating mean on density curve")
	}

	meanXs, meanYs := curve.Marker(mean, meanY)

	xScale, prefix := scale.Time(sample.Max())
	curveXs := stats.Sample(xs)
	yLimit := stats.Sample(ys).Max() * 1.1

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.sizeOrDefault(size),
		Output: path,
		BottomX: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			Range:       &figure.Range{Min: curveXs.Min() * xScale, Max: curveXs.Max() * xScale},
			ScaleFactor: xScale,
		},
		LeftY: figure.Axis{
			Label: "Density (a.u.)",
			Range: &figure.Range{Min: 0, Max: yLimit},
		},
		RightY: figure.Axis{Hidden: true},
		Key:    figure.Key{Hidden: true},
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   xs,
			Ys:   ys,
			Style: figure.Style{
				Color:   &settings.DarkBlue,
				Label:   "PDF",
				Opacity: 0.25,
			},
		},
		figure.Series{
			Kind: figure.Lines,
			Xs:   meanXs[:],
			Ys:   meanYs[:],
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Mean",
				LineWidth: settings.LineWidth,
			},
		},
	)

	return fig, nil
}

// Density assembles the full probability-density chart: the density curve of
// the average times overlaid with the mean, the per-observation scatter
// split by outlier class, and the four Tukey fences.
func Density(
	settings Settings,
	data *stats.Data,
	labeled *stats.LabeledSample,
	id, path string,
	size figure.Size,
) (*figure.Figure, error) {
	xs, ys, err := kde.Sweep(labeled.Sample, settings.KDEPoints, nil)
	if err != nil {
		return nil, ewrap.Wrap(err, "estimating sample density")
	}

	clean, mild, severe, err := stats.Partition(labeled, data.X())
	if err != nil {
		return nil, ewrap.Wrap(err, "partitioning sample by outlier class")
	}

	mean := labeled.Sample.Mean()
	maxIters := data.MaxX()
	meanXs, meanYs := curve.Marker(mean, maxIters)

	xScale, prefix := scale.Time(labeled.Sample.Max())
	yScale, yLabel := scale.Count(maxIters)
	curveXs := stats.Sample(xs)

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.sizeOrDefault(size),
		Title:  escapeUnderscores(id),
		Output: path,
		BottomX: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			Range:       &figure.Range{Min: curveXs.Min() * xScale, Max: curveXs.Max() * xScale},
			ScaleFactor: xScale,
		},
		LeftY: figure.Axis{
			Label:       yLabel,
			Range:       &figure.Range{Min: 0, Max: maxIters * yScale},
			ScaleFactor: yScale,
		},
		RightY: figure.Axis{Label: "Density (a.u.)"},
		Key:    keyOutsideTopRight(),
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   xs,
			Ys:   ys,
			Style: figure.Style{
				Color:      &settings.DarkBlue,
				Label:      "PDF",
				Opacity:    0.25,
				SecondaryY: true,
			},
		},
		figure.Series{
			Kind: figure.Lines,
			Xs:   meanXs[:],
			Ys:   meanYs[:],
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Mean",
				LineWidth: settings.LineWidth,
				LineStyle: figure.Dash,
			},
		},
	)

	appendScatter := func(series stats.Series, label string, color *figure.Color) {
		if len(series.Xs) == 0 {
			return
		}

		fig.Series = append(fig.Series, figure.Series{
			Kind: figure.Points,
			Xs:   series.Xs,
			Ys:   series.Ys,
			Style: figure.Style{
				Color:     color,
				Label:     label,
				PointType: figure.FilledCircle,
				PointSize: settings.PointSize,
			},
		})
	}

	appendScatter(clean, `"Clean" sample`, &settings.DarkBlue)
	appendScatter(mild, "Mild outliers", &settings.DarkOrange)
	appendScatter(severe, "Severe outliers", &settings.DarkRed)

	fences := labeled.Fences
	for _, fence := range []struct {
		position float64
		color    *figure.Color
	}{
		{fences.LowMild, &settings.DarkOrange},
		{fences.HighMild, &settings.DarkOrange},
		{fences.LowSevere, &settings.DarkRed},
		{fences.HighSevere, &settings.DarkRed},
	} {
		fenceXs, fenceYs := curve.Marker(fence.position, maxIters)

		fig.Series = append(fig.Series, figure.Series{
			Kind: figure.Lines,
			Xs:   fenceXs[:],
			Ys:   fenceYs[:],
			Style: figure.Style{
				Color:     fence.color,
				LineWidth: settings.LineWidth,
				LineStyle: figure.Dash,
			},
		})
	}

	return fig, nil
}
