package charts

import (
	"fmt"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/scale"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// Regression assembles the linear-regression chart: the raw (iterations,
// total time) scatter, the fitted slope through the origin, and the band
// spanned by the slope's confidence interval. In thumbnail mode the title
// and key are suppressed; the data keeps full resolution.
func Regression(
	settings Settings,
	data *stats.Data,
	slope stats.Estimate,
	id, path string,
	size figure.Size,
	thumbnail bool,
) (*figure.Figure, error) {
	if err := slope.Valid(); err != nil {
		return nil, ewrap.Wrap(err, "validating slope estimate")
	}

	maxIters := data.MaxX()
	maxElapsed := data.MaxY()

	yScale, prefix := scale.Time(maxElapsed)
	xScale, xLabel := scale.Count(maxIters)

	lb := slope.ConfidenceInterval.LowerBound * maxIters
	point := slope.PointEstimate * maxIters
	ub := slope.ConfidenceInterval.UpperBound * maxIters

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.sizeOrDefault(size),
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

	if thumbnail {
		fig.Key = figure.Key{Hidden: true}
	} else {
		fig.Title = escapeUnderscores(id)
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.Points,
			Xs:   data.X(),
			Ys:   data.Y(),
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Sample",
				PointType: figure.FilledCircle,
				PointSize: 0.5,
			},
		},
		figure.Series{
			Kind: figure.Lines,
			Xs:   []float64{0, maxIters},
			Ys:   []float64{0, point},
			Style: figure.Style{
				Color:     &settings.DarkBlue,
				Label:     "Linear regression",
				LineWidth: settings.LineWidth,
			},
		},
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   []float64{0, maxIters},
			Ys:   []float64{0, lb},
			Y2:   []float64{0, ub},
			Style: figure.Style{
				Color:   &settings.DarkBlue,
				Label:   "Confidence interval",
				Opacity: 0.25,
			},
		},
	)

	return fig, nil
}
