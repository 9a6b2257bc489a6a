package charts

import (
	"fmt"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/curve"
	"github.com/hyp3rd/benchplot/internal/kde"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// TTest assembles the Welch t-test chart: the density of the bootstrapped t
// distribution with the observed t statistic drawn as a vertical marker.
func TTest(
	settings Settings,
	tScore float64,
	distribution stats.Sample,
	id, path string,
) (*figure.Figure, error) {
	xs, ys, err := kde.Sweep(distribution, settings.KDEPoints, nil)
	if err != nil {
		return nil, ewrap.Wrap(err, "estimating t distribution density")
	}

	// The marker spans the secondary axis, which autoscales to [0, 1].
	markerXs, markerYs := curve.Marker(tScore, 1)

	fig := &figure.Figure{
		Font:    settings.Font,
		Size:    settings.Size,
		Title:   fmt.Sprintf("%s: Welch t test", escapeUnderscores(id)),
		Output:  path,
		BottomX: figure.Axis{Label: "t score"},
		LeftY:   figure.Axis{Label: "Density"},
		Key:     keyOutsideTopRight(),
	}

	fig.Series = append(fig.Series,
		figure.Series{
			Kind: figure.FilledCurve,
			Xs:   xs,
			Ys:   ys,
			Style: figure.Style{
				Color:   &settings.DarkBlue,
				Label:   "t distribution",
				Opacity: 0.25,
			},
		},
		figure.Series{
			Kind: figure.Lines,
			Xs:   markerXs[:],
			Ys:   markerYs[:],
			Style: figure.Style{
				Color:      &settings.DarkBlue,
				Label:      "t statistic",
				LineWidth:  settings.LineWidth,
				SecondaryY: true,
			},
		},
	)

	return fig, nil
}
