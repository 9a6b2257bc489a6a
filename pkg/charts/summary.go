package charts

import (
	"fmt"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/kde"
	"github.com/hyp3rd/benchplot/internal/scale"
	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

// violinPointScale doubles the base point size for the median markers so
// they stay visible over the density bands.
const violinPointScale = 2.0

// maxUpperBound returns the largest confidence-interval upper bound, used to
// pick the time unit of a summary axis.
func maxUpperBound(estimates []stats.Estimate) float64 {
	maximum := estimates[0].ConfidenceInterval.UpperBound
	for _, estimate := range estimates[1:] {
		if ub := estimate.ConfidenceInterval.UpperBound; ub > maximum {
			maximum = ub
		}
	}

	return maximum
}

func validateEntries(count, estimates int) error {
	if count == 0 {
		return ewrap.Wrap(sentinel.ErrEmptySample, "summary requires at least one entry")
	}

	if count != estimates {
		return ewrap.Wrap(sentinel.ErrMismatchedLengths, "entries and estimates must pair up")
	}

	return nil
}

// bandPositions returns the vertical center of each band on a categorical
// axis: entry i sits at i + 0.5 so bands of height one fill [i, i+1].
func bandPositions(count int) []float64 {
	positions := make([]float64, count)
	for i := range positions {
		positions[i] = float64(i) + 0.5
	}

	return positions
}

func categoricalTics(positions []float64, labels []string) []figure.Tic {
	tics := make([]figure.Tic, len(labels))
	for i, label := range labels {
		tics[i] = figure.Tic{Position: positions[i], Label: label}
	}

	return tics
}

// SummaryErrorBars assembles the group-summary chart for numeric inputs: one
// vertical error bar per input, the estimate of the given statistic against
// the input value. Inputs must already be sorted ascending with their
// estimates in matching order.
func SummaryErrorBars(
	settings Settings,
	group string,
	statistic stats.Statistic,
	inputs []float64,
	estimates []stats.Estimate,
	path string,
) (*figure.Figure, error) {
	if err := validateEntries(len(inputs), len(estimates)); err != nil {
		return nil, err
	}

	yScale, prefix := scale.Time(maxUpperBound(estimates))

	points := make([]float64, len(estimates))
	lbs := make([]float64, len(estimates))
	ubs := make([]float64, len(estimates))

	for i, estimate := range estimates {
		points[i] = estimate.PointEstimate
		lbs[i] = estimate.ConfidenceInterval.LowerBound
		ubs[i] = estimate.ConfidenceInterval.UpperBound
	}

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.Size,
		Title:  escapeUnderscores(group),
		Output: path,
		BottomX: figure.Axis{
			Label:     "Input",
			MajorGrid: true,
		},
		LeftY: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			ScaleFactor: yScale,
			MajorGrid:   true,
		},
		Key: keyInsideTopLeft(),
	}

	fig.Series = append(fig.Series, figure.Series{
		Kind: figure.YErrorBars,
		Xs:   inputs,
		Ys:   points,
		Low:  lbs,
		High: ubs,
		Style: figure.Style{
			Color:     &settings.DarkBlue,
			Label:     string(statistic),
			LineWidth: settings.LineWidth,
			PointType: figure.FilledCircle,
			PointSize: settings.PointSize,
		},
	})

	return fig, nil
}

// SummaryRanked assembles the group-summary chart for categorical inputs:
// one horizontal error bar per benchmark, ranked by the given statistic.
// Labels must already be sorted by descending point estimate with their
// estimates in matching order; the last entry is the fastest and anchors the
// relative-time axis at 1.00.
func SummaryRanked(
	settings Settings,
	group string,
	statistic stats.Statistic,
	labels []string,
	estimates []stats.Estimate,
	path string,
) (*figure.Figure, error) {
	if err := validateEntries(len(labels), len(estimates)); err != nil {
		return nil, err
	}

	xScale, prefix := scale.Time(maxUpperBound(estimates))

	points := make([]float64, len(estimates))
	lbs := make([]float64, len(estimates))
	ubs := make([]float64, len(estimates))

	for i, estimate := range estimates {
		points[i] = estimate.PointEstimate
		lbs[i] = estimate.ConfidenceInterval.LowerBound
		ubs[i] = estimate.ConfidenceInterval.UpperBound
	}

	minimum := points[len(points)-1]

	relative := make([]string, len(points))
	for i, point := range points {
		relative[i] = fmt.Sprintf("%.2f", point/minimum)
	}

	positions := bandPositions(len(labels))
	span := float64(len(labels))

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.Size,
		Title:  fmt.Sprintf("%s: Estimates of the %ss", escapeUnderscores(group), statistic),
		Output: path,
		BottomX: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			ScaleFactor: xScale,
			MajorGrid:   true,
		},
		LeftY: figure.Axis{
			Label: "Input",
			Range: &figure.Range{Min: 0, Max: span},
			Tics:  categoricalTics(positions, labels),
		},
		RightY: figure.Axis{
			Label: "Relative time",
			Range: &figure.Range{Min: 0, Max: span},
			Tics:  categoricalTics(positions, relative),
		},
	}

	fig.Series = append(fig.Series, figure.Series{
		Kind: figure.XErrorBars,
		Xs:   points,
		Ys:   positions,
		Low:  lbs,
		High: ubs,
		Style: figure.Style{
			Color:     &settings.DarkBlue,
			Label:     "Confidence Interval",
			LineWidth: settings.LineWidth,
			PointType: figure.FilledCircle,
			PointSize: settings.PointSize,
		},
	})

	return fig, nil
}

// Violin assembles the violin chart of a group: one density band per
// benchmark, each normalized to unit peak height, with median markers drawn
// underneath. Labels and samples must be in the ranking produced by the
// median pass of SummaryRanked so the bands line up with that chart.
func Violin(
	settings Settings,
	group string,
	labels []string,
	samples []stats.Sample,
	path string,
) (*figure.Figure, error) {
	if err := validateEntries(len(labels), len(samples)); err != nil {
		return nil, err
	}

	type densityCurve struct {
		xs []float64
		ys []float64
	}

	curves := make([]densityCurve, len(samples))
	medians := make([]float64, len(samples))

	maxX := 0.0

	for i, sample := range samples {
		xs, ys, err := kde.Sweep(sample, settings.KDEPoints, nil)
		if err != nil {
			return nil, ewrap.Wrapf(err, "estimating density of %q", labels[i])
		}

		peak := stats.Sample(ys).Max()
		for j := range ys {
			ys[j] /= peak
		}

		for _, x := range xs {
			if x > maxX {
				maxX = x
			}
		}

		curves[i] = densityCurve{xs: xs, ys: ys}
		medians[i] = sample.Median()
	}

	xScale, prefix := scale.Time(maxX)
	positions := bandPositions(len(labels))

	fig := &figure.Figure{
		Font:   settings.Font,
		Size:   settings.Size,
		Title:  fmt.Sprintf("%s: Violin plot", escapeUnderscores(group)),
		Output: path,
		BottomX: figure.Axis{
			Label:       fmt.Sprintf("Average time (%ss)", prefix),
			ScaleFactor: xScale,
			MajorGrid:   true,
		},
		LeftY: figure.Axis{
			Label: "Input",
			Range: &figure.Range{Min: 0, Max: float64(len(labels))},
			Tics:  categoricalTics(positions, labels),
		},
	}

	fig.Series = append(fig.Series, figure.Series{
		Kind: figure.Points,
		Xs:   medians,
		Ys:   positions,
		Style: figure.Style{
			Color:     &figure.Black,
			Label:     "Median",
			PointType: figure.Plus,
			PointSize: violinPointScale * settings.PointSize,
		},
	})

	for i, curve := range curves {
		upper := make([]float64, len(curve.ys))
		lower := make([]float64, len(curve.ys))

		for j, y := range curve.ys {
			upper[j] = positions[i] + y/2
			lower[j] = positions[i] - y/2
		}

		style := figure.Style{
			Color:   &settings.DarkBlue,
			Opacity: 0.25,
		}
		if i == 0 {
			style.Label = "PDF"
		}

		fig.Series = append(fig.Series, figure.Series{
			Kind:  figure.FilledCurve,
			Xs:    curve.xs,
			Ys:    upper,
			Y2:    lower,
			Style: style,
		})
	}

	return fig, nil
}
