package charts_test

import (
	"errors"
	"math"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/charts"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

func testSample() stats.Sample {
	return stats.Sample{10, 11, 12, 13, 14}
}

func testData(t *testing.T) *stats.Data {
	t.Helper()

	data, err := stats.NewData(
		[]float64{100, 200, 300, 400, 500},
		[]float64{1000, 2200, 3300, 4100, 5500},
	)
	assert.Nil(t, err)

	return data
}

func testEstimate(lb, point, ub float64) stats.Estimate {
	return stats.Estimate{
		ConfidenceInterval: stats.ConfidenceInterval{
			ConfidenceLevel: 0.95,
			LowerBound:      lb,
			UpperBound:      ub,
		},
		PointEstimate: point,
		StandardError: (ub - lb) / 4,
	}
}

func TestDensitySmall(t *testing.T) {
	settings := charts.DefaultSettings()

	fig, err := charts.DensitySmall(settings, testSample(), "out/new/pdf_small.svg", figure.Size{})
	assert.Nil(t, err)

	assert.Equal(t, "", fig.Title)
	assert.Equal(t, "out/new/pdf_small.svg", fig.Output)
	assert.Equal(t, settings.Size, fig.Size)
	assert.Equal(t, true, fig.Key.Hidden)
	assert.Equal(t, true, fig.RightY.Hidden)
	assert.Equal(t, "Average time (ns)", fig.BottomX.Label)
	assert.Equal(t, "Density (a.u.)", fig.LeftY.Label)
	assert.True(t, fig.BottomX.Range != nil)
	assert.True(t, fig.LeftY.Range != nil)
	assert.Equal(t, 0.0, fig.LeftY.Range.Min)

	assert.Equal(t, 2, len(fig.Series))

	// The compact chart has a single visible axis, so the fill stays on it.
	fill := fig.Series[0]
	assert.Equal(t, figure.FilledCurve, fill.Kind)
	assert.Equal(t, "PDF", fill.Style.Label)
	assert.Equal(t, false, fill.Style.SecondaryY)
	assert.Equal(t, 0.25, fill.Style.Opacity)

	mean := fig.Series[1]
	assert.Equal(t, figure.Lines, mean.Kind)
	assert.Equal(t, "Mean", mean.Style.Label)
	assert.Equal(t, figure.Solid, mean.Style.LineStyle)
	assert.Equal(t, 12.0, mean.Xs[0])
	assert.Equal(t, 12.0, mean.Xs[1])
	assert.Equal(t, 0.0, mean.Ys[0])
}

func TestDensitySmallCustomSize(t *testing.T) {
	settings := charts.DefaultSettings()
	size := figure.Size{Width: 450, Height: 300}

	fig, err := charts.DensitySmall(settings, testSample(), "pdf_small.svg", size)
	assert.Nil(t, err)
	assert.Equal(t, size, fig.Size)
}

func TestDensitySmallEmptySample(t *testing.T) {
	_, err := charts.DensitySmall(charts.DefaultSettings(), stats.Sample{}, "pdf.svg", figure.Size{})
	assert.True(t, err != nil)
	assert.Equal(t, true, errors.Is(err, sentinel.ErrEmptySample))
}

func TestDensity(t *testing.T) {
	settings := charts.DefaultSettings()
	data := testData(t)

	labeled, err := stats.TukeyClassify(data.AvgTimes())
	assert.Nil(t, err)

	fig, err := charts.Density(settings, data, labeled, "walk_dir", "out/new/pdf.svg", figure.Size{})
	assert.Nil(t, err)

	assert.Equal(t, `walk\_dir`, fig.Title)
	assert.Equal(t, "Density (a.u.)", fig.RightY.Label)
	assert.Equal(t, false, fig.RightY.Hidden)
	assert.True(t, fig.Key.Position != nil)
	assert.Equal(t, figure.KeyOutside, fig.Key.Position.Placement)
	assert.Equal(t, figure.TopRight, fig.Key.Position.Corner)

	// Iterations axis spans [0, max iteration count].
	assert.Equal(t, "Iterations", fig.LeftY.Label)
	assert.True(t, fig.LeftY.Range != nil)
	assert.Equal(t, 500.0, fig.LeftY.Range.Max)

	// All observations are clean, so the scatter collapses to one series:
	// fill, mean marker, clean points, then the four fences.
	assert.Equal(t, 7, len(fig.Series))
	assert.Equal(t, "PDF", fig.Series[0].Style.Label)
	assert.Equal(t, "Mean", fig.Series[1].Style.Label)
	assert.Equal(t, figure.Dash, fig.Series[1].Style.LineStyle)
	assert.Equal(t, 500.0, fig.Series[1].Ys[1])
	assert.Equal(t, `"Clean" sample`, fig.Series[2].Style.Label)
	assert.Equal(t, figure.FilledCircle, fig.Series[2].Style.PointType)

	for _, fence := range fig.Series[3:] {
		assert.Equal(t, figure.Lines, fence.Kind)
		assert.Equal(t, "", fence.Style.Label)
		assert.Equal(t, figure.Dash, fence.Style.LineStyle)
		assert.Equal(t, 500.0, fence.Ys[1])
	}

	assert.Equal(t, settings.DarkOrange, *fig.Series[3].Style.Color)
	assert.Equal(t, settings.DarkOrange, *fig.Series[4].Style.Color)
	assert.Equal(t, settings.DarkRed, *fig.Series[5].Style.Color)
	assert.Equal(t, settings.DarkRed, *fig.Series[6].Style.Color)
}

func TestDensityOutlierScatter(t *testing.T) {
	iters := []float64{1, 1, 1, 1, 1, 1, 1}
	times := []float64{10, 11, 12, 13, 14, 100, -60}

	data, err := stats.NewData(iters, times)
	assert.Nil(t, err)

	labeled, err := stats.TukeyClassify(data.AvgTimes())
	assert.Nil(t, err)

	fig, err := charts.Density(charts.DefaultSettings(), data, labeled, "id", "pdf.svg", figure.Size{})
	assert.Nil(t, err)

	var labels []string
	for _, series := range fig.Series {
		if series.Kind == figure.Points {
			labels = append(labels, series.Style.Label)
		}
	}

	assert.Equal(t, []string{`"Clean" sample`, "Severe outliers"}, labels)
}

func TestRegression(t *testing.T) {
	settings := charts.DefaultSettings()
	data := testData(t)
	slope := testEstimate(9.5, 10.0, 10.5)

	fig, err := charts.Regression(settings, data, slope, "parse_log", "out/new/regression.svg", figure.Size{}, false)
	assert.Nil(t, err)

	assert.Equal(t, `parse\_log`, fig.Title)
	assert.Equal(t, true, fig.BottomX.MajorGrid)
	assert.Equal(t, true, fig.LeftY.MajorGrid)
	assert.Nil(t, fig.BottomX.Range)
	assert.Nil(t, fig.LeftY.Range)
	assert.True(t, fig.Key.Position != nil)
	assert.Equal(t, figure.KeyInside, fig.Key.Position.Placement)
	assert.Equal(t, figure.TopLeft, fig.Key.Position.Corner)

	assert.Equal(t, 3, len(fig.Series))
	assert.Equal(t, "Sample", fig.Series[0].Style.Label)
	assert.Equal(t, 0.5, fig.Series[0].Style.PointSize)

	line := fig.Series[1]
	assert.Equal(t, "Linear regression", line.Style.Label)
	assert.Equal(t, []float64{0, 500}, line.Xs)
	assert.Equal(t, []float64{0, 5000}, line.Ys)

	band := fig.Series[2]
	assert.Equal(t, figure.FilledCurve, band.Kind)
	assert.Equal(t, "Confidence interval", band.Style.Label)
	assert.Equal(t, []float64{0, 4750}, band.Ys)
	assert.Equal(t, []float64{0, 5250}, band.Y2)
	assert.Equal(t, false, band.Style.SecondaryY)
}

func TestRegressionThumbnail(t *testing.T) {
	data := testData(t)

	fig, err := charts.Regression(charts.DefaultSettings(), data, testEstimate(9.5, 10.0, 10.5), "id", "regression_small.svg", figure.Size{Width: 450, Height: 300}, true)
	assert.Nil(t, err)

	assert.Equal(t, "", fig.Title)
	assert.Equal(t, true, fig.Key.Hidden)
	assert.Equal(t, 3, len(fig.Series))
	assert.Equal(t, figure.Size{Width: 450, Height: 300}, fig.Size)
}

func TestRegressionInvalidSlope(t *testing.T) {
	_, err := charts.Regression(charts.DefaultSettings(), testData(t), testEstimate(11, 10, 12), "id", "r.svg", figure.Size{}, false)
	assert.True(t, err != nil)
	assert.Equal(t, true, errors.Is(err, sentinel.ErrInvalidEstimate))
}

func TestAbsDistribution(t *testing.T) {
	settings := charts.DefaultSettings()
	distribution := testSample()
	estimate := testEstimate(11, 12, 13)

	fig, err := charts.AbsDistribution(settings, distribution, estimate, stats.Mean, "my_bench", "out/new/mean.svg")
	assert.Nil(t, err)

	assert.Equal(t, `my\_bench: mean`, fig.Title)
	assert.Equal(t, "Average time (ns)", fig.BottomX.Label)
	assert.Equal(t, "Density (a.u.)", fig.LeftY.Label)
	assert.Equal(t, 1.0, fig.LeftY.ScaleFactor)

	assert.Equal(t, 3, len(fig.Series))
	assert.Equal(t, "Bootstrap distribution", fig.Series[0].Style.Label)

	fill := fig.Series[1]
	assert.Equal(t, "Confidence interval", fill.Style.Label)
	assert.Equal(t, true, fill.Xs[0] >= 11)
	assert.Equal(t, true, fill.Xs[len(fill.Xs)-1] <= 13)

	marker := fig.Series[2]
	assert.Equal(t, "Point estimate", marker.Style.Label)
	assert.Equal(t, figure.Dash, marker.Style.LineStyle)
	assert.Equal(t, 12.0, marker.Xs[0])
	assert.Equal(t, 0.0, marker.Ys[0])
	assert.Equal(t, true, marker.Ys[1] > 0)
}

func TestRelDistribution(t *testing.T) {
	settings := charts.DefaultSettings()
	base := charts.NewRelDistributionBase(settings)
	distribution := stats.Sample{0.04, 0.045, 0.05, 0.055, 0.06}
	estimate := testEstimate(0.045, 0.05, 0.055)

	fig, err := charts.RelDistribution(base, settings, distribution, estimate, stats.Mean, "my_bench", "out/change/mean.svg", 0.03)
	assert.Nil(t, err)

	// The base figure stays pristine for the next statistic.
	assert.Equal(t, 0, len(base.Series))
	assert.Equal(t, "", base.Title)
	assert.Equal(t, "", base.BottomX.Label)

	assert.Equal(t, `my\_bench: mean`, fig.Title)
	assert.Equal(t, "Relative change (%)", fig.BottomX.Label)
	assert.Equal(t, 100.0, fig.BottomX.ScaleFactor)
	assert.True(t, fig.BottomX.Range != nil)
	assert.Equal(t, "Density (a.u.)", fig.LeftY.Label)
	assert.Equal(t, 0.0, fig.LeftY.ScaleFactor)

	assert.Equal(t, 4, len(fig.Series))

	band := fig.Series[3]
	assert.Equal(t, "Noise threshold", band.Style.Label)
	assert.Equal(t, true, band.Style.SecondaryY)
	assert.Equal(t, 0.1, band.Style.Opacity)
	assert.Equal(t, settings.DarkRed, *band.Style.Color)
	assert.Equal(t, []float64{1, 1}, band.Ys)
	assert.Equal(t, []float64{0, 0}, band.Y2)

	// The band clamps to the threshold on the right and to the visible
	// range on the left.
	assert.Equal(t, 0.03, band.Xs[1])
	assert.Equal(t, true, band.Xs[0] < band.Xs[1])
}

func TestRelDistributionNoiseBandCollapse(t *testing.T) {
	settings := charts.DefaultSettings()
	base := charts.NewRelDistributionBase(settings)
	distribution := stats.Sample{0.04, 0.045, 0.05, 0.055, 0.06}
	estimate := testEstimate(0.045, 0.05, 0.055)

	// Threshold far below the visible range collapses the band to a point.
	fig, err := charts.RelDistribution(base, settings, distribution, estimate, stats.Mean, "id", "mean.svg", 0.001)
	assert.Nil(t, err)

	band := fig.Series[3]
	assert.Equal(t, band.Xs[0], band.Xs[1])
}

func TestTTest(t *testing.T) {
	settings := charts.DefaultSettings()
	distribution := stats.Sample{-2, -1, 0, 1, 2}

	fig, err := charts.TTest(settings, 2.5, distribution, "my_bench", "out/change/t-test.svg")
	assert.Nil(t, err)

	assert.Equal(t, `my\_bench: Welch t test`, fig.Title)
	assert.Equal(t, "t score", fig.BottomX.Label)
	assert.Equal(t, "Density", fig.LeftY.Label)

	assert.Equal(t, 2, len(fig.Series))

	fill := fig.Series[0]
	assert.Equal(t, figure.FilledCurve, fill.Kind)
	assert.Equal(t, "t distribution", fill.Style.Label)
	assert.Equal(t, false, fill.Style.SecondaryY)

	marker := fig.Series[1]
	assert.Equal(t, "t statistic", marker.Style.Label)
	assert.Equal(t, true, marker.Style.SecondaryY)
	assert.Equal(t, figure.Solid, marker.Style.LineStyle)
	assert.Equal(t, []float64{2.5, 2.5}, marker.Xs)
	assert.Equal(t, []float64{0, 1}, marker.Ys)
}

func TestComparisonDensity(t *testing.T) {
	settings := charts.DefaultSettings()
	baseSample := stats.Sample{20, 21, 22, 23, 24}
	newSample := testSample()

	fig, err := charts.ComparisonDensity(settings, baseSample, newSample, "my_bench", "out/both/pdf.svg", figure.Size{})
	assert.Nil(t, err)

	assert.Equal(t, `my\_bench`, fig.Title)
	assert.Equal(t, "Average time (ns)", fig.BottomX.Label)
	assert.Equal(t, 2, len(fig.Series))

	assert.Equal(t, "Base PDF", fig.Series[0].Style.Label)
	assert.Equal(t, settings.DarkRed, *fig.Series[0].Style.Color)
	assert.Equal(t, "New PDF", fig.Series[1].Style.Label)
	assert.Equal(t, settings.DarkBlue, *fig.Series[1].Style.Color)

	for _, series := range fig.Series {
		assert.Equal(t, figure.FilledCurve, series.Kind)
		assert.Equal(t, 0.25, series.Style.Opacity)
		assert.Equal(t, false, series.Style.SecondaryY)
	}
}

func TestComparisonRegression(t *testing.T) {
	settings := charts.DefaultSettings()
	baseData := testData(t)

	newData, err := stats.NewData(
		[]float64{100, 200, 300, 400},
		[]float64{800, 1700, 2500, 3300},
	)
	assert.Nil(t, err)

	fig, err := charts.ComparisonRegression(
		settings,
		baseData, newData,
		testEstimate(9.5, 10.0, 10.5),
		testEstimate(8.0, 8.25, 8.5),
		"my_bench", "out/both/regression.svg", figure.Size{},
	)
	assert.Nil(t, err)

	assert.Equal(t, `my\_bench`, fig.Title)
	assert.True(t, fig.Key.Position != nil)
	assert.Equal(t, figure.KeyInside, fig.Key.Position.Placement)
	assert.Equal(t, 4, len(fig.Series))

	// Bands are unlabeled; only the fitted lines appear in the key.
	assert.Equal(t, "", fig.Series[0].Style.Label)
	assert.Equal(t, "Base sample", fig.Series[1].Style.Label)
	assert.Equal(t, "", fig.Series[2].Style.Label)
	assert.Equal(t, "New sample", fig.Series[3].Style.Label)

	// Both fits extend to the shared maximum iteration count.
	assert.Equal(t, 500.0, fig.Series[1].Xs[1])
	assert.Equal(t, 500.0, fig.Series[3].Xs[1])
	assert.Equal(t, 4125.0, fig.Series[3].Ys[1])
}

func TestSummaryErrorBars(t *testing.T) {
	settings := charts.DefaultSettings()
	inputs := []float64{1, 2, 4}
	estimates := []stats.Estimate{
		testEstimate(900, 1000, 1100),
		testEstimate(1900, 2000, 2100),
		testEstimate(3900, 4000, 4100),
	}

	fig, err := charts.SummaryErrorBars(settings, "from_elem", stats.Mean, inputs, estimates, "summary/new/means.svg")
	assert.Nil(t, err)

	assert.Equal(t, `from\_elem`, fig.Title)
	assert.Equal(t, "Input", fig.BottomX.Label)
	assert.Equal(t, true, fig.BottomX.MajorGrid)
	assert.Equal(t, "Average time (us)", fig.LeftY.Label)
	assert.Equal(t, true, fig.LeftY.MajorGrid)
	assert.True(t, fig.Key.Position != nil)
	assert.Equal(t, figure.KeyInside, fig.Key.Position.Placement)
	assert.Equal(t, figure.TopLeft, fig.Key.Position.Corner)

	assert.Equal(t, 1, len(fig.Series))

	bars := fig.Series[0]
	assert.Equal(t, figure.YErrorBars, bars.Kind)
	assert.Equal(t, "mean", bars.Style.Label)
	assert.Equal(t, inputs, bars.Xs)
	assert.Equal(t, []float64{1000, 2000, 4000}, bars.Ys)
	assert.Equal(t, []float64{900, 1900, 3900}, bars.Low)
	assert.Equal(t, []float64{1100, 2100, 4100}, bars.High)
}

func TestSummaryErrorBarsMismatched(t *testing.T) {
	_, err := charts.SummaryErrorBars(charts.DefaultSettings(), "g", stats.Mean, []float64{1}, nil, "means.svg")
	assert.True(t, err != nil)
	assert.Equal(t, true, errors.Is(err, sentinel.ErrMismatchedLengths))
}

func TestSummaryRanked(t *testing.T) {
	settings := charts.DefaultSettings()
	labels := []string{"slow", "fast"}
	estimates := []stats.Estimate{
		testEstimate(190, 200, 210),
		testEstimate(95, 100, 105),
	}

	fig, err := charts.SummaryRanked(settings, "group_id", stats.Mean, labels, estimates, "summary/new/means.svg")
	assert.Nil(t, err)

	assert.Equal(t, `group\_id: Estimates of the means`, fig.Title)
	assert.Equal(t, "Average time (ns)", fig.BottomX.Label)
	assert.Equal(t, true, fig.BottomX.MajorGrid)

	assert.Equal(t, "Input", fig.LeftY.Label)
	assert.True(t, fig.LeftY.Range != nil)
	assert.Equal(t, 2.0, fig.LeftY.Range.Max)
	assert.Equal(t, 2, len(fig.LeftY.Tics))
	assert.Equal(t, figure.Tic{Position: 0.5, Label: "slow"}, fig.LeftY.Tics[0])
	assert.Equal(t, figure.Tic{Position: 1.5, Label: "fast"}, fig.LeftY.Tics[1])

	assert.Equal(t, "Relative time", fig.RightY.Label)
	assert.Equal(t, "2.00", fig.RightY.Tics[0].Label)
	assert.Equal(t, "1.00", fig.RightY.Tics[1].Label)

	// No explicit key placement; the renderer default applies.
	assert.Nil(t, fig.Key.Position)
	assert.Equal(t, false, fig.Key.Hidden)

	assert.Equal(t, 1, len(fig.Series))

	bars := fig.Series[0]
	assert.Equal(t, figure.XErrorBars, bars.Kind)
	assert.Equal(t, "Confidence Interval", bars.Style.Label)
	assert.Equal(t, []float64{200, 100}, bars.Xs)
	assert.Equal(t, []float64{0.5, 1.5}, bars.Ys)
	assert.Equal(t, []float64{190, 95}, bars.Low)
	assert.Equal(t, []float64{210, 105}, bars.High)
}

func TestViolin(t *testing.T) {
	settings := charts.DefaultSettings()
	labels := []string{"alpha", "beta"}
	samples := []stats.Sample{
		{100, 110, 120, 130, 140},
		{50, 55, 60, 65, 70},
	}

	fig, err := charts.Violin(settings, "group_id", labels, samples, "summary/new/violin_plot.svg")
	assert.Nil(t, err)

	assert.Equal(t, `group\_id: Violin plot`, fig.Title)
	assert.Equal(t, true, fig.BottomX.MajorGrid)
	assert.Equal(t, "Input", fig.LeftY.Label)
	assert.Equal(t, 2, len(fig.LeftY.Tics))
	assert.Nil(t, fig.Key.Position)

	assert.Equal(t, 3, len(fig.Series))

	medians := fig.Series[0]
	assert.Equal(t, figure.Points, medians.Kind)
	assert.Equal(t, "Median", medians.Style.Label)
	assert.Equal(t, figure.Plus, medians.Style.PointType)
	assert.Equal(t, 1.5, medians.Style.PointSize)
	assert.Equal(t, figure.Black, *medians.Style.Color)
	assert.Equal(t, []float64{120, 60}, medians.Xs)
	assert.Equal(t, []float64{0.5, 1.5}, medians.Ys)

	assert.Equal(t, "PDF", fig.Series[1].Style.Label)
	assert.Equal(t, "", fig.Series[2].Style.Label)

	// Each band is symmetric around its center line and normalized to unit
	// peak height, so the first band tops out at exactly 0.5 + 0.5.
	first := fig.Series[1]
	peak := first.Ys[0]

	for i := range first.Ys {
		if first.Ys[i] > peak {
			peak = first.Ys[i]
		}

		assert.Equal(t, true, math.Abs(first.Ys[i]+first.Y2[i]-1.0) < 1e-9)
	}

	assert.Equal(t, 1.0, peak)
}

func TestViolinMismatched(t *testing.T) {
	_, err := charts.Violin(charts.DefaultSettings(), "g", []string{"a"}, nil, "violin_plot.svg")
	assert.True(t, err != nil)
	assert.Equal(t, true, errors.Is(err, sentinel.ErrMismatchedLengths))
}
