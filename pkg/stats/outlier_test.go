package stats_test

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchplot/internal/sentinel"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

func TestFences_Valid(t *testing.T) {
	valid := stats.Fences{LowSevere: 0, LowMild: 1, HighMild: 3, HighSevere: 4}
	assert.Nil(t, valid.Valid())

	inverted := stats.Fences{LowSevere: 2, LowMild: 1, HighMild: 3, HighSevere: 4}
	assert.True(t, errors.Is(inverted.Valid(), sentinel.ErrInvalidFences))
}

func TestNewLabeledSample(t *testing.T) {
	fences := stats.Fences{LowSevere: -10, LowMild: -5, HighMild: 5, HighSevere: 10}

	ls, err := stats.NewLabeledSample(
		stats.Sample{1, 2, 3},
		[]stats.Label{stats.LabelClean, stats.LabelClean, stats.LabelClean},
		fences,
	)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(ls.Sample))

	_, err = stats.NewLabeledSample(stats.Sample{1, 2}, []stats.Label{stats.LabelClean}, fences)
	assert.True(t, errors.Is(err, sentinel.ErrMismatchedLengths))

	_, err = stats.NewLabeledSample(nil, nil, fences)
	assert.True(t, errors.Is(err, sentinel.ErrEmptySample))
}

func TestTukeyClassify(t *testing.T) {
	// Tight cluster plus one far point on each side.
	sample := stats.Sample{10, 11, 12, 13, 14, 100, -60}

	ls, err := stats.TukeyClassify(sample)
	assert.Nil(t, err)
	assert.Nil(t, ls.Fences.Valid())

	assert.True(t, ls.Labels[5].IsOutlier())
	assert.True(t, ls.Labels[6].IsOutlier())
	assert.False(t, ls.Labels[2].IsOutlier())
}

func TestPartition_IsTotalAndExclusive(t *testing.T) {
	fences := stats.Fences{LowSevere: -10, LowMild: -5, HighMild: 5, HighSevere: 10}
	sample := stats.Sample{0, -7, 7, -12, 12, 1}
	labels := []stats.Label{
		stats.LabelClean,
		stats.LabelMildLow,
		stats.LabelMildHigh,
		stats.LabelSevereLow,
		stats.LabelSevereHigh,
		stats.LabelClean,
	}
	aux := []float64{1, 2, 3, 4, 5, 6}

	ls, err := stats.NewLabeledSample(sample, labels, fences)
	assert.Nil(t, err)

	clean, mild, severe, err := stats.Partition(ls, aux)
	assert.Nil(t, err)

	// Every observation lands in exactly one series.
	assert.Equal(t, len(sample), len(clean.Xs)+len(mild.Xs)+len(severe.Xs))

	// Original ordering is preserved within each series.
	assert.Equal(t, []float64{0, 1}, clean.Xs)
	assert.Equal(t, []float64{1, 6}, clean.Ys)
	assert.Equal(t, []float64{-7, 7}, mild.Xs)
	assert.Equal(t, []float64{2, 3}, mild.Ys)
	assert.Equal(t, []float64{-12, 12}, severe.Xs)
	assert.Equal(t, []float64{4, 5}, severe.Ys)
}

func TestPartition_MismatchedAux(t *testing.T) {
	ls, err := stats.TukeyClassify(stats.Sample{1, 2, 3})
	assert.Nil(t, err)

	_, _, _, err = stats.Partition(ls, []float64{1})
	assert.True(t, errors.Is(err, sentinel.ErrMismatchedLengths))
}
