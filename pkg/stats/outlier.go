package stats

import (
	moremath "github.com/aclements/go-moremath/stats"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

const (
	mildFenceSpan   = 1.5
	severeFenceSpan = 3.0
)

// Label classifies one observation against the Tukey fences of its sample.
type Label int

const (
	// LabelClean marks an observation inside the mild fences.
	LabelClean Label = iota
	// LabelMildLow marks an observation between the low severe and low mild fences.
	LabelMildLow
	// LabelMildHigh marks an observation between the high mild and high severe fences.
	LabelMildHigh
	// LabelSevereLow marks an observation below the low severe fence.
	LabelSevereLow
	// LabelSevereHigh marks an observation above the high severe fence.
	LabelSevereHigh
)

// IsOutlier reports whether the observation falls outside the mild fences.
func (l Label) IsOutlier() bool {
	return l != LabelClean
}

// IsMild reports whether the observation is a mild outlier.
func (l Label) IsMild() bool {
	return l == LabelMildLow || l == LabelMildHigh
}

// IsSevere reports whether the observation is a severe outlier.
func (l Label) IsSevere() bool {
	return l == LabelSevereLow || l == LabelSevereHigh
}

// Fences are the four Tukey thresholds of a sample, at 1.5 and 3 IQRs from
// the quartiles.
type Fences struct {
	LowSevere  float64
	LowMild    float64
	HighMild   float64
	HighSevere float64
}

// Valid reports whether the fences are monotonically ordered.
func (f Fences) Valid() error {
	if f.LowSevere > f.LowMild || f.LowMild > f.HighMild || f.HighMild > f.HighSevere {
		return ewrap.Wrapf(sentinel.ErrInvalidFences,
			"fences not ordered: %g, %g, %g, %g",
			f.LowSevere, f.LowMild, f.HighMild, f.HighSevere)
	}

	return nil
}

// classify places one observation relative to the fences.
func (f Fences) classify(x float64) Label {
	switch {
	case x < f.LowSevere:
		return LabelSevereLow
	case x > f.HighSevere:
		return LabelSevereHigh
	case x < f.LowMild:
		return LabelMildLow
	case x > f.HighMild:
		return LabelMildHigh
	default:
		return LabelClean
	}
}

// LabeledSample is a sample with a per-observation outlier classification and
// the fences the classification was computed against.
type LabeledSample struct {
	Sample Sample
	Labels []Label
	Fences Fences
}

// NewLabeledSample builds a labeled sample from parts produced elsewhere,
// validating that labels pair with observations and the fences are ordered.
func NewLabeledSample(sample Sample, labels []Label, fences Fences) (*LabeledSample, error) {
	if len(sample) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptySample, "labeled sample")
	}

	if len(sample) != len(labels) {
		return nil, ewrap.Wrapf(sentinel.ErrMismatchedLengths,
			"sample has %d observations, %d labels", len(sample), len(labels))
	}

	err := fences.Valid()
	if err != nil {
		return nil, err
	}

	return &LabeledSample{Sample: sample, Labels: labels, Fences: fences}, nil
}

// TukeyClassify computes the Tukey fences of the sample and labels every
// observation against them.
func TukeyClassify(sample Sample) (*LabeledSample, error) {
	if len(sample) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptySample, "tukey classification")
	}

	q1 := moremath.Sample{Xs: sample}.Quantile(0.25)
	q3 := moremath.Sample{Xs: sample}.Quantile(0.75)
	iqr := q3 - q1

	fences := Fences{
		LowSevere:  q1 - severeFenceSpan*iqr,
		LowMild:    q1 - mildFenceSpan*iqr,
		HighMild:   q3 + mildFenceSpan*iqr,
		HighSevere: q3 + severeFenceSpan*iqr,
	}

	labels := make([]Label, len(sample))
	for i, x := range sample {
		labels[i] = fences.classify(x)
	}

	return &LabeledSample{Sample: sample, Labels: labels, Fences: fences}, nil
}

// Series is one partition of a labeled sample, paired point-wise with the
// auxiliary values of the partitioned observations.
type Series struct {
	Xs []float64
	Ys []float64
}

// Partition splits a labeled sample into clean, mild, and severe series. The
// x values are the observations themselves and the y values come from aux,
// indexed identically to the sample. Every observation lands in exactly one
// series, in its original order.
func Partition(ls *LabeledSample, aux []float64) (clean, mild, severe Series, err error) {
	if len(aux) != len(ls.Sample) {
		return clean, mild, severe, ewrap.Wrapf(sentinel.ErrMismatchedLengths,
			"sample has %d observations, %d auxiliary values", len(ls.Sample), len(aux))
	}

	for i, x := range ls.Sample {
		switch label := ls.Labels[i]; {
		case label.IsSevere():
			severe.Xs = append(severe.Xs, x)
			severe.Ys = append(severe.Ys, aux[i])
		case label.IsMild():
			mild.Xs = append(mild.Xs, x)
			mild.Ys = append(mild.Ys, aux[i])
		default:
			clean.Xs = append(clean.Xs, x)
			clean.Ys = append(clean.Ys, aux[i])
		}
	}

	return clean, mild, severe, nil
}
