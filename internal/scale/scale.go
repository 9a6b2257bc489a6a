// Package scale converts raw measurement magnitudes into display units.
// Time axes carry nanosecond measurements that are rescaled into the SI
// prefix keeping values readable, and iteration axes are rescaled by the
// nearest power of one thousand.
package scale

import (
	"fmt"
	"math"
)

const (
	picoThreshold  = 1.0
	nanoThreshold  = 1e3
	microThreshold = 1e6
	milliThreshold = 1e9

	// countStep is the rescaling unit for iteration counts.
	countStep = 1e3
)

// Time returns the multiplication factor and SI prefix rendering the given
// maximum nanosecond value into a readable unit. Multiplying every value of
// the series by the factor and labeling the axis "{prefix}s" keeps the
// displayed magnitudes in a human range.
func Time(ns float64) (factor float64, prefix string) {
	switch {
	case ns < picoThreshold:
		return 1e3, "p"
	case ns < nanoThreshold:
		return 1e0, "n"
	case ns < microThreshold:
		return 1e-3, "u"
	case ns < milliThreshold:
		return 1e-6, "m"
	default:
		return 1e-9, ""
	}
}

// Count returns the multiplication factor and axis label rendering the given
// maximum iteration count. Counts are rescaled by the highest power of one
// thousand not exceeding the maximum, and the label names the applied
// exponent when one is in effect.
func Count(maxIters float64) (factor float64, label string) {
	if maxIters <= 0 || math.IsInf(maxIters, 1) {
		return 1, "Iterations"
	}

	exponent := 0
	for threshold := countStep; maxIters >= threshold; threshold *= countStep {
		exponent += 3
	}

	if exponent == 0 {
		return 1, "Iterations"
	}

	return math.Pow(10, -float64(exponent)), fmt.Sprintf("Iterations (x 10^%d)", exponent)
}
