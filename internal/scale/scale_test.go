package scale_test

import (
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchplot/internal/scale"
)

func TestTime(t *testing.T) {
	tests := []struct {
		name           string
		ns             float64
		expectedFactor float64
		expectedPrefix string
	}{
		{
			name:           "sub nanosecond",
			ns:             0.5,
			expectedFactor: 1e3,
			expectedPrefix: "p",
		},
		{
			name:           "nanoseconds",
			ns:             999,
			expectedFactor: 1e0,
			expectedPrefix: "n",
		},
		{
			name:           "microseconds",
			ns:             1e3,
			expectedFactor: 1e-3,
			expectedPrefix: "u",
		},
		{
			name:           "milliseconds",
			ns:             1e6,
			expectedFactor: 1e-6,
			expectedPrefix: "m",
		},
		{
			name:           "seconds",
			ns:             1e9,
			expectedFactor: 1e-9,
			expectedPrefix: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			factor, prefix := scale.Time(test.ns)
			assert.Equal(t, test.expectedFactor, factor)
			assert.Equal(t, test.expectedPrefix, prefix)
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name           string
		maxIters       float64
		expectedFactor float64
		expectedLabel  string
	}{
		{
			name:           "below one thousand",
			maxIters:       999,
			expectedFactor: 1,
			expectedLabel:  "Iterations",
		},
		{
			name:           "thousands",
			maxIters:       1e3,
			expectedFactor: 1e-3,
			expectedLabel:  "Iterations (x 10^3)",
		},
		{
			name:           "millions",
			maxIters:       2.5e6,
			expectedFactor: 1e-6,
			expectedLabel:  "Iterations (x 10^6)",
		},
		{
			name:           "zero iterations",
			maxIters:       0,
			expectedFactor: 1,
			expectedLabel:  "Iterations",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			factor, label := scale.Count(test.maxIters)
			assert.Equal(t, test.expectedFactor, factor)
			assert.Equal(t, test.expectedLabel, label)
		})
	}
}
