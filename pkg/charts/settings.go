// Package charts assembles declarative chart descriptions from benchmark
// statistics. One assembler per chart kind; every assembler is a pure
// function from data and styling settings to a figure, so assemblies can
// run concurrently on the render pool without shared state.
package charts

import (
	"strings"

	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/pkg/figure"
)

// Settings carries the visual styling shared by all chart assemblers.
// Styling is passed explicitly instead of read from package globals so two
// plotters with different styles can coexist in one process.
type Settings struct {
	Font       string
	Size       figure.Size
	LineWidth  float64
	PointSize  float64
	KDEPoints  int
	DarkBlue   figure.Color
	DarkOrange figure.Color
	DarkRed    figure.Color
}

// DefaultSettings returns the standard chart styling: 1280x720 Helvetica
// charts with the blue/orange/red palette.
func DefaultSettings() Settings {
	return Settings{
		Font:       constants.DefaultFont,
		Size:       figure.Size{Width: constants.DefaultWidth, Height: constants.DefaultHeight},
		LineWidth:  constants.DefaultLineWidth,
		PointSize:  constants.DefaultPointSize,
		KDEPoints:  constants.DefaultKDEPoints,
		DarkBlue:   figure.Color{R: 31, G: 120, B: 180},
		DarkOrange: figure.Color{R: 255, G: 127, B: 0},
		DarkRed:    figure.Color{R: 227, G: 26, B: 28},
	}
}

// sizeOrDefault substitutes the settings size for a zero per-call size.
func (s Settings) sizeOrDefault(size figure.Size) figure.Size {
	if size.Width <= 0 || size.Height <= 0 {
		return s.Size
	}

	return size
}

// escapeUnderscores protects underscores in chart titles from being eaten as
// subscript markers by the renderer's enhanced-text mode. Only titles need
// escaping; axis labels and file paths never carry benchmark identifiers.
func escapeUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

// keyOutsideTopRight is the key placement of the density and distribution
// charts.
func keyOutsideTopRight() figure.Key {
	return figure.Key{
		Position: &figure.KeyPosition{Placement: figure.KeyOutside, Corner: figure.TopRight},
	}
}

// keyInsideTopLeft is the key placement of the regression and summary charts.
func keyInsideTopLeft() figure.Key {
	return figure.Key{
		Position: &figure.KeyPosition{Placement: figure.KeyInside, Corner: figure.TopLeft},
	}
}
