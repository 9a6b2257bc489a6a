// Package figure describes charts declaratively. A Figure collects axes,
// key placement, and data series; it carries no rendering logic beyond its
// gnuplot-script serialization and stays immutable once assembled, so many
// figures can be rendered concurrently without locking.
package figure

// Size is the pixel size of the rendered chart.
type Size struct {
	Width  int
	Height int
}

// Color is an RGB color written into the script as a hex literal.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Black is the marker color of the violin median points.
//
//nolint:gochecknoglobals
var Black = Color{R: 0, G: 0, B: 0}

// LineStyle selects the dash pattern of a line series.
type LineStyle int

const (
	// Solid is a continuous line.
	Solid LineStyle = iota
	// Dash is a dashed line.
	Dash
)

// PointType selects the glyph of a point series.
type PointType int

const (
	// NoPoint omits the glyph selection, leaving the engine default.
	NoPoint PointType = iota
	// FilledCircle is a filled circular glyph.
	FilledCircle
	// Plus is a plus-shaped glyph.
	Plus
)

// Range bounds an axis explicitly. A nil Range leaves the axis on autoscale.
type Range struct {
	Min float64
	Max float64
}

// Tic is one explicit axis tic: a position in display units and its label.
type Tic struct {
	Position float64
	Label    string
}

// Axis describes one chart axis. A zero ScaleFactor means no rescaling.
// Series data bound to the axis is multiplied by ScaleFactor when the script
// is written; Range limits and Tic positions are already in display units.
type Axis struct {
	Label       string
	Range       *Range
	ScaleFactor float64
	Hidden      bool
	MajorGrid   bool
	Tics        []Tic
}

// factor returns the effective multiplier of the axis.
func (a Axis) factor() float64 {
	if a.ScaleFactor == 0 {
		return 1
	}

	return a.ScaleFactor
}

// configured reports whether the axis carries any visible configuration.
func (a Axis) configured() bool {
	return a.Label != "" || a.Range != nil || len(a.Tics) > 0
}

// KeyPlacement locates the key relative to the plot border.
type KeyPlacement int

const (
	// KeyInside draws the key inside the plot border.
	KeyInside KeyPlacement = iota
	// KeyOutside draws the key outside the plot border.
	KeyOutside
)

// KeyCorner anchors the key to a corner.
type KeyCorner int

const (
	// TopRight anchors the key to the top right corner.
	TopRight KeyCorner = iota
	// TopLeft anchors the key to the top left corner.
	TopLeft
)

// KeyPosition anchors the key to a placement and corner.
type KeyPosition struct {
	Placement KeyPlacement
	Corner    KeyCorner
}

// Key describes the chart legend. A nil Position leaves the engine default;
// Hidden suppresses the key entirely.
type Key struct {
	Hidden   bool
	Position *KeyPosition
}

// SeriesKind selects the plotting style of a series.
type SeriesKind int

const (
	// Lines joins the points with line segments.
	Lines SeriesKind = iota
	// Points draws a glyph per point.
	Points
	// FilledCurve fills the area between two curves sharing an x grid.
	FilledCurve
	// YErrorBars draws points with vertical error bars.
	YErrorBars
	// XErrorBars draws points with horizontal error bars.
	XErrorBars
)

// Style carries the visual attributes of one series. Zero values fall back
// to the engine defaults; an empty Label excludes the series from the key.
type Style struct {
	Color      *Color
	Label      string
	LineWidth  float64
	LineStyle  LineStyle
	PointType  PointType
	PointSize  float64
	Opacity    float64
	SecondaryY bool
}

// Series is one plotted data set.
//
// Column usage by kind:
//   - Lines, Points: Xs, Ys
//   - FilledCurve: Xs, Ys (first bound), Y2 (second bound; nil means zeros)
//   - YErrorBars: Xs, Ys, Low, High (y bounds)
//   - XErrorBars: Xs, Ys, Low, High (x bounds)
//
// Data slices are treated as read-only snapshots; assemblers must not mutate
// them after the series is attached to a figure.
type Series struct {
	Kind  SeriesKind
	Xs    []float64
	Ys    []float64
	Y2    []float64
	Low   []float64
	High  []float64
	Style Style
}

// Figure is a complete declarative chart description.
type Figure struct {
	Font    string
	Size    Size
	Title   string
	Output  string
	BottomX Axis
	LeftY   Axis
	RightY  Axis
	Key     Key
	Series  []Series
}

// Clone returns a copy sharing the underlying data slices but owning its own
// series list, tics, and ranges, so per-chart configuration on the copy never
// leaks into the original.
func (f *Figure) Clone() *Figure {
	clone := *f

	clone.Series = make([]Series, len(f.Series))
	copy(clone.Series, f.Series)

	clone.BottomX = f.BottomX.clone()
	clone.LeftY = f.LeftY.clone()
	clone.RightY = f.RightY.clone()

	if f.Key.Position != nil {
		position := *f.Key.Position
		clone.Key.Position = &position
	}

	return &clone
}

func (a Axis) clone() Axis {
	out := a

	if a.Range != nil {
		r := *a.Range
		out.Range = &r
	}

	if len(a.Tics) > 0 {
		out.Tics = make([]Tic, len(a.Tics))
		copy(out.Tics, a.Tics)
	}

	return out
}
