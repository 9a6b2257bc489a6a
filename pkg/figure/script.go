package figure

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// terminalFor maps the output extension to a gnuplot terminal.
func terminalFor(output string) string {
	switch filepath.Ext(output) {
	case ".png":
		return "pngcairo"
	default:
		return "svg"
	}
}

// Script serializes the figure into a gnuplot script. Series data is
// multiplied by the scale factor of the axis it is bound to; everything else
// is written verbatim.
func (f *Figure) Script() (string, error) {
	err := f.validate()
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("reset\n")
	fmt.Fprintf(&sb, "set terminal %s size %d,%d enhanced font '%s'\n",
		terminalFor(f.Output), f.Size.Width, f.Size.Height, f.Font)
	fmt.Fprintf(&sb, "set output '%s'\n", f.Output)

	if f.Title != "" {
		fmt.Fprintf(&sb, "set title \"%s\"\n", escapeQuotes(f.Title))
	}

	f.writeAxis(&sb, f.BottomX, "x")
	f.writeAxis(&sb, f.LeftY, "y")

	if f.rightYVisible() {
		sb.WriteString("set ytics nomirror\n")
		f.writeAxis(&sb, f.RightY, "y2")

		if len(f.RightY.Tics) == 0 {
			sb.WriteString("set y2tics\n")
		}
	}

	f.writeKey(&sb)
	f.writeData(&sb)
	f.writePlot(&sb)

	return sb.String(), nil
}

func (f *Figure) validate() error {
	if f.Output == "" {
		return ewrap.Wrap(sentinel.ErrMissingOutput, "figure script")
	}

	if f.Size.Width <= 0 || f.Size.Height <= 0 {
		return ewrap.Wrapf(sentinel.ErrInvalidSize, "figure size %dx%d", f.Size.Width, f.Size.Height)
	}

	if len(f.Series) == 0 {
		return ewrap.Wrap(sentinel.ErrNoSeries, "figure script")
	}

	for i, s := range f.Series {
		err := s.validate()
		if err != nil {
			return ewrap.Wrapf(err, "series %d", i)
		}
	}

	return nil
}

func (s Series) validate() error {
	if len(s.Xs) != len(s.Ys) {
		return ewrap.Wrapf(sentinel.ErrMismatchedLengths, "%d xs, %d ys", len(s.Xs), len(s.Ys))
	}

	switch s.Kind {
	case FilledCurve:
		if s.Y2 != nil && len(s.Y2) != len(s.Xs) {
			return ewrap.Wrapf(sentinel.ErrMismatchedLengths, "%d xs, %d second bounds", len(s.Xs), len(s.Y2))
		}
	case YErrorBars, XErrorBars:
		if len(s.Low) != len(s.Xs) || len(s.High) != len(s.Xs) {
			return ewrap.Wrapf(sentinel.ErrMismatchedLengths,
				"%d xs, %d low bounds, %d high bounds", len(s.Xs), len(s.Low), len(s.High))
		}
	case Lines, Points:
	}

	return nil
}

// rightYVisible reports whether a configured secondary axis must be emitted.
func (f *Figure) rightYVisible() bool {
	return !f.RightY.Hidden && f.RightY.configured()
}

func (*Figure) writeAxis(sb *strings.Builder, axis Axis, name string) {
	if axis.Label != "" {
		fmt.Fprintf(sb, "set %slabel \"%s\"\n", name, escapeQuotes(axis.Label))
	}

	if axis.Range != nil {
		fmt.Fprintf(sb, "set %srange [%s:%s]\n", name, num(axis.Range.Min), num(axis.Range.Max))
	}

	if axis.MajorGrid {
		fmt.Fprintf(sb, "set grid %stics\n", name)
	}

	if len(axis.Tics) > 0 {
		labels := make([]string, len(axis.Tics))
		for i, tic := range axis.Tics {
			labels[i] = fmt.Sprintf("\"%s\" %s", escapeQuotes(tic.Label), num(tic.Position))
		}

		fmt.Fprintf(sb, "set %stics (%s)\n", name, strings.Join(labels, ", "))
	}
}

func (f *Figure) writeKey(sb *strings.Builder) {
	if f.Key.Hidden {
		sb.WriteString("set key off\n")

		return
	}

	if f.Key.Position == nil {
		return
	}

	placement := "inside"
	if f.Key.Position.Placement == KeyOutside {
		placement = "outside"
	}

	corner := "top right"
	if f.Key.Position.Corner == TopLeft {
		corner = "top left"
	}

	fmt.Fprintf(sb, "set key %s %s Left reverse\n", placement, corner)
}

// writeData emits one inline data block per series, scaled by the axis
// factors the series is bound to.
func (f *Figure) writeData(sb *strings.Builder) {
	for i, s := range f.Series {
		xf := f.BottomX.factor()

		yf := f.LeftY.factor()
		if s.Style.SecondaryY {
			yf = f.RightY.factor()
		}

		fmt.Fprintf(sb, "$d%d << EOD\n", i)

		for j := range s.Xs {
			sb.WriteString(num(s.Xs[j] * xf))

			sb.WriteByte(' ')
			sb.WriteString(num(s.Ys[j] * yf))

			switch s.Kind {
			case FilledCurve:
				second := 0.0
				if s.Y2 != nil {
					second = s.Y2[j]
				}

				sb.WriteByte(' ')
				sb.WriteString(num(second * yf))
			case YErrorBars:
				sb.WriteByte(' ')
				sb.WriteString(num(s.Low[j] * yf))
				sb.WriteByte(' ')
				sb.WriteString(num(s.High[j] * yf))
			case XErrorBars:
				sb.WriteByte(' ')
				sb.WriteString(num(s.Low[j] * xf))
				sb.WriteByte(' ')
				sb.WriteString(num(s.High[j] * xf))
			case Lines, Points:
			}

			sb.WriteByte('\n')
		}

		sb.WriteString("EOD\n")
	}
}

func (f *Figure) writePlot(sb *strings.Builder) {
	clauses := make([]string, len(f.Series))
	for i, s := range f.Series {
		clauses[i] = s.clause(i)
	}

	sb.WriteString("plot ")
	sb.WriteString(strings.Join(clauses, ", \\\n     "))
	sb.WriteByte('\n')
}

// clause builds the plot clause of one series.
func (s Series) clause(index int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "$d%d using %s", index, s.columns())

	if s.Style.SecondaryY {
		sb.WriteString(" axes x1y2")
	}

	sb.WriteString(" with ")
	sb.WriteString(s.with())

	if s.Style.Color != nil {
		fmt.Fprintf(&sb, " lc rgb '#%02x%02x%02x'", s.Style.Color.R, s.Style.Color.G, s.Style.Color.B)
	}

	if s.Kind == FilledCurve {
		fmt.Fprintf(&sb, " fs transparent solid %s noborder", num(s.fillOpacity()))
	}

	if s.Style.LineWidth > 0 {
		fmt.Fprintf(&sb, " lw %s", num(s.Style.LineWidth))
	}

	if s.Style.LineStyle == Dash {
		sb.WriteString(" dt 2")
	}

	if s.Style.PointType != NoPoint {
		pt := 7 // filled circle
		if s.Style.PointType == Plus {
			pt = 1
		}

		fmt.Fprintf(&sb, " pt %d", pt)
	}

	if s.Style.PointSize > 0 {
		fmt.Fprintf(&sb, " ps %s", num(s.Style.PointSize))
	}

	if s.Style.Label != "" {
		fmt.Fprintf(&sb, " title \"%s\"", escapeQuotes(s.Style.Label))
	} else {
		sb.WriteString(" notitle")
	}

	return sb.String()
}

func (s Series) columns() string {
	switch s.Kind {
	case FilledCurve:
		return "1:2:3"
	case YErrorBars, XErrorBars:
		return "1:2:3:4"
	case Lines, Points:
		return "1:2"
	default:
		return "1:2"
	}
}

func (s Series) with() string {
	switch s.Kind {
	case Lines:
		return "lines"
	case Points:
		return "points"
	case FilledCurve:
		return "filledcurves"
	case YErrorBars:
		return "yerrorbars"
	case XErrorBars:
		return "xerrorbars"
	default:
		return "lines"
	}
}

func (s Series) fillOpacity() float64 {
	if s.Style.Opacity == 0 {
		return 1
	}

	return s.Style.Opacity
}

// num formats a float with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
