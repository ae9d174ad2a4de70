// Package render draws dispersion figures to image files and to the terminal.
//
// Figures with a secondary y axis are drawn with go-chart, which supports dual
// axes. All other figures are drawn with gonum/plot, which adds log scales and
// PDF output.
package render

import (
	"errors"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fdtdisp/internal/viz"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmptyFigure       = errors.New("figure has no drawable samples")
)

// Range is an axis range. The zero value leaves the axis autoscaled.
type Range struct {
	Min float64
	Max float64
}

func (r Range) set() bool {
	return r.Min < r.Max
}

type Series struct {
	Name      string
	X         []float64
	Y         []float64
	Secondary bool
	Dashed    bool
	// Color overrides the theme color picked by position.
	Color lipgloss.Color
}

type Figure struct {
	Title   string
	XLabel  string
	YLabel  string
	Y2Label string
	LogY    bool
	XRange  Range
	YRange  Range
	Y2Range Range
	Width   int
	Height  int
	Series  []Series
}

// HasSecondary reports whether any series is plotted against the right axis.
func (f Figure) HasSecondary() bool {
	for _, s := range f.Series {
		if s.Secondary {
			return true
		}
	}
	return false
}

func (f Figure) size() (int, int) {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (f Figure) color(i int) lipgloss.Color {
	if c := f.Series[i].Color; c != "" {
		return c
	}
	palette := []lipgloss.Color{
		viz.CurrentTheme.Primary,
		viz.CurrentTheme.Secondary,
		viz.CurrentTheme.Accent,
	}
	if i < len(palette) {
		return palette[i]
	}
	return viz.CurrentTheme.Muted
}

// finite returns the samples of s with finite coordinates. With positive set
// non-positive ordinates are dropped as well.
func finite(s Series, positive bool) (xs, ys []float64) {
	n := len(s.X)
	if len(s.Y) < n {
		n = len(s.Y)
	}
	for i := 0; i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if positive && y <= 0 {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
