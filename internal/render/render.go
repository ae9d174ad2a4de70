package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fdtdisp/internal/viz"
)

// screenDPI converts pixel sizes to vg lengths.
const screenDPI = 96

// Save renders fig to path. The format follows the file extension: png and
// svg for every figure, pdf only for figures without a secondary axis.
func Save(fig Figure, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if fig.HasSecondary() {
		return saveChart(fig, path)
	}
	return savePlot(fig, path)
}

func savePlot(fig Figure, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".svg", ".pdf":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(plotter.NewGrid())

	if fig.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	drawn := 0
	for i, s := range fig.Series {
		xs, ys := finite(s, fig.LogY)
		if len(xs) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X, pts[j].Y = xs[j], ys[j]
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		l.Color = viz.RGBA(fig.color(i))
		l.Width = vg.Points(1.5)
		if s.Dashed {
			l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		p.Add(l)
		if s.Name != "" {
			p.Legend.Add(s.Name, l)
		}
		drawn++
	}
	if drawn == 0 {
		return ErrEmptyFigure
	}
	p.Legend.Top = true

	if fig.XRange.set() {
		p.X.Min, p.X.Max = fig.XRange.Min, fig.XRange.Max
	}
	if fig.YRange.set() {
		if fig.LogY && fig.YRange.Min <= 0 {
			return fmt.Errorf("log y range must be positive, got [%g, %g]", fig.YRange.Min, fig.YRange.Max)
		}
		p.Y.Min, p.Y.Max = fig.YRange.Min, fig.YRange.Max
	}

	w, h := fig.size()
	return p.Save(vg.Length(w)*vg.Inch/screenDPI, vg.Length(h)*vg.Inch/screenDPI, path)
}

func saveChart(fig Figure, path string) error {
	var provider chart.RendererProvider
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		provider = chart.PNG
	case ".svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("%w for dual-axis figures: %q", ErrUnsupportedFormat, ext)
	}

	series := []chart.Series{}
	for i, s := range fig.Series {
		xs, ys := finite(s, false)
		if len(xs) == 0 {
			continue
		}
		style := chart.Style{
			StrokeColor: drawingColor(fig, i),
			StrokeWidth: 2,
		}
		if s.Dashed {
			style.StrokeDashArray = []float64{6, 3}
		}
		cs := chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style}
		if s.Secondary {
			cs.YAxis = chart.YAxisSecondary
		}
		series = append(series, cs)
	}
	if len(series) == 0 {
		return ErrEmptyFigure
	}

	w, h := fig.size()
	ch := chart.Chart{
		Title:      fig.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: fig.XLabel, Range: axisRange(fig.XRange)},
		YAxis:      chart.YAxis{Name: fig.YLabel, Range: axisRange(fig.YRange)},
		YAxisSecondary: chart.YAxis{
			Name:  fig.Y2Label,
			Range: axisRange(fig.Y2Range),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ch.Render(provider, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// axisRange returns nil for an unset range so go-chart autoscales the axis.
func axisRange(r Range) chart.Range {
	if !r.set() {
		return nil
	}
	return &chart.ContinuousRange{Min: r.Min, Max: r.Max}
}

func drawingColor(fig Figure, i int) drawing.Color {
	c := viz.RGBA(fig.color(i))
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
