package render

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ASCII renders fig as a terminal line chart. Samples are plotted against
// their index, so the caption carries the x range.
func ASCII(fig Figure, width, height int) string {
	var (
		data   [][]float64
		colors []asciigraph.AnsiColor
		names  []string
		xmin   = 0.0
		xmax   = 0.0
		first  = true
	)
	palette := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Blue, asciigraph.Green, asciigraph.Yellow}

	for _, s := range fig.Series {
		xs, ys := finite(s, fig.LogY)
		if len(ys) == 0 {
			continue
		}
		if first || xs[0] < xmin {
			xmin = xs[0]
		}
		if first || xs[len(xs)-1] > xmax {
			xmax = xs[len(xs)-1]
		}
		first = false

		data = append(data, ys)
		colors = append(colors, palette[(len(data)-1)%len(palette)])
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return ""
	}

	caption := fmt.Sprintf("%s  [%s %.3g..%.3g]", fig.Title, fig.XLabel, xmin, xmax)
	if len(names) > 1 {
		caption += "  " + strings.Join(names, " / ")
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}
