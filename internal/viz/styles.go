package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	// HelpStyle renders key bindings under an interactive view.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

// Help joins key/action pairs into a single help line.
func Help(bindings ...string) string {
	parts := make([]string, 0, len(bindings)/2)
	for i := 0; i+1 < len(bindings); i += 2 {
		parts = append(parts, bindings[i]+" "+bindings[i+1])
	}
	return HelpStyle.Render(strings.Join(parts, "  "))
}

// Row is a single label/value line of a summary table.
type Row struct {
	Label string
	Value string
}

// Table renders rows with the labels padded to a common width.
func Table(rows []Row) string {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	for _, r := range rows {
		label := fmt.Sprintf("%-*s", width+2, r.Label)
		b.WriteString(LabelStyle.Render(label) + ValueStyle.Render(r.Value) + "\n")
	}
	return b.String()
}

// Header renders a title in the current theme's primary color.
func Header(title string) string {
	return HeaderStyle.Foreground(CurrentTheme.Primary).Render(title)
}

// Sparkline renders values as a one-line bar chart no wider than width.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var out strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		out.WriteRune(chars[idx])
	}
	return out.String()
}
