package viz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetTheme(t *testing.T) {
	if got := GetTheme("ocean"); got.Name != "ocean" {
		t.Errorf("GetTheme(ocean) = %s", got.Name)
	}
	if got := GetTheme("nonexistent"); got.Name != ThemeClassic.Name {
		t.Errorf("unknown theme should fall back to classic, got %s", got.Name)
	}
}

func TestNextTheme(t *testing.T) {
	names := ThemeNames()
	if got := NextTheme(names[len(names)-1]); got.Name != names[0] {
		t.Errorf("NextTheme should wrap, got %s", got.Name)
	}
	if got := NextTheme(names[0]); got.Name != names[1] {
		t.Errorf("NextTheme(%s) = %s, want %s", names[0], got.Name, names[1])
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		in   lipgloss.Color
		want color.RGBA
	}{
		{"#d62728", color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}},
		{"#FFffFF", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"240", color.RGBA{A: 0xff}},
		{"#zz0000", color.RGBA{A: 0xff}},
	}

	for _, tt := range tests {
		if got := RGBA(tt.in); got != tt.want {
			t.Errorf("RGBA(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTable(t *testing.T) {
	out := Table([]Row{{"S", "0.5"}, {"N_t", "3.000000"}})
	if !strings.Contains(out, "0.5") || !strings.Contains(out, "3.000000") {
		t.Errorf("table missing values: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected two lines, got %q", out)
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("Sparkline = %q", got)
	}
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	if got := []rune(Sparkline(make([]float64, 100), 10)); len(got) != 10 {
		t.Errorf("sparkline width = %d, want 10", len(got))
	}
}

func TestHelp(t *testing.T) {
	got := Help("q", "quit", "t", "theme", "dangling")
	if !strings.Contains(got, "q quit  t theme") {
		t.Errorf("help line %q missing bindings", got)
	}
	if strings.Contains(got, "dangling") {
		t.Errorf("unpaired key should be dropped: %q", got)
	}
}
