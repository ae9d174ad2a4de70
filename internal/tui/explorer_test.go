package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fdtdisp/internal/dispersion"
	"github.com/san-kum/fdtdisp/internal/sweep"
	"github.com/san-kum/fdtdisp/internal/viz"
)

func newTestModel(courant float64) Model {
	return NewModel(courant, 0, sweep.Range{Min: 1, Max: 80, Steps: 50})
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCourantKeys(t *testing.T) {
	m := newTestModel(0.5)

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if math.Abs(m.Courant()-0.51) > 1e-9 {
		t.Errorf("after right: S = %v, want 0.51", m.Courant())
	}
	m = press(m, runes("h"), runes("h"))
	if math.Abs(m.Courant()-0.49) > 1e-9 {
		t.Errorf("after h h: S = %v, want 0.49", m.Courant())
	}

	m = newTestModel(0.02)
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Courant() <= 0 {
		t.Errorf("S must stay positive, got %v", m.Courant())
	}

	m = newTestModel(0.995)
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Courant() != dispersion.MaxCourant1D {
		t.Errorf("S should clamp to the 1D limit, got %v", m.Courant())
	}
}

func TestThetaKeys(t *testing.T) {
	m := newTestModel(0.5)
	m = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, runes("j"))
	if m.ThetaDeg() != 5 {
		t.Errorf("theta = %v, want 5", m.ThetaDeg())
	}
}

func TestTabCyclesQuantity(t *testing.T) {
	m := newTestModel(0.9)
	want := []sweep.Quantity{sweep.Error2D, sweep.Attenuation, sweep.Error1D}

	for _, q := range want {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.Quantity() != q {
			t.Fatalf("quantity = %s, want %s", m.Quantity(), q)
		}
		if m.Err() != nil {
			t.Errorf("%s: unexpected error %v", q, m.Err())
		}
		if q == sweep.Error2D && m.Courant() != dispersion.MaxCourant2D {
			t.Errorf("S should clamp to the 2D limit, got %v", m.Courant())
		}
	}
}

func TestCurvesHaveNoFailures(t *testing.T) {
	m := newTestModel(0.5)
	for range modes {
		if len(m.curve) == 0 || m.failures != 0 {
			t.Errorf("%s: %d samples, %d failures", m.Quantity(), len(m.curve), m.failures)
		}
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(0.5)
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestThemeKey(t *testing.T) {
	defer viz.SetTheme(viz.CurrentTheme.Name)

	m := newTestModel(0.5)
	before := viz.CurrentTheme.Name
	press(m, runes("t"))
	if viz.CurrentTheme.Name == before {
		t.Error("t should switch the theme")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(0.5)
	out := m.View()
	for _, want := range []string{"N_t", "3.000000", "error1d", sweep.Error1D.Label(), "q quit", "theme (" + viz.CurrentTheme.Name + ")"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "theta") {
		t.Error("2D view should show the angle")
	}
}
