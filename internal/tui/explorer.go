// Package tui implements the interactive dispersion explorer.
package tui

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fdtdisp/internal/dispersion"
	"github.com/san-kum/fdtdisp/internal/sweep"
	"github.com/san-kum/fdtdisp/internal/viz"
)

const (
	courantStep = 0.01
	minCourant  = 0.01
	thetaStep   = 5.0
	graphWidth  = 60
	graphHeight = 12
)

var graphStyle = lipgloss.NewStyle().Padding(1, 0)

// modes lists the quantities the explorer cycles through with tab.
var modes = []sweep.Quantity{sweep.Error1D, sweep.Error2D, sweep.Attenuation}

type Model struct {
	courant  float64
	thetaDeg float64
	mode     int
	rng      sweep.Range

	transition float64
	curve      []float64
	lo, hi     float64
	failures   int
	err        error
}

// NewModel starts the explorer at the given Courant number and angle. rng is
// the density window of the error curves; it is raised to N_t when it starts
// below it.
func NewModel(courant, thetaDeg float64, rng sweep.Range) Model {
	m := Model{courant: courant, thetaDeg: thetaDeg, rng: rng}
	m.clampCourant()
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "right", "l":
		m.courant += courantStep
	case "left", "h":
		m.courant -= courantStep
	case "up", "k":
		m.thetaDeg += thetaStep
	case "down", "j":
		m.thetaDeg -= thetaStep
	case "tab":
		m.mode = (m.mode + 1) % len(modes)
	case "t":
		viz.SetTheme(viz.NextTheme(viz.CurrentTheme.Name).Name)
		return m, nil
	default:
		return m, nil
	}

	m.clampCourant()
	m.refresh()
	return m, nil
}

func (m Model) Quantity() sweep.Quantity { return modes[m.mode] }

func (m Model) Courant() float64 { return m.courant }

func (m Model) ThetaDeg() float64 { return m.thetaDeg }

func (m Model) Err() error { return m.err }

func (m Model) maxCourant() float64 {
	if m.Quantity() == sweep.Error2D {
		return dispersion.MaxCourant2D
	}
	return dispersion.MaxCourant1D
}

func (m *Model) clampCourant() {
	// Round away the drift of repeated 0.01 steps.
	m.courant = math.Round(m.courant*1e6) / 1e6
	if max := m.maxCourant(); m.courant > max {
		m.courant = max
	}
	if m.courant < minCourant {
		m.courant = minCourant
	}
}

// refresh recomputes the transition density and the curve of the current
// quantity.
func (m *Model) refresh() {
	m.curve, m.failures, m.err = nil, 0, nil

	q := m.Quantity()
	theta := m.thetaDeg * math.Pi / 180

	var err error
	if q == sweep.Error2D {
		m.transition, err = dispersion.TransitionDensity2D(m.courant, theta)
	} else {
		m.transition, err = dispersion.TransitionDensity(m.courant)
	}
	if err != nil {
		m.err = err
		return
	}

	rng := m.rng
	if q == sweep.Attenuation {
		rng = sweep.Range{Min: 1, Max: m.transition, Steps: m.rng.Steps}
	} else if rng.Min < m.transition {
		rng.Min = m.transition
	}
	m.lo, m.hi = rng.Min, rng.Max

	opts := sweep.Options{Workers: 1, MinChunk: rng.Steps}
	res, err := sweep.Run(context.Background(), q, sweep.Params{Courant: m.courant, Theta: theta}, rng, opts)
	if res == nil {
		m.err = err
		return
	}
	_, m.curve = res.XY()
	m.failures = len(res.Failures)
	if m.failures > 0 {
		m.err = res.Failures[0]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(viz.Header("FDTD numerical dispersion explorer"))
	b.WriteString("\n\n")

	rows := []viz.Row{
		{Label: "quantity", Value: string(m.Quantity())},
		{Label: "S", Value: fmt.Sprintf("%.2f (max %.4f)", m.courant, m.maxCourant())},
		{Label: "N_t", Value: fmt.Sprintf("%.6f", m.transition)},
		{Label: "N", Value: fmt.Sprintf("%.3f .. %.3f", m.lo, m.hi)},
		{Label: "samples", Value: fmt.Sprintf("%d (%d failed)", len(m.curve), m.failures)},
	}
	if m.Quantity() == sweep.Error2D {
		rows = slices.Insert(rows, 2, viz.Row{Label: "theta", Value: fmt.Sprintf("%g°", m.thetaDeg)})
	}
	b.WriteString(viz.Table(rows))

	if len(m.curve) > 0 {
		graph := asciigraph.Plot(m.curve,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(m.Quantity().Label()),
		)
		b.WriteString(graphStyle.Foreground(viz.CurrentTheme.Primary).Render(graph))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(viz.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(viz.Help(
		"←/→", "S",
		"↑/↓", "θ",
		"tab", "quantity",
		"t", "theme ("+viz.CurrentTheme.Name+")",
		"q", "quit",
	))
	return b.String()
}

// Run starts the explorer in the alternate screen and blocks until it quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
