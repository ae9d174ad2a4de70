// Package figures turns a run configuration into the sweeps, chart layout and
// run metadata of one of the lab's figures.
package figures

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fdtdisp/internal/config"
	"github.com/san-kum/fdtdisp/internal/dispersion"
	"github.com/san-kum/fdtdisp/internal/logging"
	"github.com/san-kum/fdtdisp/internal/render"
	"github.com/san-kum/fdtdisp/internal/storage"
	"github.com/san-kum/fdtdisp/internal/sweep"
	"github.com/san-kum/fdtdisp/internal/viz"
)

// Series names.
const (
	SeriesVelocity    = "phase velocity"
	SeriesAttenuation = "attenuation"
	SeriesError       = "phase velocity error"
)

const densityLabel = "Grid Sampling Density (points per free-space wavelength)"

// Run is a computed figure ready to render and store.
type Run struct {
	Figure render.Figure
	Series []storage.Series
	Meta   storage.RunMetadata
}

// Build computes every series of cfg's figure. Failed samples are logged and
// left out of the series; a series without a single valid sample fails.
func Build(ctx context.Context, cfg *config.Config, opts sweep.Options, log *zap.Logger) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nt, err := Transition(cfg.Figure, cfg.Courant, cfg.Theta())
	if err != nil {
		return nil, err
	}

	p := sweep.Params{Courant: cfg.Courant, Theta: cfg.Theta()}
	rng := sweep.Range{Min: cfg.Range.Min, Max: cfg.Range.Max, Steps: cfg.Range.Steps}

	var series []storage.Series
	switch cfg.Figure {
	case "dispersion":
		arng, err := sweep.TransitionRange(cfg.Courant, rng.Min, cfg.AttenuationSteps)
		if err != nil {
			log.Warn("attenuation range is empty, skipping series",
				zap.Float64("min", rng.Min),
				zap.Float64("transition", nt),
				zap.Error(err),
			)
		} else {
			s, err := runSeries(ctx, log, SeriesAttenuation, sweep.Attenuation, p, arng, opts)
			if err != nil {
				return nil, err
			}
			series = append(series, s)
		}

		s, err := runSeries(ctx, log, SeriesVelocity, sweep.Velocity, p, rng, opts)
		if err != nil {
			return nil, err
		}
		series = append(series, s)

	case "error1d", "error2d":
		q := sweep.Error1D
		if cfg.Figure == "error2d" {
			q = sweep.Error2D
		}
		s, err := runSeries(ctx, log, SeriesError, q, p, rng, opts)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	meta := storage.RunMetadata{
		Figure:     cfg.Figure,
		Courant:    cfg.Courant,
		ThetaDeg:   cfg.ThetaDeg,
		Min:        cfg.Range.Min,
		Max:        cfg.Range.Max,
		Steps:      cfg.Range.Steps,
		Transition: nt,
		Output:     cfg.OutputPath(),
	}

	return &Run{
		Figure: Layout(meta, series, cfg.Chart.Width, cfg.Chart.Height, cfg.UseLogY()),
		Series: series,
		Meta:   meta,
	}, nil
}

// Transition returns the transition density that bounds figure's sweeps.
func Transition(figure string, courant, theta float64) (float64, error) {
	if figure == "error2d" {
		return dispersion.TransitionDensity2D(courant, theta)
	}
	return dispersion.TransitionDensity(courant)
}

func runSeries(ctx context.Context, log *zap.Logger, name string, q sweep.Quantity, p sweep.Params, rng sweep.Range, opts sweep.Options) (storage.Series, error) {
	log.Debug("sweep started",
		zap.String("series", name),
		zap.String("quantity", string(q)),
		zap.Float64("min", rng.Min),
		zap.Float64("max", rng.Max),
		zap.Int("steps", rng.Steps),
	)

	res, err := sweep.Run(ctx, q, p, rng, opts)
	if res == nil {
		return storage.Series{}, err
	}
	logging.Result(log, name, res)

	if len(res.Samples) == 0 {
		return storage.Series{}, fmt.Errorf("%s: no valid samples: %w", name, err)
	}
	return storage.FromResult(name, res), nil
}

// Layout arranges stored series as a chart. It is shared by fresh runs and
// runs replayed from the store.
func Layout(meta storage.RunMetadata, series []storage.Series, width, height int, logY bool) render.Figure {
	fig := render.Figure{
		XLabel: densityLabel,
		Width:  width,
		Height: height,
		LogY:   logY,
	}

	switch meta.Figure {
	case "dispersion":
		fig.Title = "Numerical Dispersion in FDTD Scheme"
		fig.YLabel = sweep.Attenuation.Label()
		fig.Y2Label = sweep.Velocity.Label()
		fig.XRange = render.Range{Min: meta.Min, Max: meta.Max}
		fig.YRange = render.Range{Min: 0, Max: 6}
		fig.Y2Range = render.Range{Min: 0, Max: 2}
		fig.LogY = false
	case "error2d":
		fig.Title = fmt.Sprintf("Phase Velocity Error, 2D Grid (S=%.4g, θ=%g°)", meta.Courant, meta.ThetaDeg)
		fig.YLabel = sweep.Error2D.Label()
	default:
		fig.Title = fmt.Sprintf("Phase Velocity Error, 1D Grid (S=%.4g)", meta.Courant)
		fig.YLabel = sweep.Error1D.Label()
	}

	for _, s := range series {
		xs := make([]float64, len(s.Samples))
		ys := make([]float64, len(s.Samples))
		for i, smp := range s.Samples {
			xs[i], ys[i] = smp.N, smp.Value
		}

		rs := render.Series{Name: s.Name, X: xs, Y: ys, Color: viz.CurrentTheme.Primary}
		if meta.Figure == "dispersion" {
			switch s.Quantity {
			case sweep.Attenuation:
				rs.Dashed = true
				rs.Color = viz.CurrentTheme.Secondary
				if len(ys) > 0 {
					if top := math.Ceil(floats.Max(ys)); top > fig.YRange.Max {
						fig.YRange.Max = top
					}
				}
			default:
				rs.Secondary = true
			}
		}
		fig.Series = append(fig.Series, rs)
	}
	return fig
}
