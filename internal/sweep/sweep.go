// Package sweep evaluates dispersion quantities over a range of sampling
// densities. Samples are independent and are computed in parallel; a failed
// sample is reported without touching the others.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/san-kum/fdtdisp/internal/dispersion"
	"gonum.org/v1/gonum/floats"
)

// Range is an evenly spaced set of sampling densities, endpoints included.
type Range struct {
	Min   float64
	Max   float64
	Steps int
}

func (r Range) Validate() error {
	if r.Steps < 2 {
		return fmt.Errorf("%w: steps=%d, need at least 2", ErrInvalidRange, r.Steps)
	}
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("%w: min=%g must be below max=%g", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Points returns the sampling densities of the range.
func (r Range) Points() ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return floats.Span(make([]float64, r.Steps), r.Min, r.Max), nil
}

// TransitionRange returns [min, N_t(S)], the densities over which the 1D
// attenuation is defined.
func TransitionRange(courant, min float64, steps int) (Range, error) {
	nt, err := dispersion.TransitionDensity(courant)
	if err != nil {
		return Range{}, err
	}
	r := Range{Min: min, Max: nt, Steps: steps}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

type Sample struct {
	N     float64
	Value float64
}

type Options struct {
	Workers  int
	MinChunk int
}

func DefaultOptions() Options {
	return Options{
		Workers:  runtime.GOMAXPROCS(0),
		MinChunk: 16,
	}
}

// Result holds the successful samples of a sweep in ascending N and every
// failed sample.
type Result struct {
	Quantity Quantity
	Params   Params
	Range    Range
	Samples  []Sample
	Failures []*SampleError
}

// XY splits the samples into abscissae and ordinates.
func (r *Result) XY() (xs, ys []float64) {
	xs = make([]float64, len(r.Samples))
	ys = make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		xs[i], ys[i] = s.N, s.Value
	}
	return xs, ys
}

// Extent returns the smallest and largest sample value. ok is false when the
// sweep produced no samples.
func (r *Result) Extent() (min, max float64, ok bool) {
	if len(r.Samples) == 0 {
		return 0, 0, false
	}
	_, ys := r.XY()
	return floats.Min(ys), floats.Max(ys), true
}

// Run evaluates q at every point of rng. When samples fail the returned
// result still carries the computed ones and the error joins every
// *SampleError.
func Run(ctx context.Context, q Quantity, p Params, rng Range, opts Options) (*Result, error) {
	points, err := rng.Points()
	if err != nil {
		return nil, err
	}
	if _, err := ParseQuantity(string(q)); err != nil {
		return nil, err
	}

	values := make([]float64, len(points))
	errs := make([]error, len(points))

	parallelFor(ctx, len(points), opts.Workers, opts.MinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			values[i], errs[i] = q.Eval(points[i], p)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Quantity: q,
		Params:   p,
		Range:    rng,
		Samples:  make([]Sample, 0, len(points)),
	}
	var joined []error
	for i, n := range points {
		if errs[i] != nil {
			se := &SampleError{Index: i, N: n, Wrapped: errs[i]}
			res.Failures = append(res.Failures, se)
			joined = append(joined, se)
			continue
		}
		res.Samples = append(res.Samples, Sample{N: n, Value: values[i]})
	}

	return res, errors.Join(joined...)
}
