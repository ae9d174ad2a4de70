package sweep

import (
	"fmt"

	"github.com/san-kum/fdtdisp/internal/dispersion"
)

// Quantity names a dispersion quantity that can be swept over N.
type Quantity string

const (
	Velocity    Quantity = "velocity"
	Attenuation Quantity = "attenuation"
	Error1D     Quantity = "error1d"
	Error2D     Quantity = "error2d"
	Velocity2D  Quantity = "velocity2d"
)

var quantities = []Quantity{Velocity, Attenuation, Error1D, Error2D, Velocity2D}

// Params fixes the evaluation context of a sweep.
type Params struct {
	// Courant is the Courant number S.
	Courant float64
	// Theta is the 2D propagation angle in radians.
	Theta float64
}

// Quantities returns every supported quantity.
func Quantities() []Quantity {
	out := make([]Quantity, len(quantities))
	copy(out, quantities)
	return out
}

func ParseQuantity(name string) (Quantity, error) {
	for _, q := range quantities {
		if string(q) == name {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quantity: %s (available: %v)", name, quantities)
}

// Label is the axis label used when the quantity is charted.
func (q Quantity) Label() string {
	switch q {
	case Velocity, Velocity2D:
		return "Numerical Phase Velocity (normalized to c)"
	case Attenuation:
		return "Constant Attenuation (nepers/grid cell)"
	case Error1D, Error2D:
		return "Phase Velocity Error (%)"
	default:
		return string(q)
	}
}

// Eval computes the quantity at a single sampling density.
func (q Quantity) Eval(n float64, p Params) (float64, error) {
	switch q {
	case Velocity:
		d, err := dispersion.PhaseVelocity1D(n, p.Courant)
		if err != nil {
			return 0, err
		}
		return d.Velocity(), nil
	case Attenuation:
		return dispersion.Attenuation1D(n, p.Courant)
	case Error1D:
		return dispersion.PhaseVelocityError1D(n, p.Courant)
	case Error2D:
		return dispersion.PhaseVelocityError2D(n, p.Courant, p.Theta)
	case Velocity2D:
		return dispersion.PhaseVelocity2D(n, p.Courant, p.Theta)
	default:
		return 0, fmt.Errorf("unknown quantity: %s", q)
	}
}
