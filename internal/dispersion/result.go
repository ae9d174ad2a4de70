package dispersion

import "fmt"

// Regime identifies which branch of the 1D dispersion relation applies.
type Regime int

const (
	// Propagating: N ≥ N_t, real wavenumber, no loss.
	Propagating Regime = iota + 1
	// Evanescent: N < N_t, complex wavenumber, the wave decays per cell.
	Evanescent
	// Aliased: N < N_t and N < 2S, where ζ lies back in [−1, 1] and the
	// attenuation is undefined. The velocity is still 2/N.
	Aliased
)

func (r Regime) String() string {
	switch r {
	case Propagating:
		return "propagating"
	case Evanescent:
		return "evanescent"
	case Aliased:
		return "aliased"
	default:
		return "unknown"
	}
}

// Dispersion1D is the outcome of PhaseVelocity1D. Values are only reachable
// through the accessor of the branch that produced them.
type Dispersion1D struct {
	regime      Regime
	velocity    float64
	attenuation float64
}

// Regime reports the branch. The zero value reports 0 ("unknown").
func (d Dispersion1D) Regime() Regime {
	return d.regime
}

// Propagating returns the normalized phase velocity when the wave propagates.
func (d Dispersion1D) Propagating() (velocity float64, ok bool) {
	if d.regime != Propagating {
		return 0, false
	}
	return d.velocity, true
}

// Evanescent returns the phase velocity of the attenuated wave (2/N) and
// its attenuation in nepers per cell.
func (d Dispersion1D) Evanescent() (velocity, attenuation float64, ok bool) {
	if d.regime != Evanescent {
		return 0, 0, false
	}
	return d.velocity, d.attenuation, true
}

// Aliased returns the phase velocity 2/N of a time-aliased density.
func (d Dispersion1D) Aliased() (velocity float64, ok bool) {
	if d.regime != Aliased {
		return 0, false
	}
	return d.velocity, true
}

// Velocity returns the normalized phase velocity of any branch.
func (d Dispersion1D) Velocity() float64 {
	return d.velocity
}

func (d Dispersion1D) String() string {
	switch d.regime {
	case Propagating:
		return fmt.Sprintf("propagating(v=%.6g)", d.velocity)
	case Evanescent:
		return fmt.Sprintf("evanescent(v=%.6g, alpha=%.6g)", d.velocity, d.attenuation)
	case Aliased:
		return fmt.Sprintf("aliased(v=%.6g)", d.velocity)
	default:
		return "unknown"
	}
}
