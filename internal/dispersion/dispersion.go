package dispersion

import "math"

const (
	// MaxCourant1D is the stability limit of the 1D Yee scheme.
	MaxCourant1D = 1.0

	// domainSlack absorbs rounding at the branch boundaries. Anything
	// beyond it is reported as a domain error.
	domainSlack = 1e-12
)

// TransitionDensity returns N_t = 2πS / arccos(1 − 2S²), the sampling
// density at which the 1D arc-cosine argument reaches −1.
func TransitionDensity(s float64) (float64, error) {
	const op = "TransitionDensity"
	if err := checkCourant(op, s, MaxCourant1D); err != nil {
		return 0, err
	}
	// arccos(1 − 2S²) = 2·arcsin(S), which keeps precision for small S.
	return math.Pi * s / math.Asin(s), nil
}

// zeta returns the arc-cosine argument ζ = 1 + (cos(2πS/N) − 1)/S² of the
// 1D relation without validating its inputs.
func zeta(n, s float64) float64 {
	q := sinRatio(n, s)
	return 1 - 2*q*q
}

// PhaseVelocity1D evaluates the 1D relation at (N, S) and reports the branch
// that applies. N_t itself belongs to the propagating branch, where both
// branches predict v = 2/N_t. Every N below N_t yields v = 2/N; where N < 2S
// the density is time-aliased and the result carries no attenuation.
func PhaseVelocity1D(n, s float64) (Dispersion1D, error) {
	const op = "PhaseVelocity1D"
	if err := checkDensity(op, n); err != nil {
		return Dispersion1D{}, err
	}
	nt, err := TransitionDensity(s)
	if err != nil {
		return Dispersion1D{}, err
	}

	if n >= nt {
		v, err := propagatingVelocity(op, n, s, nt)
		if err != nil {
			return Dispersion1D{}, err
		}
		return Dispersion1D{regime: Propagating, velocity: v}, nil
	}

	// Re(k̃Δx) = π below N_t for every S.
	if timeAliased(n, s) {
		return Dispersion1D{regime: Aliased, velocity: 2 / n}, nil
	}
	alpha, err := attenuation(op, n, s, nt)
	if err != nil {
		return Dispersion1D{}, err
	}
	return Dispersion1D{regime: Evanescent, velocity: 2 / n, attenuation: alpha}, nil
}

// PhaseVelocityError1D returns (1 − v)·100 where v comes from the general
// arc-cosine form. Densities below N_t fail.
func PhaseVelocityError1D(n, s float64) (float64, error) {
	const op = "PhaseVelocityError1D"
	if err := checkDensity(op, n); err != nil {
		return 0, err
	}
	nt, err := TransitionDensity(s)
	if err != nil {
		return 0, err
	}
	v, err := propagatingVelocity(op, n, s, nt)
	if err != nil {
		return 0, err
	}
	return (1 - v) * 100, nil
}

// Attenuation1D returns α = −ln(−ζ − √(ζ² − 1)) nepers per cell. It is
// defined for N ≤ N_t, is zero at N_t and grows as N decreases. Time-aliased
// densities, where πS/N passes π/2 and ζ returns to [−1, 1], fail.
func Attenuation1D(n, s float64) (float64, error) {
	const op = "Attenuation1D"
	if err := checkDensity(op, n); err != nil {
		return 0, err
	}
	nt, err := TransitionDensity(s)
	if err != nil {
		return 0, err
	}
	return attenuation(op, n, s, nt)
}

// propagatingVelocity computes v = 2π/(N·arccos ζ) through q = sin(πS/N)/S,
// using arccos(1 − 2q²) = 2·arcsin(q). Densities below nt are rejected even
// where ζ aliases back into [−1, 1].
func propagatingVelocity(op string, n, s, nt float64) (float64, error) {
	q := math.Abs(sinRatio(n, s))
	if n < nt*(1-domainSlack) || q > 1+domainSlack {
		return 0, domainErr(op, "N", n, "arc-cosine argument below -1, grid is in the evanescent regime")
	}
	if q > 1 {
		q = 1
	}
	k := 2 * math.Asin(q)
	if k == 0 {
		return 0, domainErr(op, "N", n, "numerical wavenumber vanishes, density aliases to zero")
	}
	return 2 * math.Pi / (n * k), nil
}

// attenuation uses −ln(−ζ − √(ζ² − 1)) = acosh(−ζ) = 2·acosh(q).
func attenuation(op string, n, s, nt float64) (float64, error) {
	if n > nt*(1+domainSlack) {
		return 0, domainErr(op, "N", n, "zeta^2 < 1, grid is in the propagating regime")
	}
	if timeAliased(n, s) {
		return 0, domainErr(op, "N", n, "sine argument passes pi/2, density is time-aliased and attenuation is undefined")
	}
	q := math.Abs(sinRatio(n, s))
	if q < 1 {
		q = 1
	}
	return 2 * math.Acosh(q), nil
}

// timeAliased reports whether ζ has come back into [−1, 1] below N_t. Only
// densities under 2S can do so.
func timeAliased(n, s float64) bool {
	return math.Abs(sinRatio(n, s)) < 1-domainSlack
}

func sinRatio(n, s float64) float64 {
	return math.Sin(math.Pi*s/n) / s
}

func checkDensity(op string, n float64) error {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return domainErr(op, "N", n, "sampling density must be finite")
	}
	if n <= 0 {
		return domainErr(op, "N", n, "sampling density must be positive")
	}
	return nil
}

func checkCourant(op string, s, max float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return domainErr(op, "S", s, "courant number must be finite")
	}
	if s <= 0 {
		return domainErr(op, "S", s, "courant number must be positive")
	}
	if s > max*(1+domainSlack) {
		return domainErr(op, "S", s, "courant number exceeds the stability limit")
	}
	return nil
}
