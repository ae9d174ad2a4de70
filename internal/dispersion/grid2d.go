package dispersion

import "math"

// MaxCourant2D is the stability limit of the 2D Yee scheme on a square grid.
const MaxCourant2D = math.Sqrt2 / 2

const (
	axisTol       = 1e-12
	maxNewtonIter = 100
)

// PhaseVelocity2D returns the normalized phase velocity of a plane wave
// travelling at angle theta (radians) across a square 2D Yee grid.
//
// The numerical wavenumber K = k̃Δ solves
//
//	sin²(πS/N)/S² = sin²(K·cosθ/2) + sin²(K·sinθ/2)
//
// on its first monotone branch, and v = 2π/(N·K).
func PhaseVelocity2D(n, s, theta float64) (float64, error) {
	const op = "PhaseVelocity2D"
	if err := checkDensity(op, n); err != nil {
		return 0, err
	}
	if err := checkCourant(op, s, MaxCourant2D); err != nil {
		return 0, err
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, domainErr(op, "theta", theta, "propagation angle must be finite")
	}

	q := sinRatio(n, s)
	k, err := wavenumber2D(op, n, s, q*q, theta)
	if err != nil {
		return 0, err
	}
	return 2 * math.Pi / (n * k), nil
}

// PhaseVelocityError2D returns (1 − v)·100 for PhaseVelocity2D.
func PhaseVelocityError2D(n, s, theta float64) (float64, error) {
	v, err := PhaseVelocity2D(n, s, theta)
	if err != nil {
		return 0, err
	}
	return (1 - v) * 100, nil
}

// TransitionDensity2D returns the density below which the 2D relation at
// angle theta has no real solution. It equals TransitionDensity at θ = 0.
func TransitionDensity2D(s, theta float64) (float64, error) {
	const op = "TransitionDensity2D"
	if err := checkCourant(op, s, MaxCourant2D); err != nil {
		return 0, err
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, domainErr(op, "theta", theta, "propagation angle must be finite")
	}
	hi, lo := axes(theta)
	_, gmax := branchLimit(hi, lo)
	return transition2D(s, gmax), nil
}

func transition2D(s, gmax float64) float64 {
	x := s * math.Sqrt(gmax)
	if x > 1 {
		x = 1
	}
	return math.Pi * s / math.Asin(x)
}

func wavenumber2D(op string, n, s, rhs, theta float64) (float64, error) {
	hi, lo := axes(theta)
	kmax, gmax := branchLimit(hi, lo)
	if n < transition2D(s, gmax)*(1-domainSlack) || rhs > gmax*(1+domainSlack) {
		return 0, domainErr(op, "N", n, "no real wavenumber at this angle, grid is in the evanescent regime")
	}
	rhs = math.Min(rhs, gmax)

	var k float64
	switch {
	case lo < axisTol:
		// Axis-aligned: K = arccos(1 − 2·rhs) = 2·arcsin(√rhs).
		k = 2 * math.Asin(math.Min(math.Sqrt(rhs), 1))
	case hi-lo < axisTol:
		// Diagonal: 2·sin²(K/(2√2)) = rhs, the √2 is the diagonal sampling period.
		k = 2 * math.Sqrt2 * math.Asin(math.Min(math.Sqrt(rhs/2), 1))
	default:
		k = solveBranch(rhs, hi, lo, kmax, 2*math.Pi/n)
	}
	if k == 0 {
		return 0, domainErr(op, "N", n, "numerical wavenumber vanishes, density aliases to zero")
	}
	return k, nil
}

// axes returns the larger and smaller of |cosθ| and |sinθ|. The square grid
// is symmetric under reflections and under swapping the axes.
func axes(theta float64) (hi, lo float64) {
	c, s := math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta))
	if c < s {
		return s, c
	}
	return c, s
}

// branchLimit returns the end of the first monotone branch of the 2D
// relation in K and the value of the right-hand side there.
func branchLimit(hi, lo float64) (kmax, gmax float64) {
	kmax = math.Pi / hi
	gmax = gridTerm(kmax, hi, lo)
	return kmax, gmax
}

func gridTerm(k, a, b float64) float64 {
	x, y := math.Sin(k*a/2), math.Sin(k*b/2)
	return x*x + y*y
}

// solveBranch finds K in [0, kmax] with gridTerm(K) = rhs by Newton's
// method, falling back to bisection whenever a step leaves the bracket.
func solveBranch(rhs, a, b, kmax, guess float64) float64 {
	lo, hi := 0.0, kmax
	k := guess
	if k <= lo || k >= hi {
		k = (lo + hi) / 2
	}
	for i := 0; i < maxNewtonIter; i++ {
		f := gridTerm(k, a, b) - rhs
		if f == 0 {
			return k
		}
		if f > 0 {
			hi = k
		} else {
			lo = k
		}
		df := (a*math.Sin(k*a) + b*math.Sin(k*b)) / 2
		next := k - f/df
		if df == 0 || math.IsNaN(next) || next <= lo || next >= hi {
			next = (lo + hi) / 2
		}
		if math.Abs(next-k) <= 1e-15*math.Max(1, k) {
			return next
		}
		k = next
	}
	return k
}
