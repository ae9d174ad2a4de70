// Package dispersion evaluates the closed-form numerical-dispersion relations
// of the Yee finite-difference time-domain scheme.
//
// Every quantity is a pure function of the grid sampling density N (points
// per free-space wavelength), the Courant number S and, in two dimensions,
// the propagation angle θ:
//
//   - [TransitionDensity]: the density N_t separating the attenuated and
//     propagating regimes of the 1D scheme
//   - [PhaseVelocity1D]: the tagged [Dispersion1D] outcome at (N, S)
//   - [PhaseVelocityError1D], [PhaseVelocityError2D]: phase-velocity error in percent
//   - [Attenuation1D]: loss per cell below N_t
//
// # Regimes
//
// With ζ = 1 + (cos(2πS/N) − 1)/S², a 1D grid sampled at N ≥ N_t carries a
// lossless wave with v = 2π/(N·arccos ζ). Below N_t, ζ < −1, the numerical
// wavenumber is complex with real part π/Δx, the wave travels at v = 2/N and
// decays by α = −ln(−ζ − √(ζ² − 1)) nepers per cell. Densities below 2S
// push πS/N past π/2, ζ climbs back into [−1, 1] and the outcome is
// [Aliased]: v is still 2/N but α is undefined.
//
// # Errors
//
// Inputs outside the domain of the selected formula yield a [*DomainError]
// that matches [ErrDomain] with errors.Is. No function returns NaN.
//
// # Example
//
//	d, err := dispersion.PhaseVelocity1D(10, 0.5)
//	if err != nil {
//		return err
//	}
//	if v, ok := d.Propagating(); ok {
//		fmt.Printf("v/c = %.6f\n", v)
//	}
package dispersion
