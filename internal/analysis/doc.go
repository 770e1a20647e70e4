// Package analysis characterizes Lorenz trajectories.
//
//   - [Measure]: per-axis envelope over finite samples
//   - [Separation]: pointwise distance between two runs
//   - [LyapunovExponent]: largest exponent by renormalized separation
//   - [PowerSpectrum], [DominantFrequency]: spectral content of one axis
//   - [Bifurcation]: z maxima as ρ is swept
//   - [PhasePortrait], [PoincareSection]: ASCII projections
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(ctx, x0, p, 0.01, 100, 1e-8)
//	if err == nil && lambda > 0 {
//	    // chaotic
//	}
package analysis
