package analysis

import (
	"context"
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/lorenz"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the flow at
// params p, starting from x0.
//
// Two trajectories start d0 = perturbation apart along x. After every
// interval of length dt the separation d is measured, ln(d/d0) accumulated,
// and the perturbed state pulled back to distance d0 along the same
// direction:
//
//	λ ≈ Σ ln(d_k/d0) / (K·dt)
//
// The solver is chosen by opts as for lorenz.Integrate (RK4 by default). The
// estimate stops early if either trajectory leaves the finite range; ctx is
// checked between intervals.
func LyapunovExponent(ctx context.Context, x0 lorenz.State, p lorenz.Params, dt, duration, perturbation float64, opts ...lorenz.Option) (float64, error) {
	steps, err := dynamo.GridLen(duration, dt)
	if err != nil {
		return 0, err
	}
	if !(perturbation > 0) || math.IsInf(perturbation, 1) {
		return 0, &dynamo.ArgumentError{Name: "perturbation", Value: perturbation, Reason: "must be positive and finite"}
	}

	// Adaptive steppers carry a step size between calls, so each trajectory
	// gets its own.
	base, err := lorenz.NewStepper(opts...)
	if err != nil {
		return 0, err
	}
	perturbed, err := lorenz.NewStepper(opts...)
	if err != nil {
		return 0, err
	}
	field := lorenz.NewField(p)

	x := x0.Slice()
	xp := x0.Slice()
	xp[0] += perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0
	t := 0.0

	for k := 0; k < steps; k++ {
		if err := ctx.Err(); err != nil {
			return 0, &dynamo.SimulationError{Step: k, Time: t, State: x, Wrapped: err}
		}

		next := float64(k+1) * dt
		x = dynamo.AdvanceTo(base, field, x, t, next)
		xp = dynamo.AdvanceTo(perturbed, field, xp, t, next)
		t = next

		if !x.IsValid() || !xp.IsValid() {
			break
		}

		sep := x.Distance(xp)
		if sep == 0 {
			// Perturbation collapsed below float resolution; restart it.
			copy(xp, x)
			xp[0] += d0
			continue
		}

		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}
