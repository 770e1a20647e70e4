package integrators

import (
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

const (
	DefaultRelTol      = 1e-8
	DefaultAbsTol      = 1e-10
	DefaultMaxSubsteps = 10000
)

// Stats counts the work done by an adaptive stepper.
type Stats = dynamo.StepStats

// RK45 is the Dormand-Prince 5(4) embedded pair with step-size control.
// Advance chooses internal steps from the local error estimate, so the
// caller's grid only sets where samples are taken.
type RK45 struct {
	RelTol      float64
	AbsTol      float64
	MaxSubsteps int

	safety   float64
	minScale float64
	maxScale float64

	h     float64
	stats Stats
}

func NewRK45() *RK45 {
	return &RK45{
		RelTol:      DefaultRelTol,
		AbsTol:      DefaultAbsTol,
		MaxSubsteps: DefaultMaxSubsteps,
		safety:      0.9,
		minScale:    0.2,
		maxScale:    10.0,
	}
}

func (r *RK45) Stats() Stats { return r.stats }

// Step takes a single uncontrolled step of size dt.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	xNew, _ := r.attempt(dyn, x, t, dt)
	return xNew
}

// Advance integrates from t0 to exactly t1. A step is accepted when its
// scaled error is at most 1. Once MaxSubsteps attempts are spent, or the step
// collapses below 1e-12 of the interval, the rest of the interval is covered
// in one forced step, so the call always terminates. A non-finite state is
// carried forward with a single forced step.
func (r *RK45) Advance(dyn dynamo.System, x dynamo.State, t0, t1 float64) dynamo.State {
	span := t1 - t0
	if !(span > 0) {
		return x.Clone()
	}
	if !x.IsValid() {
		xNew, _ := r.attempt(dyn, x, t0, span)
		r.stats.Forced++
		return xNew
	}

	h := r.h
	if !(h > 0) || h > span {
		h = span
	}
	minH := span * 1e-12

	t := t0
	for attempts := 0; t < t1; attempts++ {
		proposed := h
		last := t+h >= t1
		if last {
			h = t1 - t
		}

		if attempts >= r.MaxSubsteps || h <= minH {
			x, _ = r.attempt(dyn, x, t, t1-t)
			r.stats.Forced++
			break
		}

		xNew, errNorm := r.attempt(dyn, x, t, h)
		hNext := h * r.scale(errNorm)

		if errNorm <= 1 {
			r.stats.Accepted++
			x = xNew
			if last {
				t = t1
				r.h = math.Max(proposed, hNext)
			} else {
				t += h
				r.h = hNext
			}
			h = hNext
			continue
		}

		r.stats.Rejected++
		h = hNext
	}

	return x
}

func (r *RK45) scale(errNorm float64) float64 {
	switch {
	case math.IsNaN(errNorm) || math.IsInf(errNorm, 1):
		return r.minScale
	case errNorm == 0:
		return r.maxScale
	case errNorm > 1:
		return math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.25))
	default:
		return math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
	}
}

// attempt computes one Dormand-Prince step and its scaled error norm.
func (r *RK45) attempt(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, float64) {
	n := len(x)

	k1 := dyn.Derive(x, t)

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt*b21*k1[i]
	}
	k2 := dyn.Derive(x2, t+a2*dt)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := dyn.Derive(x3, t+a3*dt)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := dyn.Derive(x4, t+a4*dt)

	x5 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := dyn.Derive(x5, t+a5*dt)

	x6 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := dyn.Derive(x6, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := dyn.Derive(xNew, t+dt)
	r.stats.Evaluations += 7

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		tol := r.AbsTol + r.RelTol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		errMax = math.Max(errMax, math.Abs(errEst)/tol)
	}
	if !xNew.IsValid() {
		return xNew, math.NaN()
	}

	return xNew, errMax
}
