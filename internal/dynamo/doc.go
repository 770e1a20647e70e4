// Package dynamo provides the solver-agnostic primitives used to sample the
// trajectory of an ordinary differential equation on a uniform time grid.
//
// The package defines:
//
//   - [State]: vector representing system state
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Stepper]: numerical integrator interface
//   - [TimeGrid]: the half-open output grid 0, dt, 2dt, ... < t
//   - [Simulator]: advances a state across a grid and records each sample
//   - [Ensemble]: runs independent simulations concurrently
//
// # Example
//
//	grid, err := dynamo.TimeGrid(40, 0.01)
//	sim := dynamo.New(field, integrators.NewRK4())
//	result, err := sim.Sample(ctx, x0, grid)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and neither are the steppers they
// own. For parallel runs use [Ensemble], which builds a fresh stepper per run.
package dynamo
