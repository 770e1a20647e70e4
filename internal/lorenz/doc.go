// Package lorenz samples trajectories of the Lorenz system
//
//	dx/dt = σ(y − x)
//	dy/dt = x(ρ − z) − y
//	dz/dt = xy − βz
//
// on a uniform output grid.
//
// [Integrate] is the single entry point for presentation code. It returns a
// [Trajectory] in dimension-major order so each axis can be plotted as one
// contiguous slice. Runs are independent and hold no shared state, so
// concurrent calls are safe; [Sweep] runs many parameter sets in parallel.
//
// The default solver is fixed-step RK4, one step per grid interval. The
// "rk45" solver uses Dormand-Prince with error control, in which case dt only
// sets the sampling interval. Trajectories from different solvers diverge
// after a few Lyapunov times; only bounded, attractor-shaped behaviour is
// comparable between them.
package lorenz
