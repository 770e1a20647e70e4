package lorenz

import (
	"context"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/integrators"
)

// DefaultSolver is used when no WithSolver option is given.
const DefaultSolver = "rk4"

type options struct {
	solver      string
	solverOpts  integrators.Options
	observer    func(i int, t float64, s State)
	parallelism int
}

type Option func(*options)

// WithSolver selects a registered solver by name ("euler", "rk4", "rk45").
func WithSolver(name string) Option {
	return func(o *options) { o.solver = name }
}

// WithTolerance sets the relative tolerance of the adaptive solver.
func WithTolerance(rtol float64) Option {
	return func(o *options) { o.solverOpts.RelTol = rtol }
}

// WithMaxSubsteps bounds the adaptive solver's attempts per grid interval.
func WithMaxSubsteps(n int) Option {
	return func(o *options) { o.solverOpts.MaxSubsteps = n }
}

// WithObserver registers fn to be called with every recorded sample.
func WithObserver(fn func(i int, t float64, s State)) Option {
	return func(o *options) { o.observer = fn }
}

// WithParallelism bounds the number of concurrent runs in Sweep.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

func buildOptions(opts []Option) options {
	o := options{solver: DefaultSolver}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewStepper builds the solver selected by opts, for callers that drive the
// field step by step instead of through Integrate.
func NewStepper(opts ...Option) (dynamo.Stepper, error) {
	o := buildOptions(opts)
	return integrators.New(o.solver, o.solverOpts)
}

// Integrate samples the Lorenz trajectory starting at initial on the grid
// 0, dt, 2dt, ... strictly below t. It fails with dynamo.ErrInvalidArgument
// when dt <= 0, and returns an empty trajectory when t <= 0.
func Integrate(initial State, t, dt float64, p Params, opts ...Option) (*Trajectory, error) {
	return IntegrateContext(context.Background(), initial, t, dt, p, opts...)
}

// IntegrateContext is Integrate with cooperative cancellation between steps.
func IntegrateContext(ctx context.Context, initial State, t, dt float64, p Params, opts ...Option) (*Trajectory, error) {
	o := buildOptions(opts)

	grid, err := dynamo.TimeGrid(t, dt)
	if err != nil {
		return nil, err
	}

	stepper, err := integrators.New(o.solver, o.solverOpts)
	if err != nil {
		return nil, err
	}

	sim := dynamo.New(NewField(p), stepper)
	if o.observer != nil {
		fn := o.observer
		sim.AddObserver(dynamo.ObserverFunc(func(i int, x dynamo.State, t float64) {
			fn(i, t, State{x[0], x[1], x[2]})
		}))
	}

	res, err := sim.Sample(ctx, initial.Slice(), grid)
	if err != nil {
		return nil, err
	}
	return fromResult(res), nil
}

// Sweep integrates the same initial state under each parameter set
// concurrently and returns the trajectories in input order.
func Sweep(ctx context.Context, initial State, t, dt float64, params []Params, opts ...Option) ([]*Trajectory, error) {
	o := buildOptions(opts)

	grid, err := dynamo.TimeGrid(t, dt)
	if err != nil {
		return nil, err
	}
	newStepper, err := integrators.Factory(o.solver, o.solverOpts)
	if err != nil {
		return nil, err
	}

	jobs := make([]dynamo.Job, len(params))
	for i, p := range params {
		jobs[i] = dynamo.Job{System: NewField(p), X0: initial.Slice(), Grid: grid}
	}

	ens := dynamo.NewEnsemble(newStepper, o.parallelism)

	results, err := ens.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	out := make([]*Trajectory, len(results))
	for i, r := range results {
		out[i] = fromResult(r)
	}
	return out, nil
}
