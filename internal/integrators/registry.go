package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/lorenz/internal/dynamo"
)

var ErrUnknownSolver = errors.New("integrators: unknown solver")

// Options tune the adaptive solver; fixed-step solvers ignore them.
// Zero values select the defaults.
type Options struct {
	RelTol      float64
	AbsTol      float64
	MaxSubsteps int
}

var solvers = map[string]func(Options) dynamo.Stepper{
	"euler": func(Options) dynamo.Stepper { return NewEuler() },
	"rk4":   func(Options) dynamo.Stepper { return NewRK4() },
	"rk45": func(o Options) dynamo.Stepper {
		r := NewRK45()
		if o.RelTol > 0 {
			r.RelTol = o.RelTol
		}
		if o.AbsTol > 0 {
			r.AbsTol = o.AbsTol
		}
		if o.MaxSubsteps > 0 {
			r.MaxSubsteps = o.MaxSubsteps
		}
		return r
	},
}

// New returns a fresh stepper for the named solver.
func New(name string, opts Options) (dynamo.Stepper, error) {
	factory, err := Factory(name, opts)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

// Factory resolves the named solver once and returns a constructor that
// builds a fresh stepper per call, for runs that need one stepper each.
func Factory(name string, opts Options) (func() dynamo.Stepper, error) {
	fn, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSolver, name, Names())
	}
	return func() dynamo.Stepper { return fn(opts) }, nil
}

// Names lists the registered solvers in sorted order.
func Names() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
