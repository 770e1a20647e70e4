package lorenz

import (
	"errors"
	"fmt"
)

var ErrUnknownParam = errors.New("lorenz: unknown parameter")

// ParamNames lists the parameter names accepted by Params.With.
var ParamNames = []string{"rho", "sigma", "beta"}

// Params are the Lorenz constants. Values are not validated: non-finite
// inputs propagate into the trajectory.
type Params struct {
	Rho   float64 `json:"rho" yaml:"rho"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
	Beta  float64 `json:"beta" yaml:"beta"`
}

// DefaultParams returns the canonical chaotic set ρ=28, σ=10, β=8/3.
func DefaultParams() Params { return Params{Rho: 28.0, Sigma: 10.0, Beta: 8.0 / 3.0} }

// ClassicParams returns the values the desktop front end
// prefilled, with β rounded to 2.666667.
func ClassicParams() Params { return Params{Rho: 28.0, Sigma: 10.0, Beta: 2.666667} }

// With returns a copy of p with the named parameter replaced.
func (p Params) With(name string, v float64) (Params, error) {
	switch name {
	case "rho":
		p.Rho = v
	case "sigma":
		p.Sigma = v
	case "beta":
		p.Beta = v
	default:
		return p, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownParam, name, ParamNames)
	}
	return p, nil
}

func (p Params) String() string {
	return fmt.Sprintf("rho=%g sigma=%g beta=%g", p.Rho, p.Sigma, p.Beta)
}
