package lorenz

import (
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// State is a point (x, y, z) in phase space.
type State [3]float64

func (s State) Slice() dynamo.State { return dynamo.State{s[0], s[1], s[2]} }

// IsFinite reports whether no component is NaN or infinite.
func (s State) IsFinite() bool { return dynamo.State(s[:]).IsValid() }

// Derivative evaluates the Lorenz vector field at s.
func Derivative(s State, p Params) State {
	x, y, z := s[0], s[1], s[2]
	return State{
		p.Sigma * (y - x),
		x*(p.Rho-z) - y,
		x*y - p.Beta*z,
	}
}

// FixedPoints returns the equilibria of the field: the origin, and for ρ > 1
// the pair C± = (±√(β(ρ−1)), ±√(β(ρ−1)), ρ−1).
func FixedPoints(p Params) []State {
	points := []State{{0, 0, 0}}
	if p.Rho > 1 && p.Beta > 0 {
		c := math.Sqrt(p.Beta * (p.Rho - 1))
		points = append(points, State{c, c, p.Rho - 1}, State{-c, -c, p.Rho - 1})
	}
	return points
}

// Field adapts Params to dynamo.System.
type Field struct{ Params Params }

func NewField(p Params) *Field  { return &Field{Params: p} }
func (f *Field) StateDim() int { return 3 }

func (f *Field) Derive(x dynamo.State, _ float64) dynamo.State {
	d := Derivative(State{x[0], x[1], x[2]}, f.Params)
	return d.Slice()
}
