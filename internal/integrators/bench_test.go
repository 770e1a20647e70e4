package integrators

import (
	"testing"

	"github.com/san-kum/lorenz/internal/dynamo"
)

type benchLorenz struct{}

func (b *benchLorenz) StateDim() int { return 3 }
func (b *benchLorenz) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{10 * (x[1] - x[0]), x[0]*(28-x[2]) - x[1], x[0]*x[1] - 8.0/3.0*x[2]}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &benchLorenz{}
	x := dynamo.State{1.0, 1.0, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchLorenz{}
	x := dynamo.State{1.0, 1.0, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45Advance(b *testing.B) {
	integrator := NewRK45()
	dyn := &benchLorenz{}
	x := dynamo.State{1.0, 1.0, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t0 := float64(i) * 0.01
		x = integrator.Advance(dyn, x, t0, t0+0.01)
	}
}
