package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Distance is the Euclidean distance between two states of equal length.
func (s State) Distance(other State) float64 {
	sum := 0.0
	for i := range s {
		if i >= len(other) {
			break
		}
		d := s[i] - other[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// System is an autonomous or time-dependent vector field.
// Derive must not modify x.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Stepper advances a state by one step of size dt.
type Stepper interface {
	Step(dyn System, x State, t, dt float64) State
}

// Advancer is implemented by steppers that choose their own internal steps
// and only need to land on the next output time t1.
type Advancer interface {
	Stepper
	Advance(dyn System, x State, t0, t1 float64) State
}

// StepStats counts the internal work of an adaptive stepper.
type StepStats struct {
	Accepted    int
	Rejected    int
	Forced      int
	Evaluations int
}

// StatsReporter is implemented by steppers that track StepStats.
type StatsReporter interface {
	Stats() StepStats
}

// AdvanceTo moves x from t0 to t1, letting an Advancer pick its own internal
// steps and taking one plain step otherwise.
func AdvanceTo(stepper Stepper, dyn System, x State, t0, t1 float64) State {
	if adv, ok := stepper.(Advancer); ok {
		return adv.Advance(dyn, x, t0, t1)
	}
	return stepper.Step(dyn, x, t0, t1-t0)
}

// Observer is notified of every recorded sample.
type Observer interface {
	OnSample(i int, x State, t float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(i int, x State, t float64)

func (f ObserverFunc) OnSample(i int, x State, t float64) { f(i, x, t) }

type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		Duration: 40.0,
	}
}

// Result holds a sampled trajectory in dimension-major order:
// Axes[d][i] is component d at Times[i].
type Result struct {
	Times      []float64
	Axes       [][]float64
	StepsTaken int
	// Stats is filled when the stepper is a StatsReporter.
	Stats StepStats
}

func newResult(dim, n int) *Result {
	r := &Result{
		Times: make([]float64, 0, n),
		Axes:  make([][]float64, dim),
	}
	for d := range r.Axes {
		r.Axes[d] = make([]float64, 0, n)
	}
	return r
}

func (r *Result) record(x State, t float64) {
	r.Times = append(r.Times, t)
	for d := range r.Axes {
		r.Axes[d] = append(r.Axes[d], x[d])
	}
}

// Len returns the number of recorded samples.
func (r *Result) Len() int { return len(r.Times) }

// At returns a copy of sample i in row form.
func (r *Result) At(i int) State {
	x := make(State, len(r.Axes))
	for d := range r.Axes {
		x[d] = r.Axes[d][i]
	}
	return x
}
