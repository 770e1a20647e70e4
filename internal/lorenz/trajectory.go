package lorenz

import (
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// Trajectory is a sampled run in dimension-major order: Axes[d][i] is
// component d (0=x, 1=y, 2=z) at Times[i].
type Trajectory struct {
	Times []float64
	Axes  [3][]float64
	// Stats holds the adaptive solver's step counts; zero for fixed-step
	// solvers.
	Stats dynamo.StepStats
}

func fromResult(r *dynamo.Result) *Trajectory {
	tr := &Trajectory{Times: r.Times, Stats: r.Stats}
	for d := range tr.Axes {
		tr.Axes[d] = r.Axes[d]
	}
	return tr
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) X() []float64 { return tr.Axes[0] }
func (tr *Trajectory) Y() []float64 { return tr.Axes[1] }
func (tr *Trajectory) Z() []float64 { return tr.Axes[2] }

// At returns sample i.
func (tr *Trajectory) At(i int) State {
	return State{tr.Axes[0][i], tr.Axes[1][i], tr.Axes[2][i]}
}

// Final returns the last sample, or false for an empty trajectory.
func (tr *Trajectory) Final() (State, bool) {
	if tr.Len() == 0 {
		return State{}, false
	}
	return tr.At(tr.Len() - 1), true
}

// Bounds returns per-axis minimum and maximum over finite samples. Axes
// without a finite sample report NaN.
func (tr *Trajectory) Bounds() (lo, hi State) {
	for d, axis := range tr.Axes {
		lo[d], hi[d] = math.NaN(), math.NaN()
		for _, v := range axis {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if math.IsNaN(lo[d]) || v < lo[d] {
				lo[d] = v
			}
			if math.IsNaN(hi[d]) || v > hi[d] {
				hi[d] = v
			}
		}
	}
	return lo, hi
}
