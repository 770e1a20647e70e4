package analysis

import (
	"math"

	"github.com/san-kum/lorenz/internal/lorenz"
)

// Envelope is the per-axis range of a trajectory.
type Envelope struct {
	Lo, Hi    lorenz.State
	NonFinite int
	Samples   int
}

// Measure computes the envelope of tr over its finite samples. A sample
// with any NaN or infinite component is counted in NonFinite and left out
// of the range. Axes with no finite sample report NaN.
func Measure(tr *lorenz.Trajectory) Envelope {
	env := Envelope{Samples: tr.Len()}
	for d := range env.Lo {
		env.Lo[d], env.Hi[d] = math.NaN(), math.NaN()
	}

	for i := 0; i < tr.Len(); i++ {
		s := tr.At(i)
		if !s.IsFinite() {
			env.NonFinite++
			continue
		}
		for d, v := range s {
			if math.IsNaN(env.Lo[d]) || v < env.Lo[d] {
				env.Lo[d] = v
			}
			if math.IsNaN(env.Hi[d]) || v > env.Hi[d] {
				env.Hi[d] = v
			}
		}
	}
	return env
}

// Diverged reports whether any sample left the finite range.
func (e Envelope) Diverged() bool { return e.NonFinite > 0 }

// Span returns Hi-Lo per axis.
func (e Envelope) Span() lorenz.State {
	return lorenz.State{e.Hi[0] - e.Lo[0], e.Hi[1] - e.Lo[1], e.Hi[2] - e.Lo[2]}
}
