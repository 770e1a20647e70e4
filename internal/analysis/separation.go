package analysis

import (
	"fmt"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/lorenz"
)

// Separation returns the Euclidean distance between a and b at every sample.
// Both trajectories must share the same grid length.
func Separation(a, b *lorenz.Trajectory) ([]float64, error) {
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("%w: %d samples vs %d", dynamo.ErrDimensionMismatch, a.Len(), b.Len())
	}
	out := make([]float64, a.Len())
	for i := range out {
		out[i] = a.At(i).Slice().Distance(b.At(i).Slice())
	}
	return out, nil
}

// FirstExceeding returns the first index whose value is above threshold,
// or -1.
func FirstExceeding(values []float64, threshold float64) int {
	for i, v := range values {
		if v > threshold {
			return i
		}
	}
	return -1
}
