package dynamo

import (
	"fmt"
	"math"
)

// MaxGridPoints bounds the number of output samples a single run may request.
const MaxGridPoints = 1 << 27

// GridLen returns the number of points in the half-open grid [0, t) with
// spacing dt. The count is ceil(t/dt) evaluated in float64, the same rule
// numpy's arange uses, so t=1, dt=0.5 gives 2 points and t=1, dt=0.3 gives 4.
//
// A non-positive, NaN or infinite dt is an invalid argument. A non-positive or
// NaN t yields an empty grid.
func GridLen(t, dt float64) (int, error) {
	if !(dt > 0) {
		return 0, &ArgumentError{Name: "dt", Value: dt, Reason: "must be positive"}
	}
	if math.IsInf(dt, 1) {
		return 0, &ArgumentError{Name: "dt", Value: dt, Reason: "must be finite"}
	}
	if !(t > 0) {
		return 0, nil
	}

	n := math.Ceil(t / dt)
	if math.IsInf(n, 1) || n > MaxGridPoints {
		return 0, &ArgumentError{
			Name:   "t",
			Value:  t,
			Reason: fmt.Sprintf("grid of %g points with dt=%g exceeds %d", n, dt, MaxGridPoints),
		}
	}
	return int(n), nil
}

// TimeGrid builds the sample times i*dt for i in [0, GridLen(t, dt)).
func TimeGrid(t, dt float64) ([]float64, error) {
	n, err := GridLen(t, dt)
	if err != nil {
		return nil, err
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i) * dt
	}
	return grid, nil
}
