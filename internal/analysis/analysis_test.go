package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/integrators"
	"github.com/san-kum/lorenz/internal/lorenz"
)

func trajectoryOf(points ...lorenz.State) *lorenz.Trajectory {
	tr := &lorenz.Trajectory{}
	for i, p := range points {
		tr.Times = append(tr.Times, float64(i))
		for d := range tr.Axes {
			tr.Axes[d] = append(tr.Axes[d], p[d])
		}
	}
	return tr
}

func TestMeasure(t *testing.T) {
	tr := trajectoryOf(
		lorenz.State{1, -2, 3},
		lorenz.State{math.NaN(), 100, 100},
		lorenz.State{-4, 5, 0.5},
	)

	env := Measure(tr)
	assert.Equal(t, lorenz.State{-4, -2, 0.5}, env.Lo)
	assert.Equal(t, lorenz.State{1, 5, 3}, env.Hi)
	assert.Equal(t, 1, env.NonFinite)
	assert.Equal(t, 3, env.Samples)
	assert.True(t, env.Diverged())
	assert.Equal(t, lorenz.State{5, 7, 2.5}, env.Span())
}

func TestMeasure_AllNonFinite(t *testing.T) {
	env := Measure(trajectoryOf(lorenz.State{math.Inf(1), 0, 0}))
	for d := range env.Lo {
		assert.True(t, math.IsNaN(env.Lo[d]))
		assert.True(t, math.IsNaN(env.Hi[d]))
	}
}

func TestSeparation(t *testing.T) {
	a := trajectoryOf(lorenz.State{0, 0, 0}, lorenz.State{1, 1, 1})
	b := trajectoryOf(lorenz.State{0, 0, 0}, lorenz.State{1, 1, 3})

	sep, err := Separation(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, sep)
	assert.Equal(t, 1, FirstExceeding(sep, 1))
	assert.Equal(t, -1, FirstExceeding(sep, 5))

	_, err = Separation(a, trajectoryOf(lorenz.State{}))
	assert.ErrorIs(t, err, dynamo.ErrDimensionMismatch)
}

func TestLyapunovExponent(t *testing.T) {
	x0 := lorenz.State{1, 1, 1}

	ctx := context.Background()

	chaotic, err := LyapunovExponent(ctx, x0, lorenz.DefaultParams(), 0.01, 60, 1e-8)
	require.NoError(t, err)
	assert.Greater(t, chaotic, 0.3, "rho=28 should be chaotic")
	assert.Less(t, chaotic, 2.0)

	stable, err := LyapunovExponent(ctx, x0, lorenz.Params{Rho: 10, Sigma: 10, Beta: 8.0 / 3.0}, 0.01, 60, 1e-8)
	require.NoError(t, err)
	assert.Less(t, stable, 0.0, "rho=10 settles on a fixed point")
}

func TestLyapunovExponent_Solver(t *testing.T) {
	x0 := lorenz.State{1, 1, 1}
	ctx := context.Background()

	adaptive, err := LyapunovExponent(ctx, x0, lorenz.DefaultParams(), 0.01, 60, 1e-6, lorenz.WithSolver("rk45"))
	require.NoError(t, err)
	assert.Greater(t, adaptive, 0.3)
	assert.Less(t, adaptive, 2.0)

	_, err = LyapunovExponent(ctx, x0, lorenz.DefaultParams(), 0.01, 10, 1e-8, lorenz.WithSolver("leapfrog"))
	assert.ErrorIs(t, err, integrators.ErrUnknownSolver)
}

func TestLyapunovExponent_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LyapunovExponent(ctx, lorenz.State{1, 1, 1}, lorenz.DefaultParams(), 0.01, 60, 1e-8)
	assert.ErrorIs(t, err, context.Canceled)
	var simErr *dynamo.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, 0, simErr.Step)
}

func TestLyapunovExponent_InvalidArguments(t *testing.T) {
	tests := []struct {
		name         string
		dt           float64
		perturbation float64
	}{
		{"zero dt", 0, 1e-8},
		{"negative dt", -0.01, 1e-8},
		{"zero perturbation", 0.01, 0},
		{"NaN perturbation", 0.01, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LyapunovExponent(context.Background(), lorenz.State{1, 1, 1}, lorenz.DefaultParams(), tt.dt, 10, tt.perturbation)
			assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
		})
	}
}

func TestPowerSpectrum(t *testing.T) {
	const (
		n  = 1000
		dt = 0.01
		f  = 2.0
	)
	series := make([]float64, n)
	for i := range series {
		series[i] = 5 + 3*math.Sin(2*math.Pi*f*float64(i)*dt)
	}

	ps := PowerSpectrum(series)
	require.Len(t, ps, n/2+1)
	assert.InDelta(t, 0, ps[0], 1e-9, "mean should be removed")

	freq, mag := DominantFrequency(series, dt)
	assert.InDelta(t, f, freq, 1e-9)
	assert.InDelta(t, 3*n/2.0, mag, 1e-6)
}

func TestPowerSpectrum_Degenerate(t *testing.T) {
	assert.Nil(t, PowerSpectrum(nil))
	assert.Nil(t, PowerSpectrum([]float64{1}))
	assert.Nil(t, PowerSpectrum([]float64{1, math.NaN(), 3}))

	freq, mag := DominantFrequency([]float64{1, 2, 3, 4}, 0)
	assert.Zero(t, freq)
	assert.Zero(t, mag)
}

func TestPhasePortrait(t *testing.T) {
	tr := trajectoryOf(
		lorenz.State{-1, 0, -1},
		lorenz.State{1, 0, 1},
		lorenz.State{math.NaN(), 0, 0},
	)

	pts, err := Project(tr, 0, 2)
	require.NoError(t, err)
	assert.Len(t, pts, 2)

	out := PhasePortrait(pts, 20, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, 2, strings.Count(out, "•"))
	assert.Contains(t, out, "┼")

	assert.Empty(t, PhasePortrait(nil, 20, 10))

	_, err = Project(tr, 0, 3)
	assert.Error(t, err)
}

func TestPoincareSection(t *testing.T) {
	tr := trajectoryOf(
		lorenz.State{0, 0, 20},
		lorenz.State{2, 4, 30},
		lorenz.State{4, 8, 20},
		lorenz.State{6, 12, 30},
	)

	pts, err := PoincareSection(tr, 2, 25, 0, 1)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.InDelta(t, 1, pts[0].X, 1e-12)
	assert.InDelta(t, 2, pts[0].Y, 1e-12)
	assert.InDelta(t, 5, pts[1].X, 1e-12)
}

func TestBifurcation(t *testing.T) {
	spec := BifurcationSpec{
		Base:      lorenz.DefaultParams(),
		RhoMin:    10,
		RhoMax:    28,
		Steps:     2,
		Initial:   lorenz.State{1, 1, 1},
		Dt:        0.01,
		Transient: 30,
		Record:    20,
	}

	points, err := Bifurcation(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 10.0, points[0].Rho)
	assert.Equal(t, 28.0, points[1].Rho)

	for _, v := range points[0].Maxima {
		assert.InDelta(t, 9, v, 0.1, "rho=10 settles at z=rho-1")
	}

	require.NotEmpty(t, points[1].Maxima)
	lo, hi := points[1].Maxima[0], points[1].Maxima[0]
	for _, v := range points[1].Maxima {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	assert.Greater(t, hi-lo, 5.0, "chaotic maxima should spread")

	assert.NotEmpty(t, BifurcationToASCII(points, 40, 10))
}

func TestBifurcation_InvalidSteps(t *testing.T) {
	_, err := Bifurcation(context.Background(), BifurcationSpec{Dt: 0.01, Record: 1})
	assert.ErrorIs(t, err, dynamo.ErrInvalidArgument)
}
