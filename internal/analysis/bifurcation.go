package analysis

import (
	"context"
	"math"
	"strings"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/lorenz"
)

// BifurcationPoint holds the successive z maxima observed at one ρ.
type BifurcationPoint struct {
	Rho    float64
	Maxima []float64
}

// BifurcationSpec describes a ρ sweep. Samples before Transient are dropped.
type BifurcationSpec struct {
	Base      lorenz.Params
	RhoMin    float64
	RhoMax    float64
	Steps     int
	Initial   lorenz.State
	Dt        float64
	Transient float64
	Record    float64
}

// Bifurcation sweeps ρ and records the local maxima of z on the attractor,
// the quantity Lorenz plotted against itself. A single value per ρ marks a
// periodic orbit or fixed point; a spread of values marks chaos.
func Bifurcation(ctx context.Context, spec BifurcationSpec, opts ...lorenz.Option) ([]BifurcationPoint, error) {
	if spec.Steps < 1 {
		return nil, &dynamo.ArgumentError{Name: "steps", Value: float64(spec.Steps), Reason: "must be at least 1"}
	}

	rhos := make([]float64, spec.Steps)
	sets := make([]lorenz.Params, spec.Steps)
	for i := range rhos {
		rhos[i] = spec.RhoMin
		if spec.Steps > 1 {
			rhos[i] += float64(i) * (spec.RhoMax - spec.RhoMin) / float64(spec.Steps-1)
		}
		sets[i] = spec.Base
		sets[i].Rho = rhos[i]
	}

	trs, err := lorenz.Sweep(ctx, spec.Initial, spec.Transient+spec.Record, spec.Dt, sets, opts...)
	if err != nil {
		return nil, err
	}

	skip, err := dynamo.GridLen(spec.Transient, spec.Dt)
	if err != nil {
		return nil, err
	}

	out := make([]BifurcationPoint, len(trs))
	for i, tr := range trs {
		out[i] = BifurcationPoint{Rho: rhos[i], Maxima: localMaxima(tr.Z(), skip)}
	}
	return out, nil
}

func localMaxima(series []float64, from int) []float64 {
	var peaks []float64
	for i := max(from, 1); i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] >= series[i+1] && finite(series[i]) {
			peaks = append(peaks, series[i])
		}
	}
	return peaks
}

// BifurcationToASCII plots ρ along the columns and z maxima along the rows.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Maxima {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		for _, v := range p.Maxima {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				grid[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
