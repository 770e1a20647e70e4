package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the one-sided spectrum of series
// after removing its mean. Bin k corresponds to frequency k/(n·dt).
// Non-finite input yields a nil spectrum.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in 1/time units) of the
// strongest non-DC bin of series sampled every dt, and its magnitude.
func DominantFrequency(series []float64, dt float64) (freq, magnitude float64) {
	ps := PowerSpectrum(series)
	if len(ps) < 2 || !(dt > 0) {
		return 0, 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	return float64(best) / (float64(len(series)) * dt), ps[best]
}
