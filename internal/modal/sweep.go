package modal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sweep samples Strength on n evenly spaced frequencies in [lo, hi].
func (f *Field) Sweep(lo, hi float64, n int) (freqs, values []float64) {
	if n < 2 {
		n = 2
	}
	freqs = floats.Span(make([]float64, n), lo, hi)
	values = make([]float64, n)
	for i, hz := range freqs {
		values[i] = f.Strength(hz)
	}
	return freqs, values
}

// Peaks returns the indices of the interior local maxima of a sampled curve.
// A flat top is reported once, at its first sample.
func Peaks(values []float64) []int {
	var idx []int
	for i := 1; i+1 < len(values); i++ {
		if values[i] > values[i-1] && values[i] >= values[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// StrongestPeak returns the index of the largest sample, or -1 when empty.
func StrongestPeak(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	return floats.MaxIdx(values)
}

// NextResonance returns the lowest modal frequency of a surviving mode above
// hz, or 0 when none lies below the mode limit.
func (f *Field) NextResonance(hz float64) float64 {
	return f.nearestResonance(hz, true)
}

// PrevResonance is NextResonance in the other direction.
func (f *Field) PrevResonance(hz float64) float64 {
	return f.nearestResonance(hz, false)
}

func (f *Field) nearestResonance(hz float64, up bool) float64 {
	if f.width*f.height <= 0 {
		return 0
	}
	f.ensureModes()
	c := &f.cache
	const tol = 1e-6

	best := math.Inf(1)
	if !up {
		best = math.Inf(-1)
	}
	for i := 0; i < c.count; i++ {
		fm := f.material.Dispersion * c.kmn2[i]
		if up && fm > hz+tol && fm < best {
			best = fm
		}
		if !up && fm < hz-tol && fm > best {
			best = fm
		}
	}
	if math.IsInf(best, 0) {
		return 0
	}
	return best
}
