package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PeakFrequency returns the frequency of the strongest bin of a
// Hann-windowed block, refined by parabolic interpolation.
func PeakFrequency(block []float32, sampleRate float64) float64 {
	n := len(block)
	if n < 4 {
		return 0
	}
	buf := make([]complex128, n)
	for i, v := range block {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex(float64(v)*w, 0)
	}
	spectrum := fft.FFT(buf)

	best, peak := 0, 0.0
	for i := 1; i < n/2; i++ {
		if m := cmplx.Abs(spectrum[i]); m > peak {
			best, peak = i, m
		}
	}
	if best == 0 {
		return 0
	}

	bin := float64(best)
	if best+1 < n/2 {
		a := cmplx.Abs(spectrum[best-1])
		c := cmplx.Abs(spectrum[best+1])
		if den := a - 2*peak + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return bin * sampleRate / float64(n)
}

// Level is the RMS of a block.
func Level(block []float32) float64 {
	if len(block) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range block {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(block)))
}
