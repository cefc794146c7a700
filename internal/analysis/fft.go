package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data with its mean removed. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency returns the strongest non-constant frequency of data in
// cycles per tick, with its magnitude. A flat series reports zero.
func DominantFrequency(data []float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			power = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, 0
	}
	return float64(maxIdx) / float64(len(data)), power
}
