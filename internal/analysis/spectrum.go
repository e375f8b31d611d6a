// Package analysis provides diagnostics over computed field data: azimuthal
// mode spectra and scalar summaries.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// AzimuthalSpectrum returns the power in each azimuthal mode m of a field
// component sampled on a ring of equally spaced azimuths. The result has
// len(ring)/2 + 1 entries; entry m is the normalized Fourier amplitude of
// exp(i m phi).
func AzimuthalSpectrum(ring []float64) []float64 {
	if len(ring) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(ring)

	half := len(ring)/2 + 1
	power := make([]float64, half)
	n := float64(len(ring))
	for m := 0; m < half; m++ {
		power[m] = cmplx.Abs(coeffs[m]) / n
	}
	return power
}

// DominantMode returns the azimuthal mode number with the largest power.
// For an axisymmetric field this is 0.
func DominantMode(power []float64) int {
	best := 0
	for m := 1; m < len(power); m++ {
		if power[m] > power[best] {
			best = m
		}
	}
	return best
}
