package analysis

import "math"

// FieldSummary aggregates scalar diagnostics of a sampled vector field.
type FieldSummary struct {
	MeanMagnitude float64 // mean |B| over valid samples
	MaxMagnitude  float64
	EnergyDensity float64 // mean |B|^2 / 2 over valid samples
	Invalid       int     // samples with NaN or Inf components
}

// Summarize computes a FieldSummary from Cartesian component arrays.
// Degenerate grid points (origin, polar axis) produce non-finite samples;
// they are counted and excluded from the averages.
func Summarize(bx, by, bz []float64) FieldSummary {
	var s FieldSummary
	valid := 0
	for i := range bx {
		m2 := bx[i]*bx[i] + by[i]*by[i] + bz[i]*bz[i]
		if math.IsNaN(m2) || math.IsInf(m2, 0) {
			s.Invalid++
			continue
		}
		m := math.Sqrt(m2)
		s.MeanMagnitude += m
		s.EnergyDensity += m2 / 2
		if m > s.MaxMagnitude {
			s.MaxMagnitude = m
		}
		valid++
	}
	if valid > 0 {
		s.MeanMagnitude /= float64(valid)
		s.EnergyDensity /= float64(valid)
	}
	return s
}
