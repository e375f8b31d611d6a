// Package halo computes free-decay eigenmodes of the magnetic field in a
// galactic halo.
//
// Each of the eight modes (four symmetric, four antisymmetric) is a fixed
// analytic solution of the free-decay eigenvalue problem in a unit sphere:
// an interior branch built from half-integer-order Bessel functions and an
// exterior branch decaying as a fixed negative power of r, matched at r = 1.
// Every mode is purely poloidal (Bphi = 0) or purely toroidal
// (Br = Btheta = 0). Decay rates are the published eigenvalues; nothing is
// recomputed.
package halo

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedMode indicates a mode index outside 1..4.
var ErrUnsupportedMode = errors.New("halo: free-decay modes are only available for n in 1..4")

// ErrLengthMismatch indicates coordinate arrays of unequal length.
var ErrLengthMismatch = errors.New("halo: coordinate arrays must have equal length")

// Mode identifies one of the eight free-decay modes.
type Mode int

const (
	S1 Mode = iota // symmetric, poloidal
	S2             // symmetric, toroidal
	S3             // symmetric, poloidal
	S4             // symmetric, toroidal
	A1             // antisymmetric, poloidal
	A2             // antisymmetric, poloidal
	A3             // antisymmetric, toroidal
	A4             // antisymmetric, poloidal
)

// Radial wavenumbers. kSym1 and kSym3 are the first zeros of the spherical
// Bessel functions j1 and j2; the antisymmetric values follow Chandrasekhar's
// tabulation.
const (
	kSym1 = 4.493409457909
	kSym3 = 6.987932000501
	kAnti = 5.763
)

func (m Mode) String() string {
	names := [...]string{"s_1", "s_2", "s_3", "s_4", "a_1", "a_2", "a_3", "a_4"}
	if m < S1 || m > A4 {
		return fmt.Sprintf("halo.Mode(%d)", int(m))
	}
	return names[m]
}

// Symmetric reports whether the mode is even about the galactic midplane.
func (m Mode) Symmetric() bool { return m <= S4 }

// Index returns the 1-based position of the mode within its symmetry class.
func (m Mode) Index() int {
	if m.Symmetric() {
		return int(m) + 1
	}
	return int(m-A1) + 1
}

// Toroidal reports whether the mode has only an azimuthal component.
func (m Mode) Toroidal() bool { return m == S2 || m == S4 || m == A3 }

// Gamma returns the mode's decay rate (the free-decay eigenvalue).
func (m Mode) Gamma() float64 {
	switch m {
	case S1, S2:
		return -kSym1 * kSym1
	case S3, S4:
		return -kSym3 * kSym3
	case A1:
		return -math.Pi * math.Pi
	case A2, A3:
		return -kAnti * kAnti
	case A4:
		return -4 * math.Pi * math.Pi
	}
	return math.NaN()
}

// ModeFor maps a 1-based mode index and symmetry class to a Mode.
func ModeFor(n int, symmetric bool) (Mode, error) {
	if n < 1 || n > 4 {
		return 0, fmt.Errorf("%w: got %d", ErrUnsupportedMode, n)
	}
	if symmetric {
		return S1 + Mode(n-1), nil
	}
	return A1 + Mode(n-1), nil
}

// At evaluates the mode at a single point of dimensionless spherical
// coordinates (the modes are axisymmetric, so phi never enters). Division by
// r makes some components NaN or Inf at r = 0; this follows IEEE semantics
// and callers must avoid or mask the origin.
func (m Mode) At(r, theta float64) (br, btheta, bphi float64) {
	switch m {
	case S1:
		return modeS1(r, theta)
	case S2:
		return modeS2(r, theta)
	case S3:
		return modeS3(r, theta)
	case S4:
		return modeS4(r, theta)
	case A1:
		return modeA1(r, theta)
	case A2:
		return modeA2(r, theta)
	case A3:
		return modeA3(r, theta)
	case A4:
		return modeA4(r, theta)
	}
	return math.NaN(), math.NaN(), math.NaN()
}

// Eval evaluates the mode over coordinate arrays.
func (m Mode) Eval(r, theta, phi []float64) (br, btheta, bphi []float64, err error) {
	if len(theta) != len(r) || len(phi) != len(r) {
		return nil, nil, nil, fmt.Errorf("%w: %d/%d/%d", ErrLengthMismatch, len(r), len(theta), len(phi))
	}
	br = make([]float64, len(r))
	btheta = make([]float64, len(r))
	bphi = make([]float64, len(r))
	for i := range r {
		br[i], btheta[i], bphi[i] = m.At(r[i], theta[i])
	}
	return br, btheta, bphi, nil
}

// GetMode computes the n-th free-decay mode of the requested symmetry class
// over the given dimensionless spherical coordinates.
func GetMode(r, theta, phi []float64, n int, symmetric bool) (br, btheta, bphi []float64, err error) {
	m, err := ModeFor(n, symmetric)
	if err != nil {
		return nil, nil, nil, err
	}
	return m.Eval(r, theta, phi)
}
