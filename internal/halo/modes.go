package halo

import (
	"math"

	"galmag/internal/special"
)

// Amplitude constants. Hard-coded defaults corresponding to the known
// free-decay eigenmodes.
const (
	cS1 = 0.653646562698
	cS2 = 1.32984358196
	cS3 = 0.0169610298034
	cS4 = 0.539789362061
	cA1 = 0.346
	cA2 = 0.250
	cA3 = 3.445
	cA4 = 0.244
)

// a2BoundaryX is the interior auxiliary function X of mode a_2 evaluated at
// r = 1. The exterior branch decays from this boundary value as r^-4, which
// keeps the polar component continuous across the sphere surface.
var a2BoundaryX = a2InteriorX(1.0)

// modeA1 is the first antisymmetric mode, purely poloidal, k = pi.
//
// X is the analytically differentiated d(rQ)/dr, written out in closed form.
func modeA1(r, theta float64) (br, btheta, bphi float64) {
	return dipoleShape(r, theta, cA1, math.Pi)
}

// modeA4 is the fourth antisymmetric mode, k = 2pi. It happens to have the
// same functional form as the first.
func modeA4(r, theta float64) (br, btheta, bphi float64) {
	return dipoleShape(r, theta, cA4, 2*math.Pi)
}

func dipoleShape(r, theta, c, k float64) (br, btheta, bphi float64) {
	var q, x float64
	if r <= 1 {
		q = math.Pow(r, -0.5) * special.JHalf(1, k*r)
		y := k * r
		sinY, cosY := math.Sincos(y)
		x = math.Sqrt(2.0/math.Pi) * (y*y*sinY - sinY + y*cosY) /
			(math.Pow(k, -0.5) * y * y)
	} else {
		q = math.Pow(r, -2.0) * special.JHalf(1, k)
		x = -math.Pow(r, -2.0) * special.JHalf(1, k)
	}

	br = c * (2.0 / r) * q * math.Cos(theta)
	btheta = c * (-math.Sin(theta) / r) * x
	return br, btheta, 0
}

// a2InteriorX is the analytically differentiated d(rQ)/dr of mode a_2 for
// r <= 1.
func a2InteriorX(r float64) float64 {
	const k = kAnti
	y := k * r
	sinY, cosY := math.Sincos(y)
	a := 15.0*sinY/(y*y*y) - 15.0*cosY/(y*y) - 6.0*sinY/y + cosY
	b := -45.0*sinY/(y*y*y)/r + 45.0*cosY/(y*y)/r + 21.0*sinY/y/r -
		k*sinY - 6.0*sinY/r
	return a/math.Sqrt(2.0*math.Pi*r*y) -
		k*math.Sqrt(r)*a/math.Sqrt(2.0*math.Pi)/math.Pow(y, 1.5) +
		math.Sqrt(2.0/math.Pi)*b/math.Sqrt(k)
}

// modeA2 is the second antisymmetric mode, purely poloidal, one of the
// degenerate pair with eigenvalue -(5.763)^2.
func modeA2(r, theta float64) (br, btheta, bphi float64) {
	const k = kAnti
	var q, x float64
	if r <= 1 {
		q = math.Pow(r, -0.5) * special.JHalf(3, k*r)
		x = a2InteriorX(r)
	} else {
		q = math.Pow(r, -4.0) * special.JHalf(3, k)
		x = a2BoundaryX * math.Pow(r, -4.0)
	}

	cosT := math.Cos(theta)
	br = q * cosT * (5.0*math.Cos(2.0*theta) - 1.0) * cA2 * (2.0 / r)
	btheta = cA2 * (-math.Sin(theta) / r) * (5.0*cosT*cosT - 1.0) * x
	return br, btheta, 0
}

// modeA3 is the third antisymmetric mode, purely toroidal, the other member
// of the degenerate pair.
func modeA3(r, theta float64) (br, btheta, bphi float64) {
	const k = kAnti
	var q float64
	if r <= 1 {
		q = math.Pow(r, -0.5) * special.JHalf(2, k*r)
	} else {
		q = math.Pow(r, -3.0) * special.JHalf(2, k)
	}
	return 0, 0, cA3 * q * math.Sin(theta) * math.Cos(theta)
}

// modeS1 is the first symmetric mode, purely poloidal.
func modeS1(r, theta float64) (br, btheta, bphi float64) {
	const k = kSym1
	var q, x float64
	if r <= 1 {
		q = math.Pow(r, -0.5) * special.JHalf(2, k*r)
		y := k * r
		sinY, cosY := math.Sincos(y)
		u := 3.0*sinY/(y*y) - sinY - 3.0*cosY/y
		x = u/math.Sqrt(2.0*math.Pi*y*r) -
			k*math.Sqrt(r)*u/math.Sqrt(2.0*math.Pi)*math.Pow(y, -1.5) +
			math.Sqrt(2.0/math.Pi*r)*
				(-6.0*sinY*k/(y*y*y)+6.0*cosY*k/(y*y)+3.0*sinY*k/y-k*cosY)/
				math.Sqrt(y)
	} else {
		q = math.Pow(r, -3.0) * special.JHalf(2, k)
		x = -2.0 * math.Pow(r, -3.0) * special.JHalf(2, k)
	}

	cosT := math.Cos(theta)
	br = cS1 * q * (3.0*cosT*cosT - 1.0) / r
	btheta = cS1 * (-math.Sin(theta) * cosT / r) * x
	return br, btheta, 0
}

// modeS2 is the second symmetric mode, purely toroidal.
func modeS2(r, theta float64) (br, btheta, bphi float64) {
	const k = kSym1
	var q float64
	if r <= 1 {
		q = math.Pow(r, -0.5) * special.JHalf(1, k*r)
	} else {
		q = math.Pow(r, -2.0) * special.JHalf(1, k)
	}
	return 0, 0, cS2 * q * math.Sin(theta)
}

// modeS3 is the third symmetric mode, purely poloidal.
func modeS3(r, theta float64) (br, btheta, bphi float64) {
	const k = kSym3
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	var q, qt float64
	if r <= 1 {
		y := k * r
		q = math.Pow(r, -0.5) * special.JHalf(4, y)
		qt = q/2.0 + math.Sqrt(r)/2.0*k*(special.JHalf(3, y)-special.JHalf(5, y))
	} else {
		q = math.Pow(r, -5.0) * special.JHalf(4, k)
		qt = -4.0 * math.Pow(r, -5.0) * special.JHalf(4, k)
	}

	s := -700.0*math.Pow(cosT, 4) + 600.0*cosT*cosT - 60.0
	br = cS3 * q * s / r

	st := -140.0*cosT*cosT*cosT*sinT + 60.0*cosT*sinT
	btheta = -cS3 * qt * st / r
	return br, btheta, 0
}

// modeS4 is the fourth symmetric mode, purely toroidal.
func modeS4(r, theta float64) (br, btheta, bphi float64) {
	const k = kSym3
	var q float64
	if r <= 1 {
		q = math.Pow(r, -0.5) * special.JHalf(3, k*r)
	} else {
		q = math.Pow(r, -4.0) * special.JHalf(3, k)
	}
	sinT := math.Sin(theta)
	cosT := math.Cos(theta)
	s := 3.0 * sinT * (1.0 - 5.0*cosT*cosT)
	return 0, 0, -cS4 * q * s
}
