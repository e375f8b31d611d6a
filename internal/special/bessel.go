package special

import "math"

// SphericalJ returns the spherical Bessel function of the first kind j_n(x)
// for n >= 0. Upward recurrence from j_0 and j_1 is used for moderate
// arguments; a power series takes over near the origin, where the recurrence
// loses precision to cancellation.
func SphericalJ(n int, x float64) float64 {
	if n < 0 {
		return math.NaN()
	}
	if x == 0 {
		if n == 0 {
			return 1.0
		}
		return 0.0
	}
	if math.Abs(x) < 0.5 {
		return sphericalJSeries(n, x)
	}

	sin, cos := math.Sincos(x)
	j0 := sin / x
	if n == 0 {
		return j0
	}
	j1 := sin/(x*x) - cos/x
	if n == 1 {
		return j1
	}

	jm, j := j0, j1
	for k := 1; k < n; k++ {
		jm, j = j, float64(2*k+1)/x*j-jm
	}
	return j
}

// sphericalJSeries evaluates the ascending series
//
//	j_n(x) = x^n/(2n+1)!! * [1 - (x^2/2)/(1!(2n+3)) + (x^2/2)^2/(2!(2n+3)(2n+5)) - ...]
//
// Eight terms are far below machine precision for |x| < 0.5.
func sphericalJSeries(n int, x float64) float64 {
	dfac := 1.0
	for m := 3; m <= 2*n+1; m += 2 {
		dfac *= float64(m)
	}
	term := math.Pow(x, float64(n)) / dfac
	sum := term
	x2 := x * x
	for k := 1; k <= 8; k++ {
		term *= -x2 / (2.0 * float64(k) * float64(2*n+2*k+1))
		sum += term
	}
	return sum
}

// JHalf returns the Bessel function of the first kind of half-integer order,
// J_{n+1/2}(x), via its closed-form relation to the spherical Bessel
// functions.
func JHalf(n int, x float64) float64 {
	if x == 0 {
		return 0.0
	}
	return math.Sqrt(2.0*x/math.Pi) * SphericalJ(n, x)
}

// ZerosJ1 returns the first n positive zeros of the Bessel function J_1 in
// ascending order. McMahon's expansion provides starting points that Newton
// iteration refines to machine precision.
func ZerosJ1(n int) []float64 {
	zeros := make([]float64, n)
	for m := 1; m <= n; m++ {
		x := (float64(m) + 0.25) * math.Pi
		for i := 0; i < 50; i++ {
			// J1'(x) = (J0(x) - J2(x)) / 2
			dx := math.J1(x) / (0.5 * (math.J0(x) - math.Jn(2, x)))
			x -= dx
			if math.Abs(dx) < 1e-14 {
				break
			}
		}
		zeros[m-1] = x
	}
	return zeros
}
