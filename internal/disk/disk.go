// Package disk evaluates the magnetic field produced by an axisymmetric
// galactic disk dynamo.
//
// The field is a weighted sum of radial Bessel modes, one per entry of
// [Params.Coefficients], with wavenumbers given by the zeros of J1. Each mode
// is renormalized by a numerically integrated factor that is cached per
// wavenumber (see [NormCache]). Evaluation is available in dimensionless
// cylindrical coordinates (r scaled by the disk radius, z by the scale
// height) or in physical Cartesian coordinates.
package disk

import (
	"errors"
	"fmt"
	"math"

	"galmag/internal/special"
)

var (
	// ErrDynamoNumber rejects a non-negative dynamo number. The modeled
	// instability only exists for D < 0, and several formulas take sqrt(-D).
	ErrDynamoNumber = errors.New("disk: dynamo number must be negative")

	// ErrNoModes indicates an empty mode coefficient sequence.
	ErrNoModes = errors.New("disk: at least one mode coefficient is required")

	// ErrGeometry indicates a non-positive disk radius or scale height.
	ErrGeometry = errors.New("disk: radius and scale height must be positive")

	// ErrLengthMismatch indicates coordinate arrays of unequal length.
	ErrLengthMismatch = errors.New("disk: coordinate arrays must have equal length")
)

// Params holds the disk dynamo parameters.
type Params struct {
	DynamoNumber float64   `yaml:"dynamo_number"` // D_d, dimensionless, negative
	RAlpha       float64   `yaml:"r_alpha"`       // measure of the mean induction by turbulence
	Radius       float64   `yaml:"radius"`        // radius of the dynamo-active disk
	ScaleHeight  float64   `yaml:"scale_height"`  // the field vanishes beyond one scale height
	Coefficients []float64 `yaml:"coefficients"`  // one weight per radial Bessel mode
}

// Validate checks the physical domain of the parameters. A non-negative
// dynamo number is rejected here rather than left to produce NaN downstream.
func (p Params) Validate() error {
	if p.DynamoNumber >= 0 {
		return fmt.Errorf("%w: got %g", ErrDynamoNumber, p.DynamoNumber)
	}
	if len(p.Coefficients) == 0 {
		return ErrNoModes
	}
	if p.Radius <= 0 || p.ScaleHeight <= 0 {
		return fmt.Errorf("%w: radius %g, scale height %g", ErrGeometry, p.Radius, p.ScaleHeight)
	}
	return nil
}

// Field evaluates the disk dynamo field for a fixed parameter set.
type Field struct {
	params Params
	kns    []float64
	norms  *NormCache
}

// New returns a Field owning a fresh normalization cache.
func New(p Params) (*Field, error) {
	return NewWithCache(p, NewNormCache())
}

// NewWithCache returns a Field using the given cache, allowing evaluators
// with identical parameters to share normalization results.
func NewWithCache(p Params, cache *NormCache) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewNormCache()
	}
	return &Field{
		params: p,
		kns:    special.ZerosJ1(len(p.Coefficients)),
		norms:  cache,
	}, nil
}

// Params returns the parameter set the field was built with.
func (f *Field) Params() Params { return f.params }

// modeCyl evaluates the unnormalized mode with wavenumber kn at a single
// dimensionless cylindrical point. The mode is axisymmetric, so phi does not
// enter.
func (f *Field) modeCyl(r, z, kn float64) (br, bphi, bz float64) {
	ralpha := f.params.RAlpha
	sqrtMinusD := math.Sqrt(-f.params.DynamoNumber)

	j1 := math.J1(kn * r)
	pi32 := math.Pow(math.Pi, 1.5)

	br = ralpha * j1 * (math.Cos(math.Pi*z/2) +
		3.0*math.Cos(3*math.Pi*z/2)/(4.0*pi32*sqrtMinusD))

	bphi = -2.0 * j1 * math.Sqrt(-f.params.DynamoNumber/math.Pi) * math.Cos(math.Pi*z/2)

	bz = -2.0 * ralpha / math.Pi *
		(j1 + 0.5*kn*r*(math.J0(kn*r)-math.Jn(2, kn*r))) *
		(math.Sin(math.Pi*z/2) + math.Sin(3*math.Pi*z/2)/(4.0*pi32*sqrtMinusD))

	return br, bphi, bz
}

// EvalCyl computes the composite field over dimensionless cylindrical
// coordinates (r in disk radii, z in scale heights). The returned components
// are exactly zero wherever |z| > 1: the disk model is only defined within
// one scale height and must not leak outside it.
func (f *Field) EvalCyl(r, phi, z []float64) (br, bphi, bz []float64, err error) {
	if len(phi) != len(r) || len(z) != len(r) {
		return nil, nil, nil, fmt.Errorf("%w: %d/%d/%d", ErrLengthMismatch, len(r), len(phi), len(z))
	}

	br = make([]float64, len(r))
	bphi = make([]float64, len(r))
	bz = make([]float64, len(r))

	for m, kn := range f.kns {
		norm, err := f.norms.Get(kn, func() (float64, error) { return f.normalize(kn) })
		if err != nil {
			return nil, nil, nil, err
		}
		cn := f.params.Coefficients[m] * norm
		for i := range r {
			mr, mphi, mz := f.modeCyl(r[i], z[i], kn)
			br[i] += cn * mr
			bphi[i] += cn * mphi
			bz[i] += cn * mz
		}
	}

	for i := range z {
		if math.Abs(z[i]) > 1 {
			br[i], bphi[i], bz[i] = 0, 0, 0
		}
	}
	return br, bphi, bz, nil
}

// EvalCartesian computes the field at physical Cartesian points. Coordinates
// are nondimensionalized by the disk radius (x, y) and scale height (z), and
// the cylindrical components are rotated back to Cartesian.
func (f *Field) EvalCartesian(x, y, z []float64) (bx, by, bz []float64, err error) {
	if len(y) != len(x) || len(z) != len(x) {
		return nil, nil, nil, fmt.Errorf("%w: %d/%d/%d", ErrLengthMismatch, len(x), len(y), len(z))
	}

	r := make([]float64, len(x))
	phi := make([]float64, len(x))
	zd := make([]float64, len(x))
	for i := range x {
		xd := x[i] / f.params.Radius
		yd := y[i] / f.params.Radius
		r[i] = math.Hypot(xd, yd)
		phi[i] = math.Atan2(yd, xd)
		zd[i] = z[i] / f.params.ScaleHeight
	}

	br, bphi, bz, err := f.EvalCyl(r, phi, zd)
	if err != nil {
		return nil, nil, nil, err
	}

	bx = make([]float64, len(x))
	by = make([]float64, len(x))
	for i := range x {
		sinPhi, cosPhi := math.Sincos(phi[i])
		bx[i] = br[i]*cosPhi - bphi[i]*sinPhi
		by[i] = br[i]*sinPhi + bphi[i]*cosPhi
	}
	return bx, by, bz, nil
}
