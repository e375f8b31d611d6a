// Package grid builds uniform rectilinear coordinate grids and converts
// between Cartesian, spherical and cylindrical coordinate systems.
//
// A [Grid] is immutable after construction. The seven coordinate arrays are
// generated together on first access and cached for the lifetime of the
// object; they always describe the same physical points regardless of which
// native system generated the mesh.
package grid

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Type selects the coordinate system the uniform mesh is generated in.
type Type string

const (
	Cartesian   Type = "cartesian"
	Spherical   Type = "spherical"
	Cylindrical Type = "cylindrical"
)

// ErrUnknownType indicates a grid type outside the supported set.
var ErrUnknownType = errors.New("grid: unknown grid type")

// ErrResolution indicates a non-positive point count on some axis.
var ErrResolution = errors.New("grid: resolution must be positive on every axis")

// Coordinates holds the seven derived coordinate arrays, each flat in
// row-major order over the grid resolution.
type Coordinates struct {
	X            []float64
	Y            []float64
	Z            []float64
	RSpherical   []float64
	RCylindrical []float64
	Theta        []float64
	Phi          []float64
}

// Grid is a uniform rectilinear 3D box. The box rows give (min, max) per
// axis; the axes are interpreted according to the grid type: (x, y, z) for
// cartesian, (r, theta, phi) for spherical and (s, phi, z) for cylindrical.
type Grid struct {
	box        [3][2]float64
	resolution [3]int
	typ        Type

	once   sync.Once
	coords *Coordinates
}

// New validates the configuration and returns a Grid. Coordinate generation
// is deferred until first use.
func New(box [3][2]float64, resolution [3]int, typ Type) (*Grid, error) {
	switch typ {
	case Cartesian, Spherical, Cylindrical:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	for i, n := range resolution {
		if n <= 0 {
			return nil, fmt.Errorf("%w: axis %d has %d points", ErrResolution, i, n)
		}
	}
	return &Grid{box: box, resolution: resolution, typ: typ}, nil
}

func (g *Grid) Box() [3][2]float64 { return g.box }
func (g *Grid) Resolution() [3]int { return g.resolution }
func (g *Grid) Type() Type         { return g.typ }

// NumPoints returns the total number of grid points.
func (g *Grid) NumPoints() int {
	return g.resolution[0] * g.resolution[1] * g.resolution[2]
}

// Idx maps (i, j, k) axis indices to the flat array index.
func (g *Grid) Idx(i, j, k int) int {
	return (i*g.resolution[1]+j)*g.resolution[2] + k
}

// Prototype allocates an uninitialized array shaped like the grid.
func (g *Grid) Prototype() []float64 {
	return make([]float64, g.NumPoints())
}

// Coordinates returns the cached coordinate bundle, generating it on first
// call. Safe for concurrent use.
func (g *Grid) Coordinates() *Coordinates {
	g.once.Do(func() {
		g.coords = g.generate()
	})
	return g.coords
}

func (g *Grid) X() []float64            { return g.Coordinates().X }
func (g *Grid) Y() []float64            { return g.Coordinates().Y }
func (g *Grid) Z() []float64            { return g.Coordinates().Z }
func (g *Grid) RSpherical() []float64   { return g.Coordinates().RSpherical }
func (g *Grid) RCylindrical() []float64 { return g.Coordinates().RCylindrical }
func (g *Grid) Theta() []float64        { return g.Coordinates().Theta }
func (g *Grid) Phi() []float64          { return g.Coordinates().Phi }

// SinTheta returns sin(theta) = r_cyl/r_sph, computed on demand. The ratio is
// undefined at the origin, where IEEE division yields NaN; callers sampling
// the origin must tolerate or mask it.
func (g *Grid) SinTheta() []float64 {
	c := g.Coordinates()
	out := g.Prototype()
	for i := range out {
		out[i] = c.RCylindrical[i] / c.RSpherical[i]
	}
	return out
}

// CosTheta returns cos(theta) = z/r_sph; NaN at the origin.
func (g *Grid) CosTheta() []float64 {
	c := g.Coordinates()
	out := g.Prototype()
	for i := range out {
		out[i] = c.Z[i] / c.RSpherical[i]
	}
	return out
}

// SinPhi returns sin(phi) = y/r_cyl; NaN or Inf on the polar axis.
func (g *Grid) SinPhi() []float64 {
	c := g.Coordinates()
	out := g.Prototype()
	for i := range out {
		out[i] = c.Y[i] / c.RCylindrical[i]
	}
	return out
}

// CosPhi returns cos(phi) = x/r_cyl; NaN or Inf on the polar axis.
func (g *Grid) CosPhi() []float64 {
	c := g.Coordinates()
	out := g.Prototype()
	for i := range out {
		out[i] = c.X[i] / c.RCylindrical[i]
	}
	return out
}

// axis returns the n evenly spaced samples over [lo, hi] with both endpoints
// included. A single-point axis collapses to the lower bound.
func axis(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func (g *Grid) generate() *Coordinates {
	c := &Coordinates{
		X:            g.Prototype(),
		Y:            g.Prototype(),
		Z:            g.Prototype(),
		RSpherical:   g.Prototype(),
		RCylindrical: g.Prototype(),
		Theta:        g.Prototype(),
		Phi:          g.Prototype(),
	}

	u := axis(g.box[0][0], g.box[0][1], g.resolution[0])
	v := axis(g.box[1][0], g.box[1][1], g.resolution[1])
	w := axis(g.box[2][0], g.box[2][1], g.resolution[2])

	idx := 0
	for i := 0; i < g.resolution[0]; i++ {
		for j := 0; j < g.resolution[1]; j++ {
			for k := 0; k < g.resolution[2]; k++ {
				switch g.typ {
				case Cartesian:
					x, y, z := u[i], v[j], w[k]
					x2y2 := x*x + y*y
					rSph := math.Sqrt(x2y2 + z*z)
					c.X[idx] = x
					c.Y[idx] = y
					c.Z[idx] = z
					c.RSpherical[idx] = rSph
					c.RCylindrical[idx] = math.Sqrt(x2y2)
					c.Theta[idx] = math.Acos(z / rSph)
					c.Phi[idx] = math.Atan2(y, x)

				case Spherical:
					r, theta, phi := u[i], v[j], w[k]
					sinT, cosT := math.Sincos(theta)
					sinP, cosP := math.Sincos(phi)
					c.X[idx] = r * sinT * cosP
					c.Y[idx] = r * sinT * sinP
					c.Z[idx] = r * cosT
					c.RSpherical[idx] = r
					c.RCylindrical[idx] = r * sinT
					c.Theta[idx] = theta
					c.Phi[idx] = phi

				case Cylindrical:
					s, phi, z := u[i], v[j], w[k]
					sinP, cosP := math.Sincos(phi)
					rSph := math.Sqrt(s*s + z*z)
					c.X[idx] = s * cosP
					c.Y[idx] = s * sinP
					c.Z[idx] = z
					c.RSpherical[idx] = rSph
					c.RCylindrical[idx] = s
					c.Theta[idx] = math.Acos(z / rSph)
					c.Phi[idx] = phi
				}
				idx++
			}
		}
	}
	return c
}
