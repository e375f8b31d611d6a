// Package galaxy assembles the disk and halo field components into a single
// Cartesian magnetic field sampled on a grid.
package galaxy

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"galmag/internal/disk"
	"galmag/internal/grid"
	"galmag/internal/halo"
	"galmag/internal/parallel"
)

// point loops below this size are not worth fanning out
const minChunk = 4096

var (
	// ErrNoComponents indicates a model with neither disk nor halo.
	ErrNoComponents = errors.New("galaxy: model needs a disk or at least one halo mode")

	// ErrHaloRadius indicates a non-positive halo radius with halo modes present.
	ErrHaloRadius = errors.New("galaxy: halo radius must be positive")
)

// HaloMode selects one free-decay mode and its weight in the superposition.
type HaloMode struct {
	N           int     `yaml:"n"`
	Symmetric   bool    `yaml:"symmetric"`
	Coefficient float64 `yaml:"coefficient"`
}

// Model combines a disk dynamo field and a superposition of halo free-decay
// modes on a shared grid.
type Model struct {
	grid       *grid.Grid
	disk       *disk.Field
	haloModes  []HaloMode
	haloRadius float64
}

// New builds a model. diskParams may be nil for a halo-only model; haloModes
// may be empty for a disk-only model.
func New(g *grid.Grid, diskParams *disk.Params, haloModes []HaloMode, haloRadius float64) (*Model, error) {
	if diskParams == nil && len(haloModes) == 0 {
		return nil, ErrNoComponents
	}

	m := &Model{grid: g, haloModes: haloModes, haloRadius: haloRadius}

	if diskParams != nil {
		d, err := disk.New(*diskParams)
		if err != nil {
			return nil, err
		}
		m.disk = d
	}
	if len(haloModes) > 0 {
		if haloRadius <= 0 {
			return nil, fmt.Errorf("%w: got %g", ErrHaloRadius, haloRadius)
		}
		for _, hm := range haloModes {
			if _, err := halo.ModeFor(hm.N, hm.Symmetric); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Grid returns the grid the model samples on.
func (m *Model) Grid() *grid.Grid { return m.grid }

// FieldData holds the Cartesian field components, flat over the grid shape.
type FieldData struct {
	Bx, By, Bz []float64
	Resolution [3]int
}

// Magnitude returns |B| per grid point.
func (f *FieldData) Magnitude() []float64 {
	out := make([]float64, len(f.Bx))
	for i := range out {
		out[i] = math.Sqrt(f.Bx[i]*f.Bx[i] + f.By[i]*f.By[i] + f.Bz[i]*f.Bz[i])
	}
	return out
}

type component struct {
	bx, by, bz []float64
	err        error
}

// Evaluate computes every component concurrently and sums them.
func (m *Model) Evaluate() (*FieldData, error) {
	c := m.grid.Coordinates()

	n := len(m.haloModes)
	if m.disk != nil {
		n++
	}
	parts := make([]component, n)

	var wg sync.WaitGroup
	idx := 0
	if m.disk != nil {
		wg.Add(1)
		go func(out *component) {
			defer wg.Done()
			out.bx, out.by, out.bz, out.err = m.disk.EvalCartesian(c.X, c.Y, c.Z)
		}(&parts[idx])
		idx++
	}
	for _, hm := range m.haloModes {
		wg.Add(1)
		go func(hm HaloMode, out *component) {
			defer wg.Done()
			out.bx, out.by, out.bz, out.err = m.evalHaloMode(hm, c)
		}(hm, &parts[idx])
		idx++
	}
	wg.Wait()

	field := &FieldData{
		Bx:         m.grid.Prototype(),
		By:         m.grid.Prototype(),
		Bz:         m.grid.Prototype(),
		Resolution: m.grid.Resolution(),
	}
	for _, p := range parts {
		if p.err != nil {
			return nil, p.err
		}
		bx, by, bz := p.bx, p.by, p.bz
		parallel.For(len(field.Bx), minChunk, func(start, end int) {
			for i := start; i < end; i++ {
				field.Bx[i] += bx[i]
				field.By[i] += by[i]
				field.Bz[i] += bz[i]
			}
		})
	}
	return field, nil
}

// evalHaloMode evaluates one free-decay mode over the grid, with the
// spherical radius scaled by the halo radius, and rotates the spherical
// components to Cartesian.
func (m *Model) evalHaloMode(hm HaloMode, c *grid.Coordinates) (bx, by, bz []float64, err error) {
	r := make([]float64, len(c.RSpherical))
	for i := range r {
		r[i] = c.RSpherical[i] / m.haloRadius
	}

	br, btheta, bphi, err := halo.GetMode(r, c.Theta, c.Phi, hm.N, hm.Symmetric)
	if err != nil {
		return nil, nil, nil, err
	}

	bx = make([]float64, len(r))
	by = make([]float64, len(r))
	bz = make([]float64, len(r))
	parallel.For(len(r), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			sinT, cosT := math.Sincos(c.Theta[i])
			sinP, cosP := math.Sincos(c.Phi[i])
			bx[i] = hm.Coefficient * (br[i]*sinT*cosP + btheta[i]*cosT*cosP - bphi[i]*sinP)
			by[i] = hm.Coefficient * (br[i]*sinT*sinP + btheta[i]*cosT*sinP + bphi[i]*cosP)
			bz[i] = hm.Coefficient * (br[i]*cosT - btheta[i]*sinT)
		}
	})
	return bx, by, bz, nil
}
