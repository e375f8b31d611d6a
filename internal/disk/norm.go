package disk

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

// ErrNormalization indicates a mode normalization integral that did not
// produce a finite positive value.
var ErrNormalization = errors.New("disk: mode normalization integral is not finite")

// normPoints is the Gauss-Legendre node count per integration axis.
const normPoints = 80

// NormCache maps radial wavenumbers to mode normalization factors. Entries
// are computed at most once per key and kept for the cache's lifetime; the
// map lock is only held to look up an entry, never across an integration, so
// distinct wavenumbers normalize independently.
type NormCache struct {
	mu      sync.Mutex
	entries map[float64]*normEntry
}

type normEntry struct {
	once  sync.Once
	value float64
	err   error
}

// NewNormCache returns an empty cache.
func NewNormCache() *NormCache {
	return &NormCache{entries: make(map[float64]*normEntry)}
}

// Len reports the number of stored normalization factors.
func (c *NormCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get returns the normalization for kn, invoking compute at most once per
// key. A failed computation is reported to every caller waiting on it but is
// not stored: a later Get retries.
func (c *NormCache) Get(kn float64, compute func() (float64, error)) (float64, error) {
	c.mu.Lock()
	e, ok := c.entries[kn]
	if !ok {
		e = &normEntry{}
		c.entries[kn] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.value, e.err = compute()
		if e.err != nil {
			c.mu.Lock()
			delete(c.entries, kn)
			c.mu.Unlock()
		}
	})
	return e.value, e.err
}

// normalize computes the renormalization factor for the mode with wavenumber
// kn,
//
//	N(kn) = [ iiint r (Br^2 + Bphi^2 + Bz^2) dr dphi dz ]^(-1/2)
//
// over r in [0,1], phi in [0,2pi], z in [-1,1], by nested Gauss-Legendre
// quadrature.
func (f *Field) normalize(kn float64) (float64, error) {
	integral := quad.Fixed(func(z float64) float64 {
		return quad.Fixed(func(phi float64) float64 {
			return quad.Fixed(func(r float64) float64 {
				br, bphi, bz := f.modeCyl(r, z, kn)
				return r * (br*br + bphi*bphi + bz*bz)
			}, 0, 1, normPoints, nil, 0)
		}, 0, 2*math.Pi, normPoints, nil, 0)
	}, -1, 1, normPoints, nil, 0)

	if math.IsNaN(integral) || math.IsInf(integral, 0) || integral <= 0 {
		return 0, fmt.Errorf("%w: got %g for kn=%g", ErrNormalization, integral, kn)
	}
	return 1.0 / math.Sqrt(integral), nil
}
