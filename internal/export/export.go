// Package export renders computed field runs to image files.
package export

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"galmag/internal/galaxy"
	"galmag/internal/grid"
)

var ErrEmptyField = errors.New("export: field has no samples")

// RadialProfile averages |B| over the azimuthal and vertical directions for
// each radial index of a cartesian grid, binned by cylindrical radius.
func RadialProfile(g *grid.Grid, field *galaxy.FieldData, bins int) (radii, mean []float64, err error) {
	n := g.NumPoints()
	if n == 0 || len(field.Bx) != n {
		return nil, nil, ErrEmptyField
	}

	r := g.RCylindrical()
	rMax := 0.0
	for i := 0; i < n; i++ {
		if r[i] > rMax {
			rMax = r[i]
		}
	}
	if rMax == 0 || bins < 1 {
		return nil, nil, ErrEmptyField
	}

	sums := make([]float64, bins)
	counts := make([]int, bins)
	for i := 0; i < n; i++ {
		mag := math.Sqrt(field.Bx[i]*field.Bx[i] + field.By[i]*field.By[i] + field.Bz[i]*field.Bz[i])
		if math.IsNaN(mag) || math.IsInf(mag, 0) {
			continue
		}
		bin := int(r[i] / rMax * float64(bins))
		if bin >= bins {
			bin = bins - 1
		}
		sums[bin] += mag
		counts[bin]++
	}

	for b := 0; b < bins; b++ {
		if counts[b] == 0 {
			continue
		}
		radii = append(radii, (float64(b)+0.5)/float64(bins)*rMax)
		mean = append(mean, sums[b]/float64(counts[b]))
	}
	if len(radii) == 0 {
		return nil, nil, ErrEmptyField
	}
	return radii, mean, nil
}

// SaveProfilePlot writes a radial strength profile as a PNG line plot.
func SaveProfilePlot(g *grid.Grid, field *galaxy.FieldData, bins int, filename string) error {
	radii, mean, err := RadialProfile(g, field, bins)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Field Strength Profile"
	p.X.Label.Text = "cylindrical radius"
	p.Y.Label.Text = "mean |B|"

	pts := make(plotter.XYs, len(radii))
	for i := range radii {
		pts[i].X = radii[i]
		pts[i].Y = mean[i]
	}
	if err := plotutil.AddLines(p, "|B|", pts); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// midplaneGrid adapts a z-slice of field magnitudes to plotter.GridXYZ.
type midplaneGrid struct {
	g    *grid.Grid
	mags []float64
	k    int
}

func (m midplaneGrid) Dims() (int, int) {
	res := m.g.Resolution()
	return res[0], res[1]
}

func (m midplaneGrid) X(c int) float64 {
	box := m.g.Box()
	res := m.g.Resolution()
	if res[0] == 1 {
		return box[0][0]
	}
	return box[0][0] + float64(c)*(box[0][1]-box[0][0])/float64(res[0]-1)
}

func (m midplaneGrid) Y(r int) float64 {
	box := m.g.Box()
	res := m.g.Resolution()
	if res[1] == 1 {
		return box[1][0]
	}
	return box[1][0] + float64(r)*(box[1][1]-box[1][0])/float64(res[1]-1)
}

func (m midplaneGrid) Z(c, r int) float64 {
	return m.mags[m.g.Idx(c, r, m.k)]
}

// SaveMidplaneHeatmap writes the |B| map of the z-slice closest to the
// midplane as a PNG heatmap.
func SaveMidplaneHeatmap(g *grid.Grid, field *galaxy.FieldData, filename string) error {
	n := g.NumPoints()
	if n == 0 || len(field.Bx) != n {
		return ErrEmptyField
	}

	mags := field.Magnitude()
	for i, m := range mags {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			mags[i] = 0
		}
	}

	res := g.Resolution()
	data := midplaneGrid{g: g, mags: mags, k: res[2] / 2}

	cm := moreland.ExtendedBlackBody()
	cm.SetMin(0)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(data, cm.Palette(255))

	p := plot.New()
	p.Title.Text = "Midplane Field Strength"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}
