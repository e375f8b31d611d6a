package galaxy

import (
	"errors"
	"math"
	"testing"

	"galmag/internal/disk"
	"galmag/internal/grid"
	"galmag/internal/halo"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	// Offset box avoids the origin and the polar axis.
	g, err := grid.New([3][2]float64{{0.3, 1.2}, {0.2, 1.1}, {-0.8, 0.8}}, [3]int{4, 4, 5}, grid.Cartesian)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func testDiskParams() *disk.Params {
	return &disk.Params{
		DynamoNumber: -8.0,
		RAlpha:       1.0,
		Radius:       2.0,
		ScaleHeight:  0.8,
		Coefficients: []float64{1.0},
	}
}

func TestNewValidation(t *testing.T) {
	g := testGrid(t)

	if _, err := New(g, nil, nil, 1.0); !errors.Is(err, ErrNoComponents) {
		t.Errorf("expected ErrNoComponents, got %v", err)
	}
	if _, err := New(g, nil, []HaloMode{{N: 1, Symmetric: true, Coefficient: 1}}, 0); !errors.Is(err, ErrHaloRadius) {
		t.Errorf("expected ErrHaloRadius, got %v", err)
	}
	if _, err := New(g, nil, []HaloMode{{N: 7, Symmetric: true, Coefficient: 1}}, 1.0); !errors.Is(err, halo.ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}

	bad := testDiskParams()
	bad.DynamoNumber = 2.0
	if _, err := New(g, bad, nil, 0); !errors.Is(err, disk.ErrDynamoNumber) {
		t.Errorf("expected ErrDynamoNumber, got %v", err)
	}
}

func TestDiskOnlyMatchesDiskEvaluator(t *testing.T) {
	g := testGrid(t)
	p := testDiskParams()

	m, err := New(g, p, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	field, err := m.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	d, err := disk.New(*p)
	if err != nil {
		t.Fatal(err)
	}
	c := g.Coordinates()
	bx, by, bz, err := d.EvalCartesian(c.X, c.Y, c.Z)
	if err != nil {
		t.Fatal(err)
	}

	for i := range bx {
		if field.Bx[i] != bx[i] || field.By[i] != by[i] || field.Bz[i] != bz[i] {
			t.Fatalf("point %d: model (%g,%g,%g) != disk (%g,%g,%g)",
				i, field.Bx[i], field.By[i], field.Bz[i], bx[i], by[i], bz[i])
		}
	}
}

func TestHaloModeRotation(t *testing.T) {
	// Single point on the positive x axis: theta=pi/2, phi=0. There the
	// rotation reduces to Bx=Br, By=Bphi, Bz=-Btheta.
	g, err := grid.New([3][2]float64{{0.5, 0.5}, {0, 0}, {0, 0}}, [3]int{1, 1, 1}, grid.Cartesian)
	if err != nil {
		t.Fatal(err)
	}

	m, err := New(g, nil, []HaloMode{{N: 1, Symmetric: true, Coefficient: 2.0}}, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	field, err := m.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	br, btheta, bphi := halo.S1.At(0.5, math.Pi/2)
	if math.Abs(field.Bx[0]-2*br) > 1e-12 {
		t.Errorf("Bx = %g, want %g", field.Bx[0], 2*br)
	}
	if math.Abs(field.By[0]-2*bphi) > 1e-12 {
		t.Errorf("By = %g, want %g", field.By[0], 2*bphi)
	}
	if math.Abs(field.Bz[0]-(-2*btheta)) > 1e-12 {
		t.Errorf("Bz = %g, want %g", field.Bz[0], -2*btheta)
	}
}

func TestSuperposition(t *testing.T) {
	g := testGrid(t)
	p := testDiskParams()
	hm := []HaloMode{{N: 1, Symmetric: false, Coefficient: 0.5}}

	both, err := New(g, p, hm, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	diskOnly, err := New(g, p, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	haloOnly, err := New(g, nil, hm, 1.5)
	if err != nil {
		t.Fatal(err)
	}

	fb, err := both.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	fd, err := diskOnly.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	fh, err := haloOnly.Evaluate()
	if err != nil {
		t.Fatal(err)
	}

	for i := range fb.Bx {
		if math.Abs(fb.Bx[i]-(fd.Bx[i]+fh.Bx[i])) > 1e-12 {
			t.Fatalf("point %d: Bx %g != %g + %g", i, fb.Bx[i], fd.Bx[i], fh.Bx[i])
		}
		if math.Abs(fb.Bz[i]-(fd.Bz[i]+fh.Bz[i])) > 1e-12 {
			t.Fatalf("point %d: Bz %g != %g + %g", i, fb.Bz[i], fd.Bz[i], fh.Bz[i])
		}
	}
}

func TestMagnitude(t *testing.T) {
	f := &FieldData{
		Bx:         []float64{3, 0},
		By:         []float64{4, 0},
		Bz:         []float64{0, -2},
		Resolution: [3]int{2, 1, 1},
	}
	mag := f.Magnitude()
	if mag[0] != 5 || mag[1] != 2 {
		t.Errorf("magnitude = %v, want [5 2]", mag)
	}
}
