package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"galmag/internal/galaxy"
	"galmag/internal/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(
		[3][2]float64{{-1, 1}, {-1, 1}, {-0.5, 0.5}},
		[3]int{2, 2, 2},
		grid.Cartesian,
	)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

func testField(g *grid.Grid) *galaxy.FieldData {
	n := g.NumPoints()
	f := &galaxy.FieldData{
		Bx:         make([]float64, n),
		By:         make([]float64, n),
		Bz:         make([]float64, n),
		Resolution: g.Resolution(),
	}
	for i := 0; i < n; i++ {
		f.Bx[i] = float64(i) * 0.25
		f.By[i] = -float64(i) * 0.5
		f.Bz[i] = float64(i)
	}
	return f
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	g := testGrid(t)
	field := testField(g)
	metrics := map[string]float64{"mean_magnitude": 1.5, "max_magnitude": 8.0}

	runID, err := store.Save("test_run", g, field, metrics)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("Save returned empty run id")
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("metadata ID = %q, want %q", meta.ID, runID)
	}
	if meta.Name != "test_run" {
		t.Errorf("metadata Name = %q, want test_run", meta.Name)
	}
	if meta.GridType != "cartesian" {
		t.Errorf("metadata GridType = %q, want cartesian", meta.GridType)
	}
	if meta.Resolution != [3]int{2, 2, 2} {
		t.Errorf("metadata Resolution = %v", meta.Resolution)
	}
	if meta.Metrics["mean_magnitude"] != 1.5 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}
}

func TestLoadRunRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	g := testGrid(t)
	field := testField(g)

	runID, err := store.Save("roundtrip", g, field, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	run, err := store.LoadRun(runID)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}

	n := g.NumPoints()
	if len(run.X) != n || len(run.Field.Bx) != n {
		t.Fatalf("loaded %d positions, %d samples, want %d", len(run.X), len(run.Field.Bx), n)
	}

	c := g.Coordinates()
	for i := 0; i < n; i++ {
		if math.Abs(run.X[i]-c.X[i]) > 1e-12 {
			t.Errorf("X[%d] = %v, want %v", i, run.X[i], c.X[i])
		}
		if math.Abs(run.Field.Bx[i]-field.Bx[i]) > 1e-12 {
			t.Errorf("Bx[%d] = %v, want %v", i, run.Field.Bx[i], field.Bx[i])
		}
		if math.Abs(run.Field.By[i]-field.By[i]) > 1e-12 {
			t.Errorf("By[%d] = %v, want %v", i, run.Field.By[i], field.By[i])
		}
	}
	if run.Field.Resolution != g.Resolution() {
		t.Errorf("Resolution = %v, want %v", run.Field.Resolution, g.Resolution())
	}
}

func TestListSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	g := testGrid(t)
	if _, err := store.Save("a", g, testField(g), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A stray file and a directory without metadata should be skipped.
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "empty_run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("List returned %d runs, want 1", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does_not_exist"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("List returned %d runs, want 0", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("nope"); err == nil {
		t.Error("Load of missing run did not fail")
	}
	if _, err := store.LoadRun("nope"); err == nil {
		t.Error("LoadRun of missing run did not fail")
	}
}
