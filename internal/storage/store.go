// Package storage persists computed field runs as per-run directories
// holding a metadata file and the sampled field in CSV form.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"galmag/internal/galaxy"
	"galmag/internal/grid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	GridType   string             `json:"grid_type"`
	Box        [3][2]float64      `json:"box"`
	Resolution [3]int             `json:"resolution"`
	Metrics    map[string]float64 `json:"metrics"`
}

// RunData is a fully loaded run: the metadata plus the sample positions and
// field components.
type RunData struct {
	Meta    RunMetadata
	X, Y, Z []float64
	Field   *galaxy.FieldData
}

// Save writes a run directory containing metadata.json and field.csv and
// returns the generated run id.
func (s *Store) Save(name string, g *grid.Grid, field *galaxy.FieldData, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		GridType:   string(g.Type()),
		Box:        g.Box(),
		Resolution: g.Resolution(),
		Metrics:    metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "field.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "bx", "by", "bz"}); err != nil {
		return "", err
	}

	c := g.Coordinates()
	for i := range field.Bx {
		row := []string{
			formatFloat(c.X[i]),
			formatFloat(c.Y[i]),
			formatFloat(c.Z[i]),
			formatFloat(field.Bx[i]),
			formatFloat(field.By[i]),
			formatFloat(field.Bz[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRun reads back a complete run.
func (s *Store) LoadRun(runID string) (*RunData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	run := &RunData{
		Meta:  *meta,
		Field: &galaxy.FieldData{Resolution: meta.Resolution},
	}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 6 {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		run.X = append(run.X, vals[0])
		run.Y = append(run.Y, vals[1])
		run.Z = append(run.Z, vals[2])
		run.Field.Bx = append(run.Field.Bx, vals[3])
		run.Field.By = append(run.Field.By, vals[4])
		run.Field.Bz = append(run.Field.Bz, vals[5])
	}
	return run, nil
}
