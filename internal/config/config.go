package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"galmag/internal/disk"
	"galmag/internal/galaxy"
	"galmag/internal/grid"
)

const (
	DefaultDiskRadius   = 17.0 // kpc
	DefaultScaleHeight  = 0.4  // kpc
	DefaultDynamoNumber = -20.0
	DefaultRAlpha       = 1.0
	DefaultHaloRadius   = 15.0 // kpc
)

type Config struct {
	DataDir string     `yaml:"data_dir"`
	Grid    GridConfig `yaml:"grid"`
	Disk    DiskConfig `yaml:"disk"`
	Halo    HaloConfig `yaml:"halo"`
}

type GridConfig struct {
	Box        [3][2]float64 `yaml:"box"`
	Resolution [3]int        `yaml:"resolution"`
	Type       string        `yaml:"type"`
}

type DiskConfig struct {
	Enabled      bool      `yaml:"enabled"`
	DynamoNumber float64   `yaml:"dynamo_number"`
	RAlpha       float64   `yaml:"r_alpha"`
	Radius       float64   `yaml:"radius"`
	ScaleHeight  float64   `yaml:"scale_height"`
	Coefficients []float64 `yaml:"coefficients"`
}

type HaloConfig struct {
	Enabled bool              `yaml:"enabled"`
	Radius  float64           `yaml:"radius"`
	Modes   []galaxy.HaloMode `yaml:"modes"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: ".galmag",
		Grid: GridConfig{
			Box:        [3][2]float64{{-20, 20}, {-20, 20}, {-5, 5}},
			Resolution: [3]int{30, 30, 10},
			Type:       string(grid.Cartesian),
		},
		Disk: DiskConfig{
			Enabled:      true,
			DynamoNumber: DefaultDynamoNumber,
			RAlpha:       DefaultRAlpha,
			Radius:       DefaultDiskRadius,
			ScaleHeight:  DefaultScaleHeight,
			Coefficients: []float64{1.0, 0.7, 0.3},
		},
		Halo: HaloConfig{
			Enabled: true,
			Radius:  DefaultHaloRadius,
			Modes: []galaxy.HaloMode{
				{N: 1, Symmetric: true, Coefficient: 1.0},
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildGrid constructs the grid described by the configuration.
func (c *Config) BuildGrid() (*grid.Grid, error) {
	return grid.New(c.Grid.Box, c.Grid.Resolution, grid.Type(c.Grid.Type))
}

// BuildModel assembles the configured galaxy model on its grid.
func (c *Config) BuildModel() (*galaxy.Model, error) {
	g, err := c.BuildGrid()
	if err != nil {
		return nil, err
	}

	var diskParams *disk.Params
	if c.Disk.Enabled {
		diskParams = &disk.Params{
			DynamoNumber: c.Disk.DynamoNumber,
			RAlpha:       c.Disk.RAlpha,
			Radius:       c.Disk.Radius,
			ScaleHeight:  c.Disk.ScaleHeight,
			Coefficients: c.Disk.Coefficients,
		}
	}

	var modes []galaxy.HaloMode
	var haloRadius float64
	if c.Halo.Enabled {
		modes = c.Halo.Modes
		haloRadius = c.Halo.Radius
	}

	return galaxy.New(g, diskParams, modes, haloRadius)
}
