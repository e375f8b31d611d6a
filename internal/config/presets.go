package config

import "galmag/internal/galaxy"

// Presets are named parameter sets for common field configurations.
var Presets = map[string]*Config{
	"milky_way": DefaultConfig(),
	"disk_only": {
		Grid: GridConfig{
			Box:        [3][2]float64{{-17, 17}, {-17, 17}, {-0.5, 0.5}},
			Resolution: [3]int{40, 40, 5},
			Type:       "cartesian",
		},
		Disk: DiskConfig{
			Enabled:      true,
			DynamoNumber: -20.0,
			RAlpha:       1.0,
			Radius:       17.0,
			ScaleHeight:  0.4,
			Coefficients: []float64{1.0, 0.5, 0.25, 0.1},
		},
		Halo: HaloConfig{Enabled: false},
	},
	"halo_only": {
		Grid: GridConfig{
			Box:        [3][2]float64{{1, 20}, {0.15, 3.0}, {-3.1, 3.1}},
			Resolution: [3]int{25, 20, 20},
			Type:       "spherical",
		},
		Disk: DiskConfig{Enabled: false},
		Halo: HaloConfig{
			Enabled: true,
			Radius:  15.0,
			Modes: []galaxy.HaloMode{
				{N: 1, Symmetric: true, Coefficient: 1.0},
				{N: 3, Symmetric: true, Coefficient: 0.2},
			},
		},
	},
	"antisymmetric_halo": {
		Grid: GridConfig{
			Box:        [3][2]float64{{-15, 15}, {-15, 15}, {-15, 15}},
			Resolution: [3]int{21, 21, 21},
			Type:       "cartesian",
		},
		Disk: DiskConfig{Enabled: false},
		Halo: HaloConfig{
			Enabled: true,
			Radius:  15.0,
			Modes: []galaxy.HaloMode{
				{N: 1, Symmetric: false, Coefficient: 1.0},
				{N: 2, Symmetric: false, Coefficient: 0.3},
			},
		},
	},
	"compact_disk": {
		Grid: GridConfig{
			Box:        [3][2]float64{{-5, 5}, {-5, 5}, {-0.6, 0.6}},
			Resolution: [3]int{35, 35, 7},
			Type:       "cartesian",
		},
		Disk: DiskConfig{
			Enabled:      true,
			DynamoNumber: -35.0,
			RAlpha:       1.4,
			Radius:       4.0,
			ScaleHeight:  0.25,
			Coefficients: []float64{1.0, 0.8},
		},
		Halo: HaloConfig{Enabled: false},
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
