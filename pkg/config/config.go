// Package config provides configuration loading and management for
// cryosim. It handles loading simulation parameters from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the simulation configuration loaded from YAML.
type Config struct {
	// Image parameters
	Image struct {
		// Width and Height are the target image shape in pixels.
		Width  int `yaml:"width"`
		Height int `yaml:"height"`

		// PadWidth and PadHeight are the padded rendering shape.
		// Zero means no padding.
		PadWidth  int `yaml:"padWidth"`
		PadHeight int `yaml:"padHeight"`

		// PixelSize is the physical pixel size in angstroms.
		PixelSize float64 `yaml:"pixelSize"`
	} `yaml:"image"`

	// Lattice parameters of the helical assembly
	Lattice struct {
		// Rise is the helical rise in angstroms.
		Rise float64 `yaml:"rise"`

		// Twist is the helical twist per subunit.
		Twist float64 `yaml:"twist"`

		// NStart is the start number of the helix.
		NStart int `yaml:"nStart"`

		// NSubunits is the total subunit count. Must be a multiple
		// of NStart.
		NSubunits int `yaml:"nSubunits"`

		// Degrees indicates whether Twist is given in degrees.
		Degrees bool `yaml:"degrees"`
	} `yaml:"lattice"`

	// Optics parameters
	Optics struct {
		// Voltage is the accelerating voltage in kilovolts.
		Voltage float64 `yaml:"voltage"`

		// Defocus is the objective defocus in angstroms.
		Defocus float64 `yaml:"defocus"`

		// SphericalAberration is the Cs coefficient in millimeters.
		SphericalAberration float64 `yaml:"sphericalAberration"`

		// AmplitudeContrast is the amplitude contrast ratio.
		AmplitudeContrast float64 `yaml:"amplitudeContrast"`

		// PhaseShift is an additional phase shift in radians.
		PhaseShift float64 `yaml:"phaseShift"`
	} `yaml:"optics"`

	// Noise parameters
	Noise struct {
		// DetectorVariance is the flat detector noise variance.
		DetectorVariance float64 `yaml:"detectorVariance"`

		// IceAmplitude and IceScale parameterize the exponentially
		// decaying ice power spectrum.
		IceAmplitude float64 `yaml:"iceAmplitude"`
		IceScale     float64 `yaml:"iceScale"`

		// Seed is the base sampling key; particle i samples with
		// Seed+i.
		Seed uint64 `yaml:"seed"`
	} `yaml:"noise"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for the
		// parallel projection evaluation.
		NumCores int `yaml:"numCores"`

		// NumParticles is the number of particles to simulate.
		NumParticles int `yaml:"numParticles"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default image parameters
	cfg.Image.Width = 64
	cfg.Image.Height = 64
	cfg.Image.PixelSize = 1.5

	// Set default lattice parameters: a short two-start helix
	cfg.Lattice.Rise = 21.8
	cfg.Lattice.Twist = 29.4
	cfg.Lattice.NStart = 2
	cfg.Lattice.NSubunits = 6
	cfg.Lattice.Degrees = true

	// Set default optics parameters
	cfg.Optics.Voltage = 300.0
	cfg.Optics.Defocus = 10000.0
	cfg.Optics.SphericalAberration = 2.7
	cfg.Optics.AmplitudeContrast = 0.1

	// Set default noise parameters
	cfg.Noise.DetectorVariance = 1.0
	cfg.Noise.IceAmplitude = 0.5
	cfg.Noise.IceScale = 25.0
	cfg.Noise.Seed = 1234

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.NumParticles = 4

	// Set default output parameters
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
