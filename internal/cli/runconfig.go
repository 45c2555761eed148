package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/runtime"
)

// RunConfig holds tunable parameters for the run command. Values are layered:
// defaults, then an optional YAML config file, then DNA_* environment
// variables. Flags set explicitly on the command line win over all three.
type RunConfig struct {
	Iterations        int     `yaml:"iterations" env:"DNA_ITERATIONS"`
	Dt                float64 `yaml:"dt" env:"DNA_DT"`
	MaxIterations     int     `yaml:"max_iterations" env:"DNA_MAX_ITERATIONS"`
	SuppressionFactor float64 `yaml:"suppression_factor" env:"DNA_SUPPRESSION_FACTOR"`
	ElevationFactor   float64 `yaml:"elevation_factor" env:"DNA_ELEVATION_FACTOR"`
}

// DefaultRunConfig returns the built-in run parameters.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Iterations:    10,
		Dt:            0.1,
		MaxIterations: runtime.DefaultMaxIterations,
	}
}

// LoadRunConfig builds the effective run configuration. An empty path skips
// the file layer.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return RunConfig{}, fmt.Errorf("read config file: %w", err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return RunConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the runtime would reject.
// Zero operator factors mean "use the kernel default" and are allowed.
func (c *RunConfig) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative, got %d", c.Iterations)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.SuppressionFactor != 0 && (c.SuppressionFactor <= 0 || c.SuppressionFactor > 1) {
		return fmt.Errorf("suppression_factor must be in (0, 1], got %g", c.SuppressionFactor)
	}
	if c.ElevationFactor != 0 && c.ElevationFactor < 1 {
		return fmt.Errorf("elevation_factor must be at least 1, got %g", c.ElevationFactor)
	}
	return nil
}

// apply overlays the non-zero operator factors onto a kernel configuration.
func (c *RunConfig) apply(cfg crsm.Config) crsm.Config {
	if c.SuppressionFactor != 0 {
		cfg.SuppressionFactor = c.SuppressionFactor
	}
	if c.ElevationFactor != 0 {
		cfg.ElevationFactor = c.ElevationFactor
	}
	return cfg
}
