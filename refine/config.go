package refine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters of an error-driven refinement pass
type Config struct {
	RequiredError float64 `yaml:"required_error"` // target per-cell error
	Epsilon       float64 `yaml:"epsilon"`        // keeps the ratio finite for zero error
	Rank          int     `yaml:"rank"`           // partition tag of this process
	MetricsPrefix string  `yaml:"metrics_prefix"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		RequiredError: 1e-3,
		Epsilon:       1e-12,
		MetricsPrefix: "rivara_",
	}
}

// Validate reports the first invalid field, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case !(c.RequiredError > 0):
		return fmt.Errorf("%w: required_error must be positive, got %g", ErrInvalidConfig, c.RequiredError)
	case !(c.Epsilon > 0):
		return fmt.Errorf("%w: epsilon must be positive, got %g", ErrInvalidConfig, c.Epsilon)
	case c.Rank < 0:
		return fmt.Errorf("%w: rank must not be negative, got %d", ErrInvalidConfig, c.Rank)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
