// Package config holds runtime settings for the planar CLI. Settings may
// be constructed in Go code or loaded from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultDelimiter = ", "
	DefaultPrecision = 3
	DefaultAreaCells = 400
	DefaultTimeout   = 5 * time.Second
)

// Duration wraps time.Duration so YAML files can spell timeouts the Go
// way, e.g. "250ms" or "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config holds all CLI settings.
type Config struct {
	// Delimiter is the default join/label delimiter.
	Delimiter string `yaml:"delimiter"`

	// Precision is the number of decimal places in printed measures.
	Precision int `yaml:"precision"`

	// AreaCells is the grid resolution for numeric area estimation.
	AreaCells int `yaml:"area_cells"`

	// Timeout is the per-evaluation deadline for scripts.
	Timeout Duration `yaml:"timeout"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Delimiter: DefaultDelimiter,
		Precision: DefaultPrecision,
		AreaCells: DefaultAreaCells,
		Timeout:   Duration(DefaultTimeout),
	}
}

// Load reads a YAML configuration file. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("precision must be non-negative, got %d", c.Precision)
	}
	if c.AreaCells <= 0 {
		return fmt.Errorf("area_cells must be positive, got %d", c.AreaCells)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
