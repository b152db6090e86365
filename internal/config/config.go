package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds resize defaults that can be kept in a YAML file.
type Config struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	Quality   int `yaml:"quality"`
}

// Default returns the built-in configuration: 1000x800, JPEG quality 85.
func Default() Config {
	return Config{
		MaxWidth:  1000,
		MaxHeight: 800,
		Quality:   85,
	}
}

// Load reads and parses the configuration file. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configured bounds.
func (c Config) Validate() error {
	if c.MaxWidth <= 0 {
		return fmt.Errorf("max_width must be positive, got %d", c.MaxWidth)
	}
	if c.MaxHeight <= 0 {
		return fmt.Errorf("max_height must be positive, got %d", c.MaxHeight)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be within 1-100, got %d", c.Quality)
	}
	return nil
}
