// Package config provides configuration loading and validation for the CLI
// and the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents settings that can be loaded from a JSON file. All fields
// are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port           int      `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; empty allows all

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty runs in-memory
	SeedCount   int    `json:"seed_count,omitempty"`   // Generated demo listings when running in-memory
	SeedValue   uint64 `json:"seed_value,omitempty"`   // Deterministic seed for demo data

	// Matching
	MinScore float64            `json:"min_score,omitempty"` // Recommendation cutoff (0.0-1.0)
	Limit    int                `json:"limit,omitempty"`     // Default recommendation count
	Weights  map[string]float64 `json:"weights,omitempty"`   // Factor weight overrides
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.SeedCount < 0 {
		return fmt.Errorf("config error: 'seed_count' must be non-negative")
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("config error: 'min_score' must be between 0.0 and 1.0")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	for factor, weight := range c.Weights {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("config error: weight for %q must be between 0.0 and 1.0", factor)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Config file values act as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SeedCount == 0 {
		result.SeedCount = defaults.SeedCount
	}
	if result.SeedValue == 0 {
		result.SeedValue = defaults.SeedValue
	}
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	return result
}
