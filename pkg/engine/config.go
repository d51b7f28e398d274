package engine

import (
	"fmt"
	"os"
	"runtime"

	"sigs.k8s.io/yaml"

	"github.com/wildfunctions/fxeval/pkg/parse"
)

// Config holds all parameters for a sweep.
type Config struct {
	Formula  string  `json:"formula"`
	Degree   bool    `json:"degree"`
	Power    string  `json:"power"` // "left" or "right"
	MaxDepth int     `json:"max_depth"`
	From     float64 `json:"from"`
	To       float64 `json:"to"`
	Points   int     `json:"points"`
	Workers  int     `json:"workers"`
	Format   string  `json:"format"` // "text", "json" or "latex"
	Out      string  `json:"out,omitempty"`
	Verbose  bool    `json:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Degree:   true,
		Power:    parse.PowerLeft.String(),
		MaxDepth: parse.DefaultMaxDepth,
		From:     0,
		To:       10,
		Points:   11,
		Workers:  runtime.NumCPU(),
		Format:   "text",
	}
}

// LoadConfig overlays the YAML (or JSON) file at path onto cfg. Keys use
// the same names as the JSON report.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Validate checks the fields that do not depend on the formula.
func (c Config) Validate() error {
	if c.Formula == "" {
		return fmt.Errorf("no formula given")
	}
	if _, ok := parse.ParsePower(c.Power); !ok {
		return fmt.Errorf("unknown power mode: %s (available: left, right)", c.Power)
	}
	if c.Points < 1 {
		return fmt.Errorf("points must be at least 1, got %d", c.Points)
	}
	switch c.Format {
	case "text", "json", "latex":
	default:
		return fmt.Errorf("unknown format: %s (available: text, json, latex)", c.Format)
	}
	return nil
}
