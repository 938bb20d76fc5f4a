// Package config loads the YAML configuration surface of the translation
// core (spec.md §6): profiling, the debug-report target, the SIPS metric
// selection, and a cache path.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for a ramc invocation.
type Config struct {
	// Profile enables LogRelationTimer/LogSize wrappers and
	// "@frequency-atom" scan annotations (§6).
	Profile bool `yaml:"profile"`

	// DebugReportPath is read from the file and kept on the Config; no
	// command in this module writes a debug report to it.
	DebugReportPath string `yaml:"debug_report,omitempty"`

	// SipsMetric names the sideways-information-passing strategy the
	// preprocessor should configure globally (§4.7). "none" preserves
	// written atom order; "first-free" prefers atoms binding a variable
	// no earlier atom bound.
	SipsMetric string `yaml:"sips_metric"`

	// CachePath is read from the file and kept on the Config; translation
	// does not consult a cache, and `cache get` takes its database path
	// as an argument.
	CachePath string `yaml:"cache_path,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Profile:    false,
		SipsMetric: "none",
	}
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the core cannot honor.
func (c Config) Validate() error {
	switch c.SipsMetric {
	case "none", "first-free":
		return nil
	default:
		return fmt.Errorf("unknown sips_metric %q (want \"none\" or \"first-free\")", c.SipsMetric)
	}
}
