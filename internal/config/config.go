// Package config handles converter configuration loading.
package config

import (
	"fmt"

	"github.com/Faultbox/meshc/pkg/fixmesh"
)

// Config holds all converter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds settings for generated C files.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Output directory (empty = next to input)
	Overflow string `yaml:"overflow"` // wrap, saturate or strict
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      "",
			Overflow: fixmesh.OverflowWrap.String(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// OverflowPolicy returns the parsed narrowing policy.
func (c *Config) OverflowPolicy() (fixmesh.Overflow, error) {
	return fixmesh.ParseOverflow(c.Output.Overflow)
}

// Validate checks settings that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if _, err := c.OverflowPolicy(); err != nil {
		return fmt.Errorf("output.overflow: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}
