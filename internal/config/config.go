// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Output styles accepted by Output.Style.
const (
	StylePlain = "plain"
	StyleTable = "table"
)

// Config holds all phonebook configuration.
type Config struct {
	Shell  Shell  `yaml:"shell"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
}

// Shell holds interactive session settings.
type Shell struct {
	Prompt string `yaml:"prompt"`
}

// Output holds rendering settings for listing commands.
type Output struct {
	Style string `yaml:"style"` // "plain" | "table"
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shell:  Shell{Prompt: "phonebook> "},
		Output: Output{Style: StylePlain},
		Log:    Log{Level: "warn"},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	layer, err := loadLayer(path)
	if err != nil {
		return nil, err
	}
	if layer != nil {
		cfg.merge(layer)
	}
	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Output.Style {
	case StylePlain, StyleTable:
	default:
		return fmt.Errorf("config: output.style must be %q or %q, got %q", StylePlain, StyleTable, c.Output.Style)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PHONEBOOK_PROMPT, PHONEBOOK_OUTPUT_STYLE, PHONEBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("PHONEBOOK_PROMPT"); ok {
		c.Shell.Prompt = v
	}
	if v := os.Getenv("PHONEBOOK_OUTPUT_STYLE"); v != "" {
		c.Output.Style = v
	}
	if v := os.Getenv("PHONEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Shell  *rawShell  `yaml:"shell"`
	Output *rawOutput `yaml:"output"`
	Log    *rawLog    `yaml:"log"`
}

type rawShell struct {
	Prompt *string `yaml:"prompt"`
}

type rawOutput struct {
	Style *string `yaml:"style"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Shell != nil && layer.Shell.Prompt != nil {
		c.Shell.Prompt = *layer.Shell.Prompt
	}
	if layer.Output != nil && layer.Output.Style != nil {
		c.Output.Style = *layer.Output.Style
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
}
