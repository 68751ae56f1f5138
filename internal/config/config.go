// Package config provides configuration management for quadsolve.
//
// Settings are layered, later sources winning:
//  1. built-in defaults
//  2. the YAML config file (see FindConfigPath)
//  3. a .env file in the working directory, if present
//  4. QUADSOLVE_* environment variables
//  5. command-line flags (applied by the cli package)
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads explicitPath, or the first file FindConfigPath reports, or
// starts from defaults if there is none. Then .env and environment overrides
// are applied. The returned path is empty when no file was used.
func Load(explicitPath string) (*Config, string, error) {
	if err := LoadDotEnv(DotEnvFileName); err != nil {
		return nil, "", err
	}

	path := explicitPath
	if path == "" {
		path = FindConfigPath()
	}

	var cfg *Config
	if path == "" {
		cfg = DefaultConfig()
	} else {
		loaded, _, err := LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// LoadFromPath loads config from a specific path without environment overrides
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Locale:  DefaultLocale,
		Mode:    ModeGeneral,
		Output: OutputConfig{
			Format:    FormatText,
			Precision: DefaultPrecision,
		},
		History: HistoryConfig{Path: DefaultHistoryPath},
		Publish: PublishConfig{
			Addr:    DefaultPublishAddr,
			Channel: DefaultPublishChannel,
		},
	}
}

// applyDefaults fills in values a config file set to empty
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.Mode == "" {
		c.Mode = ModeGeneral
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
	if c.Publish.Addr == "" {
		c.Publish.Addr = DefaultPublishAddr
	}
	if c.Publish.Channel == "" {
		c.Publish.Channel = DefaultPublishChannel
	}
}

// Validate checks enumerated and ranged fields and normalizes the spelling
// of mode and format.
func (c *Config) Validate() error {
	mode, err := ParseMode(string(c.Mode))
	if err != nil {
		return err
	}
	c.Mode = mode

	format, err := ParseFormat(c.Output.Format)
	if err != nil {
		return err
	}
	c.Output.Format = format

	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("output precision %d out of range [0, %d]", c.Output.Precision, MaxPrecision)
	}
	if strings.TrimSpace(c.Locale) == "" {
		return fmt.Errorf("locale is required")
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history path is required when history is enabled")
	}
	if c.Publish.Enabled && strings.TrimSpace(c.Publish.Addr) == "" {
		return fmt.Errorf("publish addr is required when publishing is enabled")
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Mode: %s, Locale: %s\n", c.Mode, c.Locale)
	summary += fmt.Sprintf("Output: %s (precision %d)\n", c.Output.Format, c.Output.Precision)
	if c.History.Enabled {
		summary += fmt.Sprintf("History: %s\n", c.History.Path)
	} else {
		summary += "History: disabled\n"
	}
	if c.Publish.Enabled {
		summary += fmt.Sprintf("Publish: %s -> %s", c.Publish.Addr, c.Publish.Channel)
	} else {
		summary += "Publish: disabled"
	}
	return summary
}
