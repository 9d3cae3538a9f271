package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Load builds the configuration with priority: CLI flags > Config file > Defaults.
// It does not validate; call Finalize and Validate before use.
//
// The returned path is the config file that was read, or empty.
func Load(fs *pflag.FlagSet) (*Config, string, error) {
	// 1. Start with defaults
	cfg := DefaultConfig()

	// 2. Explicit --config, otherwise the standard locations
	configPath := ""
	if fs != nil && fs.Lookup("config") != nil {
		configPath, _ = fs.GetString("config")
	}
	if configPath == "" {
		configPath = FindConfigFile()
	}

	if configPath != "" {
		fileCfg, err := LoadConfigFile(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg = fileCfg
	}

	// 3. Merge CLI flags (highest priority, overwrites everything)
	if fs != nil {
		if err := cfg.MergeFlags(fs); err != nil {
			return nil, "", err
		}
	}

	return cfg, configPath, nil
}

// LoadConfig loads, completes and validates the configuration
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg, _, err := Load(fs)
	if err != nil {
		return nil, err
	}

	cfg.Finalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// Finalize fills values derived from other settings, such as the default
// output path.
func (c *Config) Finalize() {
	if c.Output == "" && c.Input != "" {
		c.Output = DefaultOutputPath(c.Input, c.Speed)
	}
}
