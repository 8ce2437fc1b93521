// Package config loads chardiff settings from YAML with defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "CHARDIFF_CONFIG"

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "chardiff.yaml"

const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
	DefaultColor         = "auto"
)

// Config is the full tool configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Diff   DiffConfig   `yaml:"diff"`
	Output OutputConfig `yaml:"output"`
}

// LogConfig defines configuration for logging
type LogConfig struct {
	Level      string `yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Format     string `yaml:"format,omitempty" validate:"omitempty,oneof=console json"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups,omitempty" validate:"gte=0"`
}

// DiffConfig tunes the comparison.
type DiffConfig struct {
	// Workers > 1 diffs line pairs in parallel, one engine per worker.
	Workers int `yaml:"workers,omitempty" validate:"gte=0,lte=256"`
	// Normalize applies NFC normalization to every line before diffing.
	Normalize bool `yaml:"normalize,omitempty"`
	// Capacity is the initial matrix side length; 0 keeps the engine default.
	Capacity int `yaml:"capacity,omitempty" validate:"gte=0"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color            string `yaml:"color,omitempty" validate:"omitempty,oneof=auto always never"`
	CollapseMirrored bool   `yaml:"collapse_mirrored"`
	Header           bool   `yaml:"header"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultMaxLogSizeMB,
			MaxBackups: DefaultMaxLogBackups,
		},
		Diff: DiffConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			Color:            DefaultColor,
			CollapseMirrored: true,
			Header:           true,
		},
	}
}

// Resolve picks the config file path.
// Priority:
// 1. explicit path (usually the -config flag)
// 2. CHARDIFF_CONFIG environment variable
// 3. chardiff.yaml in the current working directory
// An empty result means no file; defaults apply.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, DefaultConfigFile)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// Load reads the file chosen by Resolve over the defaults and validates the
// result. An explicitly named file that does not exist is an error.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path := Resolve(explicit)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
