// Package config handles configuration loading for claude-swarm.
// It supports XDG config paths, project-level overrides, and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/dbankscard/claude-swarm/internal/claude"
	"github.com/dbankscard/claude-swarm/internal/swarm"
)

// Config holds all configuration for claude-swarm.
type Config struct {
	Claude   ClaudeConfig   `mapstructure:"claude"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	History  HistoryConfig  `mapstructure:"history"`
}

// ClaudeConfig holds settings for the external CLI.
type ClaudeConfig struct {
	// Binary is the executable name resolved from PATH.
	Binary string `mapstructure:"binary"`
	// OutputFormat is the structured-output format requested from the
	// CLI.
	OutputFormat string `mapstructure:"output_format"`
}

// DefaultsConfig holds default values for swarm runs.
type DefaultsConfig struct {
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	Timeout       time.Duration `mapstructure:"timeout"`
	StateFile     string        `mapstructure:"state_file"`
	ProfilesFile  string        `mapstructure:"profiles_file"`
}

// HistoryConfig holds settings for the SQLite interaction archive.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
//  1. Environment variables (CLAUDE_SWARM_*)
//  2. Project config (.claude-swarm.yaml in current directory or parent)
//  3. User config (~/.config/claude-swarm/config.yaml)
//  4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.BindEnv("claude.binary", "CLAUDE_SWARM_BINARY")
	v.BindEnv("defaults.state_file", "CLAUDE_SWARM_STATE_FILE")
	v.BindEnv("defaults.max_concurrent", "CLAUDE_SWARM_MAX_CONCURRENT")
	v.BindEnv("history.path", "CLAUDE_SWARM_HISTORY_PATH")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Claude: ClaudeConfig{
			Binary:       claude.DefaultBinary,
			OutputFormat: claude.DefaultOutputFormat,
		},
		Defaults: DefaultsConfig{
			MaxConcurrent: swarm.DefaultMaxConcurrent,
			Timeout:       claude.DefaultTimeout,
			StateFile:     swarm.DefaultStatePath,
		},
		History: HistoryConfig{
			Enabled: false,
		},
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("claude.binary", claude.DefaultBinary)
	v.SetDefault("claude.output_format", claude.DefaultOutputFormat)

	v.SetDefault("defaults.max_concurrent", swarm.DefaultMaxConcurrent)
	v.SetDefault("defaults.timeout", claude.DefaultTimeout.String())
	v.SetDefault("defaults.state_file", swarm.DefaultStatePath)
	v.SetDefault("defaults.profiles_file", "")

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "")
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// getUserConfigDir returns the XDG config directory for claude-swarm.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "claude-swarm")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "claude-swarm")
	}
	return filepath.Join(home, ".config", "claude-swarm")
}

// findProjectConfig searches for .claude-swarm.yaml in the current
// directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".claude-swarm.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
