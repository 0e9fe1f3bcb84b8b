// Package config handles configuration loading for snowswarm.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ProjectConfigName is the project-level override file searched for in the
// working directory and its parents. It also carries team role-table
// overrides (see planner.LoadRoleTable).
const ProjectConfigName = ".snowswarm.yaml"

// Config holds all configuration for snowswarm.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Instance  InstanceConfig  `mapstructure:"instance"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Debug     DebugConfig     `mapstructure:"debug"`
}

// AnthropicConfig holds Anthropic API settings for API-mode execution.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// InstanceConfig identifies the target ServiceNow instance. The planner
// only records it for the payload; the agents do the actual REST calls.
type InstanceConfig struct {
	URL string `mapstructure:"url"`
}

// DefaultsConfig holds default values for swarm sessions.
type DefaultsConfig struct {
	// MaxAgents is the default team-size cap.
	MaxAgents int `mapstructure:"max_agents"`
	// Mode is the default execution mode, "cli" or "api".
	Mode string `mapstructure:"mode"`
	// HeartbeatInterval is the contract's heartbeat cadence.
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	// LaunchTimeout bounds the downstream executor runtime. Zero disables it.
	LaunchTimeout time.Duration `mapstructure:"launch_timeout"`
}

// DebugConfig holds debug logging settings.
type DebugConfig struct {
	// LogPath enables file-based debug logging when set.
	LogPath string `mapstructure:"log_path"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, SNOWSWARM_INSTANCE_URL)
// 2. Project config (.snowswarm.yaml in current directory or parent)
// 3. User config (~/.config/snowswarm/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := FindProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("instance.url", "SNOWSWARM_INSTANCE_URL")
	v.BindEnv("debug.log_path", "SNOWSWARM_DEBUG_LOG")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
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

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("instance.url", "")

	v.SetDefault("defaults.max_agents", 5)
	v.SetDefault("defaults.mode", "cli")
	v.SetDefault("defaults.heartbeat_interval", "10s")
	v.SetDefault("defaults.launch_timeout", "0s")

	v.SetDefault("debug.log_path", "")
}

// getUserConfigDir returns the XDG config directory for snowswarm.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "snowswarm")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "snowswarm")
	}
	return filepath.Join(home, ".config", "snowswarm")
}

// FindProjectConfig searches for .snowswarm.yaml in the current directory
// and parents. Returns the empty string when none exists.
func FindProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
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

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			MaxAgents:         5,
			Mode:              "cli",
			HeartbeatInterval: 10 * time.Second,
		},
	}
}
