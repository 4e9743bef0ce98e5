// Package config handles configuration for the daemon.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the daemon.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Scene   SceneConfig   `mapstructure:"scene"`
	Logging LoggingConfig `mapstructure:"logging"`
	Limits  LimitsConfig  `mapstructure:"limits"`
}

// ServerConfig holds the listener configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SceneConfig points at the standalone scene file.
type SceneConfig struct {
	Path       string `mapstructure:"path"`
	Watch      bool   `mapstructure:"watch"`
	DebounceMS int    `mapstructure:"debounce_ms"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LimitsConfig holds transport limits.
type LimitsConfig struct {
	MaxMessageSizeKB int `mapstructure:"max_message_size_kb"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lumen-ipc")
		v.AddConfigPath("/etc/lumen-ipc")
	}

	v.SetEnvPrefix("LUMEN_IPC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// A missing config file is fine; defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8870)

	v.SetDefault("scene.path", "")
	v.SetDefault("scene.watch", true)
	v.SetDefault("scene.debounce_ms", 200)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("limits.max_message_size_kb", 512)
}

func postProcess(cfg *Config) error {
	if cfg.Scene.Path != "" {
		abs, err := filepath.Abs(cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve scene path: %w", err)
		}
		cfg.Scene.Path = abs
	}
	return nil
}
