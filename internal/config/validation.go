package config

import (
	"fmt"
	"os"
)

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "error": true,
}

var validFormats = map[string]bool{
	"console": true, "json": true,
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host == "" {
		return fmt.Errorf("server.host must not be empty")
	}

	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, got %q", cfg.Logging.Level)
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be console or json, got %q", cfg.Logging.Format)
	}

	if cfg.Scene.Path != "" {
		info, err := os.Stat(cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("scene.path: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("scene.path %s is a directory", cfg.Scene.Path)
		}
	}
	if cfg.Scene.DebounceMS < 0 {
		return fmt.Errorf("scene.debounce_ms must not be negative, got %d", cfg.Scene.DebounceMS)
	}

	if cfg.Limits.MaxMessageSizeKB < 1 {
		return fmt.Errorf("limits.max_message_size_kb must be at least 1, got %d", cfg.Limits.MaxMessageSizeKB)
	}

	return nil
}
