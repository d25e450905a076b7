// Package config loads tool settings from the config file, environment
// overrides, and defaults. Settings cover where the locator document lives,
// the walk depth cap, logging, and the MCP server. The locator document
// itself is a separate artifact, loaded by the appconfig package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/axlocate/axlocate/internal/axtree"
)

// Settings holds the tool-level configuration.
type Settings struct {
	// Locators is the locator document path. Empty means search the
	// standard locations.
	Locators string `mapstructure:"locators" yaml:"locators"`

	// MaxDepth caps accessibility-tree walks.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	Logger LoggerSettings `mapstructure:"logger" yaml:"logger"`
	Server ServerSettings `mapstructure:"server" yaml:"server"`
}

// LoggerSettings configures the zap logger.
type LoggerSettings struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// ServerSettings configures the MCP server.
type ServerSettings struct {
	// CacheTTL bounds how long a captured tree may answer tool calls
	// before the server re-reads the live tree.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// SetDefaults initializes default values for all settings.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("locators", "")
	v.SetDefault("max_depth", axtree.DefaultMaxDepth)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("server.cache_ttl", "500ms")
}

// Default returns the settings as if no config file or environment were
// present.
func Default() Settings {
	v := viper.New()
	SetDefaults(v)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return s
}

// Load reads settings from cfgFile, or from the search path when cfgFile is
// empty, then applies AXLOCATE_* environment overrides. A missing config
// file is not an error unless it was named explicitly.
func Load(cfgFile string) (Settings, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "axlocate"))
		} else if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "axlocate"))
		}
		v.AddConfigPath("/etc/axlocate")
		v.SetConfigName("axlocate")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("AXLOCATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// Validate checks the settings for sane values.
func (s Settings) Validate() error {
	if s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	switch s.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", s.Logger.Format)
	}
	if s.Server.CacheTTL < 0 {
		return fmt.Errorf("server.cache_ttl must not be negative")
	}
	return nil
}
