// Package config loads Tipout settings from an optional YAML file and
// TIPOUT_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	I18n    I18nConfig    `mapstructure:"i18n"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the local `tipout serve` settings
type ServerConfig struct {
	Address    string `mapstructure:"address"`
	StaticPath string `mapstructure:"static_path"`
	Metrics    bool   `mapstructure:"metrics"`

	// AllowedOrigins are browser origins, besides the server's own, that may
	// call the API. Requests from any other origin are rejected.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// I18nConfig holds display-language settings
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (if non-empty) and environment variables.
// Without a file, defaults and environment overrides apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Enable environment variable override (TIPOUT_STORAGE_DB_PATH, ...)
	v.SetEnvPrefix("TIPOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// LOG_LEVEL is honored when TIPOUT_LOGGING_LEVEL is unset.
	if err := v.BindEnv("logging.level", "TIPOUT_LOGGING_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind logging level: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Loopback only: the API serves the browser on this device.
	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("server.static_path", "./static")
	v.SetDefault("server.metrics", true)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("storage.db_path", defaultDBPath())

	v.SetDefault("i18n.default_language", "en")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// defaultDBPath places the database in the user config directory,
// falling back to ./data when it cannot be determined.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "data", "tipout.db")
	}
	return filepath.Join(dir, "tipout", "tipout.db")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	for _, origin := range c.Server.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || (u.Path != "" && u.Path != "/") {
			return fmt.Errorf("server.allowed_origins: %q is not an http(s) origin", origin)
		}
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}

	validLanguages := map[string]bool{"en": true, "es": true}
	if !validLanguages[c.I18n.DefaultLanguage] {
		return fmt.Errorf("i18n.default_language must be one of: en, es")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
