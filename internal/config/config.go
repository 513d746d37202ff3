// Package config provides configuration loading and validation for the export service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-export/internal/logging"
)

// Config represents the service configuration. It can be loaded from a JSON
// or YAML file and is then overlaid with environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	CORSOrigin  string `json:"cors_origin,omitempty" yaml:"cors_origin,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	JWTSecret   string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`

	// JWTExpirationHours is the lifetime of tokens issued by the token command.
	JWTExpirationHours int `json:"jwt_expiration_hours,omitempty" yaml:"jwt_expiration_hours,omitempty"`

	// Rendering
	ChromePath      string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	RenderTimeout   string `json:"render_timeout,omitempty" yaml:"render_timeout,omitempty"` // Go duration, e.g. "30s"
	RenderPoolSize  int    `json:"render_pool_size,omitempty" yaml:"render_pool_size,omitempty"`
	DefaultTemplate string `json:"default_template,omitempty" yaml:"default_template,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or pretty
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:               8080,
		CORSOrigin:         "*",
		JWTExpirationHours: 24,
		RenderTimeout:      "30s",
		RenderPoolSize:     4,
		DefaultTemplate:    "classic",
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load reads the optional file at path, overlays the environment, fills
// defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overlays non-empty environment values onto c.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("DATABASE_URL", &c.DatabaseURL)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("CHROME_PATH", &c.ChromePath)
	setString("CORS_ORIGIN", &c.CORSOrigin)
	setString("RENDER_TIMEOUT", &c.RenderTimeout)
	setString("DEFAULT_TEMPLATE", &c.DefaultTemplate)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)

	if err := setInt("PORT", &c.Port); err != nil {
		return err
	}
	if err := setInt("JWT_EXPIRATION_HOURS", &c.JWTExpirationHours); err != nil {
		return err
	}
	return setInt("RENDER_POOL_SIZE", &c.RenderPoolSize)
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.JWTExpirationHours < 0 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be non-negative")
	}
	if c.RenderPoolSize < 0 {
		return fmt.Errorf("config error: 'render_pool_size' must be non-negative")
	}
	if c.RenderTimeout != "" {
		d, err := time.ParseDuration(c.RenderTimeout)
		if err != nil {
			return fmt.Errorf("config error: 'render_timeout' is not a duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'render_timeout' must be positive")
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty")
	}
	return nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: strings.ToLower(c.LogFormat)}
}

// RenderTimeoutDuration returns the parsed render timeout, or zero when unset.
func (c *Config) RenderTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RenderTimeout)
	if err != nil {
		return 0
	}
	return d
}

// MergeWithDefaults returns a new Config with values from c, falling back to defaults for empty fields.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	merged := defaults

	if c.Port != 0 {
		merged.Port = c.Port
	}
	if c.CORSOrigin != "" {
		merged.CORSOrigin = c.CORSOrigin
	}
	if c.DatabaseURL != "" {
		merged.DatabaseURL = c.DatabaseURL
	}
	if c.JWTSecret != "" {
		merged.JWTSecret = c.JWTSecret
	}
	if c.JWTExpirationHours != 0 {
		merged.JWTExpirationHours = c.JWTExpirationHours
	}
	if c.ChromePath != "" {
		merged.ChromePath = c.ChromePath
	}
	if c.RenderTimeout != "" {
		merged.RenderTimeout = c.RenderTimeout
	}
	if c.RenderPoolSize != 0 {
		merged.RenderPoolSize = c.RenderPoolSize
	}
	if c.DefaultTemplate != "" {
		merged.DefaultTemplate = c.DefaultTemplate
	}
	if c.LogLevel != "" {
		merged.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		merged.LogFormat = c.LogFormat
	}

	return merged
}
