package config

import (
	"fmt"
)

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// JWT builds the token configuration. JWT_SECRET is required; the
// expiration defaults to 24 hours.
func (c *Config) JWT() (*JWTConfig, error) {
	expirationHours := c.JWTExpirationHours
	if expirationHours == 0 {
		expirationHours = 24 // default
	}

	config := &JWTConfig{
		Secret:          c.JWTSecret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
