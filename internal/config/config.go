// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used by the web server
// and the terminal front end.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Valkey (Redis-compatible session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// SessionTTL is how long an idle form session survives.
	SessionTTL time.Duration

	// CopyAckDelay is how long the "Copied" acknowledgment is shown.
	CopyAckDelay time.Duration

	// Per-client request rate limit for the web UI.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error for malformed values
// or when critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.SessionTTL, err = envDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CopyAckDelay, err = envDuration("COPY_ACK_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}

	if cfg.Env == "production" && cfg.ValkeyPassword == "" {
		return nil, fmt.Errorf("VALKEY_PASSWORD must be set in production")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return f, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return n, nil
}
