// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Redis, controller timings) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the sign-in API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Key-Value Cache (Redis). Empty keeps the remembered identity in memory.
	RedisURL string `env:"REDIS_URL"`

	// RememberKey is the fixed slot name of the remembered identifier.
	RememberKey string `env:"REMEMBER_KEY" envDefault:"rememberedEmail"`

	// DefaultLanguage is used when Accept-Language matches nothing we ship.
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// Simulated backend latencies
	LoginLatency  time.Duration `env:"LOGIN_LATENCY"  envDefault:"1500ms"`
	SocialLatency time.Duration `env:"SOCIAL_LATENCY" envDefault:"1000ms"`
	ResetLatency  time.Duration `env:"RESET_LATENCY"  envDefault:"1500ms"`

	// UI timings
	RedirectDelay       time.Duration `env:"REDIRECT_DELAY"        envDefault:"2000ms"`
	SignupRedirectDelay time.Duration `env:"SIGNUP_REDIRECT_DELAY" envDefault:"1000ms"`
	NotificationTTL     time.Duration `env:"NOTIFICATION_TTL"      envDefault:"5000ms"`
	ValidationDebounce  time.Duration `env:"VALIDATION_DEBOUNCE"   envDefault:"300ms"`

	// SessionTTL bounds how long an idle page session stays in memory.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects timing values that cannot be scheduled.
func (c *Config) Validate() error {
	durations := map[string]time.Duration{
		"LOGIN_LATENCY":         c.LoginLatency,
		"SOCIAL_LATENCY":        c.SocialLatency,
		"RESET_LATENCY":         c.ResetLatency,
		"REDIRECT_DELAY":        c.RedirectDelay,
		"SIGNUP_REDIRECT_DELAY": c.SignupRedirectDelay,
		"NOTIFICATION_TTL":      c.NotificationTTL,
		"VALIDATION_DEBOUNCE":   c.ValidationDebounce,
		"SESSION_TTL":           c.SessionTTL,
	}

	for name, value := range durations {
		if value < 0 {
			return fmt.Errorf("config: %s must not be negative (got %s)", name, value)
		}
	}

	if c.RememberKey == "" {
		return fmt.Errorf("config: REMEMBER_KEY must not be empty")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesRedis reports whether the remembered identity is persisted in Redis.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}

// AllowedOrigins returns the extra CORS origins from EXTRA_ORIGINS (comma separated).
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
