// Package config loads server configuration from environment variables.
//
// Every setting has a default except JWT_SECRET, which must be provided.
// Load validates the values up front so a misconfigured server fails at
// startup instead of on the first request that needs the setting.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without a zoneinfo database

	"golang.org/x/crypto/bcrypt"
)

const minSecretLength = 16

// Config is the fully-resolved server configuration.
type Config struct {
	Port       int
	DBDriver   string // "sqlite" or "postgres"
	DBDSN      string
	JWTSecret  string
	TokenTTL   time.Duration
	Location   *time.Location // zone that defines "today" for check-ins
	BcryptCost int
	LogLevel   slog.Level
	LogFormat  string // "text" or "json"
}

// Load reads the environment. All problems are collected and returned
// together, so one run shows everything that needs fixing.
func Load() (*Config, error) {
	return load(os.Getenv)
}

// load takes the lookup function as a parameter so tests can supply a map
// instead of mutating the process environment.
func load(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var errs []error
	cfg := &Config{
		DBDriver:  strings.ToLower(get("DB_DRIVER", "sqlite")),
		DBDSN:     get("DB_DSN", "data/lantern.db"),
		JWTSecret: getenv("JWT_SECRET"),
		LogFormat: strings.ToLower(get("LOG_FORMAT", "text")),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", get("PORT", "")))
	}
	cfg.Port = port

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver))
	}

	if len(cfg.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength))
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be a positive duration, got %q", get("TOKEN_TTL", "")))
	}
	cfg.TokenTTL = ttl

	loc, err := time.LoadLocation(get("TIMEZONE", "Asia/Tokyo"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	cost, err := strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(12)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	cfg.BcryptCost = cost

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger described by the config.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
