// Package config parses the server's runtime configuration from
// environment variables, with "--flag value" command-line arguments
// able to override them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is everything cmd/vsdld needs to stand up the server.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string

	// BaseURL is prefixed onto delegation URLs returned by /token/create.
	BaseURL string

	// DefaultTTL is read from VSDL_DEFAULT_TTL or --default-ttl. No
	// other package reads it: /token/create rejects a request that
	// lacks a positive expiresIn instead of falling back to this value.
	DefaultTTL time.Duration

	// SweepInterval controls how often expired tokens are purged from
	// the in-memory token map (server.State.Run).
	SweepInterval time.Duration
}

// New parses configuration from environment variables, then applies any
// "--flag value" style overrides found in args (typically os.Args[1:]).
func New(args ...string) (*Config, error) {
	cfg := &Config{
		ListenAddr:    getEnv("VSDL_LISTEN_ADDR", ":8080"),
		BaseURL:       getEnv("VSDL_BASE_URL", "http://localhost:8080"),
		DefaultTTL:    getEnvDuration("VSDL_DEFAULT_TTL", time.Hour),
		SweepInterval: getEnvDuration("VSDL_SWEEP_INTERVAL", time.Minute),
	}

	for i := 0; i < len(args); i++ {
		if len(args) <= i+1 {
			return nil, fmt.Errorf("missing value for %s", args[i])
		}
		switch args[i] {
		case "--listen":
			cfg.ListenAddr = args[i+1]
			i++
		case "--base-url":
			cfg.BaseURL = args[i+1]
			i++
		case "--default-ttl":
			d, err := time.ParseDuration(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("--default-ttl: %w", err)
			}
			cfg.DefaultTTL = d
			i++
		case "--sweep-interval":
			d, err := time.ParseDuration(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("--sweep-interval: %w", err)
			}
			cfg.SweepInterval = d
			i++
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
