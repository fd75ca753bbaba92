package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store backends
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration for the marketplace client core
type Config struct {
	LogLevel string

	// Record store
	StoreBackend   string
	StoreNamespace string // project/environment id namespacing all store paths
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string

	// Identity provider
	KratosPublicURL      string
	IdentityPollInterval time.Duration

	// Device-local state (role cache, session token)
	StateDir string
}

// Load reads configuration from environment variables.
//
// The store namespace is deliberately not required here: its absence is
// detected by the store access layer as ErrStoreUninitialized on first
// use, which is the one clear error type configuration bugs map to.
func Load() (*Config, error) {
	config := &Config{}

	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")
	config.StoreBackend = getEnvOrDefault("STORE_BACKEND", BackendPostgres)
	config.StoreNamespace = os.Getenv("STORE_NAMESPACE")

	config.DatabaseURL = os.Getenv("DATABASE_URL")
	config.RedisAddr = getEnvOrDefault("REDIS_ADDR", "localhost:6379")
	config.RedisPassword = os.Getenv("REDIS_PASSWORD")

	config.KratosPublicURL = os.Getenv("KRATOS_PUBLIC_URL")
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	pollStr := getEnvOrDefault("IDENTITY_POLL_INTERVAL", "1m")
	poll, err := time.ParseDuration(pollStr)
	if err != nil {
		return nil, fmt.Errorf("invalid IDENTITY_POLL_INTERVAL: %w", err)
	}
	config.IdentityPollInterval = poll

	config.StateDir = getEnvOrDefault("STATE_DIR", defaultStateDir())

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be %s or %s)", c.StoreBackend, BackendPostgres, BackendRedis)
	}

	if c.IdentityPollInterval < time.Second {
		return fmt.Errorf("identity poll interval must be at least 1s, got: %v", c.IdentityPollInterval)
	}

	if c.StateDir == "" {
		return fmt.Errorf("state directory is required")
	}

	return nil
}

// RoleCachePath returns the role cache file location
func (c *Config) RoleCachePath() string {
	return filepath.Join(c.StateDir, "role_cache.yaml")
}

// SessionTokenPath returns the persisted session token location
func (c *Config) SessionTokenPath() string {
	return filepath.Join(c.StateDir, "session_token")
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "marketplace-core")
	}
	return ".marketplace-core"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
