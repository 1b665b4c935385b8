// Package config loads the storefront settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// State backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort             string
	APIBaseURL          string
	StateBackend        string
	DatabaseDriver      string
	DatabaseDSN         string
	RedisURL            string
	RabbitMQURL         string
	CheckoutFailureMode string
	OrderAPITimeout     time.Duration
	SeedCatalog         bool
}

// Load reads the configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_BASE_URL", "http://localhost:3001/api")
	v.SetDefault("STATE_BACKEND", BackendMemory)
	v.SetDefault("DATABASE_DRIVER", BackendSQLite)
	v.SetDefault("DATABASE_DSN", "file:kickstore.db?cache=shared")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CHECKOUT_FAILURE_MODE", "optimistic")
	v.SetDefault("ORDER_API_TIMEOUT", "10s")
	v.SetDefault("SEED_CATALOG", true)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:             v.GetString("APP_PORT"),
		APIBaseURL:          v.GetString("API_BASE_URL"),
		StateBackend:        strings.ToLower(v.GetString("STATE_BACKEND")),
		DatabaseDriver:      strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		RedisURL:            v.GetString("REDIS_URL"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		CheckoutFailureMode: v.GetString("CHECKOUT_FAILURE_MODE"),
		OrderAPITimeout:     v.GetDuration("ORDER_API_TIMEOUT"),
		SeedCatalog:         v.GetBool("SEED_CATALOG"),
	}
	// A SQL state backend names the database driver as well.
	if cfg.StateBackend == BackendSQLite || cfg.StateBackend == BackendPostgres {
		cfg.DatabaseDriver = cfg.StateBackend
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown backends and drivers.
func (c Config) Validate() error {
	switch c.StateBackend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", c.StateBackend)
	}
	switch c.DatabaseDriver {
	case BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.OrderAPITimeout < 0 {
		return fmt.Errorf("ORDER_API_TIMEOUT must not be negative, got %s", c.OrderAPITimeout)
	}
	return nil
}

// UsesDatabase reports whether products live in a SQL database. Only the
// memory backend keeps the catalog in process.
func (c Config) UsesDatabase() bool {
	return c.StateBackend != BackendMemory
}
