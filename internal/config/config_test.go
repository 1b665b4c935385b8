package config_test

import (
	"testing"
	"time"

	"kickstore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "http://localhost:3001/api", cfg.APIBaseURL)
	assert.Equal(t, config.BackendMemory, cfg.StateBackend)
	assert.Equal(t, "optimistic", cfg.CheckoutFailureMode)
	assert.Equal(t, 10*time.Second, cfg.OrderAPITimeout)
	assert.True(t, cfg.SeedCatalog)
	assert.False(t, cfg.UsesDatabase())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("STATE_BACKEND", "SQLite")
	t.Setenv("CHECKOUT_FAILURE_MODE", "strict")
	t.Setenv("ORDER_API_TIMEOUT", "2s")
	t.Setenv("SEED_CATALOG", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, config.BackendSQLite, cfg.StateBackend)
	assert.Equal(t, config.BackendSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "strict", cfg.CheckoutFailureMode)
	assert.Equal(t, 2*time.Second, cfg.OrderAPITimeout)
	assert.False(t, cfg.SeedCatalog)
	assert.True(t, cfg.UsesDatabase())
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STATE_BACKEND", "etcd")
	_, err := config.Load()
	assert.ErrorContains(t, err, "STATE_BACKEND")

	t.Setenv("STATE_BACKEND", "memory")
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err = config.Load()
	assert.ErrorContains(t, err, "DATABASE_DRIVER")
}

func TestLoad_RedisStateWithPostgresCatalog(t *testing.T) {
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendRedis, cfg.StateBackend)
	assert.Equal(t, config.BackendPostgres, cfg.DatabaseDriver)
	assert.True(t, cfg.UsesDatabase())
}
