package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{"PORT", "DATABASE_URL", "STORE", "LOG_LEVEL", "RUN_MIGRATIONS", "SEED_DEMO", "LOW_STOCK_THRESHOLD", "SHUTDOWN_TIMEOUT"}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8082, cfg.Port)
	assert.Equal(t, ":8082", cfg.Addr())
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Contains(t, cfg.DatabaseURL, "sslmode=disable")
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "Memory")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("SEED_DEMO", "1")
	t.Setenv("LOW_STOCK_THRESHOLD", "0")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.RunMigrations)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 0, cfg.LowStockThreshold)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"PORT":                "http",
		"STORE":               "sqlite",
		"LOG_LEVEL":           "loud",
		"RUN_MIGRATIONS":      "maybe",
		"LOW_STOCK_THRESHOLD": "-1",
		"SHUTDOWN_TIMEOUT":    "10",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
