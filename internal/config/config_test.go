package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_TIMEOUT_MS", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("REDIS_POOL_SIZE", "")
	t.Setenv("REDIS_DIAL_TIMEOUT_MS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Redis.PoolSize)
	assert.Equal(t, 2*time.Second, cfg.Redis.DialTimeout())
	assert.Empty(t, cfg.Logger.Level)

	assert.Equal(t, "5379", cfg.App.Port)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout())
	assert.Equal(t, 320, cfg.Media.ImageWidth)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL())
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.App.Port)

	t.Setenv("APP_PORT", "8081")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.App.Port)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestDurations_Disabled(t *testing.T) {
	assert.Zero(t, StorageConfig{TimeoutMillis: 0}.Timeout())
	assert.Zero(t, CatalogConfig{CacheTTLSeconds: -1}.CacheTTL())
	assert.Zero(t, AppConfig{}.RequestTimeout())
	assert.Zero(t, RedisConfig{}.DialTimeout())
}
