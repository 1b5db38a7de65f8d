package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvs is a helper that sets multiple env vars for the test's duration.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 168*time.Hour, cfg.CartTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Duration(0), cfg.CatalogLatency)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_FromEnvVars(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":     "production",
		"STORE_HTTP_PORT": "9000",
		"REDIS_ADDR":      "redis.internal:6380",
		"KAFKA_BROKERS":   "kafka-1:9092,kafka-2:9092",
		"CART_TTL":        "72h",
		"CATALOG_LATENCY": "150ms",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 72*time.Hour, cfg.CartTTL)
	assert.Equal(t, 150*time.Millisecond, cfg.CatalogLatency)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("STORE_HTTP_PORT", "70000")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_NonPositiveCartTTL(t *testing.T) {
	t.Setenv("CART_TTL", "0s")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart TTL")
}

func TestLoad_NegativeCatalogLatency(t *testing.T) {
	t.Setenv("CATALOG_LATENCY", "-5ms")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog latency")
}
