package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.UseMockVerifier)
	assert.Equal(t, "http://webhost:8085/back/auth", cfg.BackendEndpoint)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 200, cfg.TxLogPayloadCap)
	assert.Equal(t, 5, cfg.LockoutMaxFailures)
	assert.Empty(t, cfg.RedisURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_GATEWAY_ADDR", ":9090")
	t.Setenv("AUTH_BACKEND_MOCK", "false")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.UseMockVerifier)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestStoreReloadFlipsVerifierSwitch(t *testing.T) {
	t.Setenv("AUTH_BACKEND_MOCK", "true")
	cfg, err := FromEnv()
	require.NoError(t, err)

	store := NewStore(cfg)
	assert.True(t, store.UseMockVerifier())

	t.Setenv("AUTH_BACKEND_MOCK", "false")
	require.NoError(t, store.Reload())
	assert.False(t, store.UseMockVerifier())
}
