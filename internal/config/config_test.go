package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	values := Config{}

	applyDefaults(&values, defaultConfig)

	assert.Equal(t, ":3060", values.RunAddr)
	assert.Equal(t, "giftdb", values.DatabaseName)
	assert.Equal(t, "info", values.LogLevel)
	assert.Equal(t, 10*time.Second, values.StoreTimeout)
	assert.Empty(t, values.DatabaseDSN)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8081")
	t.Setenv("DATABASE_DSN", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_TIMEOUT", "3s")

	values := Config{}
	applyDefaults(&values, defaultConfig)

	var fromEnv Config
	err := env.Parse(&fromEnv)
	require.NoError(t, err)

	values.overrideWith(fromEnv)

	assert.Equal(t, ":8081", values.RunAddr)
	assert.Equal(t, "mongodb://localhost:27017", values.DatabaseDSN)
	assert.Equal(t, "test-secret", values.JWTSecret)
	assert.Equal(t, 3*time.Second, values.StoreTimeout)
	assert.Equal(t, "giftdb", values.DatabaseName)
}

func TestValidateRejectsEmptySecret(t *testing.T) {
	values := Config{}
	applyDefaults(&values, defaultConfig)

	err := values.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	values := Config{}
	applyDefaults(&values, defaultConfig)
	values.JWTSecret = "test-secret"
	values.LogLevel = "loud"

	err := values.validate()
	require.Error(t, err)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
}
