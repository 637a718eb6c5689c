package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ops")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_Production(t *testing.T) {
	base := Config{
		DatabaseURL: "postgres://db:5432/ops",
		RedisURL:    "rediss://redis:6380",
	}

	t.Run("strong gateway key passes", func(t *testing.T) {
		cfg := base
		cfg.GatewayKey = "Zk7dQ2mXw9aLbC4eRf6hJn8pTs0vUy1G"
		assert.NoError(t, cfg.Validate(true))
	})

	t.Run("short gateway key rejected", func(t *testing.T) {
		cfg := base
		cfg.GatewayKey = "short"
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("empty gateway key rejected", func(t *testing.T) {
		cfg := base
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("known weak secrets rejected", func(t *testing.T) {
		for _, weak := range knownWeakSecrets {
			cfg := base
			cfg.GatewayKey = weak
			assert.Error(t, cfg.Validate(true), "secret %q", weak)
		}
	})
}

func TestValidate_Development(t *testing.T) {
	cfg := Config{
		DatabaseURL: "postgres://localhost:5432/ops",
		RedisURL:    "redis://localhost:6379",
	}
	assert.NoError(t, cfg.Validate(false))
}
