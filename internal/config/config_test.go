package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/issues.db", cfg.DatabaseURL)
	assert.Equal(t, "http://localhost:8080", cfg.ClientOrigin)
	assert.Equal(t, float64(5), cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/issues")
	t.Setenv("RATE_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/issues", cfg.DatabaseURL)
	assert.Equal(t, 2.5, cfg.RateLimit)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("PORT", "70000")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive rate limit", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}
