package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ProductionWithoutDatabaseURL(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")

	cfg := Load()

	assert.Empty(t, cfg.DatabaseURL)
	assert.True(t, cfg.EventsEnabled())
	assert.ErrorIs(t, cfg.RequireDatabase(), ErrMissingDatabaseURL)
}

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "8080")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Contains(t, cfg.DatabaseURL, "localhost:5432")
	require.NoError(t, cfg.RequireDatabase())
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_ProductionWithDatabaseURL(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://db:5432/roast")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()

	require.NoError(t, cfg.RequireDatabase())
	assert.Equal(t, "postgres://db:5432/roast", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
