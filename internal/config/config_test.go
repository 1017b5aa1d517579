package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndFallbacks(t *testing.T) {
	t.Setenv("CONTENT_API_URL", "")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "https://cms.example.bo/")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://cms.example.bo", cfg.ContentAPIURL)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://wa.me", cfg.MessagingBaseURL)
	assert.Equal(t, "@every 10m", cfg.CatalogRefreshCron)
}

func TestLoad_ExplicitContentURLWins(t *testing.T) {
	t.Setenv("CONTENT_API_URL", "http://localhost:1337")
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "https://ignored")
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1337", cfg.ContentAPIURL)
	assert.Equal(t, "3000", cfg.Port)
}
