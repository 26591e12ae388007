package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8090, cfg.HTTP.Port)
	assert.Equal(t, "deltapp.db", cfg.DB.DSN)
	assert.Equal(t, "24h", cfg.Auth.TokenTTL)
	assert.Equal(t, "https://api.17track.net", cfg.Tracking.BaseURL)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocode.BaseURL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://app.deltapp.fr, https://staging.deltapp.fr")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://app.deltapp.fr", "https://staging.deltapp.fr"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadRequiresAccessSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
