package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevelopmentFallsBackToDevSecret(t *testing.T) {
	t.Setenv("ENV", EnvDevelopment)
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DevelopmentJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "auth-token", cfg.Session.CookieName)
	assert.False(t, cfg.CookieSecure())
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadProductionRejectsDevSecret(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("JWT_SECRET", DevelopmentJWTSecret)

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("CAMPUS_CACHE_TTL", "bogus")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Campus.CacheTTL)
	assert.True(t, cfg.CookieSecure())
}
