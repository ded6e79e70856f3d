package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("REFRESH_TTL_HOURS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "capoo", cfg.JWTIssuer)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, 168, cfg.RefreshTTLHours)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("REFRESH_TTL_HOURS", "24")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, 15, cfg.JWTTTLMinutes)
	assert.Equal(t, 24, cfg.RefreshTTLHours)
}

func TestLoad_IgnoresUnparsableInt(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "sixty")

	cfg := Load()
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
}
