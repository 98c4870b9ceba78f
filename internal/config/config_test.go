package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.FrontendURL)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, int32(5), cfg.Database.MaxConns)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.ViewDedup.TTL)
	assert.Equal(t, 10*time.Minute, cfg.ViewDedup.SweepInterval)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowCredentials)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("VIEW_DEDUP_TTL", "30m")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.ViewDedup.TTL)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_RequiresDBPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidate_ViewDedupWindow(t *testing.T) {
	cfg := &Config{
		Database:  DatabaseConfig{Password: "secret"},
		ViewDedup: ViewDedupConfig{TTL: 0, SweepInterval: time.Minute},
	}
	assert.Error(t, cfg.Validate())

	cfg.ViewDedup.TTL = time.Hour
	cfg.ViewDedup.SweepInterval = 0
	assert.Error(t, cfg.Validate())

	cfg.ViewDedup.SweepInterval = time.Minute
	assert.NoError(t, cfg.Validate())
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:        "db.internal",
			Port:        "5433",
			User:        "tripmoa",
			Password:    "pw",
			Name:        "tripmoa",
			SSLMode:     "require",
			ConnTimeout: 10 * time.Second,
		},
	}
	assert.Equal(t,
		"postgres://tripmoa:pw@db.internal:5433/tripmoa?sslmode=require&connect_timeout=10",
		cfg.GetDSN())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getDurationEnv("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, getDurationEnv("TEST_DURATION_MISSING", time.Minute))

	t.Setenv("TEST_BOOL", "false")
	assert.False(t, getBoolEnv("TEST_BOOL", true))

	t.Setenv("TEST_INT_BAD", "not-a-number")
	assert.Equal(t, int32(7), getInt32Env("TEST_INT_BAD", 7))

	t.Setenv("TEST_SLICE", " a ,, b ")
	assert.Equal(t, []string{"a", "b"}, getStringSliceEnv("TEST_SLICE", nil))
}
