package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.True(t, cfg.DatabaseDebug)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestNew_DevelopmentPortOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "9001")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.ServerPort)
}

func TestNew_Test(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
	assert.Equal(t, 0, cfg.ServerPort)
}

func TestNew_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_FILE_PATH", "/data/custom.sqlite")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "/data/custom.sqlite", cfg.DatabaseFilePath)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
}
