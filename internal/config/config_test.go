package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "DATABASE_URL=postgres://localhost/icebreaker\nJWT_SECRET=0123456789abcdef0123\nPORT=9090\nDEFAULT_CATEGORIES= word , physical,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/icebreaker", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"word", "physical"}, cfg.Categories())
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/catalog")
	t.Setenv("JWT_SECRET", "a-very-long-test-secret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/catalog", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigRejectsShortSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/catalog")
	t.Setenv("JWT_SECRET", "short")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
