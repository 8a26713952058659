package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 6, cfg.BoardRows)
	assert.Equal(t, 7, cfg.BoardColumns)
	assert.Equal(t, 250*time.Millisecond, cfg.EndAnnounceDelay)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
	assert.False(t, cfg.OTelEnabled)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BOARD_ROWS", "8")
	t.Setenv("BOARD_COLUMNS", "9")
	t.Setenv("END_ANNOUNCE_DELAY_MS", "0")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 8, cfg.BoardRows)
	assert.Equal(t, 9, cfg.BoardColumns)
	assert.Zero(t, cfg.EndAnnounceDelay)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("BOARD_ROWS", "0")
	t.Setenv("STORE_DRIVER", "cassandra")
	t.Setenv("SESSION_TTL_MINUTES", "-5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.BoardRows)
	assert.Equal(t, 7, cfg.BoardColumns)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connect4.yaml")
	content := "PORT: \"7070\"\nSTORE_DRIVER: redis\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInsecureSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionSecret, cfg.SessionSecret)
	assert.True(t, cfg.InsecureSecret())

	t.Setenv("APP_ENV", "development")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.False(t, cfg.InsecureSecret())

	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "a-real-secret")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.False(t, cfg.InsecureSecret())
}
