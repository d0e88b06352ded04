package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
data:
  root: /srv/morpheus
log:
  level: debug
`), 0o644))
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/srv/morpheus", cfg.Data.Root)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.Equal(t, 86400, cfg.CORS.MaxAge)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("MORCEUS_DATA_ROOT", "/opt/morpheus")
	t.Setenv("SERVER_ADDR", "127.0.0.1:8081")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/morpheus", cfg.Data.Root)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.yaml")

	t.Setenv("LOG_FORMAT", "xml")
	_, err = loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	var cfg Config
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"data.root", "server.addr", "server.read_timeout", "log.format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" warn "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"GET", "OPTIONS"}, splitList(" GET , ,OPTIONS"))
	assert.Nil(t, splitList(""))
}
