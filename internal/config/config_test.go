package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ATIVOS_API_URL", "SERVER_PORT", "SESSION_SECRET", "AUDIT_DSN",
	"FILTER_DEBOUNCE", "WORKSPACE_IDLE_TIMEOUT", "LOG_LEVEL", EnvConfigFile,
}

// clearEnv zera as variáveis para o teste; t.Setenv restaura no fim.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 300*time.Millisecond, cfg.FilterDebounce)
	assert.Equal(t, 30*time.Minute, cfg.WorkspaceIdleTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AuditDSN)
	assert.ErrorIs(t, cfg.ValidateServer(), ErrSessionSecret)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "ativos.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url = "http://backend:5000"
server_port = "9090"
session_secret = "from-file"
filter_debounce = "500ms"
workspace_idle_timeout = "1h"
`), 0o600))

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("AUDIT_DSN", "sqlite:journal.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000", cfg.APIURL)
	assert.Equal(t, "7070", cfg.ServerPort)
	assert.Equal(t, "from-file", cfg.SessionSecret)
	assert.Equal(t, "sqlite:journal.db", cfg.AuditDSN)
	assert.Equal(t, 500*time.Millisecond, cfg.FilterDebounce)
	assert.Equal(t, time.Hour, cfg.WorkspaceIdleTimeout)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "c.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "debug"`), 0o600))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	t.Setenv("FILTER_DEBOUNCE", "depressa")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("FILTER_DEBOUNCE", "-1s")
	_, err = Load("")
	assert.Error(t, err)
}
