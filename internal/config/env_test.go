package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownEnvVars = []string{
	"CONFIG",
	"ADAPTER_BASE_URL",
	"ADAPTER_REQUEST_TIMEOUT",
	"STORAGE_DB_DATABASE_URI",
	"WORKERS_REFRESH_INTERVAL",
	"WORKERS_PROBE_INTERVAL",
	"LOG_FILE_PATH",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range knownEnvVars {
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"ADAPTER_BASE_URL":        "https://api.example.com",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		"STORAGE_DB_DATABASE_URI": "/var/cache/feedkit.db",

		"WORKERS_REFRESH_INTERVAL": "2m",
		"WORKERS_PROBE_INTERVAL":   "10s",

		"LOG_FILE_PATH": "/var/log/feedkit.log",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.jsonFilePath)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/var/cache/feedkit.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Workers.RefreshInterval)
	assert.Equal(t, 10*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, "/var/log/feedkit.log", cfg.Log.FilePath)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_BASE_URL": "https://api.example.com",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "https://api.example.com", cfg.Adapter.BaseURL)
	assert.Zero(t, cfg.Adapter.RequestTimeout)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.jsonFilePath)
}

func TestParseEnv_NoVariables(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_REQUEST_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
