package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, 8799, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 200, cfg.PollIntervalMs)
	assert.Equal(t, 64, cfg.MaxTrackedSources)

	_, err = os.Stat(path)
	assert.NoError(t, err, "default config file should exist after first run")
}

func TestManagerPersistsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m, err := NewManager(path)
	require.NoError(t, err)

	require.NoError(t, m.SetPort(9090))
	require.NoError(t, m.SetLogLevel("debug"))
	require.NoError(t, m.SetPollInterval(500))

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, reloaded.GetPort())
	assert.Equal(t, "debug", reloaded.GetLogLevel())
	assert.Equal(t, 500*time.Millisecond, reloaded.PollInterval())
}

func TestLoadRejectsUnusableValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server_port: -1\nlog_level: warn\npoll_interval_ms: 0\nmax_tracked_sources: 0\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, 8799, cfg.ServerPort)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 200, cfg.PollIntervalMs)
	assert.Equal(t, 64, cfg.MaxTrackedSources)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml::"), 0644))

	_, err := NewManager(path)
	assert.Error(t, err)
}
