package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "projetakip", cfg.Database.DBName)
	assert.False(t, cfg.Database.UseInMemory)
	assert.Equal(t, "gpt-4o-mini", cfg.Assistant.Model)
	assert.Equal(t, 7, cfg.Meetings.NearFutureDays)
	assert.Equal(t, 60, cfg.Meetings.ReminderIntervalMinutes)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  address: ":9090"
database:
  use_in_memory: true
meetings:
  near_future_days: 14
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Database.UseInMemory)
	assert.Equal(t, 14, cfg.Meetings.NearFutureDays)
	// Untouched keys keep their defaults
	assert.Equal(t, "gpt-4o-mini", cfg.Assistant.Model)
}

func TestLoadConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}
