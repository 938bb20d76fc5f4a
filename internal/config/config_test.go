package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.Default()
	assert.False(t, cfg.Profile)
	assert.Equal(t, "none", cfg.SipsMetric)
	assert.NoError(t, cfg.Validate())
}

func TestLoadValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: true\nsips_metric: first-free\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Profile)
	assert.Equal(t, "first-free", cfg.SipsMetric)
}

func TestLoadRejectsUnknownSipsMetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sips_metric: bogus\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
