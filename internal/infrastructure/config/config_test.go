package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

func TestLoadConfig_DefaultsAndEnvOverrides(t *testing.T) {
	// Arrange
	t.Setenv("HOMESTEAD_DAEMON_TICK_RATE", "20")
	t.Setenv("HOMESTEAD_WORLD_CATALOG_PATH", "/srv/homestead/buildings.yaml")

	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "homestead.db", cfg.Database.Path)
	assert.Equal(t, 20.0, cfg.Daemon.TickRate)
	assert.Equal(t, 0.1, cfg.Daemon.TickStep)
	assert.Equal(t, "/tmp/homestead-daemon.sock", cfg.Daemon.SocketPath)
	assert.Equal(t, 30*time.Second, cfg.Daemon.AutosaveEvery)
	assert.Equal(t, "/srv/homestead/buildings.yaml", cfg.World.CatalogPath)
	assert.Equal(t, 200, cfg.World.StartingCurrency["gold"])
	assert.Equal(t, "warn", cfg.Logging.PersistLevel)
}

func TestLoadConfig_FileValues(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
world:
  safety_margin: 0.5
  starting_items:
    wood: 5
daemon:
  autosave_every: 1m
`), 0o644))

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.World.SafetyMargin)
	assert.Equal(t, map[string]int{"wood": 5}, cfg.World.StartingItems)
	assert.Equal(t, time.Minute, cfg.Daemon.AutosaveEvery)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: loud
daemon:
  tick_rate: -1
`), 0o644))

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "'Level' failed validation: oneof")
	assert.Contains(t, err.Error(), "'TickRate' failed validation: gt")
}

func TestLoadConfig_RejectsHomesteadRules(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
world:
  starting_items:
    Oak Planks: 5
daemon:
  tick_rate: 10
  autosave_every: 10ms
metrics:
  path: metrics
`), 0o644))

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	// viper lowercases map keys
	assert.Contains(t, err.Error(), "failed validation: resource_id (value: 'oak planks')")
	assert.Contains(t, err.Error(), "'AutosaveEvery' failed validation: autosave_tick")
	assert.Contains(t, err.Error(), "[100ms]")
	assert.Contains(t, err.Error(), "'Path' failed validation: startswith")
}
