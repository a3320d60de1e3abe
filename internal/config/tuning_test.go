package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchGameBalance(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 50, cfg.TickIntervalMs)
	assert.Equal(t, 60, cfg.Map.Width)
	assert.InDelta(t, 50, cfg.Survivors.Speed, 0.001)
	assert.Equal(t, 5, cfg.Survivors.WandererCap)
	assert.InDelta(t, 0.0005, cfg.Events.RandomChance, 0.00001)
	assert.InDelta(t, 180, cfg.Trade.DwellSeconds, 0.001)
}

func TestLoadOverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	yaml := "seed: 99\nsurvivors:\n  initial_count: 6\n  speed: 80\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 6, cfg.Survivors.InitialCount)
	assert.InDelta(t, 80, cfg.Survivors.Speed, 0.001)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, cfg.TickIntervalMs)
	assert.InDelta(t, 1.2, cfg.Survivors.GatherSeconds, 0.001)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [not a number"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
