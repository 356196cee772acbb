package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsNoSeeds(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidate_ClampsOutOfRangeValues(t *testing.T) {
	cfg := Default()
	cfg.SeedURLs = []string{"seed"}
	cfg.RandomWalkProb = 5
	cfg.MaxDiscovered = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.RandomWalkProb)
	assert.Equal(t, 0, cfg.MaxDiscovered)
}

func TestValidate_RejectsNonPositiveWorkerCount(t *testing.T) {
	cfg := Default()
	cfg.SeedURLs = []string{"seed"}
	cfg.WorkerCount = 0
	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidate_AllowsZeroMaxDiscovered(t *testing.T) {
	cfg := Default()
	cfg.SeedURLs = []string{"seed"}
	cfg.MaxDiscovered = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.MaxDiscovered)
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	cfg := Default()
	cfg.SeedURLs = []string{"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}
	path := filepath.Join(t.TempDir(), "config.json")

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SeedURLs, loaded.SeedURLs)
	assert.Equal(t, cfg.MaxDiscovered, loaded.MaxDiscovered)
}

func TestClone_IsIndependentOfSeedSliceGrowth(t *testing.T) {
	cfg := Default()
	cfg.SeedURLs = []string{"a"}
	clone := cfg.Clone()
	cfg.SeedURLs = append(cfg.SeedURLs, "b")
	assert.Len(t, clone.SeedURLs, 1)
}
