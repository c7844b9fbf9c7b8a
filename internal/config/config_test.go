package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider:
  api_key: file-key
scan:
  score_threshold: 80
`), 0o644))

	t.Setenv("POLYGON_API_KEY", "env-key")
	t.Setenv("SQLITE_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Provider.APIKey, "env beats file")
	assert.Equal(t, "/tmp/env.db", cfg.Database.SQLitePath)
	assert.Equal(t, 80.0, cfg.Scan.ScoreThreshold)

	// Untouched fields fall back to defaults.
	assert.Equal(t, "https://api.polygon.io", cfg.Provider.BaseURL)
	assert.Equal(t, 5_000_000.0, cfg.Scan.MinDollarVol)
	assert.Equal(t, 200, cfg.Scan.MaxTickers)
	assert.Equal(t, 60, cfg.Scan.MinHistory)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("POLYGON_API_KEY", "k")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 75.0, cfg.Scan.ScoreThreshold)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.Validate(), "api_key")

	cfg.Provider.APIKey = "k"
	cfg.Scan.ScoreThreshold = 120
	assert.ErrorContains(t, cfg.Validate(), "score_threshold")

	cfg.Scan.ScoreThreshold = 75
	cfg.Scan.MinHistory = 60
	assert.NoError(t, cfg.Validate())
}
