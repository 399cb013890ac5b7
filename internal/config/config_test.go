package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data/input", cfg.Paths.InputDir)
	assert.Equal(t, "data/output", cfg.Paths.OutputDir)
	assert.Equal(t, "DEMANDAS_", cfg.Pipeline.InputPrefix)
	assert.Equal(t, []string{"DEMANDAS JULIO", "DEMANDA LEANDROADRIANO", "QUITADOS"}, cfg.Pipeline.Sheets)
	assert.Equal(t, 10, cfg.Pipeline.TopN)

	assert.Equal(t, DefaultRequiredFields(), cfg.Rules.RequiredFields)
	assert.Contains(t, cfg.Rules.ValidBanks, "BRADESCO")
	assert.Contains(t, cfg.Rules.ValidDirectors, "JULIO")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DEMANDAS_PATHS_INPUT_DIR", "/srv/demandas/in")
	t.Setenv("DEMANDAS_PIPELINE_TOP_N", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/demandas/in", cfg.Paths.InputDir)
	assert.Equal(t, 5, cfg.Pipeline.TopN)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "pipeline.yaml")
	content := `
paths:
  input_dir: /data/demandas
pipeline:
  sheets:
    - QUITADOS
rules:
  date_min: "2021-06-01"
  valid_banks:
    - BRADESCO
    - SANTANDER
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "/data/demandas", cfg.Paths.InputDir)
	assert.Equal(t, []string{"QUITADOS"}, cfg.Pipeline.Sheets)
	assert.Equal(t, []string{"BRADESCO", "SANTANDER"}, cfg.Rules.ValidBanks)
	// Untouched sections keep their defaults.
	assert.Equal(t, "data/output", cfg.Paths.OutputDir)
	assert.Equal(t, DefaultValidDirectors(), cfg.Rules.ValidDirectors)

	min, max := cfg.Rules.DateBounds()
	assert.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), min)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), max)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "bad date format",
			mutate: func(c *Config) { c.Rules.DateMin = "01/01/2020" },
		},
		{
			name:   "inverted date bounds",
			mutate: func(c *Config) { c.Rules.DateMin, c.Rules.DateMax = "2026-12-31", "2020-01-01" },
		},
		{
			name:   "no valid banks",
			mutate: func(c *Config) { c.Rules.ValidBanks = nil },
		},
		{
			name:   "required field without label",
			mutate: func(c *Config) { c.Rules.RequiredFields = []RequiredField{{Column: "BANCO"}} },
		},
		{
			name:   "zero top n",
			mutate: func(c *Config) { c.Pipeline.TopN = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRulesConfig_ValidValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	values := cfg.Rules.ValidValues()
	assert.Equal(t, cfg.Rules.ValidBanks, values["BANCO"])
	assert.Equal(t, cfg.Rules.ValidDirectors, values["DIRETOR"])
}
