package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PROFITCHART_URL", "PROFITCHART_SERIES_KEY", "HTTPS_PROXY", "STRICT_RATES",
		"DISPLAY_TZ", "PROFITCHART_ADDR", "REFRESH_CRON", "SQLITE_PATH", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultURL, cfg.Source.URL)
	assert.Equal(t, DefaultSeriesKey, cfg.Source.SeriesKey)
	assert.False(t, cfg.Source.StrictRates)
	assert.Equal(t, "Агрессивный Bybit", cfg.Display.ChartTitle)
	assert.Equal(t, "#82ca9d", cfg.Display.Color)
	assert.Equal(t, "UTC", cfg.Display.Timezone)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.RefreshCron)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  url: https://example.com/feed
  series_key: other
  strict_rates: true
display:
  timezone: Europe/Moscow
server:
  refresh_cron: "0 0 * * * *"
log:
  level: debug
  pretty: true
`), 0644))

	t.Setenv("PROFITCHART_SERIES_KEY", "from-env")
	t.Setenv("SQLITE_PATH", "/tmp/runs.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/feed", cfg.Source.URL)
	assert.Equal(t, "from-env", cfg.Source.SeriesKey)
	assert.True(t, cfg.Source.StrictRates)
	assert.Equal(t, "Europe/Moscow", cfg.Display.Timezone)
	assert.Equal(t, "0 0 * * * *", cfg.Server.RefreshCron)
	assert.Equal(t, "/tmp/runs.db", cfg.Database.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unterminated"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"relative url", func(c *Config) { c.Source.URL = "/feed" }},
		{"ftp url", func(c *Config) { c.Source.URL = "ftp://example.com" }},
		{"empty key", func(c *Config) { c.Source.SeriesKey = "" }},
		{"bad timezone", func(c *Config) { c.Display.Timezone = "Mars/Olympus" }},
		{"bad cron", func(c *Config) { c.Server.RefreshCron = "every now and then" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
