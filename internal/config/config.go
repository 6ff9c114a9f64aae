package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultURL       = "https://iipetrov.ru/php/autofllow.php"
	DefaultSeriesKey = "4_bybit__profitPoint"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		URL         string `yaml:"url"`
		SeriesKey   string `yaml:"series_key"`
		Proxy       string `yaml:"proxy"`
		StrictRates bool   `yaml:"strict_rates"`
	} `yaml:"source"`
	Display struct {
		ChartTitle string `yaml:"chart_title"`
		SeriesName string `yaml:"series_name"`
		Color      string `yaml:"color"`
		Timezone   string `yaml:"timezone"`
	} `yaml:"display"`
	Server struct {
		Addr        string `yaml:"addr"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PROFITCHART_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("PROFITCHART_SERIES_KEY"); v != "" {
		cfg.Source.SeriesKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Source.Proxy = v
	}
	if v := os.Getenv("STRICT_RATES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Source.StrictRates = b
		}
	}
	if v := os.Getenv("DISPLAY_TZ"); v != "" {
		cfg.Display.Timezone = v
	}
	if v := os.Getenv("PROFITCHART_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Server.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Source.URL == "" {
		cfg.Source.URL = DefaultURL
	}
	if cfg.Source.SeriesKey == "" {
		cfg.Source.SeriesKey = DefaultSeriesKey
	}
	if cfg.Display.ChartTitle == "" {
		cfg.Display.ChartTitle = "Агрессивный Bybit"
	}
	if cfg.Display.SeriesName == "" {
		cfg.Display.SeriesName = "Прибыль (%)"
	}
	if cfg.Display.Color == "" {
		cfg.Display.Color = "#82ca9d"
	}
	if cfg.Display.Timezone == "" {
		cfg.Display.Timezone = "UTC"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("source.url must be an absolute http(s) URL, got %q", c.Source.URL)
	}
	if c.Source.SeriesKey == "" {
		return fmt.Errorf("source.series_key is required")
	}
	if c.Source.Proxy != "" {
		if _, err := url.Parse(c.Source.Proxy); err != nil {
			return fmt.Errorf("source.proxy: %w", err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Server.RefreshCron != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.Server.RefreshCron); err != nil {
			return fmt.Errorf("server.refresh_cron: %w", err)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// Location resolves display.timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("display.timezone: %w", err)
	}
	return loc, nil
}
