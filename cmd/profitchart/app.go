package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"ProfitChart/internal/collector"
	"ProfitChart/internal/config"
	"ProfitChart/internal/logger"
	"ProfitChart/internal/recorder"
	"ProfitChart/internal/render"
	"ProfitChart/internal/scheduler"
)

// app wires the pipeline from a config file.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	rec   recorder.Recorder
	sched *scheduler.Scheduler
	page  render.PageOptions
}

func newApp(cfgPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, logOut)

	fetcher := collector.NewHTTPFetcher(cfg.Source.URL, cfg.Source.Proxy)
	log.Info().Str("source", fetcher.Name()).Str("url", cfg.Source.URL).Msg("data source")
	col := collector.NewCollector(fetcher, cfg.Source.SeriesKey, cfg.Source.StrictRates, log)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	labels := render.DefaultLabels()
	labels.ChartTitle = cfg.Display.ChartTitle
	labels.SeriesName = cfg.Display.SeriesName

	chart := render.DefaultChartOptions()
	chart.Color = cfg.Display.Color

	return &app{
		cfg:   cfg,
		log:   log,
		rec:   rec,
		sched: scheduler.NewScheduler(col, rec, loc, labels, log),
		page:  render.PageOptions{Labels: labels, Chart: chart},
	}, nil
}

func (a *app) Close() error {
	return a.rec.Close()
}
