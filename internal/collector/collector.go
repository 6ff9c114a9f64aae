package collector

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"ProfitChart/internal/calculator"
	"ProfitChart/internal/model"
)

// Status discriminates the outcome of one pipeline run.
type Status int

const (
	StatusData Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusData:
		return "data"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of Collect. Points is set for StatusData, Err for StatusFailed.
type Result struct {
	Status Status
	Points []model.ProfitPoint
	Err    error
}

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Points []model.RawPoint
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, _ string) ([]model.RawPoint, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Points, nil
}

// Collector runs acquisition followed by the compounding transform.
type Collector struct {
	Fetcher     Fetcher
	SeriesKey   string
	StrictRates bool
	log         zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, seriesKey string, strict bool, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:     fetcher,
		SeriesKey:   seriesKey,
		StrictRates: strict,
		log:         log.With().Str("component", "collector").Logger(),
	}
}

// Collect fetches the series once and compounds it.
func (c *Collector) Collect(ctx context.Context) Result {
	raw, err := c.Fetcher.FetchSeries(ctx, c.SeriesKey)
	if err != nil {
		c.log.Error().Err(err).Str("fetcher", c.Fetcher.Name()).Msg("fetch failed")
		return Result{Status: StatusFailed, Err: err}
	}

	if bad := calculator.CountInvalid(raw); bad > 0 {
		if c.StrictRates {
			idx, _ := calculator.FirstInvalid(raw)
			err := &RateError{Index: idx, Date: raw[idx].Date}
			c.log.Error().Err(err).Int("invalid", bad).Msg("rejecting series")
			return Result{Status: StatusFailed, Err: err}
		}
		c.log.Warn().Int("invalid", bad).Msg("series contains non-numeric rValue entries")
	}

	points := calculator.CompoundProfit(raw)
	if len(points) == 0 {
		c.log.Info().Str("series", c.SeriesKey).Msg("series is empty")
		return Result{Status: StatusEmpty, Points: points}
	}

	last := points[len(points)-1].Value
	ev := c.log.Info().Str("series", c.SeriesKey).Int("points", len(points))
	if !math.IsNaN(last) {
		ev = ev.Float64("last_value", last)
	}
	ev.Msg("series collected")
	return Result{Status: StatusData, Points: points}
}
