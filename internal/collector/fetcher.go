package collector

import (
	"context"

	"ProfitChart/internal/model"
)

// Fetcher retrieves one named series from a remote feed.
type Fetcher interface {
	FetchSeries(ctx context.Context, seriesKey string) ([]model.RawPoint, error)
	Name() string
}
