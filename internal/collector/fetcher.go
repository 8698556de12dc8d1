package collector

import (
	"context"

	"SectorPulse/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyBars returns up to `days` daily bars for symbol, ordered by
	// date ascending. An empty slice is a valid "no data" answer.
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Name() string
}
