package collector

import (
	"context"
	"time"

	"SectorPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.Bar
	Errs map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.Bar, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		if len(bars) > days {
			bars = bars[len(bars)-days:]
		}
		return bars, nil
	}
	return GenerateBars(100, 1000000, days), nil
}

// GenerateBars builds a gently trending synthetic daily series ending today.
func GenerateBars(basePrice, baseVolume float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i+1),
			Close:  basePrice * (1 + float64(i-count/2)*0.001),
			Volume: baseVolume,
		}
	}
	return bars
}
