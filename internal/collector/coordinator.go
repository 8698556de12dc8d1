package collector

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"SectorPulse/internal/calculator"
	"SectorPulse/internal/model"
	"SectorPulse/internal/universe"
)

// Stats summarizes one fan-out run over the universe.
type Stats struct {
	Succeeded int
	Failed    int
	Rows      int
}

// Coordinator fans fetch+compute out over the instrument universe with a
// bounded worker pool. Instruments fail independently: an error or empty
// fetch contributes an empty series and never aborts sibling work.
type Coordinator struct {
	Fetcher      Fetcher
	Universe     universe.Universe
	Workers      int
	LookbackDays int
	TaskTimeout  time.Duration
}

// NewCoordinator creates a Coordinator with sane bounds applied.
func NewCoordinator(fetcher Fetcher, u universe.Universe, workers, lookbackDays int, taskTimeout time.Duration) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{
		Fetcher:      fetcher,
		Universe:     u,
		Workers:      workers,
		LookbackDays: lookbackDays,
		TaskTimeout:  taskTimeout,
	}
}

// CollectAll runs fetch+compute for every instrument concurrently and
// flattens the per-instrument series into one row collection. The join is
// synchronous; tasks share no mutable state and each writes only its own
// result slot.
func (c *Coordinator) CollectAll(ctx context.Context) ([]model.IndicatorRow, Stats) {
	entries := c.Universe.Entries()
	results := make([][]model.IndicatorRow, len(entries))

	sem := make(chan struct{}, c.Workers)
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry universe.Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = c.collectOne(ctx, entry)
		}(i, entry)
	}
	wg.Wait()

	var stats Stats
	var rows []model.IndicatorRow
	for _, series := range results {
		if len(series) == 0 {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		stats.Rows += len(series)
		rows = append(rows, series...)
	}
	return rows, stats
}

func (c *Coordinator) collectOne(ctx context.Context, entry universe.Entry) []model.IndicatorRow {
	if c.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.TaskTimeout)
		defer cancel()
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, entry.Code, c.LookbackDays)
	if err != nil {
		log.Warn().Err(err).Str("code", entry.Code).Msg("fetch failed, skipping instrument")
		return nil
	}
	if len(bars) == 0 {
		log.Warn().Str("code", entry.Code).Msg("no history returned, skipping instrument")
		return nil
	}

	series := calculator.Compute(entry.Code, entry.Name, bars)
	log.Debug().Str("code", entry.Code).Int("bars", len(bars)).Int("rows", len(series)).
		Msg("instrument computed")
	return series
}
