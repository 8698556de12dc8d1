package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"SectorPulse/internal/aggregator"
	"SectorPulse/internal/collector"
	"SectorPulse/internal/publisher"
	"SectorPulse/internal/recorder"
	"SectorPulse/internal/report"
)

// Scheduler runs the report pipeline on a cron schedule or on demand.
type Scheduler struct {
	Cron           *cron.Cron
	Coordinator    *collector.Coordinator
	Publisher      *publisher.WordPressPublisher
	Recorder       recorder.Recorder
	PublishRetries int
	Ctx            context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, coord *collector.Coordinator, pub *publisher.WordPressPublisher, rec recorder.Recorder, publishRetries int) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Coordinator:    coord,
		Publisher:      pub,
		Recorder:       rec,
		PublishRetries: publishRetries,
		Ctx:            ctx,
	}
}

// Register registers the daily report task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.runReport); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the report pipeline immediately (run-once mode or
// RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runReport()
}

// runReport is the full pipeline: fetch+compute across the universe,
// aggregate, render, publish, record. Per-instrument failures are already
// absorbed upstream; only a completely empty dataset stops the run, and that
// is a clean exit rather than an error.
func (s *Scheduler) runReport() {
	start := time.Now()
	log.Info().Msg("running sector report")

	rows, stats := s.Coordinator.CollectAll(s.Ctx)
	rec := &recorder.RunRecord{
		StartedAt: start,
		Succeeded: stats.Succeeded,
		Failed:    stats.Failed,
		Rows:      stats.Rows,
	}

	if len(rows) == 0 {
		log.Warn().Msg("no data retrieved, skipping report")
		s.record(rec, start)
		return
	}

	res := aggregator.Aggregate(rows, s.Coordinator.Universe)
	rec.OverheatedCount = len(res.Overheated)
	log.Info().
		Int("panel", len(res.Panel)).
		Int("dates", len(res.Series.Dates)).
		Int("overheated", len(res.Overheated)).
		Msg("aggregation complete")

	body, err := report.Render(res)
	if err != nil {
		log.Error().Err(err).Msg("render report")
		rec.PublishError = err.Error()
		s.record(rec, start)
		return
	}

	switch {
	case !s.Publisher.Configured():
		log.Warn().Strs("missing", s.Publisher.MissingKeys()).
			Msg("publisher not configured, skipping upsert")
	default:
		if err := s.Publisher.PublishWithRetry(s.Ctx, body, s.PublishRetries); err != nil {
			// Publish failure never fails the run.
			log.Error().Err(err).Msg("publish report")
			rec.PublishError = err.Error()
		} else {
			rec.Published = true
			log.Info().Msg("report published")
		}
	}

	s.record(rec, start)
}

func (s *Scheduler) record(rec *recorder.RunRecord, start time.Time) {
	rec.Duration = time.Since(start)
	if err := s.Recorder.RecordRun(rec); err != nil {
		log.Error().Err(err).Msg("record run")
	}
}
