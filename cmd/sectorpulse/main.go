package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"SectorPulse/internal/collector"
	"SectorPulse/internal/config"
	"SectorPulse/internal/publisher"
	"SectorPulse/internal/recorder"
	"SectorPulse/internal/scheduler"
	"SectorPulse/internal/universe"
)

func main() {
	once := flag.Bool("once", false, "run the report pipeline once and exit")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if os.Getenv("LOG_DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Info().Msg("SectorPulse starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Instrument universe: declared order drives the panel layout.
	u := universe.Default()
	if len(cfg.Universe) > 0 {
		entries := make([]universe.Entry, len(cfg.Universe))
		for i, e := range cfg.Universe {
			entries[i] = universe.Entry{Code: e.Code, Name: e.Name}
		}
		u = universe.New(entries)
	}
	log.Info().Int("instruments", u.Len()).Msg("universe loaded")

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	coord := collector.NewCoordinator(fetcher, u, cfg.Fetch.Workers, cfg.Fetch.LookbackDays, cfg.TaskTimeout())

	pub := publisher.NewWordPressPublisher(
		cfg.Publish.Endpoint, cfg.Publish.ClientRef, cfg.Publish.SecretKey,
		cfg.Publish.NodeID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, coord, pub, rec, cfg.Fetch.PublishRetries)

	if *once {
		sched.RunNow()
		log.Info().Msg("run-once complete")
		return
	}

	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing report now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.DailyCron).Msg("SectorPulse is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("SectorPulse stopped")
}
