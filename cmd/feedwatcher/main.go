package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podflow/internal/config"
	"podflow/internal/feed"
	"podflow/internal/history"
	"podflow/internal/logger"
	"podflow/internal/state"
	"podflow/internal/webhook"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional)")
	every := flag.Duration("every", 0, "poll interval; 0 runs a single check and exits")
	flag.Parse()

	cfg, err := config.LoadIfPresent(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateWatcher(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	states := state.NewStore(cfg.Feed.StatePath)
	hook := webhook.NewClient(cfg.Webhook.URL)
	checker := feed.NewChecker(cfg.Feed.URL, states, hook, log)

	if cfg.Feed.HistoryPath != "" {
		hist, err := history.New(cfg.Feed.HistoryPath)
		if err != nil {
			log.Warn(ctx, "Episode history disabled: %v", err)
		} else {
			defer hist.Close()
			checker.History = hist
		}
	}

	if *every <= 0 {
		if err := checker.Run(ctx); err != nil {
			log.Error(ctx, "Watcher run failed: %v", err)
			os.Exit(1)
		}
		return
	}

	// Poll-loop mode for deployments without an external scheduler. A
	// failed run is not fatal here; the next tick retries.
	log.Info(ctx, "Feed watcher polling %s every %s", cfg.Feed.URL, *every)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*every)
	defer ticker.Stop()

	for {
		if err := checker.Run(ctx); err != nil {
			log.Error(ctx, "Watcher run failed: %v", err)
		}

		select {
		case <-sigChan:
			log.Info(ctx, "Shutdown signal received")
			return
		case <-ticker.C:
		}
	}
}
