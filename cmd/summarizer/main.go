package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"podflow/internal/config"
	"podflow/internal/episode"
	"podflow/internal/gitops"
	"podflow/internal/logger"
	"podflow/internal/processor"
	"podflow/internal/spool"
	"podflow/internal/summary"
	"podflow/internal/transcript"
	"podflow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional)")
	spoolDir := flag.String("spool", "", "inbox directory; when set, run as a daemon processing spooled payloads")
	flag.Parse()

	cfg, err := config.LoadIfPresent(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	exec := executor.New()
	transcripts := transcript.NewService(exec, log, cfg.Whisper.BinaryPath, cfg.Whisper.Model, cfg.Paths.Temp)
	publisher := gitops.NewGitPublisher(exec, log, "", cfg.Git.BaseBranch, cfg.Git.BotName, cfg.Git.BotEmail)
	proc := processor.New(cfg, log, transcripts, summary.NewTemplateGenerator(), publisher)

	if *spoolDir != "" {
		runDaemon(proc, log, *spoolDir)
		return
	}

	// One-shot: payload from PODCAST_PAYLOAD or stdin. A missing or
	// invalid payload is the only fatal input condition.
	payload, err := episode.FromEnvOrReader(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := proc.Process(context.Background(), payload); err != nil {
		log.Error(context.Background(), "Processing failed: %v", err)
		os.Exit(1)
	}
}

func runDaemon(proc processor.Processor, log logger.Logger, spoolDir string) {
	ctx := context.Background()

	processedDir := filepath.Join(spoolDir, "processed")
	if err := os.MkdirAll(processedDir, 0755); err != nil {
		log.Error(ctx, "Failed to create processed dir: %v", err)
		os.Exit(1)
	}

	handler := func(ctx context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read payload file: %w", err)
		}
		payload, err := episode.Parse(data)
		if err != nil {
			return err
		}
		if err := proc.Process(ctx, payload); err != nil {
			return err
		}
		// Move handled payloads aside so the inbox only holds pending work.
		dest := filepath.Join(processedDir, filepath.Base(path))
		if err := os.Rename(path, dest); err != nil {
			log.Warn(ctx, "Failed to move processed payload %s: %v", path, err)
		}
		return nil
	}

	w, err := spool.New(spoolDir, handler, log, 1)
	if err != nil {
		log.Error(ctx, "Failed to create spool watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Summarizer daemon ready. Inbox: %s", spoolDir)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Spool watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "Summarizer stopped")
}
