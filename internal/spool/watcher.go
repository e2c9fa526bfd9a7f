// Package spool watches the payload inbox directory and hands new payload
// files to the summarizer. The webhook receiver drops one JSON file per
// delivery; processed files are moved aside by the handler.
package spool

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"podflow/internal/logger"
)

// settleDelay gives the writer time to finish before the file is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inboxDir      string
	handler       Handler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// New creates a spool watcher. maxConcurrent bounds in-flight payloads;
// the pipeline default is 1, keeping episode processing strictly
// sequential.
func New(inboxDir string, handler Handler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		inboxDir:      inboxDir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start begins monitoring the inbox for new payload files.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Spool watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight payloads to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Spool watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isPayloadFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-payload file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New payload detected: %s", event.Name)

			// Small delay to ensure the file is fully written
			time.Sleep(settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, path); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", path, err)
					}
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isPayloadFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json" &&
		!strings.HasPrefix(filepath.Base(path), ".")
}
