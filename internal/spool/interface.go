package spool

import "context"

// Watcher monitors the payload inbox directory.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one spooled payload file.
type Handler func(ctx context.Context, path string) error
