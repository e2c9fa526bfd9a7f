package processor

import (
	"podflow/internal/config"
	"podflow/internal/gitops"
	"podflow/internal/logger"
	"podflow/internal/summary"
)

type implProcessor struct {
	cfg         *config.Config
	log         logger.Logger
	transcripts Transcripts
	generator   summary.Generator
	publisher   gitops.Publisher
}

// New creates a Processor. transcripts may be nil to disable the
// transcription attempt entirely.
func New(cfg *config.Config, log logger.Logger, transcripts Transcripts, generator summary.Generator, publisher gitops.Publisher) Processor {
	return &implProcessor{
		cfg:         cfg,
		log:         log,
		transcripts: transcripts,
		generator:   generator,
		publisher:   publisher,
	}
}
