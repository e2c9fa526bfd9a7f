package processor

import (
	"context"

	"podflow/internal/episode"
)

// Processor turns one episode payload into a published summary.
type Processor interface {
	Process(ctx context.Context, payload *episode.Payload) error
}

// Transcripts fetches an episode transcript. Failures are advisory; the
// processor continues without a transcript.
type Transcripts interface {
	Fetch(ctx context.Context, audioURL, baseName string) (string, error)
}
