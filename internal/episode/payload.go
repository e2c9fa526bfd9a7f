// Package episode defines the payload contract shared by the feed watcher,
// the webhook receiver and the summarizer.
package episode

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// TaskTypeSummary is the task discriminator carried by every payload.
const TaskTypeSummary = "podcast_summary"

// PayloadEnv is the environment variable the summarizer checks before
// falling back to stdin.
const PayloadEnv = "PODCAST_PAYLOAD"

// Payload is the wire format posted by the watcher and consumed by the
// summarizer. All fields except the payload itself are optional; absent
// values fall back to defaults at read time.
type Payload struct {
	TaskType   string `json:"taskType"`
	Source     string `json:"source,omitempty"`
	RSSURL     string `json:"rssUrl,omitempty"`
	Title      string `json:"title"`
	Published  string `json:"published"`
	EpisodeURL string `json:"episodeUrl"`
	// AudioURL is null on the wire when the entry has no enclosure.
	AudioURL *string `json:"audioUrl"`
}

// Audio returns the audio URL, or "" when the payload carries none.
func (p *Payload) Audio() string {
	if p.AudioURL == nil {
		return ""
	}
	return *p.AudioURL
}

// Parse decodes a payload from raw JSON and applies field defaults.
func Parse(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	p.applyDefaults()
	return &p, nil
}

// FromEnvOrReader obtains the payload from PODCAST_PAYLOAD or, if unset,
// from the given reader (normally stdin). An empty payload is an error.
func FromEnvOrReader(r io.Reader) (*Payload, error) {
	raw := os.Getenv(PayloadEnv)
	if raw == "" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no payload provided")
	}
	return Parse([]byte(raw))
}

func (p *Payload) applyDefaults() {
	if p.Title == "" {
		p.Title = "Untitled Episode"
	}
}
