// Package feed polls the podcast feed and notifies the webhook when a new
// episode appears.
package feed

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"podflow/internal/episode"
	"podflow/internal/history"
	"podflow/internal/logger"
	"podflow/internal/state"
)

// Notifier delivers a payload to the automation endpoint.
type Notifier interface {
	Notify(ctx context.Context, payload interface{}) error
}

// Recorder logs a notified episode. Recording is advisory.
type Recorder interface {
	Record(ep history.Episode) error
}

// Checker performs one watcher run: poll the feed, compare the newest
// entry against persisted state, notify on change.
type Checker struct {
	feedURL string
	parser  *gofeed.Parser
	states  *state.Store
	hook    Notifier
	log     logger.Logger

	// History is optional; when set, successfully notified episodes are
	// recorded best-effort.
	History Recorder
}

// NewChecker creates a checker for one feed.
func NewChecker(feedURL string, states *state.Store, hook Notifier, log logger.Logger) *Checker {
	return &Checker{
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
		states:  states,
		hook:    hook,
		log:     log,
	}
}

// Run executes a single watcher pass. State is persisted only after the
// webhook confirms delivery, so a failed run is retried in full by the
// next scheduled invocation (at-least-once notification).
func (c *Checker) Run(ctx context.Context) error {
	st, err := c.states.Load()
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	parsed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return fmt.Errorf("parse feed %s: %w", c.feedURL, err)
	}
	if len(parsed.Items) == 0 {
		return fmt.Errorf("feed %s contains no entries", c.feedURL)
	}

	// Source ordering is trusted: the newest entry is index 0.
	latest := parsed.Items[0]

	id := entryID(latest)
	if id == "" {
		return fmt.Errorf("newest entry has no identifier (no guid, id or link)")
	}

	if id == st.LastGUID {
		c.log.Info(ctx, "No new episode. Exiting.")
		return nil
	}

	payload := buildPayload(c.feedURL, latest)
	c.log.Info(ctx, "New episode detected: %s (%s)", payload.Title, id)

	if err := c.hook.Notify(ctx, payload); err != nil {
		// State stays untouched so the next run retries this episode.
		return fmt.Errorf("notify webhook: %w", err)
	}

	if err := c.states.Save(state.State{LastGUID: id}); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	if c.History != nil {
		if err := c.History.Record(history.Episode{
			GUID:       id,
			Title:      payload.Title,
			Published:  payload.Published,
			EpisodeURL: payload.EpisodeURL,
			AudioURL:   payload.Audio(),
		}); err != nil {
			c.log.Warn(ctx, "Failed to record episode history: %v", err)
		}
	}

	c.log.Info(ctx, "Webhook notified and state updated.")
	return nil
}

// entryID picks the change-detection identifier for an entry. gofeed folds
// an Atom <id> into GUID, so the guid/id/link cascade collapses to two
// steps here.
func entryID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Link
}

func buildPayload(feedURL string, item *gofeed.Item) *episode.Payload {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}

	var audioURL *string
	if len(item.Enclosures) > 0 && item.Enclosures[0].URL != "" {
		audioURL = &item.Enclosures[0].URL
	}

	return &episode.Payload{
		TaskType:   episode.TaskTypeSummary,
		Source:     "rss",
		RSSURL:     feedURL,
		Title:      title,
		Published:  item.Published,
		EpisodeURL: item.Link,
		AudioURL:   audioURL,
	}
}
