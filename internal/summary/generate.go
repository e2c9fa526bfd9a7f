// Package summary derives the summary document for an episode and renders
// it as markdown.
package summary

import "fmt"

// Metadata is the episode information every summary is built from.
type Metadata struct {
	Title      string
	Published  string
	EpisodeURL string
}

// Document is the structured summary. Only its markdown rendering is ever
// persisted.
type Document struct {
	Title           string
	Published       string
	EpisodeURL      string
	HasTranscript   bool
	ShortSummary    []string
	DetailedSummary []string
	KeyTakeaways    []string
	ActionItems     []string
}

// Generator turns episode metadata and an optional transcript into a
// Document. The default implementation emits fixed templates; a real
// analysis backend can be plugged in without touching filename, rendering
// or publication logic.
type Generator interface {
	Generate(meta Metadata, transcript string) Document
}

// TemplateGenerator is the stock Generator. Its output depends only on the
// metadata and on whether a transcript is present, never on the transcript
// content itself.
type TemplateGenerator struct{}

// NewTemplateGenerator creates the stock template-based Generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(meta Metadata, transcript string) Document {
	doc := Document{
		Title:      meta.Title,
		Published:  meta.Published,
		EpisodeURL: meta.EpisodeURL,
		// An empty transcript counts as absent: the limited lists and
		// the availability note always travel together, so the
		// document never claims a transcript it cannot summarize.
		HasTranscript: transcript != "",
	}

	if doc.HasTranscript {
		doc.ShortSummary = []string{
			"Episode discusses key topics (to be analyzed from transcript)",
			"Main themes and discussions covered",
			"Notable insights shared by speakers",
			"Practical applications and examples",
			"Conclusions and final thoughts",
		}
		doc.DetailedSummary = []string{
			"Introduction and context setting",
			"First major topic: [to be extracted from transcript]",
			"Second major topic: [to be extracted from transcript]",
			"Third major topic: [to be extracted from transcript]",
			"Discussion of implications and applications",
			"Q&A or audience interaction (if applicable)",
			"Key examples and case studies mentioned",
			"Expert opinions and perspectives shared",
			"Technical details and specifications (if applicable)",
			"Future outlook and predictions",
			"Closing remarks and next steps",
		}
		doc.KeyTakeaways = []string{
			"Key insight #1 from the episode",
			"Key insight #2 from the episode",
			"Key insight #3 from the episode",
			"Key insight #4 from the episode",
			"Key insight #5 from the episode",
		}
		doc.ActionItems = []string{
			"Suggested action based on episode content",
			"Resources to explore further",
			"Practices to implement",
		}
	} else {
		doc.ShortSummary = []string{
			fmt.Sprintf("Episode titled: %s", meta.Title),
			"Transcript not available; summary is limited.",
			"Please listen to the full episode for complete details.",
			fmt.Sprintf("Published: %s", meta.Published),
			fmt.Sprintf("Available at: %s", meta.EpisodeURL),
		}
		doc.DetailedSummary = []string{
			"Detailed summary requires transcript analysis.",
			"Transcript was not available at the time of processing.",
			"Please refer to the episode URL for full content.",
		}
		doc.KeyTakeaways = []string{
			"Full transcript needed for detailed takeaways.",
			"Please listen to the episode directly.",
			fmt.Sprintf("Episode URL: %s", meta.EpisodeURL),
		}
		doc.ActionItems = nil
	}

	return doc
}
