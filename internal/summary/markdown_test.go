package summary

import (
	"strings"
	"testing"
)

var testMeta = Metadata{
	Title:      "Ep 1",
	Published:  "2024-01-05",
	EpisodeURL: "http://x/1",
}

func TestGenerateWithTranscript(t *testing.T) {
	doc := NewTemplateGenerator().Generate(testMeta, "some transcript text")

	if !doc.HasTranscript {
		t.Error("HasTranscript = false, want true")
	}
	if len(doc.ShortSummary) != 5 {
		t.Errorf("ShortSummary has %d items, want 5", len(doc.ShortSummary))
	}
	if len(doc.DetailedSummary) != 11 {
		t.Errorf("DetailedSummary has %d items, want 11", len(doc.DetailedSummary))
	}
	if len(doc.KeyTakeaways) != 5 {
		t.Errorf("KeyTakeaways has %d items, want 5", len(doc.KeyTakeaways))
	}
	if len(doc.ActionItems) != 3 {
		t.Errorf("ActionItems has %d items, want 3", len(doc.ActionItems))
	}
}

func TestGenerateWithoutTranscript(t *testing.T) {
	doc := NewTemplateGenerator().Generate(testMeta, "")

	if doc.HasTranscript {
		t.Error("HasTranscript = true, want false")
	}
	if len(doc.ShortSummary) != 5 {
		t.Errorf("ShortSummary has %d items, want 5", len(doc.ShortSummary))
	}
	if len(doc.ActionItems) != 0 {
		t.Errorf("ActionItems has %d items, want 0", len(doc.ActionItems))
	}

	found := false
	for _, bullet := range doc.ShortSummary {
		if strings.Contains(bullet, "Ep 1") {
			found = true
		}
	}
	if !found {
		t.Error("limited summary should reference the episode title")
	}
}

func TestGenerateEmptyTranscriptTreatedAsAbsent(t *testing.T) {
	doc := NewTemplateGenerator().Generate(testMeta, "")

	if doc.HasTranscript {
		t.Error("empty transcript must count as absent")
	}

	md := RenderMarkdown(doc)
	if !strings.Contains(md, "> **Note:** Transcript not available; summary is limited.") {
		t.Error("note and limited lists must always appear together")
	}
	if len(doc.ActionItems) != 0 {
		t.Errorf("ActionItems has %d items, want 0", len(doc.ActionItems))
	}
}

func TestRenderMarkdownDeterministic(t *testing.T) {
	doc := NewTemplateGenerator().Generate(testMeta, "transcript")

	first := RenderMarkdown(doc)
	second := RenderMarkdown(doc)
	if first != second {
		t.Error("RenderMarkdown is not deterministic")
	}
}

func TestRenderMarkdownSections(t *testing.T) {
	doc := NewTemplateGenerator().Generate(testMeta, "")
	md := RenderMarkdown(doc)

	wantParts := []string{
		"# Ep 1\n",
		"**Published:** 2024-01-05\n",
		"**Source:** [http://x/1](http://x/1)\n",
		"> **Note:** Transcript not available; summary is limited.",
		"## Short Summary",
		"## Detailed Summary",
		"## Key Takeaways",
	}
	for _, part := range wantParts {
		if !strings.Contains(md, part) {
			t.Errorf("markdown missing %q", part)
		}
	}

	// No transcript means an empty action-item list, and the section is
	// dropped entirely.
	if strings.Contains(md, "## Action Items") {
		t.Error("markdown should omit Action Items when empty")
	}

	// Section order is fixed.
	short := strings.Index(md, "## Short Summary")
	detailed := strings.Index(md, "## Detailed Summary")
	takeaways := strings.Index(md, "## Key Takeaways")
	if !(short < detailed && detailed < takeaways) {
		t.Error("sections out of order")
	}
}

func TestRenderMarkdownActionItems(t *testing.T) {
	doc := NewTemplateGenerator().Generate(testMeta, "transcript")
	md := RenderMarkdown(doc)

	if !strings.Contains(md, "## Action Items") {
		t.Error("markdown should include Action Items when present")
	}
	if !strings.Contains(md, "- Practices to implement") {
		t.Error("bullets should render as '- item' lines")
	}
	if strings.HasSuffix(md, "\n\n") {
		t.Error("document should end with a single newline")
	}
}
