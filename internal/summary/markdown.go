package summary

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders a Document as markdown. The output is a pure
// function of the document: same input, byte-identical output. Section
// order is fixed; Action Items is omitted entirely when empty.
func RenderMarkdown(doc Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "**Published:** %s\n\n", doc.Published)
	fmt.Fprintf(&b, "**Source:** [%s](%s)\n\n", doc.EpisodeURL, doc.EpisodeURL)

	if !doc.HasTranscript {
		b.WriteString("> **Note:** Transcript not available; summary is limited.\n\n")
	}

	writeSection(&b, "Short Summary", doc.ShortSummary)
	writeSection(&b, "Detailed Summary", doc.DetailedSummary)
	writeSection(&b, "Key Takeaways", doc.KeyTakeaways)

	if len(doc.ActionItems) > 0 {
		writeSection(&b, "Action Items", doc.ActionItems)
	}

	// Sections separate with one blank line; the document ends with a
	// single newline after the last bullet.
	return strings.TrimSuffix(b.String(), "\n")
}

func writeSection(b *strings.Builder, heading string, bullets []string) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, bullet := range bullets {
		fmt.Fprintf(b, "- %s\n", bullet)
	}
	b.WriteString("\n")
}
