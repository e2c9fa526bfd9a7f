package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"podflow/internal/episode"
	"podflow/internal/gitops"
	"podflow/internal/summary"
)

// Process runs the full summary pipeline for one payload: derive the
// filename, attempt transcription, render the markdown, write the file,
// then publish through version control. Only an unwritable summary file is
// fatal; every publication step failure is logged and halts the remaining
// chain without failing the process.
func (p *implProcessor) Process(ctx context.Context, payload *episode.Payload) error {
	p.log.Info(ctx, "Processing podcast: %s", payload.Title)

	safeDate := summary.DateForFilename(payload.Published)
	safeTitle := summary.SanitizeTitle(payload.Title)
	filename := fmt.Sprintf("%s-%s.md", safeDate, safeTitle)

	if err := os.MkdirAll(p.cfg.Paths.Summaries, 0755); err != nil {
		return fmt.Errorf("create summaries dir: %w", err)
	}
	summaryPath := filepath.Join(p.cfg.Paths.Summaries, filename)

	if _, err := os.Stat(summaryPath); err == nil {
		p.log.Info(ctx, "Summary already exists: %s, updating", summaryPath)
	}

	transcript := p.fetchTranscript(ctx, payload, safeDate, safeTitle)

	doc := p.generator.Generate(summary.Metadata{
		Title:      payload.Title,
		Published:  payload.Published,
		EpisodeURL: payload.EpisodeURL,
	}, transcript)

	md := summary.RenderMarkdown(doc)
	if err := os.WriteFile(summaryPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	p.log.Info(ctx, "Summary written to: %s", summaryPath)

	p.publish(ctx, payload, doc, summaryPath, filename, safeDate, safeTitle)

	p.log.Info(ctx, "Processing complete")
	return nil
}

// fetchTranscript attempts the best-effort transcription path. Any failure
// degrades to an empty transcript.
func (p *implProcessor) fetchTranscript(ctx context.Context, payload *episode.Payload, safeDate, safeTitle string) string {
	audioURL := payload.Audio()
	if audioURL == "" || p.transcripts == nil {
		return ""
	}

	p.log.Info(ctx, "Audio URL provided: %s", audioURL)

	transcript, err := p.transcripts.Fetch(ctx, audioURL, safeDate+"_"+safeTitle)
	if err != nil {
		p.log.Warn(ctx, "Transcription failed, continuing without transcript: %v", err)
		return ""
	}
	return transcript
}

// publish walks the branch/commit/push/PR chain. The first failed step
// stops the chain.
func (p *implProcessor) publish(ctx context.Context, payload *episode.Payload, doc summary.Document, summaryPath, filename, safeDate, safeTitle string) {
	branch := p.cfg.Git.BranchPrefix + safeDate + "-" + safeTitle

	p.publisher.ConfigureIdentity(ctx)

	if err := p.publisher.CreateBranch(ctx, branch); err != nil {
		p.log.Error(ctx, "Failed to create branch: %v", err)
		return
	}
	p.log.Info(ctx, "Created branch: %s", branch)

	message := fmt.Sprintf("Add podcast summary: %s", payload.Title)
	if err := p.publisher.CommitAndPush(ctx, branch, summaryPath, message); err != nil {
		p.log.Error(ctx, "Failed to commit/push changes: %v", err)
		return
	}
	p.log.Info(ctx, "Changes committed and pushed")

	pr := gitops.PullRequest{
		Branch: branch,
		Title:  fmt.Sprintf("Podcast Summary: %s", payload.Title),
		Body:   prBody(payload, doc, filename),
	}
	url, err := p.publisher.OpenPullRequest(ctx, pr)
	if err != nil {
		p.log.Error(ctx, "Failed to create pull request: %v", err)
		return
	}
	p.log.Info(ctx, "Pull request created: %s", url)
}

func prBody(payload *episode.Payload, doc summary.Document, filename string) string {
	var b strings.Builder

	b.WriteString("## Podcast Summary\n\n")
	fmt.Fprintf(&b, "**Episode:** %s\n", payload.Title)
	fmt.Fprintf(&b, "**Published:** %s\n", payload.Published)
	fmt.Fprintf(&b, "**Source:** %s\n\n", payload.EpisodeURL)
	b.WriteString("### Short Summary\n\n")
	for _, bullet := range doc.ShortSummary {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	fmt.Fprintf(&b, "\n**Full summary:** [View file](summaries/%s)", filename)

	return b.String()
}
