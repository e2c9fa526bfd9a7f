// Package gitops publishes summary files through git and the gh CLI. The
// Publisher interface keeps orchestration code testable without a real
// repository or network.
package gitops

import (
	"context"
	"fmt"
	"strings"

	"podflow/internal/logger"
	"podflow/pkg/executor"
)

// PullRequest describes the PR opened for a published summary.
type PullRequest struct {
	Branch string
	Title  string
	Body   string
}

// Publisher is the narrow seam over version control: create a branch,
// commit and push a file, open a pull request.
type Publisher interface {
	// ConfigureIdentity sets the bot commit identity. Failures are
	// ignored: an already-configured repo is fine.
	ConfigureIdentity(ctx context.Context)
	CreateBranch(ctx context.Context, name string) error
	CommitAndPush(ctx context.Context, branch, filePath, message string) error
	// OpenPullRequest returns the URL of the created PR.
	OpenPullRequest(ctx context.Context, pr PullRequest) (string, error)
}

// GitPublisher drives the git and gh CLIs.
type GitPublisher struct {
	exec       executor.Executor
	log        logger.Logger
	repoDir    string
	baseBranch string
	botName    string
	botEmail   string
}

// NewGitPublisher creates a publisher operating on repoDir ("" for the
// current directory), opening PRs against baseBranch.
func NewGitPublisher(exec executor.Executor, log logger.Logger, repoDir, baseBranch, botName, botEmail string) *GitPublisher {
	return &GitPublisher{
		exec:       exec,
		log:        log,
		repoDir:    repoDir,
		baseBranch: baseBranch,
		botName:    botName,
		botEmail:   botEmail,
	}
}

func (p *GitPublisher) ConfigureIdentity(ctx context.Context) {
	if _, err := p.git(ctx, "config", "user.name", p.botName); err != nil {
		p.log.Debug(ctx, "git config user.name failed: %v", err)
	}
	if _, err := p.git(ctx, "config", "user.email", p.botEmail); err != nil {
		p.log.Debug(ctx, "git config user.email failed: %v", err)
	}
}

func (p *GitPublisher) CreateBranch(ctx context.Context, name string) error {
	if _, err := p.git(ctx, "checkout", "-b", name); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

func (p *GitPublisher) CommitAndPush(ctx context.Context, branch, filePath, message string) error {
	if _, err := p.git(ctx, "add", filePath); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	if _, err := p.git(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	if _, err := p.git(ctx, "push", "-u", "origin", branch); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}

func (p *GitPublisher) OpenPullRequest(ctx context.Context, pr PullRequest) (string, error) {
	out, err := p.exec.ExecuteInDir(ctx, p.repoDir, "gh", "pr", "create",
		"--base", p.baseBranch,
		"--head", pr.Branch,
		"--title", pr.Title,
		"--body", pr.Body)
	if err != nil {
		return "", fmt.Errorf("gh pr create: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (p *GitPublisher) git(ctx context.Context, args ...string) (string, error) {
	return p.exec.ExecuteInDir(ctx, p.repoDir, "git", args...)
}
