// Package gitops provides the git operations the release pipeline needs:
// staging the whole working tree and creating the release commit. Commands
// run through an execx.CommandExecutor so tests can assert on the exact git
// invocations without a real repository.
package gitops

import (
	"context"
	"strings"

	"github.com/rash-sh/relprep/internal/errors"
	"github.com/rash-sh/relprep/internal/execx"
)

// Client runs git CLI commands against a single repository directory.
type Client struct {
	repoDir  string
	executor execx.CommandExecutor
}

// NewClient creates a Client for the repository at repoDir.
func NewClient(repoDir string) *Client {
	return &Client{
		repoDir:  repoDir,
		executor: execx.NewCLICommandExecutor(),
	}
}

// NewClientWithExecutor creates a Client with a custom executor.
// This is primarily useful for testing.
func NewClientWithExecutor(repoDir string, executor execx.CommandExecutor) *Client {
	return &Client{
		repoDir:  repoDir,
		executor: executor,
	}
}

// StageAll stages every modified and untracked file in the working tree.
func (c *Client) StageAll(ctx context.Context) error {
	output, err := c.executor.Run(ctx, c.repoDir, "git", "add", "-A")
	if err != nil {
		return errors.NewGitError("failed to stage changes", err).
			WithRepository(c.repoDir).
			WithGitOutput(string(output))
	}
	return nil
}

// Commit creates a commit with the given message from whatever is staged.
// Unlike a generic commit helper, an empty index is an error here: a release
// run that changed nothing has gone wrong somewhere.
func (c *Client) Commit(ctx context.Context, message string) error {
	output, err := c.executor.Run(ctx, c.repoDir, "git", "commit", "-m", message)
	if err != nil {
		if strings.Contains(string(output), "nothing to commit") {
			return errors.NewGitError("no release changes to commit", errors.ErrNothingToCommit).
				WithRepository(c.repoDir).
				WithGitOutput(string(output))
		}
		return errors.NewGitError("failed to commit release changes", err).
			WithRepository(c.repoDir).
			WithGitOutput(string(output))
	}
	return nil
}

// HasUncommittedChanges returns true if the working tree has any modified,
// staged or untracked files.
func (c *Client) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := c.executor.Run(ctx, c.repoDir, "git", "status", "--porcelain")
	if err != nil {
		return false, errors.NewGitError("failed to check git status", err).
			WithRepository(c.repoDir).
			WithGitOutput(string(output))
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.executor.Run(ctx, c.repoDir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", errors.NewGitError("failed to get branch", err).
			WithRepository(c.repoDir).
			WithGitOutput(string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// IsRepository reports whether repoDir is inside a git work tree.
func (c *Client) IsRepository(ctx context.Context) bool {
	output, err := c.executor.Run(ctx, c.repoDir, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(output)) == "true"
}
