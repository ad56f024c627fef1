// Package gitinfo reads commit and tag information of the enclosing git
// repository.
//
// All lookups go through a Runner, so tests can substitute canned git output
// for a real repository.
package gitinfo

import (
	"context"
	"fmt"
)

// ShortSHALength is the minimum abbreviation length requested from git.
// Git may return a longer prefix when 7 characters are ambiguous.
const ShortSHALength = 7

// Inspector provides the raw VCS data facts are derived from.
//
// Every method may fail independently: a repository may have commits but no
// tags, or no commits at all.
type Inspector interface {
	CommitSHA(ctx context.Context) (string, error)
	CommitSHAShort(ctx context.Context) (string, error)
	CommitDate(ctx context.Context) (string, error)
	Describe(ctx context.Context, lightweight bool) (string, error)
}

// Git is an Inspector backed by git subcommands. It does not cache results.
type Git struct {
	runner Runner
}

var _ Inspector = (*Git)(nil)

// New creates a Git inspector that runs git through r.
func New(r Runner) *Git {
	return &Git{runner: r}
}

// CommitSHA returns the full hash of HEAD.
func (g *Git) CommitSHA(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "HEAD")
}

// CommitSHAShort returns the abbreviated hash of HEAD, as git abbreviates it.
func (g *Git) CommitSHAShort(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", fmt.Sprintf("--short=%d", ShortSHALength), "HEAD")
}

// CommitDate returns the committer date of HEAD as YYYY-MM-DD.
func (g *Git) CommitDate(ctx context.Context) (string, error) {
	return g.run(ctx, "log", "-1", "--pretty=format:%cd", "--date=short")
}

// Describe returns the describe output of HEAD. Only annotated tags are
// considered unless lightweight is set.
func (g *Git) Describe(ctx context.Context, lightweight bool) (string, error) {
	if lightweight {
		return g.run(ctx, "describe", "--tags")
	}

	return g.run(ctx, "describe")
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	out, err := g.runner.Run(ctx, args...)
	if err != nil {
		//nolint:wrapcheck
		return "", err
	}

	if out == "" {
		return "", fmt.Errorf("%w: git %v: empty output", ErrCommandFailed, args)
	}

	return out, nil
}
