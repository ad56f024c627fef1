package gitinfo

import (
	"errors"
	"strings"
)

var (
	ErrNoRepository        = errors.New("gitinfo: not a git repository")
	ErrNoCommits           = errors.New("gitinfo: repository has no commits")
	ErrDescribeUnavailable = errors.New("gitinfo: no tag can describe HEAD")
	ErrCommandFailed       = errors.New("gitinfo: git command failed")
)

//nolint:gochecknoglobals
var stderrPatterns = []struct {
	err      error
	patterns []string
}{
	{ErrNoRepository, []string{"not a git repository"}},
	{ErrNoCommits, []string{
		"does not have any commits",
		"unknown revision or path not in the working tree",
		"ambiguous argument 'head'",
		"needed a single revision",
		"not a valid object name",
	}},
	{ErrDescribeUnavailable, []string{
		"no names found",
		"no annotated tags can describe",
		"no tags can describe",
		"cannot describe",
	}},
}

// classify maps git's stderr onto one of the package sentinels.
func classify(stderr string) error {
	s := strings.ToLower(stderr)
	for _, sp := range stderrPatterns {
		for _, p := range sp.patterns {
			if strings.Contains(s, p) {
				return sp.err
			}
		}
	}

	return ErrCommandFailed
}
