package testutil

import (
	"context"
	"strings"
	"sync"

	"go.inout.gg/vergen/pkg/gitinfo"
)

var _ gitinfo.Inspector = (*FakeInspector)(nil)

// FakeInspector returns canned VCS data. A non-nil error field makes the
// corresponding method fail.
type FakeInspector struct {
	SHA         string
	SHAShort    string
	Date        string
	Annotated   string
	Lightweight string

	SHAErr         error
	SHAShortErr    error
	DateErr        error
	AnnotatedErr   error
	LightweightErr error

	mu    sync.Mutex
	calls []string
}

func (f *FakeInspector) CommitSHA(context.Context) (string, error) {
	f.record("sha")
	return f.SHA, f.SHAErr
}

func (f *FakeInspector) CommitSHAShort(context.Context) (string, error) {
	f.record("sha-short")
	return f.SHAShort, f.SHAShortErr
}

func (f *FakeInspector) CommitDate(context.Context) (string, error) {
	f.record("date")
	return f.Date, f.DateErr
}

func (f *FakeInspector) Describe(_ context.Context, lightweight bool) (string, error) {
	if lightweight {
		f.record("describe --tags")
		return f.Lightweight, f.LightweightErr
	}

	f.record("describe")

	return f.Annotated, f.AnnotatedErr
}

// Calls returns the methods invoked so far, in order.
func (f *FakeInspector) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func (f *FakeInspector) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
}

// NoTagsInspector describes a repository at the given commit with no tags.
func NoTagsInspector(sha, date string) *FakeInspector {
	noTags := gitinfo.NewCommandError([]string{"describe"}, 128,
		"fatal: No names found, cannot describe anything.")

	//nolint:exhaustruct
	return &FakeInspector{
		SHA:            sha,
		SHAShort:       sha[:gitinfo.ShortSHALength],
		Date:           date,
		AnnotatedErr:   noTags,
		LightweightErr: noTags,
	}
}

// StubResult is the canned outcome of one git invocation.
type StubResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// StubRunner is a gitinfo.Runner answering from a table keyed by the
// space-joined git arguments. Unknown invocations exit with status 1.
type StubRunner map[string]StubResult

var _ gitinfo.Runner = StubRunner(nil)

func (s StubRunner) Run(_ context.Context, args ...string) (string, error) {
	res, ok := s[strings.Join(args, " ")]
	if !ok {
		return "", gitinfo.NewCommandError(args, 1, "unexpected invocation")
	}

	if res.ExitCode != 0 {
		return "", gitinfo.NewCommandError(args, res.ExitCode, res.Stderr)
	}

	return strings.TrimSpace(res.Stdout), nil
}
