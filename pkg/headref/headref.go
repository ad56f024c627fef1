// Package headref resolves the files a git HEAD depends on.
//
// A build step that embeds commit information must re-run whenever HEAD
// moves: either .git/HEAD itself changes (checkout of another branch or a
// detached commit) or the branch file it points to changes (a new commit).
package headref

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultGitDir is the git directory relative to the repository root.
const DefaultGitDir = ".git"

const (
	symrefPrefix = "ref: "
	gitdirPrefix = "gitdir: "
)

var (
	ErrMalformedHead = errors.New("headref: malformed HEAD")
	ErrNoGitDir      = errors.New("headref: git directory not found")
)

// Pointer is the resolved HEAD reference chain.
type Pointer struct {
	// Head is the path of the HEAD file.
	Head string

	// Ref is the path of the file HEAD symbolically points to. It is empty
	// for a detached HEAD.
	Ref string

	// Packed is the packed-refs file, set when Ref does not exist as a
	// loose file yet the branch is recorded in packed-refs.
	Packed string
}

// Detached reports whether HEAD holds a raw commit hash.
func (p Pointer) Detached() bool { return p.Ref == "" }

// Paths returns the files to watch, HEAD first.
func (p Pointer) Paths() []string {
	paths := []string{p.Head}
	if p.Ref != "" {
		paths = append(paths, p.Ref)
	}

	if p.Packed != "" {
		paths = append(paths, p.Packed)
	}

	return paths
}

// Resolve reads the HEAD file under gitDir on fs.
//
// gitDir may also be a ".git" file, as found in linked worktrees and
// submodules, in which case the directory it names is used. Only HEAD itself
// has to be readable; the ref file is returned by path even when the branch
// has no commits yet.
func Resolve(fs afero.Fs, gitDir string) (Pointer, error) {
	if gitDir == "" {
		gitDir = DefaultGitDir
	}

	gitDir, err := resolveGitDir(fs, gitDir)
	if err != nil {
		return Pointer{}, err
	}

	head := filepath.Join(gitDir, "HEAD")

	data, err := afero.ReadFile(fs, head)
	if err != nil {
		return Pointer{}, fmt.Errorf("headref: failed to read %s: %w", head, err)
	}

	content := string(bytes.TrimSpace(data))
	if content == "" {
		return Pointer{}, fmt.Errorf("%w: %s is empty", ErrMalformedHead, head)
	}

	ref, ok := strings.CutPrefix(content, symrefPrefix)
	if !ok {
		return Pointer{Head: head, Ref: "", Packed: ""}, nil
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Pointer{}, fmt.Errorf("%w: %s has an empty ref", ErrMalformedHead, head)
	}

	// Branches of linked worktrees live in the common directory.
	refsDir := gitDir
	if common, err := afero.ReadFile(fs, filepath.Join(gitDir, "commondir")); err == nil {
		refsDir = joinRelative(gitDir, string(bytes.TrimSpace(common)))
	}

	p := Pointer{Head: head, Ref: filepath.Join(refsDir, filepath.FromSlash(ref)), Packed: ""}

	if ok, _ := afero.Exists(fs, p.Ref); !ok {
		packed := filepath.Join(refsDir, "packed-refs")
		if ok, _ := afero.Exists(fs, packed); ok {
			p.Packed = packed
		}
	}

	return p, nil
}

// Find returns the git directory of the repository enclosing dir, checking
// dir and then each of its parents for a ".git" entry, as git does.
//
// The returned path may name a ".git" file; Resolve follows it. When no
// parent has one, the error wraps both ErrNoGitDir and os.ErrNotExist.
func Find(fs afero.Fs, dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("headref: failed to resolve %s: %w", dir, err)
	}

	for dir := start; ; {
		candidate := filepath.Join(dir, DefaultGitDir)

		_, err := fs.Stat(candidate)
		if err == nil {
			return candidate, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("headref: failed to stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or any parent: %w", ErrNoGitDir, DefaultGitDir, start, os.ErrNotExist)
		}

		dir = parent
	}
}

// resolveGitDir follows a "gitdir: <path>" file.
func resolveGitDir(fs afero.Fs, gitDir string) (string, error) {
	info, err := fs.Stat(gitDir)
	if err != nil {
		return "", fmt.Errorf("headref: failed to stat %s: %w", gitDir, err)
	}

	if info.IsDir() {
		return gitDir, nil
	}

	data, err := afero.ReadFile(fs, gitDir)
	if err != nil {
		return "", fmt.Errorf("headref: failed to read %s: %w", gitDir, err)
	}

	target, ok := strings.CutPrefix(string(bytes.TrimSpace(data)), gitdirPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s is neither a directory nor a gitdir file", ErrMalformedHead, gitDir)
	}

	return joinRelative(filepath.Dir(gitDir), strings.TrimSpace(target)), nil
}

func joinRelative(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(base, p)
}
