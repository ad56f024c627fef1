package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// RepoBuilder lays out a fake repository on an in-memory filesystem.
type RepoBuilder struct {
	fs            afero.Fs
	failOnFileErr error
	t             *testing.T
	root          string
	gitDir        string
	failOnFile    string
}

func NewRepoBuilder(t *testing.T) *RepoBuilder {
	t.Helper()

	fs := afero.NewMemMapFs()
	root := "/repo"
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, fs.MkdirAll(gitDir, 0o755))

	//nolint:exhaustruct
	return &RepoBuilder{t: t, fs: fs, root: root, gitDir: gitDir}
}

// WithHead writes .git/HEAD verbatim.
func (b *RepoBuilder) WithHead(content string) *RepoBuilder {
	b.t.Helper()

	return b.WithGitFile("HEAD", content)
}

// WithBranch points HEAD at refs/heads/<name>.
func (b *RepoBuilder) WithBranch(name string) *RepoBuilder {
	b.t.Helper()

	return b.WithHead("ref: refs/heads/" + name + "\n")
}

// WithRef writes a loose ref file, e.g. WithRef("refs/heads/main", sha).
func (b *RepoBuilder) WithRef(ref, sha string) *RepoBuilder {
	b.t.Helper()

	return b.WithGitFile(ref, sha+"\n")
}

// WithGitFile writes a file relative to the git directory.
func (b *RepoBuilder) WithGitFile(name, content string) *RepoBuilder {
	b.t.Helper()

	path := filepath.Join(b.gitDir, filepath.FromSlash(name))
	require.NoError(b.t, b.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(b.t, afero.WriteFile(b.fs, path, []byte(content), 0o644))

	return b
}

// WithFile writes a file relative to the repository root.
func (b *RepoBuilder) WithFile(name, content string) *RepoBuilder {
	b.t.Helper()

	path := filepath.Join(b.root, filepath.FromSlash(name))
	require.NoError(b.t, b.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(b.t, afero.WriteFile(b.fs, path, []byte(content), 0o644))

	return b
}

// WithReadError makes opening the git file name fail with err.
func (b *RepoBuilder) WithReadError(name string, err error) *RepoBuilder {
	b.t.Helper()
	b.failOnFile = filepath.Join(b.gitDir, filepath.FromSlash(name))
	b.failOnFileErr = err

	return b
}

// Build returns the filesystem, the repository root and the git directory.
func (b *RepoBuilder) Build() (afero.Fs, string, string) {
	b.t.Helper()

	fs := b.fs
	if b.failOnFile != "" {
		fs = &readErrorFs{
			Fs:   b.fs,
			file: b.failOnFile,
			err:  b.failOnFileErr,
		}
	}

	return fs, b.root, b.gitDir
}

type readErrorFs struct {
	afero.Fs

	err  error
	file string
}

func (f *readErrorFs) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == f.file {
		return nil, f.err
	}

	//nolint:wrapcheck
	return f.Fs.Open(name)
}

func (f *readErrorFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.Clean(name) == f.file {
		return nil, f.err
	}

	//nolint:wrapcheck
	return f.Fs.OpenFile(name, flag, perm)
}
