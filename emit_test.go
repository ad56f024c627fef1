package vergen_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/vergen"
	"go.inout.gg/vergen/internal/testutil"
	"go.inout.gg/vergen/pkg/gitinfo"
	"go.inout.gg/vergen/pkg/headref"
)

func TestGenerator_Keys(t *testing.T) {
	t.Parallel()

	t.Run("should emit facts in flag order followed by HEAD triggers", func(t *testing.T) {
		t.Parallel()

		// Arrange
		g := newGenerator(t, taggedInspector())
		recorder := new(bytes.Buffer)

		// Act
		err := g.Keys(t.Context(), recorder, vergen.DefaultFlags)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"cargo:rustc-env=VERGEN_BUILD_TIMESTAMP=2018-08-09T15:15:57.282334589+00:00",
			"cargo:rustc-env=VERGEN_BUILD_DATE=2018-08-09",
			"cargo:rustc-env=VERGEN_SHA=75b390dc6c05a6a4aa2791cc7b3934591803bc22",
			"cargo:rustc-env=VERGEN_SHA_SHORT=75b390d",
			"cargo:rustc-env=VERGEN_COMMIT_DATE=2018-08-08",
			"cargo:rustc-env=VERGEN_TARGET_TRIPLE=x86_64-unknown-linux-gnu",
			"cargo:rustc-env=VERGEN_SEMVER=v0.1.0",
			"cargo:rustc-env=VERGEN_SEMVER_LIGHTWEIGHT=v0.1.0",
			"cargo:rerun-if-changed=/repo/.git/HEAD",
			"cargo:rerun-if-changed=/repo/.git/refs/heads/main",
			"",
		}, "\n"), recorder.String())
	})

	t.Run("should emit only triggers, when nothing but the rebuild flag is set", func(t *testing.T) {
		t.Parallel()

		g := newGenerator(t, taggedInspector())
		recorder := new(bytes.Buffer)

		err := g.Keys(t.Context(), recorder, vergen.NoFlags.Toggle(vergen.RebuildOnHeadChange))

		require.NoError(t, err)
		assert.Equal(t,
			"cargo:rerun-if-changed=/repo/.git/HEAD\ncargo:rerun-if-changed=/repo/.git/refs/heads/main\n",
			recorder.String())
	})

	t.Run("should emit only HEAD, when HEAD is detached", func(t *testing.T) {
		t.Parallel()

		// Arrange
		fs, _, gitDir := testutil.NewRepoBuilder(t).WithHead(testSHA + "\n").Build()
		g := newGenerator(t, taggedInspector(), vergen.WithFs(fs), vergen.WithGitDir(gitDir))
		recorder := new(bytes.Buffer)

		// Act
		err := g.Keys(t.Context(), recorder, vergen.RebuildOnHeadChange)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "cargo:rerun-if-changed=/repo/.git/HEAD\n", recorder.String())
	})

	t.Run("should omit keys git cannot provide, when the repository has no commits", func(t *testing.T) {
		t.Parallel()

		// Arrange
		noCommits := gitinfo.NewCommandError([]string{"rev-parse", "HEAD"}, 128,
			"fatal: ambiguous argument 'HEAD': unknown revision or path not in the working tree.")
		//nolint:exhaustruct
		inspector := &testutil.FakeInspector{
			SHAErr:         noCommits,
			SHAShortErr:    noCommits,
			DateErr:        noCommits,
			AnnotatedErr:   noCommits,
			LightweightErr: noCommits,
		}
		g := newGenerator(t, inspector)
		recorder := new(bytes.Buffer)

		// Act
		err := g.Keys(t.Context(), recorder, vergen.SHA|vergen.SHAShort|vergen.Semver)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "cargo:rustc-env=VERGEN_SEMVER=v0.1.0\n", recorder.String())
	})

	t.Run("should locate the git directory upwards, when only a work dir is given", func(t *testing.T) {
		t.Parallel()

		// Arrange
		fs, _, _ := testutil.NewRepoBuilder(t).
			WithBranch("main").
			WithFile("internal/version/doc.go", "package version\n").
			Build()
		g := newGenerator(t, taggedInspector(),
			vergen.WithFs(fs),
			vergen.WithGitDir(""),
			vergen.WithWorkDir("/repo/internal/version"))
		recorder := new(bytes.Buffer)

		// Act
		err := g.Keys(t.Context(), recorder, vergen.RebuildOnHeadChange)

		// Assert
		require.NoError(t, err)
		assert.Equal(t,
			"cargo:rerun-if-changed=/repo/.git/HEAD\ncargo:rerun-if-changed=/repo/.git/refs/heads/main\n",
			recorder.String())
	})

	t.Run("should fail without output, when no parent holds a git directory", func(t *testing.T) {
		t.Parallel()

		g := newGenerator(t, taggedInspector(),
			vergen.WithFs(afero.NewMemMapFs()),
			vergen.WithGitDir(""),
			vergen.WithWorkDir("/nowhere/sub"))
		recorder := new(bytes.Buffer)

		err := g.Keys(t.Context(), recorder, vergen.DefaultFlags)

		require.ErrorIs(t, err, vergen.ErrIO)
		require.ErrorIs(t, err, headref.ErrNoGitDir)
		assert.Empty(t, recorder.String())
	})

	t.Run("should fail without output, when HEAD cannot be read", func(t *testing.T) {
		t.Parallel()

		// Arrange
		readErr := errors.New("permission denied")
		fs, _, gitDir := testutil.NewRepoBuilder(t).
			WithBranch("main").
			WithReadError("HEAD", readErr).
			Build()
		g := newGenerator(t, taggedInspector(), vergen.WithFs(fs), vergen.WithGitDir(gitDir))
		recorder := new(bytes.Buffer)

		// Act
		err := g.Keys(t.Context(), recorder, vergen.DefaultFlags)

		// Assert
		require.ErrorIs(t, err, vergen.ErrIO)
		require.ErrorIs(t, err, readErr)
		assert.Empty(t, recorder.String())
	})

	t.Run("should fail, when there is no git directory", func(t *testing.T) {
		t.Parallel()

		g := newGenerator(t, taggedInspector(), vergen.WithFs(afero.NewMemMapFs()), vergen.WithGitDir("/nowhere/.git"))
		recorder := new(bytes.Buffer)

		err := g.Keys(t.Context(), recorder, vergen.RebuildOnHeadChange)

		require.ErrorIs(t, err, vergen.ErrIO)
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Empty(t, recorder.String())
	})

	t.Run("should fail without output, when semver cannot be derived", func(t *testing.T) {
		t.Parallel()

		g := newGenerator(t, testutil.NoTagsInspector(testSHA, testDate),
			vergen.WithEnv(vergen.Env{Target: testTriple}))
		recorder := new(bytes.Buffer)

		err := g.Keys(t.Context(), recorder, vergen.DefaultFlags)

		var derr *vergen.DerivationError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, vergen.KeySemver, derr.Key)
		assert.Empty(t, recorder.String())
	})
}

func TestGenerator_VersionFile(t *testing.T) {
	t.Parallel()

	t.Run("should declare every fact in fixed order, when all facts are selected", func(t *testing.T) {
		t.Parallel()

		// Arrange
		g := newGenerator(t, taggedInspector())

		// Act
		src, err := g.VersionFile(t.Context(), vergen.DefaultFlags, "version")

		// Assert
		require.NoError(t, err)

		content := string(src)
		order := []string{
			`const COMMIT_SHA = "75b390dc6c05a6a4aa2791cc7b3934591803bc22"`,
			`const COMMIT_SHA_SHORT = "75b390d"`,
			`const COMMIT_DATE = "2018-08-08"`,
			`const TARGET_TRIPLE = "x86_64-unknown-linux-gnu"`,
			`const SEMVER = "v0.1.0"`,
			`const SEMVER_LIGHTWEIGHT = "v0.1.0"`,
			`const BUILD_TIMESTAMP = "2018-08-09T15:15:57.282334589+00:00"`,
			`const BUILD_DATE = "2018-08-09"`,
		}

		last := -1
		for _, decl := range order {
			i := strings.Index(content, decl)
			require.GreaterOrEqual(t, i, 0, "missing %s", decl)
			assert.Greater(t, i, last, "%s out of order", decl)
			last = i
		}

		assert.Equal(t, len(order), strings.Count(content, "const "))
		snaps.MatchSnapshot(t, content)
	})

	t.Run("should only gate presence, when a subset is selected", func(t *testing.T) {
		t.Parallel()

		g := newGenerator(t, taggedInspector())

		src, err := g.VersionFile(t.Context(), vergen.BuildDate|vergen.SHAShort|vergen.RebuildOnHeadChange, "buildmeta")

		require.NoError(t, err)
		assert.Contains(t, string(src), "package buildmeta\n")
		assert.Less(t,
			strings.Index(string(src), "COMMIT_SHA_SHORT"),
			strings.Index(string(src), "BUILD_DATE"))
		assert.Equal(t, 2, strings.Count(string(src), "const "))
	})

	t.Run("should use the default package, when none is given", func(t *testing.T) {
		t.Parallel()

		g := newGenerator(t, taggedInspector())

		src, err := g.VersionFile(t.Context(), vergen.BuildDate, "")

		require.NoError(t, err)
		assert.Contains(t, string(src), "package "+vergen.DefaultPackage+"\n")
	})

	t.Run("should fail, when a selected fact cannot be derived", func(t *testing.T) {
		t.Parallel()

		// Arrange
		inspector := taggedInspector()
		inspector.DateErr = gitinfo.NewCommandError([]string{"log"}, 128,
			"fatal: your current branch 'main' does not have any commits yet")
		g := newGenerator(t, inspector)

		// Act
		src, err := g.VersionFile(t.Context(), vergen.DefaultFlags, "version")

		// Assert
		var derr *vergen.DerivationError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, vergen.KeyCommitDate, derr.Key)
		require.ErrorIs(t, err, vergen.ErrIO)
		require.ErrorIs(t, err, vergen.ErrMissingFact)
		require.ErrorIs(t, err, gitinfo.ErrNoCommits)
		assert.Nil(t, src)
	})

	t.Run("should write the file, when given a path", func(t *testing.T) {
		t.Parallel()

		// Arrange
		fs, _, gitDir := testutil.NewRepoBuilder(t).WithBranch("main").Build()
		g := newGenerator(t, taggedInspector(), vergen.WithFs(fs), vergen.WithGitDir(gitDir))

		// Act
		err := g.WriteVersionFile(t.Context(), vergen.DefaultFlags, "version", "/repo/internal/version/version.go")

		// Assert
		require.NoError(t, err)
		testutil.SnapshotFiles(t, fs, "/repo/internal/version/version.go")
	})
}
