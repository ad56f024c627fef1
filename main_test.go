package vergen_test

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"go.inout.gg/vergen"
	"go.inout.gg/vergen/internal/clock"
	"go.inout.gg/vergen/internal/testutil"
)

const (
	testSHA      = "75b390dc6c05a6a4aa2791cc7b3934591803bc22"
	testSHAShort = "75b390d"
	testDate     = "2018-08-08"
	testTriple   = "x86_64-unknown-linux-gnu"
)

//nolint:gochecknoglobals
var (
	buildInstant = time.Date(2018, 8, 9, 15, 15, 57, 282334589, time.UTC)
	fixedClock   = clock.Fixed{T: buildInstant}
	testEnv      = vergen.Env{PkgVersion: "0.1.0", Target: testTriple}
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// taggedInspector describes a repository whose HEAD carries the annotated
// tag v0.1.0.
func taggedInspector() *testutil.FakeInspector {
	//nolint:exhaustruct
	return &testutil.FakeInspector{
		SHA:         testSHA,
		SHAShort:    testSHAShort,
		Date:        testDate,
		Annotated:   "v0.1.0",
		Lightweight: "v0.1.0",
	}
}

func newGenerator(t *testing.T, inspector *testutil.FakeInspector, opts ...vergen.Option) *vergen.Generator {
	t.Helper()

	fs, _, gitDir := testutil.NewRepoBuilder(t).
		WithBranch("main").
		WithRef("refs/heads/main", testSHA).
		Build()

	opts = append([]vergen.Option{
		vergen.WithInspector(inspector),
		vergen.WithClock(fixedClock),
		vergen.WithEnv(testEnv),
		vergen.WithFs(fs),
		vergen.WithGitDir(gitDir),
	}, opts...)

	return vergen.NewGenerator(vergen.NewConfig(opts...))
}
