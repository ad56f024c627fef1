// Package vergencli implements the operations behind the vergen command
// line: emitting build-step directives, generating a version file and
// describing HEAD.
package vergencli

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"go.inout.gg/vergen"
	"go.inout.gg/vergen/pkg/gitinfo"
)

// RepoArgs locates the repository git is queried in.
type RepoArgs struct {
	// RepoDir is the directory git runs in. It may be the repository root or
	// any directory below it. Empty means the current directory.
	RepoDir string

	// GitTimeout bounds every git invocation. Zero disables it.
	GitTimeout time.Duration

	// Inspector replaces git as the VCS data source when set.
	Inspector gitinfo.Inspector
}

func (a RepoArgs) inspector() gitinfo.Inspector {
	if a.Inspector != nil {
		return a.Inspector
	}

	//nolint:exhaustruct
	return gitinfo.New(&gitinfo.ExecRunner{Dir: a.RepoDir, Timeout: a.GitTimeout})
}


// FactArgs selects the facts to derive and the environment to derive them
// from.
type FactArgs struct {
	RepoArgs

	Flags vergen.Flags
	Env   vergen.Env
}

func newGenerator(fs afero.Fs, clk vergen.Clock, logger *slog.Logger, args FactArgs) *vergen.Generator {
	return vergen.NewGenerator(vergen.NewConfig(
		vergen.WithFs(fs),
		vergen.WithClock(clk),
		vergen.WithLogger(logger),
		vergen.WithInspector(args.inspector()),
		vergen.WithWorkDir(cmp.Or(args.RepoDir, ".")),
		vergen.WithEnv(args.Env),
	))
}
