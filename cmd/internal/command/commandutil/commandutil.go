package commandutil

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"go.inout.gg/vergen"
)

const (
	Verbose    = "verbose"
	Repo       = "repo"
	GitTimeout = "git-timeout"
	PkgVersion = "pkg-version"
	Target     = "target"
	FlagList   = "flags"
)

// factFlags binds each fact flag to its command line switch.
//
//nolint:gochecknoglobals
var factFlags = []struct {
	flag  vergen.Flags
	name  string
	usage string
	value bool
}{
	{vergen.BuildTimestamp, "build-timestamp", "emit VERGEN_BUILD_TIMESTAMP", true},
	{vergen.BuildDate, "build-date", "emit VERGEN_BUILD_DATE", true},
	{vergen.SHA, "sha", "emit VERGEN_SHA", true},
	{vergen.SHAShort, "sha-short", "emit VERGEN_SHA_SHORT", true},
	{vergen.CommitDate, "commit-date", "emit VERGEN_COMMIT_DATE", true},
	{vergen.TargetTriple, "target-triple", "emit VERGEN_TARGET_TRIPLE", true},
	{vergen.Semver, "semver", "emit VERGEN_SEMVER", true},
	{vergen.SemverLightweight, "semver-lightweight", "emit VERGEN_SEMVER_LIGHTWEIGHT", true},
	{vergen.SemverFromPkg, "semver-from-pkg", "take semver from the package version instead of git describe", false},
	{vergen.RebuildOnHeadChange, "rebuild-on-head-change", "re-run the build step when HEAD changes", true},
}

// GlobalFlags are accepted by every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		//nolint:exhaustruct
		&cli.BoolFlag{
			Name:  Verbose,
			Usage: "verbose mode",
			Value: false,
		},
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:    Repo,
			Usage:   "repository root",
			Value:   ".",
			Sources: cli.EnvVars("VERGEN_REPO"),
		},
		//nolint:exhaustruct
		&cli.DurationFlag{
			Name:    GitTimeout,
			Usage:   "timeout of a single git invocation, 0 to disable",
			Value:   0,
			Sources: cli.EnvVars("VERGEN_GIT_TIMEOUT"),
		},
	}
}

// FactFlags are the fact selectors and the environment overrides.
func FactFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(factFlags)+3)
	for _, ff := range factFlags {
		//nolint:exhaustruct
		flags = append(flags, &cli.BoolFlag{
			Name:  ff.name,
			Usage: ff.usage,
			Value: ff.value,
		})
	}

	return append(flags,
		//nolint:exhaustruct
		&cli.StringSliceFlag{
			Name:    FlagList,
			Usage:   "fact flags by name (e.g. SHA_SHORT,semver-lightweight), replacing the switches above",
			Sources: cli.EnvVars("VERGEN_FLAGS"),
		},
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:    PkgVersion,
			Usage:   "declared package version, the semver fallback",
			Sources: cli.EnvVars("VERGEN_PKG_VERSION", "PKG_VERSION", "CARGO_PKG_VERSION"),
		},
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:    Target,
			Usage:   "target triple, defaults to <GOARCH>-<GOOS>",
			Sources: cli.EnvVars("VERGEN_TARGET", "TARGET"),
		},
	)
}

// Flags collects the fact selectors of cmd. A --flags list, when given,
// replaces the individual switches.
func Flags(cmd *cli.Command) (vergen.Flags, error) {
	flags := vergen.NoFlags

	if cmd.IsSet(FlagList) {
		for _, name := range cmd.StringSlice(FlagList) {
			f, err := vergen.ParseFlag(name)
			if err != nil {
				//nolint:wrapcheck
				return vergen.NoFlags, err
			}

			flags |= f
		}

		return flags, nil
	}

	for _, ff := range factFlags {
		if cmd.Bool(ff.name) {
			flags = flags.Toggle(ff.flag)
		}
	}

	return flags, nil
}

// Env loads the build environment and applies the command line overrides.
func Env(cmd *cli.Command) (vergen.Env, error) {
	env, err := vergen.LoadEnv()
	if err != nil {
		//nolint:wrapcheck
		return env, err
	}

	if v := cmd.String(PkgVersion); v != "" {
		env.PkgVersion = v
	}

	if v := cmd.String(Target); v != "" {
		env.Target = v
	}

	return env, nil
}

// Timeout returns the git timeout of cmd.
func Timeout(cmd *cli.Command) time.Duration { return cmd.Duration(GitTimeout) }

type ctx struct{}

//nolint:gochecknoglobals
var kCtx = &ctx{}

// OnBeforeHook attaches a stderr logger to the context. Stdout is reserved
// for the directive stream.
func OnBeforeHook(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool(Verbose) {
		level = slog.LevelDebug
	}

	//nolint:exhaustruct
	logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level}))

	return context.WithValue(ctx, kCtx, logger), nil
}

// Logger returns the logger attached by OnBeforeHook.
func Logger(ctx context.Context) (*slog.Logger, error) {
	if l, ok := ctx.Value(kCtx).(*slog.Logger); ok {
		return l, nil
	}

	return nil, fmt.Errorf("vergen: logger is not attached to the context")
}
