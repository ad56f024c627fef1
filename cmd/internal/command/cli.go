package command

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/vergen/cmd/internal/command/commandutil"
	"go.inout.gg/vergen/cmd/internal/command/describe"
	"go.inout.gg/vergen/cmd/internal/command/generate"
	"go.inout.gg/vergen/cmd/internal/command/keys"
	"go.inout.gg/vergen/internal/buildinfo"
	"go.inout.gg/vergen/internal/clock"
)

// Execute evaluates given os.Args and executes a matched command.
func Execute(ctx context.Context) error {
	fs := afero.NewOsFs()

	var clk clock.System

	//nolint:exhaustruct
	cmd := &cli.Command{
		Name:      "vergen",
		Usage:     "Generate build-time provenance from git and the build environment.",
		Version:   version(),
		Flags:     commandutil.GlobalFlags(),
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Before:    commandutil.OnBeforeHook,
		Commands: []*cli.Command{
			keys.NewCommand(fs, clk),
			generate.NewCommand(fs, clk),
			describe.NewCommand(),
		},
	}

	//nolint:wrapcheck
	return cmd.Run(ctx, os.Args)
}

func version() string {
	v := buildinfo.Version()
	if rev := buildinfo.Revision(); rev != "" {
		v += " (" + rev + ")"
	}

	return v
}
