package generate

import (
	"context"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/vergen"
	"go.inout.gg/vergen/cmd/internal/command/commandutil"
	"go.inout.gg/vergen/vergencli"
)

const (
	outDir   = "out-dir"
	pkg      = "package"
	filename = "filename"
)

func NewCommand(fs afero.Fs, clk vergen.Clock) *cli.Command {
	flags := append(commandutil.FactFlags(),
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:    outDir,
			Usage:   "directory the version file is written to",
			Sources: cli.EnvVars("VERGEN_OUT_DIR", "OUT_DIR"),
		},
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:    pkg,
			Usage:   "package name of the version file",
			Sources: cli.EnvVars("VERGEN_GOPACKAGE", "GOPACKAGE"),
		},
		//nolint:exhaustruct
		&cli.StringFlag{
			Name:  filename,
			Usage: "name of the version file",
			Value: vergencli.DefaultFilename,
		},
	)

	//nolint:exhaustruct
	return &cli.Command{
		Name:  "generate",
		Usage: "write a Go file declaring the selected facts as constants",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := commandutil.Logger(ctx)
			if err != nil {
				return err
			}

			env, err := commandutil.Env(cmd)
			if err != nil {
				return err
			}

			selected, err := commandutil.Flags(cmd)
			if err != nil {
				return err
			}

			args := vergencli.GenerateArgs{
				//nolint:exhaustruct
				FactArgs: vergencli.FactArgs{
					RepoArgs: vergencli.RepoArgs{
						RepoDir:    cmd.String(commandutil.Repo),
						GitTimeout: commandutil.Timeout(cmd),
					},
					Flags: selected,
					Env:   env,
				},
				OutDir:   cmd.String(outDir),
				Package:  cmd.String(pkg),
				Filename: cmd.String(filename),
			}

			_, err = vergencli.Generate(ctx, fs, clk, logger, args)

			//nolint:wrapcheck
			return err
		},
	}
}
