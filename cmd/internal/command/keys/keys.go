package keys

import (
	"context"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/vergen"
	"go.inout.gg/vergen/cmd/internal/command/commandutil"
	"go.inout.gg/vergen/vergencli"
)

func NewCommand(fs afero.Fs, clk vergen.Clock) *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:  "keys",
		Usage: "print build-step directives for the selected facts",
		Flags: commandutil.FactFlags(),
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

			//nolint:exhaustruct
			args := vergencli.KeysArgs{
				FactArgs: vergencli.FactArgs{
					RepoArgs: vergencli.RepoArgs{
						RepoDir:    cmd.String(commandutil.Repo),
						GitTimeout: commandutil.Timeout(cmd),
					},
					Flags: selected,
					Env:   env,
				},
			}

			return vergencli.Keys(ctx, cmd.Root().Writer, fs, clk, logger, args)
		},
	}
}
