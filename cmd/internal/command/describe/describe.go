package describe

import (
	"context"

	"github.com/urfave/cli/v3"

	"go.inout.gg/vergen/cmd/internal/command/commandutil"
	"go.inout.gg/vergen/vergencli"
)

func NewCommand() *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:  "describe",
		Usage: "print the nearest tag, distance and hash of HEAD",
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.BoolFlag{
				Name:  "tags",
				Usage: "consider lightweight tags too",
				Value: false,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			//nolint:exhaustruct
			args := vergencli.DescribeArgs{
				RepoArgs: vergencli.RepoArgs{
					RepoDir:    cmd.String(commandutil.Repo),
					GitTimeout: commandutil.Timeout(cmd),
				},
				Lightweight: cmd.Bool("tags"),
			}

			return vergencli.Describe(ctx, cmd.Root().Writer, args)
		},
	}
}
