package vergencli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"go.inout.gg/vergen"
)

type KeysArgs struct {
	FactArgs
}

// Keys writes the build-step directive stream to w.
func Keys(
	ctx context.Context,
	w io.Writer,
	fs afero.Fs,
	clk vergen.Clock,
	logger *slog.Logger,
	args KeysArgs,
) error {
	if err := args.Env.Validate(); err != nil {
		//nolint:wrapcheck
		return err
	}

	g := newGenerator(fs, clk, logger, args.FactArgs)
	if err := g.Keys(ctx, w, args.Flags); err != nil {
		return fmt.Errorf("failed to generate keys: %w", err)
	}

	return nil
}
