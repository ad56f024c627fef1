package vergencli

import (
	"context"
	"fmt"
	"io"

	"go.inout.gg/vergen/pkg/gitinfo"
)

type DescribeArgs struct {
	RepoArgs

	Lightweight bool
}

// Describe prints the parsed describe output of HEAD.
func Describe(ctx context.Context, w io.Writer, args DescribeArgs) error {
	out, err := args.inspector().Describe(ctx, args.Lightweight)
	if err != nil {
		return fmt.Errorf("failed to describe HEAD: %w", err)
	}

	d, err := gitinfo.ParseDescribe(out)
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	if _, err := fmt.Fprintf(w, "tag:      %s\ndistance: %d\nhash:     %s\ndirty:    %t\n",
		d.Tag, d.Distance, d.Hash, d.Dirty); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
