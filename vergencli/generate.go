package vergencli

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"go.inout.gg/vergen"
)

// DefaultFilename is the name of the generated version file.
const DefaultFilename = "version.go"

type GenerateArgs struct {
	FactArgs

	// OutDir is the directory the file is written to. It falls back to
	// Env.OutDir, then to the current directory.
	OutDir string

	// Package is the package clause of the file. It falls back to
	// Env.GoPackage, then to vergen.DefaultPackage.
	Package string

	// Filename defaults to DefaultFilename.
	Filename string
}

// Generate writes the version file and returns its path.
func Generate(
	ctx context.Context,
	fs afero.Fs,
	clk vergen.Clock,
	logger *slog.Logger,
	args GenerateArgs,
) (string, error) {
	if err := args.Env.Validate(); err != nil {
		//nolint:wrapcheck
		return "", err
	}

	dir := cmp.Or(args.OutDir, args.Env.OutDir, ".")
	pkg := cmp.Or(args.Package, args.Env.GoPackage, vergen.DefaultPackage)
	path := filepath.Join(dir, cmp.Or(args.Filename, DefaultFilename))

	g := newGenerator(fs, clk, logger, args.FactArgs)
	if err := g.WriteVersionFile(ctx, args.Flags, pkg, path); err != nil {
		return "", fmt.Errorf("failed to generate version file: %w", err)
	}

	logger.InfoContext(ctx, "vergen: version file written",
		slog.String("path", path),
		slog.String("package", pkg),
		slog.String("flags", args.Flags.String()))

	return path, nil
}
