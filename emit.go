package vergen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/format"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"go.inout.gg/vergen/internal/buildinfo"
	"go.inout.gg/vergen/internal/sliceutil"
	"go.inout.gg/vergen/internal/template"
	"go.inout.gg/vergen/pkg/headref"
)

const (
	// EnvDirective prefixes a "define this environment variable for the
	// compiler" line of the directive stream.
	EnvDirective = "cargo:rustc-env="

	// RerunDirective prefixes a "re-run the build step when this file
	// changes" line of the directive stream.
	RerunDirective = "cargo:rerun-if-changed="
)

// DefaultPackage is the package name of the version file when none is given.
const DefaultPackage = "version"

type versionConstant struct {
	key  Key
	name string
	doc  string
}

// versionConstants is the fixed order of the version file.
//
//nolint:gochecknoglobals
var versionConstants = []versionConstant{
	{KeySHA, "COMMIT_SHA", "full hash of the commit the binary was built from"},
	{KeySHAShort, "COMMIT_SHA_SHORT", "abbreviated hash of the commit the binary was built from"},
	{KeyCommitDate, "COMMIT_DATE", "date of the commit the binary was built from"},
	{KeyTargetTriple, "TARGET_TRIPLE", "target the binary was built for"},
	{KeySemver, "SEMVER", "semantic version derived from annotated tags"},
	{KeySemverLightweight, "SEMVER_LIGHTWEIGHT", "semantic version derived from any tag"},
	{KeyBuildTimestamp, "BUILD_TIMESTAMP", "instant the binary was built, RFC 3339"},
	{KeyBuildDate, "BUILD_DATE", "date the binary was built"},
}

// Keys writes the directive stream for flags to w: one EnvDirective line
// per derived fact, in flag order, followed by one RerunDirective line per
// HEAD dependency when RebuildOnHeadChange is set.
//
// Nothing is written to w when an error is returned.
func (g *Generator) Keys(ctx context.Context, w io.Writer, flags Flags) error {
	facts, err := g.Facts(ctx, flags)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	for _, f := range facts.All() {
		fmt.Fprintf(&buf, "%s%s=%s\n", EnvDirective, f.Key.EnvName(), f.Value)
	}

	if flags.Contains(RebuildOnHeadChange) {
		gitDir := g.gitDir
		if gitDir == "" {
			if gitDir, err = headref.Find(g.fs, g.workDir); err != nil {
				return fmt.Errorf("%w: failed to locate the git directory: %w", ErrIO, err)
			}
		}

		ptr, err := headref.Resolve(g.fs, gitDir)
		if err != nil {
			return fmt.Errorf("%w: failed to resolve HEAD: %w", ErrIO, err)
		}

		for _, path := range ptr.Paths() {
			fmt.Fprintf(&buf, "%s%s\n", RerunDirective, path)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: failed to write directives: %w", ErrIO, err)
	}

	return nil
}

// VersionFile renders a Go source file declaring one string constant per
// selected fact, in a fixed order regardless of flags.
//
// Unlike Keys, every selected fact must be derivable: a missing one fails
// with a *DerivationError wrapping ErrIO, ErrMissingFact and the cause.
func (g *Generator) VersionFile(ctx context.Context, flags Flags, pkg string) ([]byte, error) {
	facts, omitted, err := g.collect(ctx, flags)
	if err != nil {
		return nil, err
	}

	if pkg == "" {
		pkg = DefaultPackage
	}

	data := template.VersionFile{
		Package:     pkg,
		ToolVersion: buildinfo.Version(),
		Constants:   make([]template.Constant, 0, len(versionConstants)),
	}

	selected := sliceutil.Filter(versionConstants, func(vc versionConstant) bool {
		return flags.Contains(vc.key.Flag())
	})

	for _, vc := range selected {
		value, ok := facts.Get(vc.key)
		if !ok {
			return nil, &DerivationError{
				Key: vc.key,
				Err: errors.Join(fmt.Errorf("%w: %w", ErrIO, ErrMissingFact), omitted[vc.key]),
			}
		}

		data.Constants = append(data.Constants, template.Constant{
			Name:  vc.name,
			Doc:   vc.doc,
			Value: value,
		})
	}

	var buf bytes.Buffer
	if err := template.VersionFileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("vergen: failed to render version file: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("vergen: failed to format version file: %w", err)
	}

	return src, nil
}

// WriteVersionFile renders the version file and writes it to path on the
// Generator's filesystem, creating parent directories as needed.
func (g *Generator) WriteVersionFile(ctx context.Context, flags Flags, pkg, path string) error {
	src, err := g.VersionFile(ctx, flags, pkg)
	if err != nil {
		return err
	}

	if err := g.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrIO, filepath.Dir(path), err)
	}

	if err := afero.WriteFile(g.fs, path, src, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, path, err)
	}

	return nil
}
