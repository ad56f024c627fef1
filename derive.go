package vergen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	// TimestampFormat is RFC 3339 with nanoseconds and a numeric UTC offset,
	// e.g. 2018-08-09T15:15:57.282334589+00:00.
	TimestampFormat = "2006-01-02T15:04:05.000000000-07:00"

	// DateFormat is the ISO 8601 calendar date.
	DateFormat = "2006-01-02"
)

// FormatTimestamp renders t as a BUILD_TIMESTAMP value.
func FormatTimestamp(t time.Time) string { return t.UTC().Format(TimestampFormat) }

// FormatDate renders t as a BUILD_DATE value.
func FormatDate(t time.Time) string { return t.UTC().Format(DateFormat) }

// Facts derives every fact selected by flags.
//
// Failures to read SHA, SHA_SHORT and COMMIT_DATE from git omit the fact.
// A semver fact fails hard, with a *DerivationError, only when neither git
// nor the package version can provide it.
//
// BUILD_TIMESTAMP and BUILD_DATE are taken from a single clock reading.
func (g *Generator) Facts(ctx context.Context, flags Flags) (Facts, error) {
	facts, _, err := g.collect(ctx, flags)
	return facts, err
}

// collect derives the facts selected by flags and reports why omitted facts
// were dropped.
func (g *Generator) collect(ctx context.Context, flags Flags) (Facts, map[Key]error, error) {
	var facts Facts

	omitted := make(map[Key]error)
	now := g.clock.Now()

	for _, fk := range factKeys {
		if !flags.Contains(fk.flag) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return Facts{}, nil, fmt.Errorf("vergen: derivation interrupted: %w", err)
		}

		value, err := g.derive(ctx, fk.key, flags, now)
		if err != nil {
			var derr *DerivationError
			if errors.As(err, &derr) {
				return Facts{}, nil, err
			}

			g.logger.WarnContext(ctx, "vergen: omitting fact",
				slog.String("key", string(fk.key)),
				slog.Any("error", err))

			omitted[fk.key] = err

			continue
		}

		g.logger.DebugContext(ctx, "vergen: derived fact",
			slog.String("key", string(fk.key)),
			slog.String("value", value))

		facts.set(fk.key, value)
	}

	return facts, omitted, nil
}

func (g *Generator) derive(ctx context.Context, key Key, flags Flags, now time.Time) (string, error) {
	switch key {
	case KeyBuildTimestamp:
		return FormatTimestamp(now), nil
	case KeyBuildDate:
		return FormatDate(now), nil
	case KeySHA:
		//nolint:wrapcheck
		return g.inspector.CommitSHA(ctx)
	case KeySHAShort:
		//nolint:wrapcheck
		return g.inspector.CommitSHAShort(ctx)
	case KeyCommitDate:
		//nolint:wrapcheck
		return g.inspector.CommitDate(ctx)
	case KeyTargetTriple:
		return g.env.Triple(), nil
	case KeySemver:
		return g.semver(ctx, key, flags, false)
	case KeySemverLightweight:
		return g.semver(ctx, key, flags, true)
	}

	return "", fmt.Errorf("vergen: unknown fact %q", key)
}

// semver resolves a semantic version: the package version when SemverFromPkg
// is set, otherwise git describe with the package version as fallback.
func (g *Generator) semver(ctx context.Context, key Key, flags Flags, lightweight bool) (string, error) {
	pkgVersion := g.env.Semver()

	if flags.Contains(SemverFromPkg) {
		if pkgVersion == "" {
			return "", &DerivationError{Key: key, Err: ErrNoPackageVersion}
		}

		return pkgVersion, nil
	}

	desc, err := g.inspector.Describe(ctx, lightweight)
	if err == nil {
		return desc, nil
	}

	if pkgVersion == "" {
		return "", &DerivationError{Key: key, Err: errors.Join(ErrNoPackageVersion, err)}
	}

	g.logger.DebugContext(ctx, "vergen: describe unavailable, using package version",
		slog.String("key", string(key)),
		slog.Bool("lightweight", lightweight),
		slog.Any("error", err))

	return pkgVersion, nil
}
