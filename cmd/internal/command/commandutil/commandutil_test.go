package commandutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"go.inout.gg/vergen"
)

// runFlags parses args against FactFlags and returns the selected flags.
func runFlags(t *testing.T, args ...string) (vergen.Flags, error) {
	t.Helper()

	var (
		selected vergen.Flags
		flagsErr error
	)

	//nolint:exhaustruct
	cmd := &cli.Command{
		Name:      "test",
		Flags:     FactFlags(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Action: func(_ context.Context, cmd *cli.Command) error {
			selected, flagsErr = Flags(cmd)
			return nil
		},
	}

	require.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))

	return selected, flagsErr
}

func TestFlags(t *testing.T) {
	t.Parallel()

	t.Run("should select the default flags, when nothing is given", func(t *testing.T) {
		t.Parallel()

		flags, err := runFlags(t)

		require.NoError(t, err)
		assert.Equal(t, vergen.DefaultFlags, flags)
	})

	t.Run("should drop a fact, when its switch is turned off", func(t *testing.T) {
		t.Parallel()

		flags, err := runFlags(t, "--sha=false", "--semver-from-pkg")

		require.NoError(t, err)
		assert.False(t, flags.Contains(vergen.SHA))
		assert.True(t, flags.Contains(vergen.SemverFromPkg))
	})

	t.Run("should replace the switches, when a flag list is given", func(t *testing.T) {
		t.Parallel()

		// Act
		flags, err := runFlags(t, "--flags", "SHA_SHORT", "--flags", "semver-lightweight", "--flags", "semver_from_pkg")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, vergen.SHAShort|vergen.SemverLightweight|vergen.SemverFromPkg, flags)
	})

	t.Run("should fail, when the flag list names an unknown flag", func(t *testing.T) {
		t.Parallel()

		_, err := runFlags(t, "--flags", "commit-author")

		require.Error(t, err)
		assert.ErrorContains(t, err, "commit-author")
	})
}
