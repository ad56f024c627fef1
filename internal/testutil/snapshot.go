package testutil

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SnapshotFiles matches the content of the given files, in the given order,
// against a single snapshot. Each file is introduced by a "### <path> ###"
// header line.
func SnapshotFiles(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()

	var b strings.Builder

	for _, p := range paths {
		content, err := afero.ReadFile(fs, p)
		require.NoError(t, err, "reading %s", p)

		b.WriteString("### ")
		b.WriteString(p)
		b.WriteString(" ###\n")
		b.Write(content)
		b.WriteString("\n")
	}

	snaps.MatchSnapshot(t, b.String())
}
