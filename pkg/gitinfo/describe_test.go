package gitinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/vergen/pkg/gitinfo"
)

func TestParseDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected gitinfo.Describe
	}{
		{"v0.1.0", gitinfo.Describe{Tag: "v0.1.0"}},
		{"v0.1.0-dirty", gitinfo.Describe{Tag: "v0.1.0", Dirty: true}},
		{"v0.1.0-3-g75b390d", gitinfo.Describe{Tag: "v0.1.0", Distance: 3, Hash: "75b390d"}},
		{"v0.1.0-12-g75b390d-dirty", gitinfo.Describe{Tag: "v0.1.0", Distance: 12, Hash: "75b390d", Dirty: true}},
		{"v1.0.0-rc.1", gitinfo.Describe{Tag: "v1.0.0-rc.1"}},
		{"v1.0.0-rc.1-2-gabcdef0", gitinfo.Describe{Tag: "v1.0.0-rc.1", Distance: 2, Hash: "abcdef0"}},
		{"release-go", gitinfo.Describe{Tag: "release-go"}},
		{"v2-x-gabcdef0", gitinfo.Describe{Tag: "v2-x-gabcdef0"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			d, err := gitinfo.ParseDescribe(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
			assert.Equal(t, tt.input, d.String())
			assert.Equal(t, tt.expected.Distance == 0, d.Exact())
		})
	}

	t.Run("should fail, when the output is empty", func(t *testing.T) {
		t.Parallel()

		_, err := gitinfo.ParseDescribe(" \n")

		require.Error(t, err)
	})

	t.Run("should fail, when there is no tag", func(t *testing.T) {
		t.Parallel()

		_, err := gitinfo.ParseDescribe("-dirty")

		require.Error(t, err)
	})
}
