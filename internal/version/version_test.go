package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString_IncludesBuildMetadata(t *testing.T) {
	prevV, prevC, prevB := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = prevV, prevC, prevB })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2024-02-01"
	require.Equal(t, "v1.2.3", Resolved())
	require.Equal(t, "publisher v1.2.3 (commit abc123, built 2024-02-01)", String())
}

func TestResolved_NeverEmpty(t *testing.T) {
	require.NotEmpty(t, Resolved())
}
