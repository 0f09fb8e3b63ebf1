package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"
	require.Contains(t, String(), "docrender v1.2.3")
	require.Contains(t, String(), "commit "+GitCommit)
}
