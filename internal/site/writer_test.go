package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

func TestWritePage(t *testing.T) {
	out := t.TempDir()

	full, err := WritePage(out, "api/Acme/index.html", []byte("first"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "api", "Acme", "index.html"), full)

	_, err = WritePage(out, "api/Acme/index.html", []byte("second"))
	require.NoError(t, err)
	require.Equal(t, "second", readFile(t, out, "api/Acme/index.html"))

	info, err := os.Stat(full)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWritePage_RejectsEscapingPaths(t *testing.T) {
	out := t.TempDir()
	for _, p := range []string{"", "../outside.html", "a/../../outside.html", "/abs.html"} {
		_, err := WritePage(out, p, []byte("x"))
		require.Error(t, err, p)
		require.True(t, derrors.IsCategory(err, derrors.CategoryContract), p)
	}
}

func TestCleanOutput(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "site")
	writeFile(t, out, "stale.html", "old")

	require.NoError(t, cleanOutput(out, root))
	_, err := os.Stat(out)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, cleanOutput(out, root), "missing directory is not an error")
	require.Error(t, cleanOutput(root, root))
}
