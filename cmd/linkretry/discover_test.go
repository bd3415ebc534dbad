package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverCommandListsCandidates(t *testing.T) {
	root := t.TempDir()
	writeDocs(t, root, "README.md", "Changelog.md", "docs/b.md", "docs/a.md", "image.png")

	res := executeCommand(t, "", "discover", "--no-git", root)
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Equal(t, []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "a.md"),
		filepath.Join(root, "docs", "b.md"),
	}, lines)
}

func TestDiscoverCommandRejectsExtraArgs(t *testing.T) {
	res := executeCommand(t, "", "discover", "a", "b")
	require.Error(t, res.err)
}
