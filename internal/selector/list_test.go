package selector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromArgsDeduplicatesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	got := FromArgs([]string{"b.md", "a.md", "b.md", "", "docs/c.md", "a.md"})
	require.Equal(t, []string{"b.md", "a.md", "docs/c.md"}, got)
	require.Empty(t, FromArgs(nil))
}

func TestMergeCombinesSources(t *testing.T) {
	t.Parallel()

	got := Merge([]string{"a.md"}, []string{"b.md", "a.md"}, nil)
	require.Equal(t, []string{"a.md", "b.md"}, got)
}

func TestReadListSkipsBlankAndComments(t *testing.T) {
	t.Parallel()

	input := "# generated list\nREADME.md\n\n  docs/guide.md  \n#docs/skip.md\nREADME.md\n"
	got, err := ReadList(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"README.md", "docs/guide.md"}, got)
}

func TestFromFileReadsStdinAndFiles(t *testing.T) {
	t.Parallel()

	got, err := FromFile(StdinName, strings.NewReader("a.md\nb.md\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a.md", "b.md"}, got)

	listPath := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("x.md\n"), 0o644))
	got, err = FromFile(listPath, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"x.md"}, got)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
}
