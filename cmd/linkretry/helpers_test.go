package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

func executeCommand(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()

	root := newRootCmd()
	root.SetArgs(args)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script checkers require a POSIX shell")
	}
}

// writeChecker creates an executable shell script and a config file that
// points at it with zero retry delay.
func writeChecker(t *testing.T, body string, extraConfig string) (dir, configPath string) {
	t.Helper()
	skipOnWindows(t)

	dir = t.TempDir()
	script := filepath.Join(dir, "checker.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	configPath = filepath.Join(dir, "linkretry.yml")
	contents := fmt.Sprintf(`checker:
  command: %s
  args: ["{file}"]
retry:
  max_attempts: 3
  delay: 0s
%s`, script, extraConfig)
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))
	return dir, configPath
}

func writeDocs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# "+name+"\n"), 0o644))
		paths = append(paths, p)
	}
	return paths
}

// flakyChecker fails the first attempt for every file, then passes.
func flakyChecker(stateDir string) string {
	return fmt.Sprintf(`f="%s/$(basename "$1").count"
n=$(cat "$f" 2>/dev/null || echo 0)
n=$((n+1))
echo "$n" > "$f"
if [ "$n" -lt 2 ]; then
  echo "[✖] https://flaky.example/$(basename "$1") → Status: 503" >&2
  exit 1
fi
echo "[✓] all links in $1"`, stateDir)
}
