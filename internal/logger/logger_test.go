package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log = log.WithRun("abc").WithFields(map[string]any{"targets": 4})
	log.Info("starting link check")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "starting link check", entry["message"])
	require.Equal(t, "abc", entry["run_id"])
	require.EqualValues(t, 4, entry["targets"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerWithTarget(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.WithTarget("docs/README.md", 2).Warn("attempt failed")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "docs/README.md", entry["target"])
	require.EqualValues(t, 2, entry["attempt"])
	require.Equal(t, "warn", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
	require.False(t, log.DebugEnabled())
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)
	require.True(t, log.DebugEnabled())

	log.WithTarget("CONTRIBUTING.md", 0).Error(errors.New("boom"), "checker crashed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "checker crashed", entry["message"])
	require.Equal(t, "CONTRIBUTING.md", entry["target"])
	require.NotContains(t, entry, "attempt")
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerConsoleWriterWithoutColor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: true, NoColor: true, Writer: buf})
	require.NoError(t, err)

	log.WithTarget("a.md", 1).Info("passed after retry")
	out := buf.String()
	require.Contains(t, out, "passed after retry")
	require.Contains(t, out, "target=a.md")
	require.NotContains(t, out, "\x1b[")
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("x")
		nilLogger.WithTarget("a.md", 1).Debug("y")
		nilLogger.WithFields(map[string]any{"k": "v"}).Error(nil, "z")
	})
	require.NotPanics(t, func() { Nop().Warn("quiet") })
}
