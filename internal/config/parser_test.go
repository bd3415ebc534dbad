package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	validYAML := `checker:
  command: markdown-link-check
  args: ["--config", ".github/mlc.json", "{file}"]
retry:
  max_attempts: 4
  delay: 2s
  backoff: exponential
  max_delay: 30s
run:
  parallel: 3
  timeout: 10m
`

	partialYAML := `retry:
  max_attempts: 5
`

	invalidYAML := `checker:
  command: mlc
retry: [1, 2]
`

	badAttempts := `retry:
  max_attempts: 0
`

	badBackoff := `retry:
  backoff: random
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				require.Equal(t, "markdown-link-check", cfg.Checker.Command)
				require.Equal(t, []string{"--config", ".github/mlc.json", "{file}"}, cfg.Checker.Args)
				require.Equal(t, 4, cfg.Retry.MaxAttempts)
				require.Equal(t, 2*time.Second, cfg.Retry.Delay)
				require.Equal(t, BackoffExponential, cfg.Retry.Backoff)
				require.Equal(t, 30*time.Second, cfg.Retry.MaxDelay)
				require.Equal(t, 3, cfg.Run.Parallel)
				require.Equal(t, 10*time.Minute, cfg.Run.Timeout)
			},
		},
		{
			name:     "missing keys keep defaults",
			contents: partialYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				defaults := Default()
				require.Equal(t, 5, cfg.Retry.MaxAttempts)
				require.Equal(t, defaults.Retry.Delay, cfg.Retry.Delay)
				require.Equal(t, defaults.Checker.Command, cfg.Checker.Command)
				require.Equal(t, defaults.Discover.Exclude, cfg.Discover.Exclude)
			},
		},
		{
			name:     "invalid yaml returns parse error with line",
			contents: invalidYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				require.Nil(t, cfg)
				var parseErr *linkerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "cannot unmarshal")
				require.Equal(t, 3, parseErr.Line)
			},
		},
		{
			name:     "attempt budget must be positive",
			contents: badAttempts,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *linkerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "retry.max_attempts", validationErr.Field)
			},
		},
		{
			name:     "backoff strategy must be known",
			contents: badBackoff,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *linkerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "retry.backoff", validationErr.Field)
				require.Contains(t, validationErr.Message, "oneof")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(filepath.Join(t.TempDir(), "absent.yml"))
	var parseErr *linkerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 0, parseErr.Line)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("retry:\n  max_attempts: 7\n"), 0o600))
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Retry.MaxAttempts)
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "linkretry.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
