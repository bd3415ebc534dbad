package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	linkerrors "github.com/alexisbeaulieu97/linkretry/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file from disk on top of the defaults and
// validates the result.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, linkerrors.NewParseError(path, 0, err)
	}

	return parseBytes(path, data)
}

// Load resolves the configuration for a run. An empty path falls back to
// DefaultFile when it exists and to Default otherwise; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	if path != "" {
		return ParseConfig(path)
	}

	if _, err := os.Stat(DefaultFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			return cfg, ValidateConfig(cfg)
		}
		return nil, linkerrors.NewParseError(DefaultFile, 0, err)
	}

	return ParseConfig(DefaultFile)
}

func parseBytes(path string, data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, linkerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
