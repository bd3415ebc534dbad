package selector

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinName selects standard input for --files-from.
const StdinName = "-"

// FromArgs returns the positional paths with duplicates removed. Order of
// first appearance is kept and paths are not cleaned.
func FromArgs(args []string) []string {
	return Merge(args)
}

// Merge concatenates lists, dropping empty entries and repeats.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, p := range list {
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// ReadList parses a newline-separated list of paths. Blank lines and lines
// starting with '#' are skipped; surrounding whitespace is trimmed.
func ReadList(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Merge(paths), nil
}

// FromFile reads a path list from name, or from stdin when name is "-".
func FromFile(name string, stdin io.Reader) ([]string, error) {
	if name == StdinName {
		if stdin == nil {
			stdin = os.Stdin
		}
		paths, err := ReadList(stdin)
		if err != nil {
			return nil, fmt.Errorf("read file list from stdin: %w", err)
		}
		return paths, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open file list: %w", err)
	}
	defer f.Close()

	paths, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("read file list %s: %w", name, err)
	}
	return paths, nil
}
