package selector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/alexisbeaulieu97/linkretry/internal/config"
	"github.com/alexisbeaulieu97/linkretry/internal/logger"
)

// Source names where discovered paths came from.
type Source string

const (
	SourceGitIndex Source = "git-index"
	SourceWalk     Source = "walk"
)

// skipDirs are never descended into during a filesystem walk.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
}

// Options controls discovery.
type Options struct {
	Root    string
	Include []string
	Exclude []string
	// NoGit forces a filesystem walk even inside a repository.
	NoGit  bool
	Logger *logger.Logger
}

// OptionsFromConfig builds discovery options rooted at root.
func OptionsFromConfig(root string, cfg config.DiscoverConfig) Options {
	return Options{Root: root, Include: cfg.Include, Exclude: cfg.Exclude}
}

// Result is the outcome of a discovery pass.
type Result struct {
	Paths  []string
	Source Source
}

// Discover lists candidate files under opts.Root. Inside a git worktree the
// tracked files from the index are used; elsewhere the tree is walked.
// Returned paths are joined onto Root and sorted.
func Discover(opts Options) (Result, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return Result{}, fmt.Errorf("discover root: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("discover root %s is not a directory", root)
	}

	m, err := newMatcher(opts.Include, opts.Exclude)
	if err != nil {
		return Result{}, err
	}

	var (
		rels   []string
		source Source
	)
	if !opts.NoGit {
		rels, err = gitTracked(root)
		switch {
		case err == nil:
			source = SourceGitIndex
		case errors.Is(err, git.ErrRepositoryNotExists), errors.Is(err, errOutsideWorktree):
			rels = nil
		default:
			return Result{}, fmt.Errorf("read git index: %w", err)
		}
	}
	if source == "" {
		rels, err = walk(root)
		if err != nil {
			return Result{}, err
		}
		source = SourceWalk
	}

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		if !m.matches(rel) {
			continue
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
	}
	sort.Strings(paths)

	opts.Logger.WithFields(map[string]any{
		"root":   root,
		"source": string(source),
		"found":  len(paths),
	}).Debug("discovered files")

	return Result{Paths: paths, Source: source}, nil
}

var errOutsideWorktree = errors.New("root is outside the worktree")

// gitTracked returns index entries below root as slash paths relative to root.
// Entries missing from the worktree are skipped.
func gitTracked(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(absRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, errOutsideWorktree
		}
		return nil, err
	}

	prefix, err := filepath.Rel(wt.Filesystem.Root(), absRoot)
	if err != nil || prefix == ".." || strings.HasPrefix(prefix, ".."+string(filepath.Separator)) {
		return nil, errOutsideWorktree
	}
	prefix = filepath.ToSlash(prefix)

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, err
	}

	rels := make([]string, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		name := entry.Name
		if prefix != "." {
			if !strings.HasPrefix(name, prefix+"/") {
				continue
			}
			name = strings.TrimPrefix(name, prefix+"/")
		}
		if _, err := os.Stat(filepath.Join(absRoot, filepath.FromSlash(name))); err != nil {
			continue
		}
		rels = append(rels, name)
	}
	return rels, nil
}

func walk(root string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return rels, nil
}

// matcher applies include and exclude globs. A pattern without a slash is
// matched against the base name, otherwise against the relative path.
// Excludes are case-insensitive.
type matcher struct {
	include []string
	exclude []string
}

func newMatcher(include, exclude []string) (matcher, error) {
	if len(include) == 0 {
		include = config.Default().Discover.Include
	}
	lowered := make([]string, 0, len(exclude))
	for _, pattern := range exclude {
		lowered = append(lowered, strings.ToLower(pattern))
	}
	for _, pattern := range append(append([]string(nil), include...), lowered...) {
		if _, err := path.Match(pattern, ""); err != nil {
			return matcher{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
	}
	return matcher{include: include, exclude: lowered}, nil
}

func (m matcher) matches(rel string) bool {
	if !anyMatch(m.include, rel) {
		return false
	}
	return !anyMatch(m.exclude, strings.ToLower(rel))
}

func anyMatch(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		subject := base
		if strings.Contains(pattern, "/") {
			subject = rel
		}
		if ok, _ := path.Match(pattern, subject); ok {
			return true
		}
	}
	return false
}
