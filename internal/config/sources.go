package config

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Source is a configured first-party source root. Includes is resolved
// once at load and read-only thereafter.
type Source struct {
	Name string
	// Dir is the source root, slash-separated, relative to the input
	// directory.
	Dir string
	// Includes are the matched header files, slash-separated, relative to
	// the input directory.
	Includes []string
	// ExistsOnline enables repository browse URLs for this source.
	ExistsOnline bool
}

type rawSource struct {
	Name         string   `toml:"name"`
	Dir          string   `toml:"dir"`
	Include      []string `toml:"include"`
	Exclude      []string `toml:"exclude"`
	ExistsOnline *bool    `toml:"exists-online"`
}

// Path returns the source root as a URL path.
func (s *Source) Path() urlpath.Path {
	return urlpath.Parse(s.Dir)
}

func resolveSource(inputDir string, raw rawSource) (*Source, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	excluded, err := compileGlobs(raw.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	includes, err := expandGlobs(inputDir, raw.Dir, raw.Include, excluded)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	existsOnline := true
	if raw.ExistsOnline != nil {
		existsOnline = *raw.ExistsOnline
	}

	return &Source{
		Name:         raw.Name,
		Dir:          filepath.ToSlash(raw.Dir),
		Includes:     includes,
		ExistsOnline: existsOnline,
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// expandGlobs walks inputDir/subDir and returns the files matching any
// include pattern and none of the excluded ones. Patterns match against
// paths relative to subDir; returned paths are relative to inputDir and
// sorted for deterministic enumeration.
func expandGlobs(inputDir, subDir string, patterns []string, excluded []glob.Glob) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	included, err := compileGlobs(patterns)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(inputDir, filepath.FromSlash(subDir))
	var matched []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchAny(included, rel) || matchAny(excluded, rel) {
			return nil
		}
		matched = append(matched, path.Join(filepath.ToSlash(subDir), rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(matched)
	return matched, nil
}

func matchAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
