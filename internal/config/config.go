// Package config loads and validates the flash.toml project configuration.
//
// Configuration is resolved once at load time: template contents are read,
// source include sets are expanded, and name filters are compiled. The
// resulting Config is immutable for the rest of the run.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ConfigFileName is looked up at the root of the input directory.
const ConfigFileName = "flash.toml"

// Config is the fully resolved run configuration.
type Config struct {
	Project   Project
	Sources   []*Source
	Tutorials *Tutorials
	Templates Templates
	Scripts   Scripts
	Run       Run
	Ignore    *Patterns
	Include   *Patterns

	// Provided on the command line, not in flash.toml.
	InputDir  string
	OutputDir string
	OutputURL string
}

// Project identifies the documented project.
type Project struct {
	Name       string `toml:"name"`
	Version    string `toml:"version"`
	Repository string `toml:"repository"`
	// Tree is the base URL for browsing files in the repository,
	// e.g. https://github.com/geode-sdk/geode/tree/main.
	Tree string `toml:"tree"`
	Icon string `toml:"icon"`
}

// Tutorials configures the authored markdown pages.
type Tutorials struct {
	Dir    string   `toml:"dir"`
	Assets []string `toml:"assets"`

	// ResolvedAssets holds the asset files matched by the globs,
	// relative to the input directory.
	ResolvedAssets []string `toml:"-"`
}

// Run lists commands executed before analysis starts.
type Run struct {
	Prebuild []string `toml:"prebuild"`
}

// Patterns filters declarations by qualified name.
type Patterns struct {
	Full []*regexp.Regexp
	Name []*regexp.Regexp
}

// rawPatterns is the on-disk form of Patterns.
type rawPatterns struct {
	PatternsFull []string `toml:"patterns-full"`
	PatternsName []string `toml:"patterns-name"`
}

// rawConfig mirrors flash.toml before resolution.
type rawConfig struct {
	Project   Project           `toml:"project"`
	Sources   []rawSource       `toml:"sources"`
	Tutorials *Tutorials        `toml:"tutorials"`
	Templates map[string]string `toml:"templates"`
	Run       Run               `toml:"run"`
	Ignore    *rawPatterns      `toml:"ignore"`
	Include   *rawPatterns      `toml:"include"`
}

// Load reads flash.toml from inputDir and resolves it into a Config. Any
// failure here is fatal: the build never starts on a partial configuration.
func Load(inputDir, outputDir, outputURL string) (*Config, error) {
	// Optional .env for values referenced via ${VAR} in flash.toml.
	if err := godotenv.Load(filepath.Join(inputDir, ".env")); err == nil {
		slog.Debug("Loaded environment from .env")
	}

	path := filepath.Join(inputDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal([]byte(os.ExpandEnv(string(data))), &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	if raw.Project.Name == "" {
		return nil, fmt.Errorf("%s: project.name is required", ConfigFileName)
	}

	cfg := &Config{
		Project:   raw.Project,
		Tutorials: raw.Tutorials,
		Run:       raw.Run,
		InputDir:  inputDir,
		OutputDir: outputDir,
		OutputURL: outputURL,
	}

	for _, rs := range raw.Sources {
		src, err := resolveSource(inputDir, rs)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", rs.Name, err)
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	if cfg.Tutorials != nil {
		assets, err := expandGlobs(inputDir, "", cfg.Tutorials.Assets, nil)
		if err != nil {
			return nil, fmt.Errorf("tutorial assets: %w", err)
		}
		cfg.Tutorials.ResolvedAssets = assets
	}

	cfg.Templates, err = loadTemplates(inputDir, raw.Templates)
	if err != nil {
		return nil, err
	}
	cfg.Scripts = defaultScripts()

	if cfg.Ignore, err = compilePatterns(raw.Ignore); err != nil {
		return nil, fmt.Errorf("ignore patterns: %w", err)
	}
	if cfg.Include, err = compilePatterns(raw.Include); err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}

	return cfg, nil
}

func compilePatterns(raw *rawPatterns) (*Patterns, error) {
	if raw == nil {
		return nil, nil
	}
	out := &Patterns{}
	for _, p := range raw.PatternsFull {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out.Full = append(out.Full, re)
	}
	for _, p := range raw.PatternsName {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out.Name = append(out.Name, re)
	}
	return out, nil
}

// Matches reports whether the "::"-joined qualified name or the bare name
// matches any configured pattern. A nil Patterns matches nothing.
func (p *Patterns) Matches(full, name string) bool {
	if p == nil {
		return false
	}
	for _, re := range p.Full {
		if re.MatchString(full) {
			return true
		}
	}
	for _, re := range p.Name {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// AllIncludes returns every resolved include file across all sources,
// relative to the input directory.
func (c *Config) AllIncludes() []string {
	var all []string
	for _, src := range c.Sources {
		all = append(all, src.Includes...)
	}
	return all
}
