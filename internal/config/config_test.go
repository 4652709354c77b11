package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ResolvesSourcesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flash.toml", `
[project]
name = "Geode"
version = "2.0.0"
tree = "https://github.com/geode-sdk/geode/tree/main"

[[sources]]
name = "geode"
dir = "include"
include = ["**.hpp"]
exclude = ["detail/**.hpp"]
`)
	writeFile(t, dir, "include/Node.hpp", "")
	writeFile(t, dir, "include/detail/Impl.hpp", "")
	writeFile(t, dir, "include/README.md", "")

	cfg, err := Load(dir, t.TempDir(), "")
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 1)
	src := cfg.Sources[0]
	assert.Equal(t, "geode", src.Name)
	assert.True(t, src.ExistsOnline)
	assert.Equal(t, []string{"include/Node.hpp"}, src.Includes)

	// unspecified templates fall back to the embedded defaults
	page, ok := cfg.Templates.Get(TemplatePage)
	require.True(t, ok)
	assert.Contains(t, page, "{{.content}}")
	assert.NotEmpty(t, cfg.Scripts.CSS)
	assert.NotEmpty(t, cfg.Scripts.JS)
}

func TestLoad_MissingConfigFails(t *testing.T) {
	_, err := Load(t.TempDir(), t.TempDir(), "")
	require.Error(t, err)
}

func TestLoad_MissingProjectNameFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flash.toml", "[project]\nversion = \"1.0\"\n")

	_, err := Load(dir, t.TempDir(), "")
	require.ErrorContains(t, err, "project.name")
}

func TestLoad_TemplateOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flash.toml", `
[project]
name = "Geode"
version = "1.0"

[templates]
page = "tpl/page.html"
`)
	writeFile(t, dir, "tpl/page.html", "<html>{{.content}}</html>")

	cfg, err := Load(dir, t.TempDir(), "")
	require.NoError(t, err)

	page, _ := cfg.Templates.Get(TemplatePage)
	assert.Equal(t, "<html>{{.content}}</html>", page)
}

func TestLoad_UnknownTemplateKindFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flash.toml", `
[project]
name = "Geode"
version = "1.0"

[templates]
sidebar = "tpl/sidebar.html"
`)

	_, err := Load(dir, t.TempDir(), "")
	require.ErrorContains(t, err, "unknown template kind")
}

func TestLoad_InvalidIgnorePatternFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flash.toml", `
[project]
name = "Geode"
version = "1.0"

[ignore]
patterns-full = ["("]
`)

	_, err := Load(dir, t.TempDir(), "")
	require.Error(t, err)
}

func TestPatterns_Matches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flash.toml", `
[project]
name = "Geode"
version = "1.0"

[ignore]
patterns-full = ["^geode::impl::"]
patterns-name = ["^_"]
`)

	cfg, err := Load(dir, t.TempDir(), "")
	require.NoError(t, err)

	assert.True(t, cfg.Ignore.Matches("geode::impl::thing", "thing"))
	assert.True(t, cfg.Ignore.Matches("geode::_private", "_private"))
	assert.False(t, cfg.Ignore.Matches("geode::Node", "Node"))
	assert.False(t, cfg.Include.Matches("geode::Node", "Node")) // nil patterns
}
