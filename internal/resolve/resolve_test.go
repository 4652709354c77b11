package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cppdoc/internal/analyzer"
	"git.home.luguber.info/inful/cppdoc/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Project: config.Project{
			Name: "Geode",
			Tree: "https://github.com/geode-sdk/geode/tree/main",
		},
		Sources: []*config.Source{
			{Name: "geode", Dir: "include", ExistsOnline: true},
			{Name: "vendored", Dir: "vendor", ExistsOnline: false},
		},
		OutputURL: "https://docs.example.com",
	}
}

func TestQualifiedName_StopsAtTranslationUnit(t *testing.T) {
	root := analyzer.NewRoot()
	ns := root.AddChild(analyzer.KindNamespace, "geode", "include/a.hpp")
	inner := ns.AddChild(analyzer.KindNamespace, "utils", "include/a.hpp")
	fn := inner.AddChild(analyzer.KindFunction, "clamp", "include/a.hpp")

	assert.Equal(t, []string{"geode", "utils", "clamp"}, QualifiedName(fn))
}

func TestQualifiedName_AnonymousScopePlaceholder(t *testing.T) {
	root := analyzer.NewRoot()
	anon := root.AddChild(analyzer.KindNamespace, "", "include/a.hpp")
	cls := anon.AddChild(analyzer.KindClass, "Hidden", "include/a.hpp")

	assert.Equal(t, []string{"_anon", "Hidden"}, QualifiedName(cls))
}

func TestQualifiedName_SourceFileParentGuard(t *testing.T) {
	// Some environments report a source file as the semantic parent
	// instead of a translation unit.
	bogus := &analyzer.Decl{Kind: analyzer.KindNamespace, Name: "main.cpp"}
	fn := bogus.AddChild(analyzer.KindFunction, "helper", "include/a.hpp")

	assert.Equal(t, []string{"helper"}, QualifiedName(fn))
}

func TestCategoryOf(t *testing.T) {
	root := analyzer.NewRoot()
	fn := root.AddChild(analyzer.KindFunction, "f", "include/a.hpp")
	cat, err := CategoryOf(fn)
	require.NoError(t, err)
	assert.Equal(t, CategoryFunction, cat)
	assert.Equal(t, "functions", cat.Prefix().String())

	_, err = CategoryOf(root)
	assert.ErrorIs(t, err, ErrNoCategory)
}

func TestRelativeURL(t *testing.T) {
	root := analyzer.NewRoot()
	ns := root.AddChild(analyzer.KindNamespace, "geode", "include/a.hpp")
	cls := ns.AddChild(analyzer.KindClass, "Node", "include/a.hpp")

	url, err := RelativeURL(cls)
	require.NoError(t, err)
	assert.Equal(t, "classes/geode/Node", url.String())
}

func TestAbsoluteURL_RegularDeclaration(t *testing.T) {
	root := analyzer.NewRoot()
	ns := root.AddChild(analyzer.KindNamespace, "geode", "include/a.hpp")
	cls := ns.AddChild(analyzer.KindClass, "Node", "include/a.hpp")

	url, err := AbsoluteURL(cls, testConfig())
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/classes/geode/Node", url)
}

func TestAbsoluteURL_StdRedirectsToCppreference(t *testing.T) {
	root := analyzer.NewRoot()
	std := root.AddChild(analyzer.KindNamespace, "std", "string")
	str := std.AddChild(analyzer.KindClass, "basic_string", "string")

	url, err := AbsoluteURL(str, testConfig())
	require.NoError(t, err)
	assert.Equal(t, "https://en.cppreference.com/w/cpp/string/basic_string", url)
}

func TestSourceOf_PrefixMatch(t *testing.T) {
	cfg := testConfig()
	root := analyzer.NewRoot()
	in := root.AddChild(analyzer.KindClass, "Node", "include/ui/Node.hpp")
	out := root.AddChild(analyzer.KindClass, "Other", "third_party/x.hpp")

	src, err := SourceOf(in, cfg)
	require.NoError(t, err)
	assert.Equal(t, "geode", src.Name)

	_, err = SourceOf(out, cfg)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestRepoURL(t *testing.T) {
	cfg := testConfig()
	root := analyzer.NewRoot()
	cls := root.AddChild(analyzer.KindClass, "Node", "include/ui/Node.hpp")

	url, err := RepoURL(cls, cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/geode-sdk/geode/tree/main/include/ui/Node.hpp", url)
}

func TestRepoURL_OfflineSource(t *testing.T) {
	cfg := testConfig()
	root := analyzer.NewRoot()
	cls := root.AddChild(analyzer.KindClass, "Dep", "vendor/dep.hpp")

	_, err := RepoURL(cls, cfg)
	assert.ErrorIs(t, err, ErrNotOnline)
}

func TestIncludePath_RelativeToSourceRoot(t *testing.T) {
	cfg := testConfig()
	root := analyzer.NewRoot()
	cls := root.AddChild(analyzer.KindClass, "Node", "include/ui/Node.hpp")

	inc, err := IncludePath(cls, cfg)
	require.NoError(t, err)
	assert.Equal(t, "ui/Node.hpp", inc.String())
}

func TestHeader_MissingLocation(t *testing.T) {
	root := analyzer.NewRoot()
	cls := root.AddChild(analyzer.KindClass, "Node", "")

	_, err := Header(cls)
	assert.ErrorIs(t, err, ErrNoLocation)
}
