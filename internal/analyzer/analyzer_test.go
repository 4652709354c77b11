package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHeader(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return name
}

func find(root *Decl, kind Kind, name string) *Decl {
	var found *Decl
	root.Walk(func(d *Decl) {
		if found == nil && d.Kind == kind && d.Name == name {
			found = d
		}
	})
	return found
}

func TestParse_NamespaceAndClassNesting(t *testing.T) {
	dir := t.TempDir()
	header := writeHeader(t, dir, "include/Node.hpp", `
namespace geode {
namespace ui {
	class Node {
	public:
		void update();
	};
}
}
`)

	root, err := Parse(context.Background(), dir, []string{header})
	require.NoError(t, err)

	node := find(root, KindClass, "Node")
	require.NotNil(t, node)
	assert.Equal(t, "ui", node.Parent.Name)
	assert.Equal(t, KindNamespace, node.Parent.Kind)
	assert.Equal(t, "geode", node.Parent.Parent.Name)
	assert.Equal(t, "include/Node.hpp", node.File)
}

func TestParse_FreeFunctionsAndMethodsDiffer(t *testing.T) {
	dir := t.TempDir()
	header := writeHeader(t, dir, "utils.hpp", `
namespace geode {
	int clamp(int v, int lo, int hi);

	struct Timer {
		void reset();
	};
}
`)

	root, err := Parse(context.Background(), dir, []string{header})
	require.NoError(t, err)

	assert.NotNil(t, find(root, KindFunction, "clamp"))
	assert.NotNil(t, find(root, KindStruct, "Timer"))
	// member functions are not standalone declarations
	assert.Nil(t, find(root, KindFunction, "reset"))
}

func TestParse_ReopenedNamespacesCollapse(t *testing.T) {
	dir := t.TempDir()
	a := writeHeader(t, dir, "a.hpp", "namespace geode { class A {}; }\n")
	b := writeHeader(t, dir, "b.hpp", "namespace geode { class B {}; }\n")

	root, err := Parse(context.Background(), dir, []string{a, b})
	require.NoError(t, err)

	var namespaces int
	root.Walk(func(d *Decl) {
		if d.Kind == KindNamespace && d.Name == "geode" {
			namespaces++
		}
	})
	assert.Equal(t, 1, namespaces)
	assert.Equal(t, find(root, KindClass, "A").Parent, find(root, KindClass, "B").Parent)
}

func TestParse_QualifiedFunctionReentersScope(t *testing.T) {
	dir := t.TempDir()
	header := writeHeader(t, dir, "impl.hpp", "int geode::utils::clamp(int v);\n")

	root, err := Parse(context.Background(), dir, []string{header})
	require.NoError(t, err)

	clamp := find(root, KindFunction, "clamp")
	require.NotNil(t, clamp)
	assert.Equal(t, "utils", clamp.Parent.Name)
	assert.Equal(t, "geode", clamp.Parent.Parent.Name)
}

func TestParse_MissingHeaderIsSkipped(t *testing.T) {
	dir := t.TempDir()

	root, err := Parse(context.Background(), dir, []string{"nope.hpp"})
	require.NoError(t, err)
	assert.Empty(t, root.Children())
}
