package urlpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DropsEmptySegments(t *testing.T) {
	assert.True(t, Parse("/a//b/").Equal(Parse("a/b")))
	assert.True(t, Parse("").IsEmpty())
	assert.True(t, Parse("///").IsEmpty())
}

func TestNew_SplitsEmbeddedSlashes(t *testing.T) {
	p := New("docs", "classes/geode")
	assert.Equal(t, []string{"docs", "classes", "geode"}, p.Segments())
}

func TestJoin_ConcatenatesSegments(t *testing.T) {
	p := Parse("functions").Join(Parse("geode/utils/clamp"))
	assert.Equal(t, "functions/geode/utils/clamp", p.String())
}

func TestRemoveExtension(t *testing.T) {
	p := Parse("tutorials/intro.md").RemoveExtension(".md")
	assert.Equal(t, "tutorials/intro", p.String())

	unchanged := Parse("tutorials/intro").RemoveExtension(".md")
	assert.Equal(t, "tutorials/intro", unchanged.String())
}

func TestAppendToLast(t *testing.T) {
	p := Parse("functions/clamp")
	assert.Equal(t, "functions/clamp1", p.AppendToLast("1").String())
	assert.Equal(t, "functions/clamp", p.AppendToLast("").String())
	// receiver stays untouched
	assert.Equal(t, "functions/clamp", p.String())
}

func TestStripPrefix(t *testing.T) {
	p := Parse("src/include/Geode.hpp")

	rest, ok := p.StripPrefix(Parse("src/include"))
	require.True(t, ok)
	assert.Equal(t, "Geode.hpp", rest.String())

	_, ok = p.StripPrefix(Parse("other"))
	assert.False(t, ok)
}

func TestToAbsolute(t *testing.T) {
	p := Parse("classes/CCNode")
	assert.Equal(t, "/classes/CCNode", p.ToAbsolute(""))
	assert.Equal(t, "https://docs.example.com/classes/CCNode", p.ToAbsolute("https://docs.example.com"))
	assert.Equal(t, "https://docs.example.com/classes/CCNode", p.ToAbsolute("https://docs.example.com/"))
}

func TestFromFilePath(t *testing.T) {
	assert.Equal(t, "docs/guide.md", FromFilePath("docs/guide.md").String())
}
