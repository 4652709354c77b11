package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

func render(t *testing.T, text string) string {
	t.Helper()
	out, _, err := Render("https://docs.example.com", text, nil)
	require.NoError(t, err)
	return out
}

func TestRender_SynthesizesHeadingAnchor(t *testing.T) {
	out := render(t, "## Hello, World!\n")
	assert.Contains(t, out, `<h2 id="hello-world">`)
}

func TestRender_ExplicitAnchorWins(t *testing.T) {
	out := render(t, "## Hello, World! {#custom}\n")
	assert.Contains(t, out, `id="custom"`)
	assert.NotContains(t, out, `id="hello-world"`)
}

func TestRender_DeepHeadingsGetNoAnchor(t *testing.T) {
	out := render(t, "#### Details\n")
	assert.Contains(t, out, "<h4>")
	assert.NotContains(t, out, "id=")
}

func TestRender_AnchorFromMixedInlineText(t *testing.T) {
	// non-text inlines drop out of the slug; text runs join with spaces
	out := render(t, "## Using `CCNode` Effectively\n")
	assert.Contains(t, out, `id="using-effectively"`)
}

func TestRender_QnAWrapsAnswersInQuoteBlocks(t *testing.T) {
	doc := `---
style: qna
---

## What is Geode?

A mod loader.

## How do I install it?

Download it.
`
	out := render(t, doc)

	first := strings.Index(out, "</h2>")
	require.Greater(t, first, 0)
	after := out[first:]
	assert.Contains(t, after, "<blockquote>")
	// one quote per question, closed before the next question
	assert.Equal(t, 2, strings.Count(out, "<blockquote>"))
	assert.Equal(t, 2, strings.Count(out, "</blockquote>"))
	assert.Contains(t, out, `class="qna-question"`)
}

func TestRender_DefaultStyleNeverWraps(t *testing.T) {
	out := render(t, "## One\n\ntext\n\n## Two\n\nmore\n")
	assert.NotContains(t, out, "<blockquote>")
}

func TestRender_RootRelativeLinkRewrittenAndAbsolutized(t *testing.T) {
	stripMD := func(p urlpath.Path) (urlpath.Path, bool) {
		return p.RemoveExtension(".md"), true
	}

	out, _, err := Render("https://docs.example.com", "[intro](/tutorials/intro.md)\n", stripMD)
	require.NoError(t, err)
	assert.Contains(t, out, `href="https://docs.example.com/tutorials/intro"`)
}

func TestRender_RootRelativeLinkAbsolutizedWithoutRewrite(t *testing.T) {
	out := render(t, "[intro](/tutorials/intro)\n")
	assert.Contains(t, out, `href="https://docs.example.com/tutorials/intro"`)
}

func TestRender_ExternalLinkUntouched(t *testing.T) {
	out := render(t, "[gh](https://github.com)\n")
	assert.Contains(t, out, `href="https://github.com"`)
}

func TestRender_EmojiSubstitutedInProse(t *testing.T) {
	out := render(t, "launch :rocket: now\n")
	assert.Contains(t, out, "🚀")
}

func TestRender_EmojiUntouchedInCodeBlock(t *testing.T) {
	out := render(t, "```\nlaunch :rocket: now\n```\n")
	assert.NotContains(t, out, "🚀")
	assert.Contains(t, out, ":rocket:")
}

func TestRender_CodeBlockLanguageClass(t *testing.T) {
	out := render(t, "```cpp\nint main();\n```\n")
	assert.Contains(t, out, `<code class="language-cpp">`)
}

func TestRender_MalformedFrontMatterFails(t *testing.T) {
	_, _, err := Render("", "---\ntitle: unclosed\n", nil)
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestRender_ImageAltText(t *testing.T) {
	out := render(t, "![a screenshot](/assets/shot.png)\n")
	assert.Contains(t, out, `<img src="https://docs.example.com/assets/shot.png" alt="a screenshot">`)
}

func TestExtractMeta_FrontMatterTitleWins(t *testing.T) {
	meta, ok, err := ExtractMeta("---\ntitle: Configured\n---\n# Heading\n", "Default")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Configured", meta.Title)
}

func TestExtractMeta_FirstHeadingBecomesTitle(t *testing.T) {
	meta, ok, err := ExtractMeta("# My Guide\n\nIntro text.\n", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "My Guide", meta.Title)
}

func TestExtractMeta_HeadingTextIsLiteral(t *testing.T) {
	meta, ok, err := ExtractMeta("# Using CCNode :rocket:\n", "")
	require.NoError(t, err)
	require.True(t, ok)
	// no slug, emoji, or markup transforms on the derived title
	assert.Equal(t, "Using CCNode :rocket:", meta.Title)
}

func TestExtractMeta_HeadingCodeSpansDropOut(t *testing.T) {
	meta, ok, err := ExtractMeta("# Using `CCNode` safely\n", "")
	require.NoError(t, err)
	require.True(t, ok)
	// Only the literal text runs survive into the title.
	assert.Equal(t, "Using  safely", meta.Title)
}

func TestExtractMeta_FallsBackToDefault(t *testing.T) {
	meta, ok, err := ExtractMeta("Just prose.\n", "Fallback")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Fallback", meta.Title)
}

func TestExtractMeta_NothingYieldsNoMetadata(t *testing.T) {
	_, ok, err := ExtractMeta("Just prose.\n", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractMeta_FrontMatterWithoutTitleUsesHeading(t *testing.T) {
	meta, ok, err := ExtractMeta("---\nicon: star\n---\n# From Heading\n", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "From Heading", meta.Title)
	assert.Equal(t, "star", meta.Icon)
}

func TestMetadata_StyleParsing(t *testing.T) {
	meta, _, _, err := splitFrontMatter([]byte("---\nstyle: qna\n---\nbody"))
	require.NoError(t, err)
	assert.Equal(t, StyleQnA, meta.Style)

	_, _, _, err = splitFrontMatter([]byte("---\nstyle: exotic\n---\nbody"))
	assert.Error(t, err)
}
