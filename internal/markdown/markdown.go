package markdown

import "strings"

// Render transforms a markdown document into an HTML fragment wrapped in a
// text container. Front matter, if present, is parsed first and returned;
// a malformed block fails the whole document. rewrite may be nil.
func Render(base, text string, rewrite RewriteFunc) (string, Metadata, error) {
	meta, body, _, err := splitFrontMatter([]byte(text))
	if err != nil {
		return "", Metadata{}, err
	}

	stream := newTransform(parseEvents(body), base, rewrite, meta)
	return "<div class=\"text\">\n" + renderHTML(stream) + "</div>", meta, nil
}

// ExtractMeta derives a document's metadata without rendering it. The
// title comes from the front matter when given; otherwise from the
// literal text of the document's opening heading (no emoji or anchor
// transforms); otherwise from defaultTitle. ok is false when no source
// yields any metadata.
func ExtractMeta(text, defaultTitle string) (Metadata, bool, error) {
	meta, body, had, err := splitFrontMatter([]byte(text))
	if err != nil {
		return Metadata{}, false, err
	}

	if had && meta.Title != "" {
		return meta, true, nil
	}

	title := firstHeadingText(body)
	if title == "" {
		title = defaultTitle
	}

	if had {
		meta.Title = title
		return meta, true, nil
	}
	if title != "" {
		return Metadata{Title: title}, true, nil
	}
	return Metadata{}, false, nil
}

// firstHeadingText returns the concatenated literal text of the document's
// opening heading, or "" when the document does not start with one.
func firstHeadingText(body []byte) string {
	stream := parseEvents(body)

	first, ok := stream.Next()
	if !ok || first.Kind != EventStart || first.Tag != TagHeading {
		return ""
	}

	var sb strings.Builder
	for {
		ev, ok := stream.Next()
		if !ok || (ev.Kind == EventEnd && ev.Tag == TagHeading) {
			return sb.String()
		}
		// Only literal text runs contribute, code spans drop out.
		if ev.Kind == EventText {
			sb.WriteString(ev.Text)
		}
	}
}
