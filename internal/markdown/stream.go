package markdown

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// RewriteFunc adjusts a root-relative link destination before it is
// resolved to an absolute URL. Returning ok == false leaves the
// destination unchanged.
type RewriteFunc func(urlpath.Path) (urlpath.Path, bool)

// quoteStage tracks the synthetic QnA answer block.
type quoteStage int

const (
	quoteNone quoteStage = iota
	// quoteBegin: a level-2 heading just closed; open the quote next.
	quoteBegin
	// quoteOpen: inside the quote; close it before the next level-2
	// heading or at end of stream.
	quoteOpen
)

// transform applies the per-event rewrite rules in a single pass. It never
// buffers more than the lookahead window.
type transform struct {
	src     *Lookahead
	base    string
	rewrite RewriteFunc
	meta    Metadata

	insideCode bool
	quote      quoteStage
}

func newTransform(src Stream, base string, rewrite RewriteFunc, meta Metadata) *transform {
	return &transform{
		src:     NewLookahead(src, lookaheadCap),
		base:    base,
		rewrite: rewrite,
		meta:    meta,
	}
}

func (t *transform) Next() (Event, bool) {
	if t.quote == quoteBegin {
		t.quote = quoteOpen
		return Event{Kind: EventStart, Tag: TagBlockQuote}, true
	}
	if t.quote == quoteOpen {
		next, ok := t.src.Peek(0)
		if !ok || (next.Kind == EventStart && next.Tag == TagHeading && next.Level == 2) {
			t.quote = quoteNone
			return Event{Kind: EventEnd, Tag: TagBlockQuote}, true
		}
	}

	ev, ok := t.src.Next()
	if !ok {
		return Event{}, false
	}

	switch ev.Kind {
	case EventText:
		if !t.insideCode {
			ev.Text = substituteEmoji(ev.Text)
		}

	case EventStart:
		switch ev.Tag {
		case TagCodeBlock:
			t.insideCode = true
		case TagLink, TagImage:
			ev.Destination = t.fixDestination(ev.Destination)
		case TagHeading:
			t.prepareHeading(&ev)
		}

	case EventEnd:
		switch ev.Tag {
		case TagCodeBlock:
			t.insideCode = false
		case TagHeading:
			if t.meta.Style == StyleQnA && ev.Level == 2 {
				t.quote = quoteBegin
			}
		}
	}

	return ev, true
}

// fixDestination runs root-relative destinations through the caller's
// rewrite, then resolves anything still root-relative against the site
// base, whether or not a rewrite applied.
func (t *transform) fixDestination(dest string) string {
	if !strings.HasPrefix(dest, "/") {
		return dest
	}
	url := urlpath.Parse(dest)
	if t.rewrite != nil {
		if fixed, ok := t.rewrite(url); ok {
			url = fixed
		}
	}
	return url.ToAbsolute(t.base)
}

// prepareHeading synthesizes a missing anchor for navigable headings and
// attaches the QnA question class.
func (t *transform) prepareHeading(ev *Event) {
	if ev.Anchor == "" && ev.Level < 4 {
		ev.Anchor = slugify(t.headingText())
	}
	if t.meta.Style == StyleQnA && ev.Level < 3 {
		ev.Classes = append(ev.Classes, "qna-question")
	}
}

// headingText scans forward through the lookahead window over the
// heading's own text runs, up to its end event. Peeking leaves the events
// in place for the main pass.
func (t *transform) headingText() string {
	var parts []string
	for i := 0; ; i++ {
		peeked, ok := t.src.Peek(i)
		if !ok || (peeked.Kind == EventEnd && peeked.Tag == TagHeading) {
			break
		}
		if peeked.Kind == EventText {
			parts = append(parts, peeked.Text)
		}
	}
	return strings.Join(parts, " ")
}

// slugify lowercases, drops everything but letters, digits and spaces,
// and collapses whitespace runs to single hyphens.
func slugify(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), "-")
}
