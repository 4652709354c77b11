package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	gmtext "github.com/yuin/goldmark/text"
)

// parseEvents parses a markdown body and returns it as a lazily walked
// event stream. Heading attributes ({#anchor}) are enabled so authored
// documents can pin explicit anchors.
func parseEvents(body []byte) Stream {
	md := goldmark.New(goldmark.WithParserOptions(parser.WithHeadingAttribute()))
	root := md.Parser().Parse(gmtext.NewReader(body))
	return &astStream{source: body, cur: root}
}

// astStream walks a goldmark AST incrementally, producing events only as
// they are pulled. pending holds events computed ahead of their turn
// (e.g. the text and end of a code block emitted with its start).
type astStream struct {
	source  []byte
	cur     ast.Node
	stack   []ast.Node
	pending []Event
}

func (s *astStream) Next() (Event, bool) {
	for {
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, true
		}

		if s.cur != nil {
			node := s.cur
			if entersContainer(node) {
				s.stack = append(s.stack, node)
				s.cur = node.FirstChild()
				if ev, ok := containerEvent(EventStart, node, s.source); ok {
					return ev, true
				}
				continue
			}

			s.cur = node.NextSibling()
			events := s.leafEvents(node)
			if len(events) == 0 {
				continue
			}
			s.pending = events[1:]
			return events[0], true
		}

		if len(s.stack) > 0 {
			node := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.cur = node.NextSibling()
			if ev, ok := containerEvent(EventEnd, node, s.source); ok {
				return ev, true
			}
			continue
		}

		return Event{}, false
	}
}

// entersContainer reports whether the walk descends into node's children,
// emitting start/end events around them.
func entersContainer(node ast.Node) bool {
	switch node.(type) {
	case *ast.Document, *ast.Heading, *ast.Paragraph, *ast.TextBlock,
		*ast.Blockquote, *ast.List, *ast.ListItem, *ast.Emphasis,
		*ast.Link, *ast.Image:
		return true
	}
	return false
}

func containerEvent(kind EventKind, node ast.Node, source []byte) (Event, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		ev := Event{Kind: kind, Tag: TagHeading, Level: n.Level}
		if kind == EventStart {
			ev.Anchor = attributeString(n, "id")
			if class := attributeString(n, "class"); class != "" {
				ev.Classes = strings.Fields(class)
			}
		}
		return ev, true
	case *ast.Paragraph:
		return Event{Kind: kind, Tag: TagParagraph}, true
	case *ast.TextBlock:
		return Event{Kind: kind, Tag: TagTextBlock}, true
	case *ast.Blockquote:
		return Event{Kind: kind, Tag: TagBlockQuote}, true
	case *ast.List:
		return Event{Kind: kind, Tag: TagList, Ordered: n.IsOrdered(), ListStart: n.Start}, true
	case *ast.ListItem:
		return Event{Kind: kind, Tag: TagItem}, true
	case *ast.Emphasis:
		tag := TagEmphasis
		if n.Level > 1 {
			tag = TagStrong
		}
		return Event{Kind: kind, Tag: tag}, true
	case *ast.Link:
		return Event{Kind: kind, Tag: TagLink, Destination: string(n.Destination), Title: string(n.Title)}, true
	case *ast.Image:
		return Event{Kind: kind, Tag: TagImage, Destination: string(n.Destination), Title: string(n.Title)}, true
	}
	// the document root brackets the stream without events
	return Event{}, false
}

func (s *astStream) leafEvents(node ast.Node) []Event {
	switch n := node.(type) {
	case *ast.Text:
		events := []Event{{Kind: EventText, Text: string(n.Segment.Value(s.source))}}
		if n.HardLineBreak() {
			events = append(events, Event{Kind: EventHardBreak})
		} else if n.SoftLineBreak() {
			events = append(events, Event{Kind: EventSoftBreak})
		}
		return events
	case *ast.String:
		return []Event{{Kind: EventText, Text: string(n.Value)}}
	case *ast.CodeSpan:
		return []Event{{Kind: EventCodeSpan, Text: inlineText(n, s.source)}}
	case *ast.FencedCodeBlock:
		return []Event{
			{Kind: EventStart, Tag: TagCodeBlock, Language: string(n.Language(s.source))},
			{Kind: EventText, Text: blockLines(n, s.source)},
			{Kind: EventEnd, Tag: TagCodeBlock},
		}
	case *ast.CodeBlock:
		return []Event{
			{Kind: EventStart, Tag: TagCodeBlock},
			{Kind: EventText, Text: blockLines(n, s.source)},
			{Kind: EventEnd, Tag: TagCodeBlock},
		}
	case *ast.AutoLink:
		url := string(n.URL(s.source))
		return []Event{
			{Kind: EventStart, Tag: TagLink, Destination: url},
			{Kind: EventText, Text: string(n.Label(s.source))},
			{Kind: EventEnd, Tag: TagLink},
		}
	case *ast.HTMLBlock:
		return []Event{{Kind: EventHTML, Text: blockLines(n, s.source)}}
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(s.source))
		}
		return []Event{{Kind: EventHTML, Text: sb.String()}}
	case *ast.ThematicBreak:
		return []Event{{Kind: EventRule}}
	}
	return nil
}

func attributeString(node ast.Node, name string) string {
	value, ok := node.AttributeString(name)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	return ""
}

// inlineText concatenates the literal text of an inline container.
func inlineText(node ast.Node, source []byte) string {
	var sb strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}

func blockLines(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}
