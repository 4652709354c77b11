// Package markdown transforms authored markdown into sanitized HTML.
//
// The engine re-expresses goldmark's parsed document as a lazily pulled
// stream of structural events, rewrites the stream in a single pass (emoji
// shorthand, link absolutization, heading anchors, optional QnA
// restructuring), and serializes the result. A fixed-capacity lookahead
// window in front of the source lets the transform inspect upcoming events
// without consuming them.
package markdown

// EventKind discriminates stream events.
type EventKind int

const (
	// EventStart opens the container identified by Event.Tag.
	EventStart EventKind = iota
	// EventEnd closes the container identified by Event.Tag.
	EventEnd
	// EventText is a literal text run.
	EventText
	// EventCodeSpan is an inline code span.
	EventCodeSpan
	// EventSoftBreak is a soft line break inside a block.
	EventSoftBreak
	// EventHardBreak is a hard line break inside a block.
	EventHardBreak
	// EventRule is a thematic break.
	EventRule
	// EventHTML is raw HTML passed through unchanged.
	EventHTML
)

// Tag identifies the container type of a start or end event.
type Tag int

const (
	TagParagraph Tag = iota
	// TagTextBlock is the implicit paragraph of a tight list item; it
	// brackets content without emitting markup.
	TagTextBlock
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagList
	TagItem
	TagEmphasis
	TagStrong
	TagLink
	TagImage
)

// Event is one structural markdown event. Only the fields relevant to the
// Kind and Tag are set.
type Event struct {
	Kind EventKind
	Tag  Tag

	// Text holds the literal content of text, code span, and HTML events.
	Text string

	// Heading fields.
	Level   int
	Anchor  string
	Classes []string

	// Link and image fields.
	Destination string
	Title       string

	// Code block language, from the fence info string.
	Language string

	// List fields.
	Ordered   bool
	ListStart int
}

// Stream is a pull-based source of markdown events.
type Stream interface {
	// Next returns the next event, or ok == false at end of stream.
	Next() (Event, bool)
}
