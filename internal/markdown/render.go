package markdown

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// renderHTML serializes an event stream to HTML. Text is escaped; EventHTML
// passes through raw, matching how authored markdown embeds HTML.
func renderHTML(src Stream) string {
	var sb strings.Builder
	for {
		ev, ok := src.Next()
		if !ok {
			return sb.String()
		}

		switch ev.Kind {
		case EventText:
			sb.WriteString(html.EscapeString(ev.Text))
		case EventCodeSpan:
			sb.WriteString("<code>")
			sb.WriteString(html.EscapeString(ev.Text))
			sb.WriteString("</code>")
		case EventSoftBreak:
			sb.WriteString("\n")
		case EventHardBreak:
			sb.WriteString("<br>\n")
		case EventRule:
			sb.WriteString("<hr>\n")
		case EventHTML:
			sb.WriteString(ev.Text)
		case EventStart:
			if ev.Tag == TagImage {
				renderImage(&sb, src, ev)
				continue
			}
			renderStart(&sb, ev)
		case EventEnd:
			renderEnd(&sb, ev)
		}
	}
}

func renderStart(sb *strings.Builder, ev Event) {
	switch ev.Tag {
	case TagParagraph:
		sb.WriteString("<p>")
	case TagHeading:
		fmt.Fprintf(sb, "<h%d", ev.Level)
		if ev.Anchor != "" {
			fmt.Fprintf(sb, ` id="%s"`, html.EscapeString(ev.Anchor))
		}
		if len(ev.Classes) > 0 {
			fmt.Fprintf(sb, ` class="%s"`, html.EscapeString(strings.Join(ev.Classes, " ")))
		}
		sb.WriteString(">")
	case TagBlockQuote:
		sb.WriteString("<blockquote>\n")
	case TagCodeBlock:
		sb.WriteString("<pre><code")
		if ev.Language != "" {
			fmt.Fprintf(sb, ` class="language-%s"`, html.EscapeString(ev.Language))
		}
		sb.WriteString(">")
	case TagList:
		if ev.Ordered {
			sb.WriteString("<ol")
			if ev.ListStart != 1 {
				sb.WriteString(` start="` + strconv.Itoa(ev.ListStart) + `"`)
			}
			sb.WriteString(">\n")
		} else {
			sb.WriteString("<ul>\n")
		}
	case TagItem:
		sb.WriteString("<li>")
	case TagEmphasis:
		sb.WriteString("<em>")
	case TagStrong:
		sb.WriteString("<strong>")
	case TagLink:
		fmt.Fprintf(sb, `<a href="%s"`, html.EscapeString(ev.Destination))
		if ev.Title != "" {
			fmt.Fprintf(sb, ` title="%s"`, html.EscapeString(ev.Title))
		}
		sb.WriteString(">")
	case TagTextBlock:
		// tight list item content renders bare
	}
}

func renderEnd(sb *strings.Builder, ev Event) {
	switch ev.Tag {
	case TagParagraph:
		sb.WriteString("</p>\n")
	case TagHeading:
		fmt.Fprintf(sb, "</h%d>\n", ev.Level)
	case TagBlockQuote:
		sb.WriteString("</blockquote>\n")
	case TagCodeBlock:
		sb.WriteString("</code></pre>\n")
	case TagList:
		if ev.Ordered {
			sb.WriteString("</ol>\n")
		} else {
			sb.WriteString("</ul>\n")
		}
	case TagItem:
		sb.WriteString("</li>\n")
	case TagEmphasis:
		sb.WriteString("</em>")
	case TagStrong:
		sb.WriteString("</strong>")
	case TagLink:
		sb.WriteString("</a>")
	case TagTextBlock:
	}
}

// renderImage drains the image's label events and emits a self-contained
// img tag with the collected alt text.
func renderImage(sb *strings.Builder, src Stream, start Event) {
	var alt strings.Builder
	for {
		ev, ok := src.Next()
		if !ok || (ev.Kind == EventEnd && ev.Tag == TagImage) {
			break
		}
		if ev.Kind == EventText || ev.Kind == EventCodeSpan {
			alt.WriteString(ev.Text)
		}
	}

	fmt.Fprintf(sb, `<img src="%s" alt="%s"`, html.EscapeString(start.Destination), html.EscapeString(alt.String()))
	if start.Title != "" {
		fmt.Fprintf(sb, ` title="%s"`, html.EscapeString(start.Title))
	}
	sb.WriteString(">")
}
