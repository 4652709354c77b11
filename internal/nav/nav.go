// Package nav models the site navigation tree and renders it to HTML.
//
// Rendering is a pure function of the tree and the site base URL: no state
// is kept, so the same tree can be rendered independently for every page.
package nav

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Item is a node in the navigation tree: Root, Dir, or Link.
type Item interface {
	// Render produces the HTML fragment for this node, with link targets
	// resolved to absolute URLs against base.
	Render(base string) *html.Node
}

// Icon names a feather icon shown next to a label. Variant selects the
// accent-colored style.
type Icon struct {
	Name    string
	Variant bool
}

// Link is a leaf pointing at a page.
type Link struct {
	Label string
	URL   urlpath.Path
	Icon  *Icon
}

// Dir is a collapsible container of items.
type Dir struct {
	Label    string
	Children []Item
	Icon     *Icon
	Open     bool
}

// Root is the top of a navigation tree. With an empty Label it renders as
// a flat list; otherwise as a default-open labeled container.
type Root struct {
	Label    string
	Children []Item
}

// Render implements Item.
func (l Link) Render(base string) *html.Node {
	a := element("a", attr("href", l.URL.ToAbsolute(base)))
	appendIcon(a, l.Icon)
	a.AppendChild(textNode(l.Label))
	return a
}

// Render implements Item.
func (d Dir) Render(base string) *html.Node {
	details := element("details")
	if d.Open {
		details.Attr = append(details.Attr, attr("open", ""))
	}

	summary := element("summary")
	summary.AppendChild(element("i", attr("data-feather", "chevron-right")))
	appendIcon(summary, d.Icon)
	summary.AppendChild(textNode(d.Label))
	details.AppendChild(summary)

	body := element("div")
	for _, child := range d.Children {
		body.AppendChild(child.Render(base))
	}
	details.AppendChild(body)
	return details
}

// Render implements Item.
func (r Root) Render(base string) *html.Node {
	if r.Label == "" {
		list := element("div", attr("class", "nav-root"))
		for _, child := range r.Children {
			list.AppendChild(child.Render(base))
		}
		return list
	}
	return Dir{Label: r.Label, Children: r.Children, Open: true}.Render(base)
}

// RenderHTML serializes the rendered tree to an HTML string.
func RenderHTML(item Item, base string) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, item.Render(base)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func appendIcon(parent *html.Node, icon *Icon) {
	if icon == nil {
		return
	}
	class := "icon"
	if icon.Variant {
		class += " variant"
	}
	parent.AppendChild(element("i", attr("data-feather", icon.Name), attr("class", class)))
}
