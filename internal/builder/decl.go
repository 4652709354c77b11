package builder

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/analyzer"
	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/nav"
	"git.home.luguber.info/inful/cppdoc/internal/resolve"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// DeclEntry is the page for a single C++ declaration. Functions carry an
// overload index that keeps colliding URLs apart: the first overload keeps
// the bare URL, later ones get the index appended to the last segment.
type DeclEntry struct {
	decl     *analyzer.Decl
	category resolve.Category
	url      urlpath.Path
	overload int
	members  []nav.Item
}

// NewDeclEntry builds the entry for a declaration. overload is ignored for
// anything that is not a function.
func NewDeclEntry(d *analyzer.Decl, overload int) (*DeclEntry, error) {
	category, err := resolve.CategoryOf(d)
	if err != nil {
		return nil, fmt.Errorf("categorize %q: %w", d.Name, err)
	}
	url, err := resolve.RelativeURL(d)
	if err != nil {
		return nil, fmt.Errorf("resolve url for %q: %w", d.Name, err)
	}
	if category == resolve.CategoryFunction && overload >= 1 {
		url = url.AppendToLast(strconv.Itoa(overload))
	}
	return &DeclEntry{decl: d, category: category, url: url, overload: overload}, nil
}

func (e *DeclEntry) Name() string               { return resolve.DisplayName(e.decl) }
func (e *DeclEntry) URL() urlpath.Path          { return e.url }
func (e *DeclEntry) Decl() *analyzer.Decl       { return e.decl }
func (e *DeclEntry) Category() resolve.Category { return e.category }

func (e *DeclEntry) Nav() nav.Item {
	if e.category == resolve.CategoryNamespace {
		return &nav.Dir{
			Label:    e.Name(),
			Children: e.members,
			Icon:     &nav.Icon{Name: "folder"},
		}
	}
	return &nav.Link{
		Label: e.Name(),
		URL:   e.url,
		Icon:  categoryIcon(e.category),
	}
}

func (e *DeclEntry) Build(b *Builder) error {
	return b.createOutputFor(e)
}

func (e *DeclEntry) Output(b *Builder) (config.TemplateID, Slots, error) {
	slots := Slots{
		"title":       e.Name(),
		"description": e.description(b),
		"content":     e.contentHTML(b),
	}

	switch e.category {
	case resolve.CategoryClass, resolve.CategoryStruct, resolve.CategoryFunction:
		slots["includePath"] = e.includeHTML(b)
		slots["sourceLink"] = e.sourceHTML(b)
	}

	switch e.category {
	case resolve.CategoryClass:
		return config.TemplateClass, slots, nil
	case resolve.CategoryStruct:
		return config.TemplateStruct, slots, nil
	case resolve.CategoryFunction:
		return config.TemplateFunction, slots, nil
	default:
		return config.TemplatePage, slots, nil
	}
}

func (e *DeclEntry) description(b *Builder) string {
	return fmt.Sprintf("Documentation for the %s %s in %s",
		e.Name(), e.category, b.cfg.Project.Name)
}

// contentHTML lists the members of a namespace. Leaf declarations have no
// inline body, their page is carried by the metadata slots.
func (e *DeclEntry) contentHTML(b *Builder) string {
	if e.category != resolve.CategoryNamespace || len(e.members) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<h1>` + html.EscapeString(e.Name()) + `</h1>`)
	sb.WriteString(`<ul class="member-list">`)
	for _, item := range e.members {
		rendered, err := nav.RenderHTML(item, b.cfg.OutputURL)
		if err != nil {
			continue
		}
		sb.WriteString("<li>")
		sb.WriteString(rendered)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func (e *DeclEntry) includeHTML(b *Builder) string {
	include, err := resolve.IncludePath(e.decl, b.cfg)
	if err != nil {
		return ""
	}
	return `<code class="include">#include &lt;` + html.EscapeString(include.String()) + `&gt;</code>`
}

func (e *DeclEntry) sourceHTML(b *Builder) string {
	url, err := resolve.RepoURL(e.decl, b.cfg)
	if err != nil {
		return ""
	}
	return `<a class="source-link" href="` + html.EscapeString(url) + `">View source</a>`
}

func categoryIcon(c resolve.Category) *nav.Icon {
	switch c {
	case resolve.CategoryFunction:
		return &nav.Icon{Name: "code", Variant: true}
	case resolve.CategoryClass:
		return &nav.Icon{Name: "box"}
	case resolve.CategoryStruct:
		return &nav.Icon{Name: "package"}
	case resolve.CategoryEnum:
		return &nav.Icon{Name: "list"}
	default:
		return nil
	}
}

// sortMembers orders navigation items with directories first, then links,
// alphabetically within each group.
func sortMembers(items []nav.Item) {
	rank := func(it nav.Item) int {
		if _, ok := it.(*nav.Dir); ok {
			return 0
		}
		return 1
	}
	label := func(it nav.Item) string {
		switch v := it.(type) {
		case *nav.Dir:
			return v.Label
		case *nav.Link:
			return v.Label
		default:
			return ""
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if ri, rj := rank(items[i]), rank(items[j]); ri != rj {
			return ri < rj
		}
		return label(items[i]) < label(items[j])
	})
}
