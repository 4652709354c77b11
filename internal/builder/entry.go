package builder

import (
	"git.home.luguber.info/inful/cppdoc/internal/analyzer"
	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/nav"
	"git.home.luguber.info/inful/cppdoc/internal/resolve"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Slots holds the named values a page template is filled with. Values are
// pre-rendered HTML fragments or plain strings.
type Slots map[string]any

// Entry is anything the builder turns into a navigable documentation page.
type Entry interface {
	// Name is the human-readable label used in navigation and titles.
	Name() string

	// URL is the site-relative location the page is written to.
	URL() urlpath.Path

	// Nav produces the navigation item representing this entry.
	Nav() nav.Item

	// Build schedules this entry's output work on the builder. An error
	// means a precondition failed before any work could be scheduled.
	Build(b *Builder) error
}

// ASTEntry is an entry backed by a declaration from the parsed headers.
type ASTEntry interface {
	Entry
	Decl() *analyzer.Decl
	Category() resolve.Category
}

// OutputEntry is an entry that renders a single page through a template.
// Output runs on a worker goroutine and may do file IO and markdown work.
type OutputEntry interface {
	Entry
	Output(b *Builder) (config.TemplateID, Slots, error)
}
