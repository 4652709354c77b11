// Package builder turns a parsed declaration tree and the authored tutorial
// pages into a static documentation site.
//
// Everything navigable implements Entry. A build enumerates all entries up
// front, asserts their URLs are unique, assembles the navigation tree once,
// then renders every page concurrently and joins on the whole set. A page
// that fails to render is reported but never stops its siblings.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/cppdoc/internal/analyzer"
	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/nav"
	"git.home.luguber.info/inful/cppdoc/internal/resolve"
)

// Builder drives one documentation build. It is single use, watch mode
// creates a fresh Builder per rebuild.
type Builder struct {
	cfg     *config.Config
	logger  *slog.Logger
	group   *WorkerGroup
	navHTML string
}

// Report summarizes a finished build.
type Report struct {
	Pages int
	// Errs holds per-page and per-document failures. The build as a whole
	// still produced every page not listed here.
	Errs []error
}

// Err returns the page failures joined into one error, or nil.
func (r *Report) Err() error {
	return errors.Join(r.Errs...)
}

func New(cfg *config.Config) *Builder {
	return &Builder{
		cfg:    cfg,
		logger: slog.With("build.id", uuid.NewString()),
		group:  &WorkerGroup{},
	}
}

// Build renders the full site for the given declaration tree. The returned
// error is fatal (enumeration or URL collision); per-page failures end up in
// the report instead.
func (b *Builder) Build(ctx context.Context, root *analyzer.Decl) (*Report, error) {
	report := &Report{}

	entries, navRoot, err := b.enumerate(root, report)
	if err != nil {
		return nil, err
	}
	if err := assertUniqueURLs(entries); err != nil {
		return nil, err
	}

	b.navHTML, err = b.renderNav(navRoot)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Building site",
		"project", b.cfg.Project.Name, "pages", len(entries), "output", b.cfg.OutputDir)

	for _, e := range entries {
		if err := e.Build(b); err != nil {
			b.logger.Warn("Skipping entry", "url", e.URL().String(), "error", err)
			report.Errs = append(report.Errs, err)
			continue
		}
		report.Pages++
	}
	b.scheduleAssets()

	taskErrs, err := b.group.Wait(ctx)
	if err != nil {
		return nil, err
	}
	report.Errs = append(report.Errs, taskErrs...)

	for _, pageErr := range report.Errs {
		b.logger.Error("Build error", "error", pageErr)
	}
	b.logger.Info("Build finished", "pages", report.Pages, "errors", len(report.Errs))
	return report, nil
}

// enumerate walks the declaration tree and the tutorials directory and
// produces every entry of the site together with its navigation tree.
func (b *Builder) enumerate(root *analyzer.Decl, report *Report) ([]Entry, *nav.Root, error) {
	var entries []Entry
	overloads := map[string]int{}

	refItems := b.collect(root, &entries, overloads, report)
	sortMembers(refItems)

	home := NewHomePage(readOptionalFile(filepath.Join(b.cfg.InputDir, "README.md")))
	entries = append(entries, home)

	navChildren := []nav.Item{home.Nav()}

	if b.cfg.Tutorials != nil {
		dir := filepath.Join(b.cfg.InputDir, b.cfg.Tutorials.Dir)
		indexBody, tutorials, errs := loadTutorials(dir)
		report.Errs = append(report.Errs, errs...)

		index := NewTutorialIndex(indexBody, tutorials)
		entries = append(entries, index)
		for _, t := range index.tutorials {
			entries = append(entries, t)
		}
		navChildren = append(navChildren, index.Nav())
	}

	if len(refItems) > 0 {
		navChildren = append(navChildren, &nav.Dir{
			Label:    "Reference",
			Children: refItems,
			Icon:     &nav.Icon{Name: "layers"},
			Open:     true,
		})
	}

	fileEntries, fileItem := b.enumerateFiles()
	entries = append(entries, fileEntries...)
	if fileItem != nil {
		navChildren = append(navChildren, fileItem)
	}

	return entries, &nav.Root{Children: navChildren}, nil
}

// collect recurses through the declaration tree in source order so overload
// indices are deterministic. It returns the navigation items for d's
// children and appends the created entries to out.
func (b *Builder) collect(d *analyzer.Decl, out *[]Entry, overloads map[string]int, report *Report) []nav.Item {
	var items []nav.Item
	for _, child := range d.Children() {
		if b.skip(child) {
			continue
		}

		overload := 0
		if child.Kind == analyzer.KindFunction {
			full := strings.Join(resolve.QualifiedName(child), "::")
			overload = overloads[full]
			overloads[full] = overload + 1
		}

		var members []nav.Item
		if child.Kind == analyzer.KindNamespace {
			members = b.collect(child, out, overloads, report)
			sortMembers(members)
		}

		switch child.Kind {
		case analyzer.KindNamespace, analyzer.KindClass, analyzer.KindStruct,
			analyzer.KindFunction, analyzer.KindEnum, analyzer.KindTypeAlias:
			e, err := NewDeclEntry(child, overload)
			if err != nil {
				b.logger.Warn("Skipping declaration", "name", child.Name, "error", err)
				report.Errs = append(report.Errs, err)
				continue
			}
			e.members = members
			*out = append(*out, e)
			items = append(items, e.Nav())
		}
	}
	return items
}

// skip filters a declaration out of the generated site. Namespaces are only
// subject to the ignore list, the include allowlist applies to leaves so a
// namespace is still traversed when its members match.
func (b *Builder) skip(d *analyzer.Decl) bool {
	if resolve.IsStd(d) {
		return true
	}
	full := strings.Join(resolve.QualifiedName(d), "::")
	if b.cfg.Ignore.Matches(full, d.Name) {
		return true
	}
	if b.cfg.Include != nil && d.Kind != analyzer.KindNamespace {
		return !b.cfg.Include.Matches(full, d.Name)
	}
	return false
}

func (b *Builder) enumerateFiles() ([]Entry, nav.Item) {
	var entries []Entry
	var all []*FileEntry
	groups := map[string][]*FileEntry{}
	var order []string

	for _, src := range b.cfg.Sources {
		order = append(order, src.Name)
		for _, rel := range src.Includes {
			f := NewFileEntry(rel)
			entries = append(entries, f)
			all = append(all, f)
			groups[src.Name] = append(groups[src.Name], f)
		}
	}
	return entries, fileNav(all, groups, order)
}

func assertUniqueURLs(entries []Entry) error {
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		url := e.URL().String()
		if prev, ok := seen[url]; ok {
			return fmt.Errorf("url %q produced by both %q and %q", url, prev, e.Name())
		}
		seen[url] = e.Name()
	}
	return nil
}

func (b *Builder) renderNav(root *nav.Root) (string, error) {
	tree, err := nav.RenderHTML(root, b.cfg.OutputURL)
	if err != nil {
		return "", fmt.Errorf("render navigation: %w", err)
	}
	return b.fillTemplate(config.TemplateNav, Slots{
		"projectName":    b.cfg.Project.Name,
		"projectVersion": b.cfg.Project.Version,
		"content":        tree,
		"base":           b.cfg.OutputURL,
	})
}
