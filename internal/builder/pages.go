package builder

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/markdown"
	"git.home.luguber.info/inful/cppdoc/internal/nav"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// HomePage is the site root. Its body is the project README when one exists,
// otherwise a minimal heading is synthesized from the project settings.
type HomePage struct {
	body string
}

func NewHomePage(body string) *HomePage { return &HomePage{body: body} }

func (h *HomePage) Name() string      { return "Home" }
func (h *HomePage) URL() urlpath.Path { return urlpath.Path{} }

func (h *HomePage) Nav() nav.Item {
	return &nav.Link{Label: "Home", URL: urlpath.Path{}, Icon: &nav.Icon{Name: "home"}}
}

func (h *HomePage) Build(b *Builder) error {
	return b.createOutputFor(h)
}

func (h *HomePage) Output(b *Builder) (config.TemplateID, Slots, error) {
	body := h.body
	if body == "" {
		body = "# " + b.cfg.Project.Name + "\n"
	}
	content, meta, err := markdown.Render(b.cfg.OutputURL, body, b.rewriteLink)
	if err != nil {
		return "", nil, fmt.Errorf("render home page: %w", err)
	}
	title := meta.Title
	if title == "" {
		title = b.cfg.Project.Name
	}
	return config.TemplatePage, Slots{
		"title":       title,
		"description": fmt.Sprintf("Documentation for %s", b.cfg.Project.Name),
		"content":     content,
	}, nil
}

const filesRoot = "files"

// FileEntry renders a source header verbatim as an escaped code page. The
// file is read on the worker, not at enumeration, so large trees do not
// front-load IO.
type FileEntry struct {
	relPath string
	url     urlpath.Path
}

func NewFileEntry(relPath string) *FileEntry {
	return &FileEntry{
		relPath: filepath.ToSlash(relPath),
		url:     urlpath.New(filesRoot).Join(urlpath.FromFilePath(relPath)),
	}
}

func (f *FileEntry) Name() string      { return filepath.Base(f.relPath) }
func (f *FileEntry) URL() urlpath.Path { return f.url }

func (f *FileEntry) Nav() nav.Item {
	return &nav.Link{Label: f.Name(), URL: f.url, Icon: &nav.Icon{Name: "file", Variant: true}}
}

func (f *FileEntry) Build(b *Builder) error {
	return b.createOutputFor(f)
}

func (f *FileEntry) Output(b *Builder) (config.TemplateID, Slots, error) {
	data, err := os.ReadFile(filepath.Join(b.cfg.InputDir, filepath.FromSlash(f.relPath)))
	if err != nil {
		return "", nil, fmt.Errorf("read source file: %w", err)
	}
	// The file template owns the surrounding pre/code pair.
	return config.TemplateFile, Slots{
		"title":       f.Name(),
		"description": fmt.Sprintf("Source of %s in %s", f.relPath, b.cfg.Project.Name),
		"content":     html.EscapeString(string(data)),
	}, nil
}

func readOptionalFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// fileNav groups file links per configured source directory.
func fileNav(entries []*FileEntry, sources map[string][]*FileEntry, order []string) nav.Item {
	if len(entries) == 0 {
		return nil
	}
	children := make([]nav.Item, 0, len(order))
	for _, name := range order {
		group := sources[name]
		if len(group) == 0 {
			continue
		}
		links := make([]nav.Item, 0, len(group))
		for _, f := range group {
			links = append(links, f.Nav())
		}
		children = append(children, &nav.Dir{
			Label:    name,
			Children: links,
			Icon:     &nav.Icon{Name: "folder", Variant: true},
		})
	}
	return &nav.Dir{Label: "Files", Children: children, Icon: &nav.Icon{Name: "archive"}}
}

// rewriteLink maps internal markdown links onto generated page URLs. A link
// to a .md document points at the page built from it.
func (b *Builder) rewriteLink(p urlpath.Path) (urlpath.Path, bool) {
	last := p.Last()
	if !strings.EqualFold(filepath.Ext(last), ".md") {
		return p, false
	}
	if strings.EqualFold(last, "index.md") {
		segs := p.Segments()
		return urlpath.Parse(strings.Join(segs[:len(segs)-1], "/")), true
	}
	return p.RemoveExtension(".md"), true
}
