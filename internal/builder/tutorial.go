package builder

import (
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/markdown"
	"git.home.luguber.info/inful/cppdoc/internal/nav"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

const tutorialsRoot = "tutorials"

// Tutorial is a single markdown document under the configured tutorials
// directory. Metadata is read up front so navigation labels and ordering
// are available before any page is rendered.
type Tutorial struct {
	relPath string
	url     urlpath.Path
	body    string
	meta    markdown.Metadata
}

func NewTutorial(relPath, body string) (*Tutorial, error) {
	stem := strings.TrimSuffix(filepath.Base(relPath), ".md")
	meta, _, err := markdown.ExtractMeta(body, stem)
	if err != nil {
		return nil, fmt.Errorf("tutorial %s: %w", relPath, err)
	}
	url := urlpath.New(tutorialsRoot).Join(
		urlpath.FromFilePath(relPath).RemoveExtension(".md"))
	return &Tutorial{relPath: relPath, url: url, body: body, meta: meta}, nil
}

func (t *Tutorial) Name() string      { return t.meta.Title }
func (t *Tutorial) URL() urlpath.Path { return t.url }

func (t *Tutorial) Nav() nav.Item {
	icon := &nav.Icon{Name: "bookmark"}
	if t.meta.Icon != "" {
		icon = &nav.Icon{Name: t.meta.Icon}
	}
	return &nav.Link{Label: t.meta.Title, URL: t.url, Icon: icon}
}

func (t *Tutorial) Build(b *Builder) error {
	return b.createOutputFor(t)
}

func (t *Tutorial) Output(b *Builder) (config.TemplateID, Slots, error) {
	content, meta, err := markdown.Render(b.cfg.OutputURL, t.body, b.rewriteLink)
	if err != nil {
		return "", nil, fmt.Errorf("render %s: %w", t.relPath, err)
	}
	slots := Slots{
		"title":       meta.Title,
		"description": meta.Description,
		"content":     content,
		"links":       tutorialIndexLink(b),
	}
	if slots["title"] == "" {
		slots["title"] = t.meta.Title
	}
	return config.TemplateTutorial, slots, nil
}

// TutorialIndex is the landing page of the tutorials section. Its body comes
// from index.md when present, otherwise a listing is synthesized.
type TutorialIndex struct {
	body      string
	tutorials []*Tutorial
}

func NewTutorialIndex(body string, tutorials []*Tutorial) *TutorialIndex {
	sorted := make([]*Tutorial, len(tutorials))
	copy(sorted, tutorials)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := sorted[i].meta.Order, sorted[j].meta.Order
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return sorted[i].meta.Title < sorted[j].meta.Title
	})
	return &TutorialIndex{body: body, tutorials: sorted}
}

func (x *TutorialIndex) Name() string      { return "Tutorials" }
func (x *TutorialIndex) URL() urlpath.Path { return urlpath.New(tutorialsRoot) }

func (x *TutorialIndex) Nav() nav.Item {
	children := make([]nav.Item, 0, len(x.tutorials)+1)
	children = append(children, &nav.Link{
		Label: "Overview",
		URL:   x.URL(),
		Icon:  &nav.Icon{Name: "book-open"},
	})
	for _, t := range x.tutorials {
		children = append(children, t.Nav())
	}
	return &nav.Dir{Label: "Tutorials", Children: children, Icon: &nav.Icon{Name: "book"}, Open: true}
}

func (x *TutorialIndex) Build(b *Builder) error {
	return b.createOutputFor(x)
}

func (x *TutorialIndex) Output(b *Builder) (config.TemplateID, Slots, error) {
	title := "Tutorials"
	content := ""
	if x.body != "" {
		rendered, meta, err := markdown.Render(b.cfg.OutputURL, x.body, b.rewriteLink)
		if err != nil {
			return "", nil, fmt.Errorf("render tutorial index: %w", err)
		}
		content = rendered
		if meta.Title != "" {
			title = meta.Title
		}
	}

	var links strings.Builder
	for _, t := range x.tutorials {
		links.WriteString(`<li><a href="` +
			html.EscapeString(t.url.ToAbsolute(b.cfg.OutputURL)) + `">` +
			html.EscapeString(t.meta.Title) + `</a></li>`)
	}

	slots := Slots{
		"title":       title,
		"description": fmt.Sprintf("Tutorials for %s", b.cfg.Project.Name),
		"content":     content,
		"links":       links.String(),
	}
	return config.TemplateTutorialIndex, slots, nil
}

func tutorialIndexLink(b *Builder) string {
	url := urlpath.New(tutorialsRoot).ToAbsolute(b.cfg.OutputURL)
	return `<a class="tutorial-index-link" href="` + html.EscapeString(url) + `">All tutorials</a>`
}

// loadTutorials reads every markdown file under the tutorials directory.
// index.md becomes the section landing page. Documents that fail metadata
// extraction are skipped and reported, they never abort the build.
func loadTutorials(dir string) (index string, tutorials []*Tutorial, errs []error) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read tutorial %s: %w", rel, err))
			return nil
		}
		if rel == "index.md" {
			index = string(data)
			return nil
		}
		t, err := NewTutorial(filepath.ToSlash(rel), string(data))
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		tutorials = append(tutorials, t)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("scan tutorials: %w", walkErr))
	}
	return index, tutorials, errs
}
