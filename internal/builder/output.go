package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// createOutputFor checks the entry's preconditions and schedules its page
// render on the worker group. The returned error only covers scheduling,
// render failures surface when the group is joined.
func (b *Builder) createOutputFor(e OutputEntry) error {
	url := e.URL()
	if !b.group.Go(func() error { return b.renderPage(e) }) {
		return fmt.Errorf("build already joining, cannot schedule %q", url)
	}
	b.logger.Debug("Scheduled page", "url", url.String())
	return nil
}

func (b *Builder) renderPage(e OutputEntry) error {
	id, slots, err := e.Output(b)
	if err != nil {
		return fmt.Errorf("page %q: %w", e.URL(), err)
	}

	title, _ := slots["title"].(string)
	description, _ := slots["description"].(string)
	head, err := b.fillTemplate(config.TemplateHead, Slots{
		"title":       title,
		"description": description,
		"base":        b.cfg.OutputURL,
	})
	if err != nil {
		return fmt.Errorf("page %q: %w", e.URL(), err)
	}

	merged := Slots{
		"head":           head,
		"nav":            b.navHTML,
		"base":           b.cfg.OutputURL,
		"projectName":    b.cfg.Project.Name,
		"projectVersion": b.cfg.Project.Version,
	}
	for k, v := range slots {
		merged[k] = v
	}

	page, err := b.fillTemplate(id, merged)
	if err != nil {
		return fmt.Errorf("page %q: %w", e.URL(), err)
	}
	if err := b.writePage(e.URL(), page); err != nil {
		return fmt.Errorf("page %q: %w", e.URL(), err)
	}

	b.logger.Debug("Wrote page", "url", e.URL().String(), "template", string(id))
	return nil
}

// fillTemplate executes the named template with missing keys treated as
// errors, so a custom template referencing an unknown slot fails loudly
// instead of rendering "<no value>".
func (b *Builder) fillTemplate(id config.TemplateID, slots Slots) (string, error) {
	text, ok := b.cfg.Templates.Get(id)
	if !ok {
		return "", fmt.Errorf("no template %q", id)
	}
	tmpl, err := template.New(string(id)).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", id, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, map[string]any(slots)); err != nil {
		return "", fmt.Errorf("fill template %q: %w", id, err)
	}
	return sb.String(), nil
}

// writePage writes content to <output>/<url>/index.html. The destination is
// checked against the output root so a crafted URL cannot escape it.
func (b *Builder) writePage(url urlpath.Path, content string) error {
	rel := filepath.Join(filepath.FromSlash(url.String()), "index.html")
	return b.writeOutput(rel, []byte(content))
}

func (b *Builder) writeOutput(rel string, content []byte) error {
	root, err := filepath.Abs(b.cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	dest := filepath.Join(root, rel)
	if dest != root && !strings.HasPrefix(dest, root+string(filepath.Separator)) {
		return fmt.Errorf("refusing to write outside output dir: %s", rel)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// scheduleAssets copies stylesheets, scripts, the project icon and tutorial
// assets into the output tree, each on its own worker.
func (b *Builder) scheduleAssets() {
	for _, css := range b.cfg.Scripts.CSS {
		b.group.Go(func() error {
			return b.writeOutput(filepath.Join("style", css.Name), []byte(css.Content))
		})
	}
	for _, js := range b.cfg.Scripts.JS {
		b.group.Go(func() error {
			return b.writeOutput(filepath.Join("script", js.Name), []byte(js.Content))
		})
	}

	if icon := b.cfg.Project.Icon; icon != "" {
		b.group.Go(func() error { return b.copyInput(icon, "icon"+filepath.Ext(icon)) })
	}
	if b.cfg.Tutorials != nil {
		for _, asset := range b.cfg.Tutorials.ResolvedAssets {
			b.group.Go(func() error { return b.copyInput(asset, asset) })
		}
	}
}

func (b *Builder) copyInput(rel, destRel string) error {
	data, err := os.ReadFile(filepath.Join(b.cfg.InputDir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("read asset %s: %w", rel, err)
	}
	return b.writeOutput(filepath.FromSlash(destRel), data)
}
