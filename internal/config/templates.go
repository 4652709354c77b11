package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates
var builtins embed.FS

// TemplateID names a page template kind.
type TemplateID string

const (
	TemplateClass         TemplateID = "class"
	TemplateStruct        TemplateID = "struct"
	TemplateFunction      TemplateID = "function"
	TemplateHead          TemplateID = "head"
	TemplateNav           TemplateID = "nav"
	TemplateFile          TemplateID = "file"
	TemplatePage          TemplateID = "page"
	TemplateTutorial      TemplateID = "tutorial"
	TemplateTutorialIndex TemplateID = "tutorial-index"
)

var templateIDs = []TemplateID{
	TemplateClass, TemplateStruct, TemplateFunction, TemplateHead,
	TemplateNav, TemplateFile, TemplatePage, TemplateTutorial,
	TemplateTutorialIndex,
}

// Templates holds the loaded template strings, keyed by page kind.
type Templates map[TemplateID]string

// Get returns the template string for id.
func (t Templates) Get(id TemplateID) (string, bool) {
	s, ok := t[id]
	return s, ok
}

// Script is a named static asset copied into the output site.
type Script struct {
	Name    string
	Content string
}

// Scripts are the style and script assets of the generated site.
type Scripts struct {
	CSS []Script
	JS  []Script
}

// loadTemplates reads any template overrides from flash.toml and fills the
// remaining kinds from the embedded defaults.
func loadTemplates(inputDir string, overrides map[string]string) (Templates, error) {
	out := make(Templates, len(templateIDs))
	for _, id := range templateIDs {
		data, err := builtins.ReadFile("templates/" + string(id) + ".html")
		if err != nil {
			return nil, fmt.Errorf("builtin template %s: %w", id, err)
		}
		out[id] = string(data)
	}

	for name, path := range overrides {
		id := TemplateID(name)
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("unknown template kind %q", name)
		}
		data, err := os.ReadFile(filepath.Join(inputDir, path))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		out[id] = string(data)
	}

	return out, nil
}

func defaultScripts() Scripts {
	return Scripts{
		CSS: []Script{
			builtinScript("default.css"),
			builtinScript("nav.css"),
			builtinScript("content.css"),
			builtinScript("themes.css"),
		},
		JS: []Script{
			builtinScript("script.js"),
		},
	}
}

func builtinScript(name string) Script {
	data, err := builtins.ReadFile("templates/" + name)
	if err != nil {
		// Embedded assets are part of the binary; a miss is a packaging bug.
		panic(fmt.Sprintf("missing builtin asset %s: %v", name, err))
	}
	return Script{Name: name, Content: string(data)}
}
