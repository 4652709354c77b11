package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates a document started with a front
// matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter opening delimiter found but closing delimiter is missing")

// Style selects how a document's content is restructured when rendering.
type Style int

const (
	StyleDefault Style = iota
	// StyleQnA wraps the content after every level-2 heading in a quote
	// block, styling the document as questions and answers.
	StyleQnA
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch raw {
	case "", "default":
		*s = StyleDefault
	case "qna":
		*s = StyleQnA
	default:
		return fmt.Errorf("invalid style %q", raw)
	}
	return nil
}

// Metadata is the optional front matter of an authored markdown document.
// A missing front matter block means all defaults.
type Metadata struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Order       *int   `yaml:"order"`
	Style       Style  `yaml:"style"`
}

var delimiter = []byte("---")

// splitFrontMatter separates a leading `---`-delimited front matter block
// from the body. Without an opening delimiter the whole input is body and
// had is false. An unclosed or unparsable block is an error: silently
// rendering metadata as content would corrupt the page.
func splitFrontMatter(doc []byte) (meta Metadata, body []byte, had bool, err error) {
	trimmed := bytes.TrimLeft(doc, " \t\r\n")
	if !bytes.HasPrefix(trimmed, delimiter) {
		return Metadata{}, doc, false, nil
	}

	rest := trimmed[len(delimiter):]
	end := bytes.Index(rest, delimiter)
	if end < 0 {
		return Metadata{}, nil, false, ErrMissingClosingDelimiter
	}

	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return Metadata{}, nil, false, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, rest[end+len(delimiter):], true, nil
}
