package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Parse builds the declaration tree for a run from the given header files.
// Paths in headers may be absolute or relative to inputDir; recorded
// definition locations are always relative to inputDir. Headers that fail
// to read or parse are skipped with a diagnostic so one bad file never
// aborts the run.
func Parse(ctx context.Context, inputDir string, headers []string) (*Decl, error) {
	root := NewRoot()

	for _, header := range headers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		abs := header
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(inputDir, header)
		}
		rel, err := filepath.Rel(inputDir, abs)
		if err != nil {
			rel = header
		}
		rel = filepath.ToSlash(rel)

		if err := parseHeader(ctx, abs, rel, root); err != nil {
			slog.Warn("Skipping unparsable header", "file", rel, "error", err)
		}
	}

	return root, nil
}

func parseHeader(ctx context.Context, path, rel string, root *Decl) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return fmt.Errorf("parse header: %w", err)
	}
	defer tree.Close()

	walkNode(tree.RootNode(), source, root, rel, false)
	return nil
}

// Node types whose children sit in the same semantic scope as the node
// itself, so the walk passes through them transparently.
var transparentNodes = map[string]bool{
	"translation_unit":      true,
	"declaration_list":      true,
	"template_declaration":  true,
	"linkage_specification": true,
	"preproc_if":            true,
	"preproc_ifdef":         true,
	"preproc_else":          true,
	"export_declaration":    true,
}

// walkNode translates tree-sitter syntax into declarations under parent.
// inType gates function extraction: member functions document through
// their enclosing class page, not as standalone entries.
func walkNode(node *sitter.Node, source []byte, parent *Decl, file string, inType bool) {
	switch node.Type() {
	case "namespace_definition":
		name := fieldText(node, "name", source)
		scope := scopedParent(parent, name, file)
		if body := node.ChildByFieldName("body"); body != nil {
			walkChildren(body, source, scope, file, false)
		}

	case "class_specifier", "struct_specifier":
		body := node.ChildByFieldName("body")
		if body == nil {
			return // forward declaration
		}
		kind := KindClass
		if node.Type() == "struct_specifier" {
			kind = KindStruct
		}
		name := fieldText(node, "name", source)
		decl := parent.AddChild(kind, name, file)
		walkChildren(body, source, decl, file, true)

	case "enum_specifier":
		if node.ChildByFieldName("body") == nil {
			return
		}
		parent.AddChild(KindEnum, fieldText(node, "name", source), file)

	case "alias_declaration":
		parent.AddChild(KindTypeAlias, fieldText(node, "name", source), file)

	case "function_definition", "declaration", "field_declaration":
		if inType && node.Type() != "function_definition" {
			return
		}
		declarator := findFunctionDeclarator(node)
		if declarator == nil {
			return
		}
		if !inType {
			addFunction(parent, declarator, source, file)
		}

	default:
		if transparentNodes[node.Type()] {
			walkChildren(node, source, parent, file, inType)
		}
	}
}

func walkChildren(node *sitter.Node, source []byte, parent *Decl, file string, inType bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkNode(node.NamedChild(i), source, parent, file, inType)
	}
}

// addFunction records a free function. Qualified declarator names
// ("geode::utils::clamp") re-enter their namespace chain so out-of-line
// definitions land under the right semantic parent.
func addFunction(parent *Decl, declarator *sitter.Node, source []byte, file string) {
	nameNode := declarator.ChildByFieldName("declarator")
	if nameNode == nil {
		return
	}
	name := string(source[nameNode.StartByte():nameNode.EndByte()])

	scope := parent
	parts := strings.Split(name, "::")
	for _, ns := range parts[:len(parts)-1] {
		scope = scopedParent(scope, ns, file)
	}
	name = parts[len(parts)-1]
	if name == "" {
		return
	}
	scope.AddChild(KindFunction, name, file)
}

// findFunctionDeclarator digs through pointer/reference declarators to the
// function_declarator, or returns nil for non-function declarations.
func findFunctionDeclarator(node *sitter.Node) *sitter.Node {
	current := node.ChildByFieldName("declarator")
	for current != nil {
		switch current.Type() {
		case "function_declarator":
			return current
		case "pointer_declarator", "reference_declarator":
			current = current.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

func scopedParent(parent *Decl, name, file string) *Decl {
	return parent.namespaceChild(name, file)
}

func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(source[child.StartByte():child.EndByte()])
}
