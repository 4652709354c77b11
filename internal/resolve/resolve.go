// Package resolve derives qualified names, documentation categories, and
// URLs for analyzer declarations.
//
// Every fact resolves independently: a declaration without a category or a
// matching source fails only that lookup, with a sentinel error the caller
// can test via errors.Is. All functions are pure and safe to call from
// concurrent rendering tasks.
package resolve

import (
	"errors"
	"path"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/analyzer"
	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

var (
	// ErrNoCategory marks declaration kinds without a documentation page.
	ErrNoCategory = errors.New("declaration kind has no documentation category")
	// ErrNoLocation marks declarations without a definition file.
	ErrNoLocation = errors.New("declaration has no definition location")
	// ErrNoSource marks headers outside every configured source root.
	ErrNoSource = errors.New("no configured source contains this header")
	// ErrNotOnline marks sources without a public repository.
	ErrNotOnline = errors.New("source does not exist online")
)

// AnonName stands in for anonymous scopes in qualified names.
const AnonName = "_anon"

// cppReference is the external reference site standard-library symbols
// redirect to.
const cppReference = "https://en.cppreference.com/w/cpp"

// Category is the documentation category of a declaration.
type Category int

const (
	CategoryFunction Category = iota
	CategoryClass
	CategoryStruct
	CategoryNamespace
	CategoryEnum
	CategoryTypeAlias
)

var categoryNames = map[Category]string{
	CategoryFunction:  "function",
	CategoryClass:     "class",
	CategoryStruct:    "struct",
	CategoryNamespace: "namespace",
	CategoryEnum:      "enum",
	CategoryTypeAlias: "type alias",
}

var categoryPrefixes = map[Category]string{
	CategoryFunction:  "functions",
	CategoryClass:     "classes",
	CategoryStruct:    "structs",
	CategoryNamespace: "namespaces",
	CategoryEnum:      "enums",
	CategoryTypeAlias: "aliases",
}

var categoriesByKind = map[analyzer.Kind]Category{
	analyzer.KindFunction:  CategoryFunction,
	analyzer.KindClass:     CategoryClass,
	analyzer.KindStruct:    CategoryStruct,
	analyzer.KindNamespace: CategoryNamespace,
	analyzer.KindEnum:      CategoryEnum,
	analyzer.KindTypeAlias: CategoryTypeAlias,
}

func (c Category) String() string {
	return categoryNames[c]
}

// Prefix returns the URL prefix under which this category's pages live.
func (c Category) Prefix() urlpath.Path {
	return urlpath.Parse(categoryPrefixes[c])
}

// CategoryOf maps a declaration's syntactic kind to its documentation
// category.
func CategoryOf(d *analyzer.Decl) (Category, error) {
	c, ok := categoriesByKind[d.Kind]
	if !ok {
		return 0, ErrNoCategory
	}
	return c, nil
}

// sourceFileSuffixes guards the ancestor walk: some execution environments
// report a source file as a declaration's semantic parent instead of a
// translation unit.
var sourceFileSuffixes = []string{".cpp", ".cc", ".cxx", ".c"}

func looksLikeSourceFile(name string) bool {
	for _, suffix := range sourceFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Ancestorage returns the chain from the outermost named scope down to d
// itself. Translation units and unexposed synthetic parents terminate the
// walk and are excluded, as is any parent named like a source file.
func Ancestorage(d *analyzer.Decl) []*analyzer.Decl {
	chain := []*analyzer.Decl{d}
	for cur := d.Parent; cur != nil; cur = cur.Parent {
		if cur.Kind == analyzer.KindTranslationUnit ||
			cur.Kind == analyzer.KindUnexposed ||
			looksLikeSourceFile(cur.Name) {
			break
		}
		chain = append(chain, cur)
	}

	// collected innermost-first; reverse to outermost-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// QualifiedName returns the scope names outermost-first, the declaration's
// own name last. Anonymous scopes contribute AnonName.
func QualifiedName(d *analyzer.Decl) []string {
	chain := Ancestorage(d)
	names := make([]string, len(chain))
	for i, a := range chain {
		names[i] = DisplayName(a)
	}
	return names
}

// DisplayName returns the declaration's name, or AnonName when anonymous.
func DisplayName(d *analyzer.Decl) string {
	if d.Name == "" {
		return AnonName
	}
	return d.Name
}

// IsStd reports whether the declaration's outermost qualifying scope is
// the reserved namespace "std".
func IsStd(d *analyzer.Decl) bool {
	name := QualifiedName(d)
	return len(name) > 0 && name[0] == "std"
}

// RelativeURL returns the site-relative documentation URL for d:
// the category prefix joined with the qualified name.
func RelativeURL(d *analyzer.Decl) (urlpath.Path, error) {
	category, err := CategoryOf(d)
	if err != nil {
		return urlpath.Path{}, err
	}
	return category.Prefix().Join(urlpath.New(QualifiedName(d)...)), nil
}

// AbsoluteURL returns the full documentation URL for d. Standard-library
// declarations redirect to cppreference; everything else resolves the
// relative URL against the configured site base.
func AbsoluteURL(d *analyzer.Decl, cfg *config.Config) (string, error) {
	if IsStd(d) {
		return stdReferenceURL(d)
	}
	rel, err := RelativeURL(d)
	if err != nil {
		return "", err
	}
	return rel.ToAbsolute(cfg.OutputURL), nil
}

// stdReferenceURL builds the cppreference URL from the header stem and the
// unqualified name, e.g. https://en.cppreference.com/w/cpp/string/basic_string.
func stdReferenceURL(d *analyzer.Decl) (string, error) {
	if d.File == "" {
		return "", ErrNoLocation
	}
	stem := path.Base(d.File)
	stem = strings.TrimSuffix(stem, path.Ext(stem))
	return cppReference + "/" + stem + "/" + DisplayName(d), nil
}

// Header returns the declaration's defining header, relative to the input
// directory.
func Header(d *analyzer.Decl) (urlpath.Path, error) {
	if d.File == "" {
		return urlpath.Path{}, ErrNoLocation
	}
	return urlpath.FromFilePath(d.File), nil
}

// SourceOf returns the first configured source whose root contains the
// declaration's header.
func SourceOf(d *analyzer.Decl, cfg *config.Config) (*config.Source, error) {
	header, err := Header(d)
	if err != nil {
		return nil, err
	}
	for _, src := range cfg.Sources {
		if header.HasPrefix(src.Path()) {
			return src, nil
		}
	}
	return nil, ErrNoSource
}

// RepoURL returns the repository browse URL for the declaration's header.
// Standard-library declarations link to cppreference instead.
func RepoURL(d *analyzer.Decl, cfg *config.Config) (string, error) {
	if IsStd(d) {
		return stdReferenceURL(d)
	}
	src, err := SourceOf(d, cfg)
	if err != nil {
		return "", err
	}
	if !src.ExistsOnline || cfg.Project.Tree == "" {
		return "", ErrNotOnline
	}
	header, err := Header(d)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(cfg.Project.Tree, "/") + "/" + header.String(), nil
}

// IncludePath returns the #include path for the declaration's header,
// relative to its source root.
func IncludePath(d *analyzer.Decl, cfg *config.Config) (urlpath.Path, error) {
	src, err := SourceOf(d, cfg)
	if err != nil {
		return urlpath.Path{}, err
	}
	header, err := Header(d)
	if err != nil {
		return urlpath.Path{}, err
	}
	rel, _ := header.StripPrefix(src.Path())
	return rel, nil
}
