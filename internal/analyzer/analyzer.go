// Package analyzer reports C++ declarations from a source tree.
//
// Declarations form a tree linked by semantic parentage. The tree is built
// once per run and treated as read-only by everything downstream: resolvers
// hold plain *Decl handles and never mutate or outlive the build.
package analyzer

// Kind is the syntactic category of a declaration.
type Kind int

const (
	KindUnknown Kind = iota
	KindTranslationUnit
	KindUnexposed
	KindNamespace
	KindClass
	KindStruct
	KindFunction
	KindEnum
	KindTypeAlias
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindTranslationUnit: "translation unit",
	KindUnexposed:       "unexposed",
	KindNamespace:       "namespace",
	KindClass:           "class",
	KindStruct:          "struct",
	KindFunction:        "function",
	KindEnum:            "enum",
	KindTypeAlias:       "type alias",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Decl is one declaration reported by the analyzer. An empty Name marks an
// anonymous scope. File is the defining header path relative to the input
// directory; it is empty for synthetic scopes.
type Decl struct {
	Kind   Kind
	Name   string
	Parent *Decl
	File   string

	children []*Decl
}

// NewRoot creates a synthetic translation-unit root for a run.
func NewRoot() *Decl {
	return &Decl{Kind: KindTranslationUnit}
}

// AddChild appends a new declaration under d and returns it.
func (d *Decl) AddChild(kind Kind, name, file string) *Decl {
	child := &Decl{Kind: kind, Name: name, Parent: d, File: file}
	d.children = append(d.children, child)
	return child
}

// Children returns the declarations nested directly under d, in source
// order.
func (d *Decl) Children() []*Decl {
	return d.children
}

// Walk visits d and all declarations below it, depth-first.
func (d *Decl) Walk(visit func(*Decl)) {
	visit(d)
	for _, c := range d.children {
		c.Walk(visit)
	}
}

// namespaceChild returns the namespace named name directly under d,
// creating it when absent. Namespaces reopened across headers collapse
// into one node so the tree mirrors semantic scoping, not lexical blocks.
func (d *Decl) namespaceChild(name, file string) *Decl {
	for _, c := range d.children {
		if c.Kind == KindNamespace && c.Name == name {
			return c
		}
	}
	return d.AddChild(KindNamespace, name, file)
}
