package header

import (
	"cdecl-generator/ctype"
)

// MarkerPrefix starts the materialized name of every marker pseudo symbol.
const MarkerPrefix = "cdecl_"

// SymbolEnum is the kind of a top-level symbol.
type SymbolEnum int

const (
	SymbolUnknown SymbolEnum = iota
	SymbolTypedef
	SymbolTag
	SymbolVariable
	SymbolFunction
	SymbolConstant
	SymbolMarker
)

// String returns a human-readable representation of the SymbolEnum.
func (k SymbolEnum) String() string {
	switch k {
	case SymbolTypedef:
		return "typedef"
	case SymbolTag:
		return "tag"
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolConstant:
		return "constant"
	case SymbolMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Marker is one cdecl_* tagging macro: the tag selects the extraction
// category, the target names the symbol to extract.
type Marker struct {
	Tag    string // "type", "struct", "union", "enum", "var", "func", "const"
	Target string
}

// Symbol is a top-level entry of the translation unit.
//
// Marker macros materialize as pseudo symbols named
// "cdecl_<tag>__<target>", which is what the extraction pass prefix-matches.
type Symbol struct {
	Name   string
	Kind   SymbolEnum
	Marker *Marker // set for SymbolMarker only

	offset int // byte position in the source, for declaration ordering
}

// Constant is an extracted integer constant with its resolved type. The
// recorded type's signedness decides how Value is interpreted when the
// constant is formatted.
type Constant struct {
	Name     string
	Type     *ctype.Node
	Value    int64
	UValue   uint64
	Unsigned bool
}

type tagKey struct {
	kind ctype.TypeKind
	name string
}

// Table holds the parsed symbols of one translation unit, in declaration
// order, with lookup maps for each namespace.
type Table struct {
	Symbols []*Symbol

	typedefs map[string]*ctype.Node
	tags     map[tagKey]*ctype.Node
	decls    map[string]*ctype.Decl
	consts   map[string]*Constant
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		typedefs: make(map[string]*ctype.Node),
		tags:     make(map[tagKey]*ctype.Node),
		decls:    make(map[string]*ctype.Decl),
		consts:   make(map[string]*Constant),
	}
}

// Typedef returns the interned typedef node for name.
func (t *Table) Typedef(name string) (*ctype.Node, bool) {
	n, ok := t.typedefs[name]
	return n, ok
}

// Tag returns the interned aggregate node for a struct/union/enum tag.
func (t *Table) Tag(kind ctype.TypeKind, name string) (*ctype.Node, bool) {
	n, ok := t.tags[tagKey{kind: kind, name: name}]
	return n, ok
}

// Decl returns the variable or function declaration for name.
func (t *Table) Decl(name string) (*ctype.Decl, bool) {
	d, ok := t.decls[name]
	return d, ok
}

// Const returns the integer constant for name.
func (t *Table) Const(name string) (*Constant, bool) {
	c, ok := t.consts[name]
	return c, ok
}

// internTag returns the node interned for a tag, creating an opaque node on
// first reference. A later definition fills the members of the same node.
func (t *Table) internTag(kind ctype.TypeKind, name string) *ctype.Node {
	key := tagKey{kind: kind, name: name}
	if n, ok := t.tags[key]; ok {
		return n
	}

	n := &ctype.Node{Kind: kind, Name: name}
	t.tags[key] = n

	return n
}

func (t *Table) addSymbol(s *Symbol) {
	t.Symbols = append(t.Symbols, s)
}
