package ctype

// LenUnspecified marks an array node with no declared length (incomplete array).
const LenUnspecified = -1

// Node describes one C type in the type tree.
//
// Which fields are meaningful depends on Kind; the rest stay zero. Nodes are
// built once by the front end and never mutated afterwards. Named aggregates
// and typedefs are interned: every reference to "struct foo" in one
// translation unit points at the same Node, which is what makes pointer
// identity usable for deduplication and name-policy consistency checks.
type Node struct {
	Kind TypeKind

	Name string // typedef alias, or aggregate tag (empty when Anonymous)

	Elem   *Node // pointer pointee, array element
	Base   *Node // qualified: the type the qualifiers apply to; typedef: underlying type
	Result *Node // function return type

	Len int // array length, LenUnspecified if not declared

	Params   []Param // function parameters
	Variadic bool

	Fields      []Field      // struct/union members
	Enumerators []Enumerator // enum members

	Anonymous bool // aggregate without a tag, expanded inline at every use

	Const    bool // qualified
	Volatile bool // qualified
}

// Param is a function parameter. The name is optional in prototypes.
type Param struct {
	Name string
	Type *Node
}

// Field is a struct or union member.
type Field struct {
	Name string
	Type *Node
}

// Enumerator is one named constant of an enum type.
type Enumerator struct {
	Name  string
	Value int64
}

// IsNamed returns true if this node carries a typedef alias or aggregate tag.
func (n *Node) IsNamed() bool {
	return n.Name != ""
}

// Unqualify strips any Qualified wrappers and returns the bare type.
func (n *Node) Unqualify() *Node {
	for n != nil && n.Kind == KindQualified {
		n = n.Base
	}

	return n
}

// StorageEnum is the storage class of a declaration.
type StorageEnum int

const (
	StorageNone StorageEnum = iota
	StorageExtern
	StorageStatic
)

func (s StorageEnum) String() string {
	switch s {
	case StorageExtern:
		return "extern"
	case StorageStatic:
		return "static"
	default:
		return ""
	}
}

// Decl is a named top-level declaration built on a type node.
//
// AsmName is the link-time symbol the declaration binds to. It equals Name
// unless the platform maps a documented API name to a differently-named
// implementation symbol (e.g. basename vs __xpg_basename).
type Decl struct {
	Name    string
	Type    *Node
	AsmName string
	Storage StorageEnum
}
