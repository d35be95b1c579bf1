package cdecl

import (
	"strconv"
	"strings"

	"cdecl-generator/ctype"
)

// Composer renders type nodes and declarations as C declaration text,
// without the trailing statement terminator.
//
// A nil resolver means no name overrides. A nil defined set gives every
// composition call its own; passing a shared set deduplicates named
// aggregate definitions across calls.
type Composer struct {
	resolver NameResolver
	defined  *Defined
}

func New(resolver NameResolver, defined *Defined) *Composer {
	return &Composer{
		resolver: resolver,
		defined:  defined,
	}
}

// ComposeType renders a type with an optional declarator name. An empty name
// produces the abstract form used for casts and parameter types.
func (c *Composer) ComposeType(t *ctype.Node, name string) (string, error) {
	w := c.newComposition()

	s, err := w.typeDecl(t, name)
	if err != nil {
		w.rollback()
		return "", err
	}

	return s, nil
}

// ComposeTypedef renders a typedef node as its declaring form,
// "typedef <underlying> <alias>", expanding the underlying type.
func (c *Composer) ComposeTypedef(t *ctype.Node) (string, error) {
	if t == nil {
		return "", &UnresolvedTypeError{Reason: "nil typedef node"}
	}
	if t.Kind != ctype.KindTypedef {
		return "", &UnsupportedTypeError{Reason: "typedef declaration of non-typedef node " + t.Kind.String()}
	}
	if t.Base == nil {
		return "", &UnresolvedTypeError{Reason: "typedef " + t.Name + " without underlying type"}
	}

	w := c.newComposition()

	alias, err := w.resolveName(t, t.Name)
	if err != nil {
		return "", err
	}

	s, err := w.typeDecl(t.Base, alias)
	if err != nil {
		w.rollback()
		return "", err
	}

	return "typedef " + s, nil
}

// ComposeDecl renders a named declaration: storage class, declarator, and an
// assembler label when the link-time symbol differs from the display name.
func (c *Composer) ComposeDecl(decl *ctype.Decl) (string, error) {
	if decl == nil {
		return "", &UnresolvedTypeError{Reason: "nil declaration"}
	}
	if decl.Type == nil {
		return "", &UnresolvedTypeError{Reason: "declaration " + decl.Name + " without type"}
	}

	w := c.newComposition()

	name, err := w.resolveName(decl, decl.Name)
	if err != nil {
		return "", err
	}

	s, err := w.typeDecl(decl.Type, name)
	if err != nil {
		w.rollback()
		return "", err
	}

	if st := decl.Storage.String(); st != "" {
		s = st + " " + s
	}

	if decl.AsmName != "" && decl.AsmName != name {
		s += ` __asm__("` + decl.AsmName + `")`
	}

	return s, nil
}

func (c *Composer) newComposition() *composition {
	w := &composition{
		resolver: c.resolver,
		defined:  c.defined,
		resolved: make(map[any]string),
	}

	if w.resolver == nil {
		w.resolver = DefaultResolver
	}
	if w.defined == nil {
		w.defined = &Defined{}
	}

	return w
}

// composition is the per-call state of one Compose* invocation.
type composition struct {
	resolver NameResolver
	defined  *Defined
	resolved map[any]string // name returned per node identity, for consistency checks
	marked   []*ctype.Node  // aggregates this call marked, undone on error
}

func (w *composition) mark(t *ctype.Node) {
	w.defined.Mark(t)
	w.marked = append(w.marked, t)
}

// rollback unmarks every aggregate this call marked. A failed composition
// must not leave a shared Defined set claiming definitions that were never
// returned.
func (w *composition) rollback() {
	for _, n := range w.marked {
		w.defined.unmark(n)
	}
	w.marked = nil
}

// resolveName asks the resolver for an override, falling back to the
// recorded name. The resolver is consulted at every occurrence so that an
// inconsistent answer surfaces as AmbiguousNameError.
func (w *composition) resolveName(node any, recorded string) (string, error) {
	name, ok := w.resolver(node)
	if !ok {
		name = recorded
	}

	if prev, seen := w.resolved[node]; seen && prev != name {
		return "", &AmbiguousNameError{Recorded: recorded, First: prev, Second: name}
	}
	w.resolved[node] = name

	return name, nil
}

// typeDecl renders type t around the accumulated declarator d, walking from
// the innermost type outwards.
func (w *composition) typeDecl(t *ctype.Node, d string) (string, error) {
	if t == nil {
		return "", &UnresolvedTypeError{Reason: "nil type node"}
	}

	if t.Kind.IsScalar() {
		return joinDecl(t.Kind.Keyword(), d), nil
	}

	switch t.Kind {
	case ctype.KindQualified:
		return w.qualified(t, d)

	case ctype.KindPointer:
		return w.pointer(t, "", d)

	case ctype.KindArray:
		if t.Elem == nil {
			return "", &UnresolvedTypeError{Reason: "array without element type"}
		}
		if bare := t.Elem.Unqualify(); bare != nil && bare.Kind == ctype.KindFunction {
			return "", &UnsupportedTypeError{Reason: "array of functions"}
		}

		suffix := "[]"
		switch {
		case t.Len == ctype.LenUnspecified:
		case t.Len < 0:
			return "", &UnresolvedTypeError{Reason: "negative array length " + strconv.Itoa(t.Len)}
		default:
			suffix = "[" + strconv.Itoa(t.Len) + "]"
		}

		return w.typeDecl(t.Elem, d+suffix)

	case ctype.KindFunction:
		if t.Result == nil {
			return "", &UnresolvedTypeError{Reason: "function without return type"}
		}
		if bare := t.Result.Unqualify(); bare != nil {
			switch bare.Kind {
			case ctype.KindArray:
				return "", &UnsupportedTypeError{Reason: "function returning array"}
			case ctype.KindFunction:
				return "", &UnsupportedTypeError{Reason: "function returning function"}
			}
		}

		params, err := w.paramList(t)
		if err != nil {
			return "", err
		}

		return w.typeDecl(t.Result, d+params)

	case ctype.KindTypedef:
		name, err := w.resolveName(t, t.Name)
		if err != nil {
			return "", err
		}

		return joinDecl(name, d), nil

	case ctype.KindStruct, ctype.KindUnion, ctype.KindEnum:
		kw, err := w.aggregate(t)
		if err != nil {
			return "", err
		}

		return joinDecl(kw, d), nil

	default:
		return "", &UnsupportedTypeError{Reason: "type kind " + t.Kind.String()}
	}
}

// pointer renders a pointer wrap. quals carries qualifier tokens that bind
// to the * itself (from an enclosing Qualified node). The declarator is
// parenthesized when the pointee is an array or function type; this is the
// precedence inversion of C declarators.
func (w *composition) pointer(t *ctype.Node, quals, d string) (string, error) {
	if t.Elem == nil {
		return "", &UnresolvedTypeError{Reason: "pointer without pointee"}
	}

	nd := "*"
	switch {
	case quals == "":
		nd += d
	case d == "":
		nd += quals
	default:
		nd += quals + " " + d
	}

	if bare := t.Elem.Unqualify(); bare != nil {
		switch bare.Kind {
		case ctype.KindArray, ctype.KindFunction:
			nd = "(" + nd + ")"
		}
	}

	return w.typeDecl(t.Elem, nd)
}

// qualified renders const/volatile wrappers. Qualifiers on a pointer attach
// to the * token; on anything else they prefix the base type keyword.
func (w *composition) qualified(t *ctype.Node, d string) (string, error) {
	konst, volatile := t.Const, t.Volatile

	base := t.Base
	for base != nil && base.Kind == ctype.KindQualified {
		konst = konst || base.Const
		volatile = volatile || base.Volatile
		base = base.Base
	}
	if base == nil {
		return "", &UnresolvedTypeError{Reason: "qualified without base type"}
	}

	quals := qualString(konst, volatile)
	if quals == "" {
		return w.typeDecl(base, d)
	}

	if base.Kind == ctype.KindPointer {
		return w.pointer(base, quals, d)
	}

	s, err := w.typeDecl(base, d)
	if err != nil {
		return "", err
	}

	return quals + " " + s, nil
}

// aggregate renders a struct/union/enum as its base keyword phrase: a full
// brace-delimited definition the first time a named aggregate is seen, a
// bare "struct name" reference afterwards. Anonymous aggregates expand at
// every use. Aggregates with no recorded members are opaque and always
// render as a reference.
func (w *composition) aggregate(t *ctype.Node) (string, error) {
	kw := t.Kind.Keyword()

	if t.Anonymous {
		body, err := w.aggregateBody(t)
		if err != nil {
			return "", err
		}

		return kw + " " + body, nil
	}

	if t.Name == "" {
		return "", &UnresolvedTypeError{Reason: kw + " with neither tag nor anonymous marker"}
	}

	name, err := w.resolveName(t, t.Name)
	if err != nil {
		return "", err
	}
	ref := kw + " " + name

	if w.defined.Has(t) || w.opaque(t) {
		return ref, nil
	}

	// Mark before the members compose, so a self-reference through a
	// pointer terminates as "struct name".
	w.mark(t)

	body, err := w.aggregateBody(t)
	if err != nil {
		return "", err
	}

	return ref + " " + body, nil
}

func (w *composition) opaque(t *ctype.Node) bool {
	if t.Kind == ctype.KindEnum {
		return len(t.Enumerators) == 0
	}

	return len(t.Fields) == 0
}

func (w *composition) aggregateBody(t *ctype.Node) (string, error) {
	if t.Kind == ctype.KindEnum {
		parts := make([]string, len(t.Enumerators))
		for i, m := range t.Enumerators {
			parts[i] = m.Name + " = " + strconv.FormatInt(m.Value, 10)
		}

		return "{ " + strings.Join(parts, ", ") + " }", nil
	}

	var sb strings.Builder
	sb.WriteString("{")

	for _, f := range t.Fields {
		s, err := w.typeDecl(f.Type, f.Name)
		if err != nil {
			return "", err
		}

		sb.WriteString(" ")
		sb.WriteString(s)
		sb.WriteString(";")
	}

	sb.WriteString(" }")

	return sb.String(), nil
}

func (w *composition) paramList(t *ctype.Node) (string, error) {
	if len(t.Params) == 0 {
		if t.Variadic {
			return "(...)", nil
		}

		return "(void)", nil
	}

	parts := make([]string, 0, len(t.Params)+1)
	for _, p := range t.Params {
		if p.Type == nil {
			return "", &UnresolvedTypeError{Reason: "parameter " + p.Name + " without type"}
		}

		s, err := w.typeDecl(p.Type, p.Name)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	if t.Variadic {
		parts = append(parts, "...")
	}

	return "(" + strings.Join(parts, ", ") + ")", nil
}

func qualString(konst, volatile bool) string {
	switch {
	case konst && volatile:
		return "const volatile"
	case konst:
		return "const"
	case volatile:
		return "volatile"
	default:
		return ""
	}
}

func joinDecl(keyword, d string) string {
	if d == "" {
		return keyword
	}

	return keyword + " " + d
}
