package cdecl

// NameResolver decides the display name used for a node during composition.
// The node argument is either a *ctype.Node or a *ctype.Decl. Returning
// ok == false means no override; the node's recorded name is used unchanged.
//
// A resolver must answer consistently: two different names for the same node
// identity within one composition call is an AmbiguousNameError.
type NameResolver func(node any) (name string, ok bool)

// DefaultResolver never overrides a name.
func DefaultResolver(any) (string, bool) { return "", false }

// WithSubjectName returns a resolver that renames exactly the given subject
// node and defers to next for everything else. This is how a declaration is
// rendered under its documented API name while the assembler label keeps the
// real link-time symbol.
func WithSubjectName(next NameResolver, subject any, name string) NameResolver {
	if next == nil {
		next = DefaultResolver
	}

	return func(node any) (string, bool) {
		if node == subject {
			return name, true
		}

		return next(node)
	}
}
