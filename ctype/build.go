package ctype

// Constructors for the node tree. The front end and tests build graphs
// through these instead of filling Node literals by hand.

// Scalar returns a node for a scalar kind. Panics on non-scalar kinds.
func Scalar(k TypeKind) *Node {
	if !k.IsScalar() {
		panic("ctype: Scalar called with non-scalar kind " + k.String())
	}

	return &Node{Kind: k}
}

// Void returns the void type.
func Void() *Node { return &Node{Kind: KindVoid} }

// Int returns the plain int type.
func Int() *Node { return &Node{Kind: KindInt} }

// Ptr returns a pointer to t.
func Ptr(t *Node) *Node {
	return &Node{Kind: KindPointer, Elem: t}
}

// ArrayOf returns an array of n elements of t.
func ArrayOf(t *Node, n int) *Node {
	return &Node{Kind: KindArray, Elem: t, Len: n}
}

// IncompleteArrayOf returns an array of t with no declared length.
func IncompleteArrayOf(t *Node) *Node {
	return &Node{Kind: KindArray, Elem: t, Len: LenUnspecified}
}

// Func returns a function type with the given return type and parameters.
func Func(result *Node, params []Param, variadic bool) *Node {
	return &Node{Kind: KindFunction, Result: result, Params: params, Variadic: variadic}
}

// StructOf returns a named struct type.
func StructOf(tag string, fields ...Field) *Node {
	return &Node{Kind: KindStruct, Name: tag, Fields: fields}
}

// AnonStructOf returns an anonymous struct type, expanded inline at every use.
func AnonStructOf(fields ...Field) *Node {
	return &Node{Kind: KindStruct, Fields: fields, Anonymous: true}
}

// UnionOf returns a named union type.
func UnionOf(tag string, fields ...Field) *Node {
	return &Node{Kind: KindUnion, Name: tag, Fields: fields}
}

// AnonUnionOf returns an anonymous union type.
func AnonUnionOf(fields ...Field) *Node {
	return &Node{Kind: KindUnion, Fields: fields, Anonymous: true}
}

// EnumOf returns a named enum type.
func EnumOf(tag string, members ...Enumerator) *Node {
	return &Node{Kind: KindEnum, Name: tag, Enumerators: members}
}

// AnonEnumOf returns an anonymous enum type.
func AnonEnumOf(members ...Enumerator) *Node {
	return &Node{Kind: KindEnum, Enumerators: members, Anonymous: true}
}

// TypedefOf returns a typedef alias for underlying.
func TypedefOf(name string, underlying *Node) *Node {
	return &Node{Kind: KindTypedef, Name: name, Base: underlying}
}

// Qual wraps t with const/volatile qualifiers. Returns t unchanged when
// both flags are false.
func Qual(t *Node, konst, volatile bool) *Node {
	if !konst && !volatile {
		return t
	}

	return &Node{Kind: KindQualified, Base: t, Const: konst, Volatile: volatile}
}

// Const wraps t with the const qualifier.
func Const(t *Node) *Node { return Qual(t, true, false) }
