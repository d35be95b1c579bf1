// Package ctype is the semantic model of C types and declarations.
//
// The model is a tagged-variant tree produced once per extraction pass and
// treated as read-only afterwards. Recursive types reference themselves only
// through a named aggregate or typedef, never by direct embedding.
//
// Key types:
//   - TypeKind: scalar and structural type kinds
//   - Node: one type in the tree (pointer/array/function/aggregate/...)
//   - Decl: a named declaration with storage class and assembler name
package ctype
