// Package cdecl renders ctype nodes and declarations as C declaration text.
//
// The composer builds declarators inside out: the name accumulates pointer,
// array and function decorations while walking from the innermost type to the
// outermost, parenthesizing a pointer whenever it is wrapped by an array or
// function type. This is the precedence rule that separates
// "int (*f)(void)" from "int *f(void)" and "char (*a)[10]" from "char *a[10]".
//
// Composition never emits partial output: a malformed or unrepresentable
// input yields an error and no text.
package cdecl
