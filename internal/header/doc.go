// Package header is a miniature front end for preprocessed C header text.
//
// It recognizes the declaration subset the extraction fixtures use: simple
// typedefs, struct/union/enum definitions, variable declarations, function
// prototypes (with optional __asm__ labels), #define integer constants, and
// the cdecl_* marker macros that tag symbols for extraction.
//
// The result is a symbol table in declaration order plus an interned ctype
// graph: every reference to one named aggregate or typedef resolves to the
// same node, which the composer relies on for deduplication.
//
// This is deliberately not a C parser. Anything outside the subset is a
// parse error, never a silent misreading.
package header
