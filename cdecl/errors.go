package cdecl

import "fmt"

// UnresolvedTypeError reports a structurally incomplete type node, such as a
// nil pointee or a function without a return type. It indicates a defect in
// the graph handed to the composer, not a recoverable condition.
type UnresolvedTypeError struct {
	Reason string
}

func (e *UnresolvedTypeError) Error() string {
	return "unresolved type: " + e.Reason
}

// UnsupportedTypeError reports a C construct the composer refuses to render
// rather than guess at (invalid compositions like an array of functions, or
// features outside the model).
type UnsupportedTypeError struct {
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported type: " + e.Reason
}

// AmbiguousNameError reports a name resolver that returned two different
// names for the same node identity within one composition call.
type AmbiguousNameError struct {
	Recorded string
	First    string
	Second   string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous name for %q: resolver returned both %q and %q",
		e.Recorded, e.First, e.Second)
}
