package cdecl

import "cdecl-generator/ctype"

// Defined tracks which named aggregates have already been expanded, so later
// references render as "struct name" instead of a duplicate definition.
//
// Each composition call that is not given a Defined set gets its own; a
// caller that wants deduplication across several declarations of one output
// unit threads one shared set through the calls. A failed composition rolls
// back the marks it made, so the set never records an aggregate whose
// definition was not returned. A shared set is confined to a single
// goroutine.
type Defined struct {
	done map[*ctype.Node]struct{}
}

// Has returns true if the aggregate has already been expanded.
func (d *Defined) Has(n *ctype.Node) bool {
	_, ok := d.done[n]
	return ok
}

// Mark records the aggregate as expanded.
func (d *Defined) Mark(n *ctype.Node) {
	if d.done == nil {
		d.done = make(map[*ctype.Node]struct{})
	}

	d.done[n] = struct{}{}
}

func (d *Defined) unmark(n *ctype.Node) {
	delete(d.done, n)
}

// Len returns the number of aggregates expanded so far.
func (d *Defined) Len() int {
	return len(d.done)
}
