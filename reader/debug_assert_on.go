//go:build debug

package reader

// assertHasRemaining panics when a reader's Read/Move is called again after
// it has already reported has_remaining()==false, per spec.md §9's
// debug-assert recommendation. Built only with -tags debug.
func assertHasRemaining(exhausted bool) {
	if exhausted {
		panic("reader: read past has_remaining() == false")
	}
}
