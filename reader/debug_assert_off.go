//go:build !debug

package reader

// assertHasRemaining is a no-op in the default build: spec.md leaves
// reading past has_remaining()==false undefined on the read side rather
// than checked.
func assertHasRemaining(exhausted bool) {}
