// Package tablefile implements the bit-exact, big-endian persistence codec
// for numeric-only tables, per spec §6's external-interfaces byte table:
// a "RMBelt" magic, a major/minor version pair, width/height, per-column
// type ids and label lengths, concatenated UTF-8 labels, then a
// column-major block of big-endian IEEE-754 doubles.
//
// Write/Read round-trip this exact layout with no framing overhead, so the
// default path stays bit-exact against the spec. WriteCompressed/
// ReadCompressed wrap the same header in an alternate, non-bit-exact
// variant that runs the payload block through one of the compress
// package's codecs, for out-of-band storage where size matters more than
// byte-for-byte reproducibility.
//
// Only columns whose format.TypeDescriptor.Category is format.NUMERIC are
// persisted; every other column in the table is silently skipped, per
// spec §6's "non-numeric column types are not persisted by this codec".
package tablefile

// Magic is the fixed 6-byte file signature, per spec §6.
const Magic = "RMBelt"

// MajorVersion and MinorVersion are the only version pair this codec
// writes; Read requires an exact match and fails with errs.ErrInvalidFormat
// otherwise, per spec §6's "reading requires the header to match exactly".
const (
	MajorVersion uint8 = 0
	MinorVersion uint8 = 1
)
