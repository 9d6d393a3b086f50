// Package mapping implements the two permutation primitives the column
// model needs: compacting a permutation against a source array into a
// dense copy (writing a sentinel for out-of-range indices), and composing
// two permutations end to end so a mapped-of-mapped column can collapse to
// a single indirection before deciding view-vs-copy again.
package mapping

// OutOfRange is a permutation entry that refers outside [0, size). Callers
// decode it into the column's own missing marker rather than treating it as
// an error, per the "permutation" glossary entry.
const OutOfRange = -1

// IsOutOfRange reports whether idx refers outside [0, size).
func IsOutOfRange(idx, size int) bool {
	return idx < 0 || idx >= size
}

// CompactFloat64 applies permutation perm to src, producing a dense copy of
// len(perm) elements. Entries of perm that are out of range against src
// write missing (the caller-supplied sentinel, typically NaN) instead of
// indexing src.
func CompactFloat64(src []float64, perm []int, missing float64) []float64 {
	out := make([]float64, len(perm))
	for i, p := range perm {
		if IsOutOfRange(p, len(src)) {
			out[i] = missing
		} else {
			out[i] = src[p]
		}
	}

	return out
}

// CompactInt applies permutation perm to src (e.g. a categorical dense
// index array), producing a dense copy. Out-of-range entries write
// missingIndex (conventionally 0, the dictionary's null slot).
func CompactInt(src []int32, perm []int, missingIndex int32) []int32 {
	out := make([]int32, len(perm))
	for i, p := range perm {
		if IsOutOfRange(p, len(src)) {
			out[i] = missingIndex
		} else {
			out[i] = src[p]
		}
	}

	return out
}

// CompactInt64 is the int64 analogue of CompactInt, used by date-time and
// time-of-day columns.
func CompactInt64(src []int64, perm []int, missing int64) []int64 {
	out := make([]int64, len(perm))
	for i, p := range perm {
		if IsOutOfRange(p, len(src)) {
			out[i] = missing
		} else {
			out[i] = src[p]
		}
	}

	return out
}

// CompactAny applies permutation perm to src (an object column's backing
// array), producing a dense copy. Out-of-range entries write nil.
func CompactAny(src []any, perm []int) []any {
	out := make([]any, len(perm))
	for i, p := range perm {
		if !IsOutOfRange(p, len(src)) {
			out[i] = src[p]
		}
	}

	return out
}

// Compose computes the single permutation equivalent to first applying inner
// then outer, i.e. merged[i] = inner[outer[i]]. If outer[i] is out of range
// against inner, merged[i] is OutOfRange; otherwise inner[outer[i]] is
// copied as is, so an inner entry that is out of range stays out of range.
//
// This matches column.map's composition rule: mapping a mapped column
// composes the new outer permutation with the column's existing inner
// permutation before re-deciding view vs copy against the underlying
// storage size.
func Compose(inner, outer []int) []int {
	merged := make([]int, len(outer))
	for i, o := range outer {
		if IsOutOfRange(o, len(inner)) {
			merged[i] = OutOfRange
			continue
		}
		merged[i] = inner[o]
	}

	return merged
}
