// Package column implements the immutable column model: a single behavioral
// contract (Column) satisfied by several physical variants — dense numeric,
// mapped numeric, categorical (five index widths) with a shared dictionary,
// mapped categorical, date-time (low/high precision), mapped date-time,
// time-of-day, and object — unified by a capability bit set rather than a
// class hierarchy.
//
// A column is never mutated after construction. It is produced either by
// freezing a buffer (see the buffer package) or by mapping an existing
// column through an index permutation (Column.Map). Sharing storage between
// a column and its mapped views is safe because the storage is immutable and
// Go's garbage collector keeps it alive for as long as any mapped view
// still references it — no reference counting is needed, unlike the
// source's note about reference-counted array handles.
package column

import (
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/sortutil"
)

// MappingThreshold is the fraction of the underlying column's size above
// which Map returns a view sharing the storage; at or below it (and without
// preferView) Map materializes a dense copy, per spec §4.2.
const MappingThreshold = 0.1

// Column is the behavioral contract every physical variant satisfies.
type Column interface {
	// Size returns the number of rows, N.
	Size() int

	// Type returns the column's type descriptor.
	Type() format.TypeDescriptor

	// Capabilities returns the column's capability set.
	Capabilities() format.CapabilitySet

	// HasCapability reports whether the column supports the given capability.
	HasCapability(c format.Capability) bool

	// Map returns a new column equivalent to reading this column through
	// perm: result.Fill...(dst, 0) at logical position i yields the value
	// this column has at perm[i] (or missing, if perm[i] is out of range).
	//
	// If preferView is true, or len(perm) is more than MappingThreshold of
	// this column's size, the result shares this column's storage and
	// materializes on read. Otherwise the result is a dense copy obtained
	// by applying perm eagerly. Mapping an already-mapped column composes
	// the two permutations before re-deciding view vs copy against the
	// original (non-mapped) storage size.
	Map(perm []int, preferView bool) Column

	// Sort returns the permutation that would bring this column into the
	// given order, missing values always last. Only valid when Sortable is
	// set; otherwise returns errs.ErrUnsupportedOperation.
	Sort(order sortutil.Order) ([]int, error)
}

// NumericFiller is implemented by columns with the NumericReadable
// capability. Fill writes min(len(dst), Size()-rowStart) consecutive values
// starting at rowStart into dst[0:] and returns that count; entries of dst
// past the count are left unchanged. FillStrided writes to dst[dstOffset+k*dstStride] for k = 0, 1, ...
// instead of dst[k], enabling column-major fills into a row-interleaved
// buffer.
type NumericFiller interface {
	Fill(dst []float64, rowStart int) int
	FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int
}

// CategoryFiller is implemented by categorical (and mapped categorical)
// columns with the NumericReadable capability, writing dense category
// indices (0 = missing) instead of resolved values.
type CategoryFiller interface {
	FillCategory(dst []int32, rowStart int) int
	FillCategoryStrided(dst []int32, rowStart, dstOffset, dstStride int) int
}

// ObjectFiller is implemented by columns with the ObjectReadable
// capability, writing resolved values (dictionary lookups for categorical
// columns, element references for object columns, time.Time/time.Duration
// for temporal columns) or nil for missing positions.
type ObjectFiller interface {
	FillObject(dst []any, rowStart int) int
	FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int
}

// BooleanCategorical is implemented by categorical columns (dense or
// mapped) that carry a positive index, i.e. were frozen with
// Buffer.FreezeBoolean. PositiveIndex returns the dictionary index treated
// as true and whether one is set; it is always consistent with
// HasCapability(format.Boolean).
type BooleanCategorical interface {
	PositiveIndex() (int32, bool)
}

// Categorical is implemented by every categorical column variant (dense or
// mapped). Dictionary exposes the shared value list so callers can compute
// domain-wide statistics (mode, least-frequent category) without depending
// on the unexported concrete column types.
type Categorical interface {
	Dictionary() *Dictionary
}

// clampFillCount returns how many elements can be filled into a dst of
// length dstLen starting at rowStart against a source of length size.
func clampFillCount(dstLen, rowStart, size int) int {
	if rowStart >= size {
		return 0
	}

	n := size - rowStart
	if n > dstLen {
		n = dstLen
	}

	return n
}
