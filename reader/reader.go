// Package reader implements the buffered row cursors that sit between a
// column's Fill-based bulk API and code that wants to consume one row (or
// row-group) at a time: NumericReader, CategoricalReader, ObjectReader[T]
// over a single column, and MixedRowReader striping several columns'
// fills into one cache-friendly scratch buffer.
//
// Every reader shares the same cursor contract: Position reports the
// 0-based index of the last value produced (BeforeFirstRow before the
// first read), Read/Move advance it by one — refilling the internal
// buffer from the column's Fill method on exhaustion — and SetPosition
// repositions the cursor so the next Read/Move yields row p+1,
// invalidating the buffer.
package reader

import "github.com/arloliu/coltable/errs"

// MinBufferSize is the smallest buffer-size hint a reader accepts; hints
// below it are clamped up.
const MinBufferSize = 8

// BeforeFirstRow is the Position() value before the first Read/Move call.
const BeforeFirstRow = -1

// clampBufferSize clamps hint into [MinBufferSize, length], with length
// itself as the floor when length < MinBufferSize (e.g. a column shorter
// than the minimum still gets a buffer sized to its full length).
func clampBufferSize(hint, length int) int {
	hi := length
	if hi < 1 {
		hi = 1
	}

	lo := MinBufferSize
	if lo > hi {
		lo = hi
	}

	if hint < lo {
		hint = lo
	}
	if hint > hi {
		hint = hi
	}

	return hint
}

// validatePosition implements set_position's p < -1 -> out-of-range rule.
func validatePosition(p int) error {
	if p < -1 {
		return errs.ErrOutOfRange
	}

	return nil
}
