package reader

import "github.com/arloliu/coltable/column"

// ObjectReader is a buffered cursor over a column.ObjectFiller, resolving
// values to the caller's expected element type T. A value that doesn't
// assert to T (including a missing nil) surfaces from Read as the zero
// value of T with ok still true; RawRead returns the raw value instead.
type ObjectReader[T any] struct {
	filler   column.ObjectFiller
	length   int
	buf      []any
	bufStart int
	bufLen   int
	pos      int
}

// NewObjectReader builds a reader over col, which must implement
// column.ObjectFiller.
func NewObjectReader[T any](col column.Column, length int, bufferSizeHint int) *ObjectReader[T] {
	filler := col.(column.ObjectFiller)
	if length <= 0 {
		length = col.Size()
	}

	return &ObjectReader[T]{
		filler: filler,
		length: length,
		buf:    make([]any, clampBufferSize(bufferSizeHint, length)),
		pos:    BeforeFirstRow,
	}
}

// Position returns the 0-based index of the last value produced.
func (r *ObjectReader[T]) Position() int { return r.pos }

// Len returns the reader's permitted length.
func (r *ObjectReader[T]) Len() int { return r.length }

// HasRemaining reports whether a further Read/Move call would advance the
// cursor, per spec.md's has_remaining() protocol.
func (r *ObjectReader[T]) HasRemaining() bool { return r.pos < r.length-1 }

func (r *ObjectReader[T]) ensureFilled(row int) {
	if row >= r.bufStart && row < r.bufStart+r.bufLen {
		return
	}

	r.bufStart = row
	r.bufLen = r.filler.FillObject(r.buf, row)
}

// Read advances the cursor by one and returns the value there asserted to
// T; ok is false once past the last permitted row, matching the other
// readers' cursor contract. A missing (nil) row, or one whose value
// doesn't assert to T, reads back as the zero value of T with ok still
// true — callers that must distinguish "missing" from "present zero
// value" should use RawRead instead.
func (r *ObjectReader[T]) Read() (value T, ok bool) {
	v, hasMore := r.RawRead()
	if !hasMore {
		return value, false
	}

	if v != nil {
		if typed, assertable := v.(T); assertable {
			value = typed
		}
	}

	return value, true
}

// RawRead advances the cursor by one and returns the raw (any) value
// there, nil for missing; hasMore is false once past the last permitted
// row.
func (r *ObjectReader[T]) RawRead() (any, bool) {
	assertHasRemaining(r.pos >= r.length)

	next := r.pos + 1
	if next >= r.length {
		r.pos = r.length

		return nil, false
	}

	r.ensureFilled(next)
	r.pos = next

	return r.buf[next-r.bufStart], true
}

// Move advances the cursor by one without resolving the value there.
func (r *ObjectReader[T]) Move() bool {
	assertHasRemaining(r.pos >= r.length)

	if r.pos+1 >= r.length {
		r.pos = r.length

		return false
	}

	r.pos++

	return true
}

// SetPosition moves the cursor so the next Read/Move returns row p+1.
func (r *ObjectReader[T]) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}

	r.pos = p
	r.bufLen = 0

	return nil
}
