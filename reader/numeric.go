package reader

import (
	"math"

	"github.com/arloliu/coltable/column"
)

// NumericReader is a buffered cursor over a column.NumericFiller.
type NumericReader struct {
	filler   column.NumericFiller
	length   int
	buf      []float64
	bufStart int // column row index the buffer's first slot refers to
	bufLen   int // valid entries in buf, starting at bufStart
	pos      int // Position(): last row produced, BeforeFirstRow before first read
}

// NewNumericReader builds a reader over col, which must implement
// column.NumericFiller. length, if > 0, limits the reader to the first
// length rows instead of the column's full size; bufferSizeHint is clamped
// to [MinBufferSize, length].
func NewNumericReader(col column.Column, length int, bufferSizeHint int) *NumericReader {
	filler := col.(column.NumericFiller)
	if length <= 0 {
		length = col.Size()
	}

	return &NumericReader{
		filler: filler,
		length: length,
		buf:    make([]float64, clampBufferSize(bufferSizeHint, length)),
		pos:    BeforeFirstRow,
	}
}

// Position returns the 0-based index of the last value produced by Read or
// Move; BeforeFirstRow before the first call.
func (r *NumericReader) Position() int { return r.pos }

// Len returns the reader's permitted length.
func (r *NumericReader) Len() int { return r.length }

// HasRemaining reports whether a further Read/Move call would advance the
// cursor, per spec.md's has_remaining() protocol.
func (r *NumericReader) HasRemaining() bool { return r.pos < r.length-1 }

func (r *NumericReader) ensureFilled(row int) {
	if row >= r.bufStart && row < r.bufStart+r.bufLen {
		return
	}

	r.bufStart = row
	r.bufLen = r.filler.Fill(r.buf, row)
}

// Read advances the cursor by one and returns the value there; ok is false
// once the cursor has passed the last permitted row, in which case the
// returned value is NaN.
func (r *NumericReader) Read() (float64, bool) {
	assertHasRemaining(r.pos >= r.length)

	next := r.pos + 1
	if next >= r.length {
		r.pos = r.length

		return math.NaN(), false
	}

	r.ensureFilled(next)
	r.pos = next

	return r.buf[next-r.bufStart], true
}

// Move advances the cursor by one without resolving the value there
// (useful for skipping rows without paying a buffer-miss cost until the
// next Read). Returns false once past the last permitted row.
func (r *NumericReader) Move() bool {
	assertHasRemaining(r.pos >= r.length)

	if r.pos+1 >= r.length {
		r.pos = r.length

		return false
	}

	r.pos++

	return true
}

// SetPosition moves the cursor so the next Read/Move returns row p+1. p
// must be >= -1 or SetPosition returns errs.ErrOutOfRange. The internal
// buffer is invalidated.
func (r *NumericReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}

	r.pos = p
	r.bufLen = 0

	return nil
}
