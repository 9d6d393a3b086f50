package reader

import "github.com/arloliu/coltable/column"

// CategoricalReader is a buffered cursor over a column.CategoryFiller,
// reading raw dictionary indices (0 = missing) instead of resolved values.
type CategoricalReader struct {
	filler   column.CategoryFiller
	length   int
	buf      []int32
	bufStart int
	bufLen   int
	pos      int
}

// NewCategoricalReader builds a reader over col, which must implement
// column.CategoryFiller.
func NewCategoricalReader(col column.Column, length int, bufferSizeHint int) *CategoricalReader {
	filler := col.(column.CategoryFiller)
	if length <= 0 {
		length = col.Size()
	}

	return &CategoricalReader{
		filler: filler,
		length: length,
		buf:    make([]int32, clampBufferSize(bufferSizeHint, length)),
		pos:    BeforeFirstRow,
	}
}

// Position returns the 0-based index of the last value produced.
func (r *CategoricalReader) Position() int { return r.pos }

// Len returns the reader's permitted length.
func (r *CategoricalReader) Len() int { return r.length }

// HasRemaining reports whether a further Read/Move call would advance the
// cursor, per spec.md's has_remaining() protocol.
func (r *CategoricalReader) HasRemaining() bool { return r.pos < r.length-1 }

func (r *CategoricalReader) ensureFilled(row int) {
	if row >= r.bufStart && row < r.bufStart+r.bufLen {
		return
	}

	r.bufStart = row
	r.bufLen = r.filler.FillCategory(r.buf, row)
}

// Read advances the cursor by one and returns the dictionary index there
// (0 = missing); ok is false once past the last permitted row.
func (r *CategoricalReader) Read() (int32, bool) {
	assertHasRemaining(r.pos >= r.length)

	next := r.pos + 1
	if next >= r.length {
		r.pos = r.length

		return 0, false
	}

	r.ensureFilled(next)
	r.pos = next

	return r.buf[next-r.bufStart], true
}

// Move advances the cursor by one without resolving the value there.
func (r *CategoricalReader) Move() bool {
	assertHasRemaining(r.pos >= r.length)

	if r.pos+1 >= r.length {
		r.pos = r.length

		return false
	}

	r.pos++

	return true
}

// SetPosition moves the cursor so the next Read/Move returns row p+1.
func (r *CategoricalReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}

	r.pos = p
	r.bufLen = 0

	return nil
}
