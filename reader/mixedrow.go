package reader

import (
	"math"

	"github.com/arloliu/coltable/column"
)

// targetStripBytes is the footprint budget the mixed row reader's striped
// scratch buffers aim for (spec §4.4: "≈ 256 KiB").
const targetStripBytes = 256 * 1024

// bytesPerNumericCell and bytesPerObjectCell approximate a float64 slot and
// an any (interface) slot for sizing the strip height.
const (
	bytesPerNumericCell = 8
	bytesPerObjectCell  = 16
)

// MixedRowReader is a buffered row cursor over several columns at once,
// striping each column's Fill/FillObject output into row-major scratch
// buffers (so one row's values across all columns sit contiguously) to
// amortize per-column fill dispatch over many rows at a time. A column
// that doesn't implement NumericFiller/ObjectFiller is simply unfillable
// along that axis: its cells read back as NaN / nil instead of panicking.
type MixedRowReader struct {
	columns         []column.Column
	numericFillable []bool
	objectFillable  []bool

	length       int
	bufferHeight int // rows per strip refill

	numericStrip []float64 // [row*width + col]
	objectStrip  []any     // [row*width + col]

	bufStart int
	bufLen   int
	pos      int
}

// NewMixedRowReader builds a reader over columns. length, if > 0, limits
// the reader to the first length rows instead of the shortest column's
// size.
func NewMixedRowReader(columns []column.Column, length int) *MixedRowReader {
	width := len(columns)

	minSize := -1
	numericFillable := make([]bool, width)
	objectFillable := make([]bool, width)
	for i, col := range columns {
		if minSize == -1 || col.Size() < minSize {
			minSize = col.Size()
		}
		_, numericFillable[i] = col.(column.NumericFiller)
		_, objectFillable[i] = col.(column.ObjectFiller)
	}
	if minSize == -1 {
		minSize = 0
	}

	if length <= 0 || length > minSize {
		length = minSize
	}

	height := 1
	if width > 0 {
		height = targetStripBytes / (width * (bytesPerNumericCell + bytesPerObjectCell))
		if height < 1 {
			height = 1
		}
	}
	if height > length {
		height = length
	}
	if height < 1 {
		height = 1
	}

	return &MixedRowReader{
		columns:         columns,
		numericFillable: numericFillable,
		objectFillable:  objectFillable,
		length:          length,
		bufferHeight:    height,
		numericStrip:    make([]float64, width*height),
		objectStrip:     make([]any, width*height),
		pos:             BeforeFirstRow,
	}
}

// Position returns the 0-based index of the last row produced.
func (r *MixedRowReader) Position() int { return r.pos }

// Len returns the reader's permitted row count.
func (r *MixedRowReader) Len() int { return r.length }

// Width returns the number of columns this reader stripes.
func (r *MixedRowReader) Width() int { return len(r.columns) }

// HasRemaining reports whether a further Read/Move call would advance the
// cursor, per spec.md's has_remaining() protocol.
func (r *MixedRowReader) HasRemaining() bool { return r.pos < r.length-1 }

func (r *MixedRowReader) ensureFilled(row int) {
	if row >= r.bufStart && row < r.bufStart+r.bufLen {
		return
	}

	r.bufStart = row
	width := len(r.columns)
	rowsAvailable := r.length - row
	if rowsAvailable > r.bufferHeight {
		rowsAvailable = r.bufferHeight
	}

	for j, col := range r.columns {
		if r.numericFillable[j] {
			filler := col.(column.NumericFiller)
			n := filler.FillStrided(r.numericStrip[:rowsAvailable*width], row, j, width)
			for k := n; k < rowsAvailable; k++ {
				r.numericStrip[k*width+j] = math.NaN()
			}
		} else {
			for k := 0; k < rowsAvailable; k++ {
				r.numericStrip[k*width+j] = math.NaN()
			}
		}

		if r.objectFillable[j] {
			filler := col.(column.ObjectFiller)
			n := filler.FillObjectStrided(r.objectStrip[:rowsAvailable*width], row, j, width)
			for k := n; k < rowsAvailable; k++ {
				r.objectStrip[k*width+j] = nil
			}
		} else {
			for k := 0; k < rowsAvailable; k++ {
				r.objectStrip[k*width+j] = nil
			}
		}
	}

	r.bufLen = rowsAvailable
}

// Read advances the cursor by one row; ok is false once past the last
// permitted row.
func (r *MixedRowReader) Read() bool {
	return r.Move()
}

// Move advances the cursor by one row, refilling the strip on exhaustion;
// returns false once past the last permitted row.
func (r *MixedRowReader) Move() bool {
	assertHasRemaining(r.pos >= r.length)

	next := r.pos + 1
	if next >= r.length {
		r.pos = r.length

		return false
	}

	r.ensureFilled(next)
	r.pos = next

	return true
}

// NumericAt returns the numeric value of column col at the current row
// (NaN if col isn't NumericFiller-capable or the row is missing).
func (r *MixedRowReader) NumericAt(col int) float64 {
	width := len(r.columns)

	return r.numericStrip[(r.pos-r.bufStart)*width+col]
}

// ObjectAt returns the resolved value of column col at the current row
// (nil if col isn't ObjectFiller-capable or the row is missing).
func (r *MixedRowReader) ObjectAt(col int) any {
	width := len(r.columns)

	return r.objectStrip[(r.pos-r.bufStart)*width+col]
}

// SetPosition moves the cursor so the next Read/Move returns row p+1.
func (r *MixedRowReader) SetPosition(p int) error {
	if err := validatePosition(p); err != nil {
		return err
	}

	r.pos = p
	r.bufLen = 0

	return nil
}
