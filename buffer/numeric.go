// Package buffer implements the mutable staging containers that freeze
// into columns: numeric (real/integer) buffers, five-width categorical
// dictionary buffers, date-time (low/high precision) buffers, and a
// time-of-day buffer. Every buffer follows the same lifecycle: construct,
// write positionally via Set, then Freeze into an immutable column that
// takes ownership of the buffer's storage without copying it. Writes after
// Freeze fail with errs.ErrBufferFrozen.
package buffer

import (
	"math"
	"sync/atomic"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
)

// minGrowingCapacity is the smallest non-empty capacity a growing numeric
// buffer allocates, per spec §4.3.
const minGrowingCapacity = 8

// growthFactor is the capacity multiplier a growing buffer applies when it
// needs to extend past its current capacity.
const growthFactor = 1.5

// NumericBuffer is a mutable real or integer numeric buffer. Integer
// buffers round finite values to the nearest integer on Set, ties to even
// (IEEE round-half-to-even); ±Inf and NaN pass through unrounded. A buffer
// constructed with NewGrowingRealBuffer/NewGrowingIntegerBuffer extends its
// backing array on demand instead of rejecting out-of-range Set calls.
type NumericBuffer struct {
	values  []float64
	kind    format.TypeID // REAL or INTEGER
	growing bool
	frozen  atomic.Bool
}

// NewRealBuffer builds a fixed-length real (double) buffer of size with
// every slot initialized to missing (NaN).
func NewRealBuffer(size int) *NumericBuffer {
	return newNumericBuffer(size, format.REAL, false)
}

// NewIntegerBuffer builds a fixed-length integer buffer of size.
func NewIntegerBuffer(size int) *NumericBuffer {
	return newNumericBuffer(size, format.INTEGER, false)
}

// NewGrowingRealBuffer builds a growing real buffer with an initial
// (possibly zero) logical size; Set beyond the current size extends it.
func NewGrowingRealBuffer(initialSize int) *NumericBuffer {
	return newNumericBuffer(initialSize, format.REAL, true)
}

// NewGrowingIntegerBuffer builds a growing integer buffer with an initial
// (possibly zero) logical size.
func NewGrowingIntegerBuffer(initialSize int) *NumericBuffer {
	return newNumericBuffer(initialSize, format.INTEGER, true)
}

func newNumericBuffer(size int, kind format.TypeID, growing bool) *NumericBuffer {
	values := make([]float64, size)
	for i := range values {
		values[i] = math.NaN()
	}

	return &NumericBuffer{values: values, kind: kind, growing: growing}
}

// Size returns the buffer's current logical length.
func (b *NumericBuffer) Size() int { return len(b.values) }

// Get returns the value at i. Panics if i is out of range, matching the
// teacher's preference for panicking on programmer-error contract
// violations rather than returning a sentinel.
func (b *NumericBuffer) Get(i int) float64 { return b.values[i] }

// Set writes v at index i, rounding it if this is an integer buffer. For a
// growing buffer, i beyond the current size extends it (new intermediate
// slots are filled with NaN); for a fixed buffer, i must be in range.
// Returns errs.ErrBufferFrozen if the buffer has already been frozen.
func (b *NumericBuffer) Set(i int, v float64) error {
	if b.frozen.Load() {
		return errs.ErrBufferFrozen
	}

	if i < 0 {
		return errs.ErrInvalidArgument
	}

	if i >= len(b.values) {
		if !b.growing {
			return errs.ErrOutOfRange
		}

		b.grow(i + 1)
	}

	if b.kind == format.INTEGER {
		v = roundHalfToEven(v)
	}

	b.values[i] = v

	return nil
}

// roundHalfToEven rounds finite values to the nearest integer, ties to
// even; ±Inf and NaN pass through unchanged.
func roundHalfToEven(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}

	return math.RoundToEven(v)
}

// grow extends the backing array so that Size() >= newSize, filling new
// slots with NaN (missing).
func (b *NumericBuffer) grow(newSize int) {
	if newSize <= len(b.values) {
		return
	}

	newCap := minGrowingCapacity
	if len(b.values) > 0 {
		newCap = int(float64(len(b.values)) * growthFactor)
	}
	if newCap < newSize {
		newCap = newSize
	}

	extended := make([]float64, newCap)
	copy(extended, b.values)
	for i := len(b.values); i < newCap; i++ {
		extended[i] = math.NaN()
	}

	b.values = extended
}

// Freeze transfers ownership of the buffer's backing array to a new column
// without copying. Subsequent Set calls fail with errs.ErrBufferFrozen.
func (b *NumericBuffer) Freeze() column.Column {
	b.frozen.Store(true)

	return column.NewDoubleColumn(b.values, format.NewNumericDescriptor(b.kind))
}
