package buffer

import (
	"sync/atomic"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
)

// NanosPerDay is the number of nanoseconds in a 24-hour day, the open upper
// bound a TimeBuffer's non-missing values must stay under.
const NanosPerDay int64 = 24 * 60 * 60 * 1_000_000_000

// TimeBuffer is a mutable time-of-day buffer: nanoseconds since midnight,
// missing represented by column.LongMax.
type TimeBuffer struct {
	nanos  []int64
	frozen atomic.Bool
}

// NewTimeBuffer builds a time-of-day buffer of size rows, all initialized
// to missing.
func NewTimeBuffer(size int) *TimeBuffer {
	nanos := make([]int64, size)
	for i := range nanos {
		nanos[i] = column.LongMax
	}

	return &TimeBuffer{nanos: nanos}
}

// Size returns the buffer's row count.
func (b *TimeBuffer) Size() int { return len(b.nanos) }

// Get returns the nanos-of-day value at row i (column.LongMax if missing).
func (b *TimeBuffer) Get(i int) int64 { return b.nanos[i] }

// Set writes nanosOfDay at row i. column.LongMax marks row i missing and
// skips range validation; otherwise nanosOfDay must be in [0, NanosPerDay)
// or Set fails with errs.ErrInvalidArgument.
func (b *TimeBuffer) Set(i int, nanosOfDay int64) error {
	if b.frozen.Load() {
		return errs.ErrBufferFrozen
	}

	if nanosOfDay != column.LongMax && (nanosOfDay < 0 || nanosOfDay >= NanosPerDay) {
		return errs.ErrInvalidArgument
	}

	b.nanos[i] = nanosOfDay

	return nil
}

// Freeze transfers the buffer's backing array to a new time-of-day column
// without copying. Subsequent Set calls fail with errs.ErrBufferFrozen.
func (b *TimeBuffer) Freeze() column.Column {
	b.frozen.Store(true)

	return column.NewTimeColumn(b.nanos)
}
