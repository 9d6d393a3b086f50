package buffer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
)

// InstantMinSecond and InstantMaxSecond bound the epoch-seconds domain a
// date-time buffer accepts, mirroring java.time.Instant.MIN/MAX's
// getEpochSecond() (the widest range the high-precision variant's
// seconds+nanos pair can address without ambiguity).
const (
	InstantMinSecond int64 = -31557014167219200
	InstantMaxSecond int64 = 31556889864403199
)

// MaxNanoOfSecond is the largest valid nanos-of-second value.
const MaxNanoOfSecond int64 = 999_999_999

// DateTimeBuffer is a mutable date-time buffer, low precision (seconds
// only) or high precision (seconds + nanos). Missing is represented by
// seconds == column.LongMin; nanos for a missing entry is unspecified.
type DateTimeBuffer struct {
	seconds []int64
	nanos   []int64 // nil => low precision
	frozen  atomic.Bool
}

// NewDateTimeBuffer builds a low-precision date-time buffer of size rows,
// all initialized to missing.
func NewDateTimeBuffer(size int) *DateTimeBuffer {
	seconds := make([]int64, size)
	for i := range seconds {
		seconds[i] = column.LongMin
	}

	return &DateTimeBuffer{seconds: seconds}
}

// NewDateTimeBufferHi builds a high-precision date-time buffer of size
// rows, all initialized to missing.
func NewDateTimeBufferHi(size int) *DateTimeBuffer {
	seconds := make([]int64, size)
	nanos := make([]int64, size)
	for i := range seconds {
		seconds[i] = column.LongMin
	}

	return &DateTimeBuffer{seconds: seconds, nanos: nanos}
}

// Size returns the buffer's row count.
func (b *DateTimeBuffer) Size() int { return len(b.seconds) }

// IsHighPrecision reports whether this buffer carries a nanos array.
func (b *DateTimeBuffer) IsHighPrecision() bool { return b.nanos != nil }

// SetInstant writes t at row i (nil clears it to missing). For the
// low-precision variant, sub-second precision is discarded.
func (b *DateTimeBuffer) SetInstant(i int, t *time.Time) error {
	if t == nil {
		return b.SetSeconds(i, column.LongMin, 0)
	}

	return b.SetSeconds(i, t.Unix(), int64(t.Nanosecond()))
}

// SetSeconds writes seconds (and, for the high-precision variant, nanos) at
// row i. seconds == column.LongMin marks row i missing and skips range
// validation. Otherwise seconds must be within
// [InstantMinSecond, InstantMaxSecond] and nanos within [0, MaxNanoOfSecond],
// or SetSeconds fails with errs.ErrInvalidArgument.
func (b *DateTimeBuffer) SetSeconds(i int, seconds, nanos int64) error {
	if b.frozen.Load() {
		return errs.ErrBufferFrozen
	}

	if seconds != column.LongMin {
		if seconds < InstantMinSecond || seconds > InstantMaxSecond {
			return fmt.Errorf("date-time buffer: seconds %d out of range: %w", seconds, errs.ErrInvalidArgument)
		}
		if nanos < 0 || nanos > MaxNanoOfSecond {
			return fmt.Errorf("date-time buffer: nanos %d out of range: %w", nanos, errs.ErrInvalidArgument)
		}
	}

	b.seconds[i] = seconds
	if b.nanos != nil {
		b.nanos[i] = nanos
	}

	return nil
}

// Get returns the Instant at row i as (seconds, nanos, ok); ok is false if
// row i is missing.
func (b *DateTimeBuffer) Get(i int) (seconds, nanos int64, ok bool) {
	seconds = b.seconds[i]
	if seconds == column.LongMin {
		return 0, 0, false
	}

	if b.nanos != nil {
		nanos = b.nanos[i]
	}

	return seconds, nanos, true
}

// Freeze transfers the buffer's backing arrays to a new date-time column
// without copying. Subsequent Set calls fail with errs.ErrBufferFrozen.
func (b *DateTimeBuffer) Freeze() column.Column {
	b.frozen.Store(true)

	if b.nanos != nil {
		return column.NewDateTimeColumnHi(b.seconds, b.nanos)
	}

	return column.NewDateTimeColumn(b.seconds)
}
