package buffer

import (
	"sync/atomic"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
)

// ObjectBuffer is a mutable dense buffer of application-defined values,
// freezing into an object column via column.NewObjectColumn. A nil typ.Comparator
// means the resulting column is not Sortable.
type ObjectBuffer struct {
	values []any
	typ    format.TypeDescriptor
	frozen atomic.Bool
}

// NewObjectBuffer builds a fixed-length object buffer of size, every slot
// initialized to missing (nil).
func NewObjectBuffer(size int, typ format.TypeDescriptor) *ObjectBuffer {
	return &ObjectBuffer{values: make([]any, size), typ: typ}
}

// Size returns the buffer's length.
func (b *ObjectBuffer) Size() int { return len(b.values) }

// Get returns the value at i. Panics if i is out of range.
func (b *ObjectBuffer) Get(i int) any { return b.values[i] }

// Set writes v at index i. Returns errs.ErrBufferFrozen if the buffer has
// already been frozen, errs.ErrOutOfRange if i is out of bounds.
func (b *ObjectBuffer) Set(i int, v any) error {
	if b.frozen.Load() {
		return errs.ErrBufferFrozen
	}

	if i < 0 || i >= len(b.values) {
		return errs.ErrOutOfRange
	}

	b.values[i] = v

	return nil
}

// Freeze transfers ownership of the buffer's backing array to a new column
// without copying. Subsequent Set calls fail with errs.ErrBufferFrozen.
func (b *ObjectBuffer) Freeze() column.Column {
	b.frozen.Store(true)

	return column.NewObjectColumn(b.values, b.typ)
}
