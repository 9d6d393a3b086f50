package buffer

import (
	"fmt"
	"sync"

	"github.com/arloliu/coltable/bitpack"
	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
)

// CategoricalBuffer is a mutable dictionary-encoded categorical buffer. It
// holds a dense index array in one of the five bitpack widths plus a shared
// column.Dictionary; index 0 always denotes a null/missing value. Set
// resolves a value against the dictionary, appending a new entry if the
// value hasn't been seen before; once the dictionary reaches the format's
// maximum value it refuses new (never-seen) values with
// errs.ErrDictionaryOverflow while still accepting values already interned.
type CategoricalBuffer struct {
	mu     sync.Mutex
	data   []byte // backing bytes for U2/U4; unused for U8/U16/I32
	u8     []uint8
	u16    []uint16
	i32    []int32
	format bitpack.Format
	size   int
	dict   *column.Dictionary
	frozen bool
}

// NewCategoricalBuffer builds a categorical buffer of size rows in the
// given bitpack format, all initialized to missing (index 0). dict may be a
// fresh column.NewDictionary() or one shared with another buffer/column
// that should contribute to the same value space.
func NewCategoricalBuffer(size int, f bitpack.Format, dict *column.Dictionary) *CategoricalBuffer {
	b := &CategoricalBuffer{format: f, size: size, dict: dict}

	switch f {
	case bitpack.U2, bitpack.U4:
		b.data = make([]byte, f.BytesPerNElements(size))
	case bitpack.U8:
		b.u8 = make([]uint8, size)
	case bitpack.U16:
		b.u16 = make([]uint16, size)
	default:
		b.i32 = make([]int32, size)
	}

	return b
}

// Size returns the buffer's row count.
func (b *CategoricalBuffer) Size() int { return b.size }

// Dictionary returns the buffer's shared dictionary.
func (b *CategoricalBuffer) Dictionary() *column.Dictionary { return b.dict }

func (b *CategoricalBuffer) getIndex(i int) int32 {
	switch b.format {
	case bitpack.U2:
		return int32(bitpack.ReadU2(b.data, i))
	case bitpack.U4:
		return int32(bitpack.ReadU4(b.data, i))
	case bitpack.U8:
		return int32(b.u8[i])
	case bitpack.U16:
		return int32(b.u16[i])
	default:
		return b.i32[i]
	}
}

func (b *CategoricalBuffer) putIndex(i int, idx int32) {
	switch b.format {
	case bitpack.U2:
		bitpack.WriteU2(b.data, i, uint8(idx))
	case bitpack.U4:
		bitpack.WriteU4(b.data, i, uint8(idx))
	case bitpack.U8:
		b.u8[i] = uint8(idx)
	case bitpack.U16:
		b.u16[i] = uint16(idx)
	default:
		b.i32[i] = idx
	}
}

// Get returns the dictionary-resolved value at row i (nil if missing).
func (b *CategoricalBuffer) Get(i int) any {
	return b.dict.Get(b.getIndex(i))
}

// GetIndex returns the raw dictionary index at row i (0 if missing).
func (b *CategoricalBuffer) GetIndex(i int) int32 { return b.getIndex(i) }

// Set resolves v against the dictionary (nil clears row i to missing) and
// writes the resulting index at row i. It fails with errs.ErrBufferFrozen
// if the buffer was already frozen, and with errs.ErrDictionaryOverflow if
// v is a value never seen before and the dictionary is already at the
// format's maximum index.
func (b *CategoricalBuffer) Set(i int, v any) error {
	ok, err := b.setTry(i, v)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("categorical buffer: %w", errs.ErrDictionaryOverflow)
	}

	return nil
}

// SetTry behaves like Set but reports dictionary overflow by returning
// false instead of an error, per spec §8 scenario 5's set_try contract.
func (b *CategoricalBuffer) SetTry(i int, v any) (bool, error) {
	return b.setTry(i, v)
}

func (b *CategoricalBuffer) setTry(i int, v any) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return false, errs.ErrBufferFrozen
	}

	if v == nil {
		b.putIndex(i, 0)

		return true, nil
	}

	idx, ok := b.dict.Intern(v, b.format.MaxValue())
	if !ok {
		return false, nil
	}

	b.putIndex(i, idx)

	return true, nil
}

// Freeze transfers the buffer's dense index storage and dictionary to a new
// categorical column without copying. Subsequent Set calls fail with
// errs.ErrBufferFrozen.
func (b *CategoricalBuffer) Freeze() column.Column {
	return b.freeze(nil)
}

// FreezeBoolean is like Freeze but additionally records positive as the
// dictionary index treated as "true", making the resulting column's
// Capabilities report format.Boolean. positive must already be interned in
// the buffer's dictionary (e.g. via a prior Set call) or be 0 (null).
func (b *CategoricalBuffer) FreezeBoolean(positive any) (column.Column, error) {
	if positive == nil {
		zero := int32(0)

		return b.freeze(&zero), nil
	}

	idx, ok := b.dict.IndexOf(positive)
	if !ok {
		return nil, fmt.Errorf("categorical buffer: freeze boolean: %w", errs.ErrInvalidArgument)
	}

	return b.freeze(&idx), nil
}

func (b *CategoricalBuffer) freeze(positiveIndex *int32) column.Column {
	b.mu.Lock()
	b.frozen = true
	b.mu.Unlock()

	var store interface {
		Len() int
		Get(i int) int32
	}

	switch b.format {
	case bitpack.U2:
		store = column.NewU2Store(b.data, b.size)
	case bitpack.U4:
		store = column.NewU4Store(b.data, b.size)
	case bitpack.U8:
		store = column.NewU8Store(b.u8)
	case bitpack.U16:
		store = column.NewU16Store(b.u16)
	default:
		store = column.NewI32Store(b.i32)
	}

	return column.NewCategoricalColumn(store, b.dict, b.format, positiveIndex)
}
