package column

import (
	"fmt"
	"math"

	"github.com/arloliu/coltable/bitpack"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/mapping"
	"github.com/arloliu/coltable/sortutil"
)

// indexStore abstracts over the five dense category-index width variants so
// categoricalColumn doesn't need a type switch on every read.
type indexStore interface {
	Len() int
	Get(i int) int32
}

type u2Store struct {
	data []byte
	n    int
}

func (s *u2Store) Len() int        { return s.n }
func (s *u2Store) Get(i int) int32 { return int32(bitpack.ReadU2(s.data, i)) }

type u4Store struct {
	data []byte
	n    int
}

func (s *u4Store) Len() int        { return s.n }
func (s *u4Store) Get(i int) int32 { return int32(bitpack.ReadU4(s.data, i)) }

type u8Store struct{ data []uint8 }

func (s *u8Store) Len() int        { return len(s.data) }
func (s *u8Store) Get(i int) int32 { return int32(s.data[i]) }

type u16Store struct{ data []uint16 }

func (s *u16Store) Len() int        { return len(s.data) }
func (s *u16Store) Get(i int) int32 { return int32(s.data[i]) }

type i32Store struct{ data []int32 }

func (s *i32Store) Len() int        { return len(s.data) }
func (s *i32Store) Get(i int) int32 { return s.data[i] }

// NewU2Store, NewU4Store, NewU8Store, NewU16Store, NewI32Store are used by
// the buffer package's Freeze to hand the dense index storage to a column
// without copying it.
func NewU2Store(data []byte, n int) indexStore  { return &u2Store{data: data, n: n} }
func NewU4Store(data []byte, n int) indexStore  { return &u4Store{data: data, n: n} }
func NewU8Store(data []uint8) indexStore        { return &u8Store{data: data} }
func NewU16Store(data []uint16) indexStore      { return &u16Store{data: data} }
func NewI32Store(data []int32) indexStore       { return &i32Store{data: data} }

// categoricalColumn is the dense categorical variant: a dense array of
// category indices in one of the five index-width formats, plus a shared
// Dictionary (index 0 always null/missing) and an optional positive index
// making the column a two-valued boolean categorical.
type categoricalColumn struct {
	indices       indexStore
	dict          *Dictionary
	format        bitpack.Format
	positiveIndex *int32
	typ           format.TypeDescriptor
	caps          format.CapabilitySet
}

// NewCategoricalColumn builds a categorical column over indices sharing
// dict, with index format f and optional positiveIndex (nil if the
// column isn't boolean).
func NewCategoricalColumn(indices indexStore, dict *Dictionary, f bitpack.Format, positiveIndex *int32) Column {
	caps := format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable)
	if positiveIndex != nil {
		caps = caps.With(format.Boolean)
	}

	return &categoricalColumn{
		indices:       indices,
		dict:          dict,
		format:        f,
		positiveIndex: positiveIndex,
		typ:           format.NewNominalDescriptor(),
		caps:          caps,
	}
}

func (c *categoricalColumn) Size() int                         { return c.indices.Len() }
func (c *categoricalColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *categoricalColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *categoricalColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

// Dictionary returns the column's shared dictionary.
func (c *categoricalColumn) Dictionary() *Dictionary { return c.dict }

// PositiveIndex returns the dictionary index treated as "positive" for a
// boolean categorical column, and whether one is set.
func (c *categoricalColumn) PositiveIndex() (int32, bool) {
	if c.positiveIndex == nil {
		return 0, false
	}

	return *c.positiveIndex, true
}

func (c *categoricalColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		idx := c.indices.Get(rowStart + k)
		if idx == 0 {
			dst[k] = math.NaN()
		} else {
			dst[k] = float64(idx)
		}
	}

	return n
}

func (c *categoricalColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		idx := c.indices.Get(rowStart + k)
		if idx == 0 {
			dst[dstOffset+k*dstStride] = math.NaN()
		} else {
			dst[dstOffset+k*dstStride] = float64(idx)
		}
	}

	return n
}

func (c *categoricalColumn) FillCategory(dst []int32, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.indices.Get(rowStart + k)
	}

	return n
}

func (c *categoricalColumn) FillCategoryStrided(dst []int32, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.indices.Get(rowStart + k)
	}

	return n
}

func (c *categoricalColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.dict.Get(c.indices.Get(rowStart + k))
	}

	return n
}

func (c *categoricalColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.dict.Get(c.indices.Get(rowStart + k))
	}

	return n
}

func (c *categoricalColumn) Map(perm []int, preferView bool) Column {
	return mapCategorical(categoricalView{indices: c.indices, size: c.Size()}, c.dict, c.format, c.positiveIndex, perm, preferView)
}

func (c *categoricalColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	less := func(i, j int) bool {
		return lessCategorical(c.indices.Get(i), c.indices.Get(j), c.dict, order)
	}

	return sortutil.ByComparator(c.Size(), less), nil
}

// lessCategorical orders two category indices by their dictionary value's
// natural string order (NOMINAL's element type), with index 0 (missing)
// always sorting last regardless of order.
func lessCategorical(ia, ib int32, dict *Dictionary, order sortutil.Order) bool {
	if ia == 0 || ib == 0 {
		if ia == ib {
			return false
		}

		return ia != 0
	}

	va := compareKey(dict.Get(ia))
	vb := compareKey(dict.Get(ib))

	if order == sortutil.Ascending {
		return va < vb
	}

	return va > vb
}

// compareKey renders a dictionary value to a string for ordering purposes.
// Categorical values are conventionally strings; this also gives a stable
// total order for any other comparable concrete type.
func compareKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// categoricalView is a read-only adapter over either a dense indexStore or
// a mapped categorical column, used so mapCategorical can compact/view
// either kind of source uniformly.
type categoricalView struct {
	indices indexStore
	perm    []int
	size    int
}

func (v categoricalView) get(i int) int32 {
	if v.perm == nil {
		return v.indices.Get(i)
	}

	p := v.perm[i]
	if mapping.IsOutOfRange(p, v.indices.Len()) {
		return 0
	}

	return v.indices.Get(p)
}

// mappedCategoricalColumn wraps a dense indexStore with a row permutation.
type mappedCategoricalColumn struct {
	indices       indexStore
	perm          []int
	dict          *Dictionary
	format        bitpack.Format
	positiveIndex *int32
	typ           format.TypeDescriptor
	caps          format.CapabilitySet
}

func (c *mappedCategoricalColumn) Size() int                         { return len(c.perm) }
func (c *mappedCategoricalColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *mappedCategoricalColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *mappedCategoricalColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

// Dictionary returns the column's shared dictionary.
func (c *mappedCategoricalColumn) Dictionary() *Dictionary { return c.dict }

// PositiveIndex returns the dictionary index treated as "positive" for a
// boolean categorical column, and whether one is set.
func (c *mappedCategoricalColumn) PositiveIndex() (int32, bool) {
	if c.positiveIndex == nil {
		return 0, false
	}

	return *c.positiveIndex, true
}

func (c *mappedCategoricalColumn) view() categoricalView {
	return categoricalView{indices: c.indices, perm: c.perm, size: len(c.perm)}
}

func (c *mappedCategoricalColumn) Fill(dst []float64, rowStart int) int {
	v := c.view()
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		idx := v.get(rowStart + k)
		if idx == 0 {
			dst[k] = math.NaN()
		} else {
			dst[k] = float64(idx)
		}
	}

	return n
}

func (c *mappedCategoricalColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	v := c.view()
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		idx := v.get(rowStart + k)
		if idx == 0 {
			dst[dstOffset+k*dstStride] = math.NaN()
		} else {
			dst[dstOffset+k*dstStride] = float64(idx)
		}
	}

	return n
}

func (c *mappedCategoricalColumn) FillCategory(dst []int32, rowStart int) int {
	v := c.view()
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = v.get(rowStart + k)
	}

	return n
}

func (c *mappedCategoricalColumn) FillCategoryStrided(dst []int32, rowStart, dstOffset, dstStride int) int {
	v := c.view()
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = v.get(rowStart + k)
	}

	return n
}

func (c *mappedCategoricalColumn) FillObject(dst []any, rowStart int) int {
	v := c.view()
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.dict.Get(v.get(rowStart + k))
	}

	return n
}

func (c *mappedCategoricalColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	v := c.view()
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.dict.Get(v.get(rowStart + k))
	}

	return n
}

func (c *mappedCategoricalColumn) Map(perm []int, preferView bool) Column {
	merged := mapping.Compose(c.perm, perm)

	return mapCategorical(categoricalView{indices: c.indices, size: c.indices.Len()}, c.dict, c.format, c.positiveIndex, merged, preferView)
}

func (c *mappedCategoricalColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	v := c.view()
	less := func(i, j int) bool {
		return lessCategorical(v.get(i), v.get(j), c.dict, order)
	}

	return sortutil.ByComparator(c.Size(), less), nil
}

// mapCategorical implements the shared Map decision for dense and mapped
// categorical columns against the same underlying index storage. When
// composing against an already-mapped source, src.perm carries the inner
// permutation and underlyingSize is the original (non-mapped) index count.
func mapCategorical(src categoricalView, dict *Dictionary, f bitpack.Format, positiveIndex *int32, perm []int, preferView bool) Column {
	caps := format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable)
	if positiveIndex != nil {
		caps = caps.With(format.Boolean)
	}
	typ := format.NewNominalDescriptor()

	underlyingSize := src.indices.Len()

	if preferView || float64(len(perm)) > MappingThreshold*float64(underlyingSize) {
		var composed []int
		if src.perm == nil {
			composed = clonePerm(perm)
		} else {
			composed = mapping.Compose(src.perm, perm)
		}

		return &mappedCategoricalColumn{
			indices: src.indices, perm: composed, dict: dict, format: f,
			positiveIndex: positiveIndex, typ: typ, caps: caps,
		}
	}

	srcSize := underlyingSize
	if src.perm != nil {
		srcSize = len(src.perm)
	}

	copied := make([]int32, len(perm))
	for i, p := range perm {
		if mapping.IsOutOfRange(p, srcSize) {
			continue // stays 0, the missing index
		}
		copied[i] = src.get(p)
	}

	return NewCategoricalColumn(compactIndexStore(copied, f), dict, f, positiveIndex)
}

// compactIndexStore re-packs a dense []int32 of category indices into the
// width-appropriate storage after a copy-map.
func compactIndexStore(values []int32, f bitpack.Format) indexStore {
	switch f {
	case bitpack.U2:
		data := make([]byte, bitpack.U2.BytesPerNElements(len(values)))
		for i, v := range values {
			bitpack.WriteU2(data, i, uint8(v))
		}

		return NewU2Store(data, len(values))
	case bitpack.U4:
		data := make([]byte, bitpack.U4.BytesPerNElements(len(values)))
		for i, v := range values {
			bitpack.WriteU4(data, i, uint8(v))
		}

		return NewU4Store(data, len(values))
	case bitpack.U8:
		data := make([]uint8, len(values))
		for i, v := range values {
			data[i] = uint8(v)
		}

		return NewU8Store(data)
	case bitpack.U16:
		data := make([]uint16, len(values))
		for i, v := range values {
			data[i] = uint16(v)
		}

		return NewU16Store(data)
	default:
		data := make([]int32, len(values))
		copy(data, values)

		return NewI32Store(data)
	}
}
