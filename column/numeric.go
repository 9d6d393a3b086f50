package column

import (
	"math"

	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/mapping"
	"github.com/arloliu/coltable/sortutil"
)

// doubleStorage is the shared, immutable backing array for dense numeric
// columns. A mapped numeric column holds a pointer to the same storage
// instead of copying it; Go's GC keeps the array alive for as long as any
// column (dense or mapped) still references it.
type doubleStorage struct {
	values []float64
}

// denseNumericColumn is the dense-array numeric variant backing both REAL
// and INTEGER columns (the difference is purely in the type descriptor and
// in how the originating buffer rounded values on write).
type denseNumericColumn struct {
	storage *doubleStorage
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

// NewDoubleColumn builds a dense numeric column over values, taking
// ownership of the slice (no copy). typ should be format.NewNumericDescriptor
// for REAL or INTEGER columns.
func NewDoubleColumn(values []float64, typ format.TypeDescriptor) Column {
	return &denseNumericColumn{
		storage: &doubleStorage{values: values},
		typ:     typ,
		caps:    format.NewCapabilitySet(format.NumericReadable, format.Sortable),
	}
}

func (c *denseNumericColumn) Size() int                            { return len(c.storage.values) }
func (c *denseNumericColumn) Type() format.TypeDescriptor           { return c.typ }
func (c *denseNumericColumn) Capabilities() format.CapabilitySet    { return c.caps }
func (c *denseNumericColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *denseNumericColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	copy(dst[:n], c.storage.values[rowStart:rowStart+n])

	return n
}

func (c *denseNumericColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.storage.values[rowStart+k]
	}

	return n
}

func (c *denseNumericColumn) Map(perm []int, preferView bool) Column {
	return mapDouble(c.storage, perm, preferView, c.typ)
}

func (c *denseNumericColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.HasCapability(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	return sortutil.Doubles(c.storage.values, order), nil
}

// mappedNumericColumn wraps a doubleStorage with a row permutation;
// materializes values on read rather than copying eagerly.
type mappedNumericColumn struct {
	storage *doubleStorage
	perm    []int
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

func (c *mappedNumericColumn) Size() int                         { return len(c.perm) }
func (c *mappedNumericColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *mappedNumericColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *mappedNumericColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *mappedNumericColumn) valueAt(i int) float64 {
	p := c.perm[i]
	if mapping.IsOutOfRange(p, len(c.storage.values)) {
		return math.NaN()
	}

	return c.storage.values[p]
}

func (c *mappedNumericColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.valueAt(rowStart + k)
	}

	return n
}

func (c *mappedNumericColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.valueAt(rowStart + k)
	}

	return n
}

func (c *mappedNumericColumn) Map(perm []int, preferView bool) Column {
	merged := mapping.Compose(c.perm, perm)

	return mapDouble(c.storage, merged, preferView, c.typ)
}

func (c *mappedNumericColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	values := make([]float64, c.Size())
	for i := range values {
		values[i] = c.valueAt(i)
	}

	return sortutil.Doubles(values, order), nil
}

// mapDouble implements the shared Map decision (view vs copy) for dense and
// mapped numeric columns against the same underlying storage.
func mapDouble(storage *doubleStorage, perm []int, preferView bool, typ format.TypeDescriptor) Column {
	caps := format.NewCapabilitySet(format.NumericReadable, format.Sortable)

	if preferView || float64(len(perm)) > MappingThreshold*float64(len(storage.values)) {
		return &mappedNumericColumn{storage: storage, perm: clonePerm(perm), typ: typ, caps: caps}
	}

	copied := mapping.CompactFloat64(storage.values, perm, math.NaN())

	return &denseNumericColumn{storage: &doubleStorage{values: copied}, typ: typ, caps: caps}
}

func clonePerm(perm []int) []int {
	out := make([]int, len(perm))
	copy(out, perm)

	return out
}

// strideCapacity returns how many strided elements fit in dst given the
// starting offset and stride.
func strideCapacity(dstLen, dstOffset, dstStride int) int {
	if dstStride <= 0 || dstOffset >= dstLen {
		return 0
	}

	return (dstLen-dstOffset-1)/dstStride + 1
}
