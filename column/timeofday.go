package column

import (
	"math"
	"time"

	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/mapping"
	"github.com/arloliu/coltable/sortutil"
)

// timeStorage is the shared backing array for a time-of-day column: 64-bit
// nanoseconds since midnight, missing == LongMax (so natural long order
// already puts missings last).
type timeStorage struct {
	nanos []int64
}

type denseTimeColumn struct {
	storage *timeStorage
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

// NewTimeColumn builds a time-of-day column over nanos, taking ownership of
// the slice.
func NewTimeColumn(nanos []int64) Column {
	return &denseTimeColumn{
		storage: &timeStorage{nanos: nanos},
		typ:     format.NewTimeDescriptor(),
		caps:    format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable),
	}
}

func (c *denseTimeColumn) Size() int                         { return len(c.storage.nanos) }
func (c *denseTimeColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *denseTimeColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *denseTimeColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *denseTimeColumn) numericAt(i int) float64 {
	v := c.storage.nanos[i]
	if v == LongMax {
		return math.NaN()
	}

	return float64(v)
}

func (c *denseTimeColumn) objectAt(i int) any {
	v := c.storage.nanos[i]
	if v == LongMax {
		return nil
	}

	return time.Duration(v)
}

func (c *denseTimeColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.numericAt(rowStart + k)
	}

	return n
}

func (c *denseTimeColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.numericAt(rowStart + k)
	}

	return n
}

func (c *denseTimeColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.objectAt(rowStart + k)
	}

	return n
}

func (c *denseTimeColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.objectAt(rowStart + k)
	}

	return n
}

func (c *denseTimeColumn) Map(perm []int, preferView bool) Column {
	return mapTime(c.storage, perm, preferView, c.typ)
}

func (c *denseTimeColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	missing := func(v int64) bool { return v == LongMax }

	return sortutil.Longs(c.storage.nanos, order, missing), nil
}

type mappedTimeColumn struct {
	storage *timeStorage
	perm    []int
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

func (c *mappedTimeColumn) Size() int                         { return len(c.perm) }
func (c *mappedTimeColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *mappedTimeColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *mappedTimeColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *mappedTimeColumn) valueAt(i int) int64 {
	p := c.perm[i]
	if mapping.IsOutOfRange(p, len(c.storage.nanos)) {
		return LongMax
	}

	return c.storage.nanos[p]
}

func (c *mappedTimeColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		v := c.valueAt(rowStart + k)
		if v == LongMax {
			dst[k] = math.NaN()
		} else {
			dst[k] = float64(v)
		}
	}

	return n
}

func (c *mappedTimeColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		v := c.valueAt(rowStart + k)
		if v == LongMax {
			dst[dstOffset+k*dstStride] = math.NaN()
		} else {
			dst[dstOffset+k*dstStride] = float64(v)
		}
	}

	return n
}

func (c *mappedTimeColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		v := c.valueAt(rowStart + k)
		if v == LongMax {
			dst[k] = nil
		} else {
			dst[k] = time.Duration(v)
		}
	}

	return n
}

func (c *mappedTimeColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		v := c.valueAt(rowStart + k)
		if v == LongMax {
			dst[dstOffset+k*dstStride] = nil
		} else {
			dst[dstOffset+k*dstStride] = time.Duration(v)
		}
	}

	return n
}

func (c *mappedTimeColumn) Map(perm []int, preferView bool) Column {
	merged := mapping.Compose(c.perm, perm)

	return mapTime(c.storage, merged, preferView, c.typ)
}

func (c *mappedTimeColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	values := make([]int64, c.Size())
	for i := range values {
		values[i] = c.valueAt(i)
	}

	missing := func(v int64) bool { return v == LongMax }

	return sortutil.Longs(values, order, missing), nil
}

func mapTime(storage *timeStorage, perm []int, preferView bool, typ format.TypeDescriptor) Column {
	caps := format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable)

	if preferView || float64(len(perm)) > MappingThreshold*float64(len(storage.nanos)) {
		return &mappedTimeColumn{storage: storage, perm: clonePerm(perm), typ: typ, caps: caps}
	}

	copied := mapping.CompactInt64(storage.nanos, perm, LongMax)

	return &denseTimeColumn{storage: &timeStorage{nanos: copied}, typ: typ, caps: caps}
}
