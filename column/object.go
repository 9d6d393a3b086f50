package column

import (
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/mapping"
	"github.com/arloliu/coltable/sortutil"
)

// objectStorage is the shared backing array for an object column: a dense
// array of references to an application-defined element type, plus an
// optional total-order comparator (nil means the column is not sortable).
type objectStorage struct {
	values     []any
	comparator format.Comparator
}

type denseObjectColumn struct {
	storage *objectStorage
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

// NewObjectColumn builds a dense object column over values, taking
// ownership of the slice. typ should be built with
// format.NewCustomDescriptor, whose Comparator (possibly nil) determines
// whether the resulting column is Sortable.
func NewObjectColumn(values []any, typ format.TypeDescriptor) Column {
	caps := format.NewCapabilitySet(format.ObjectReadable)
	if typ.Comparator != nil {
		caps = caps.With(format.Sortable)
	}

	return &denseObjectColumn{
		storage: &objectStorage{values: values, comparator: typ.Comparator},
		typ:     typ,
		caps:    caps,
	}
}

func (c *denseObjectColumn) Size() int                         { return len(c.storage.values) }
func (c *denseObjectColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *denseObjectColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *denseObjectColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *denseObjectColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	copy(dst[:n], c.storage.values[rowStart:rowStart+n])

	return n
}

func (c *denseObjectColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.storage.values[rowStart+k]
	}

	return n
}

func (c *denseObjectColumn) Map(perm []int, preferView bool) Column {
	return mapObject(c.storage, perm, preferView, c.typ)
}

func (c *denseObjectColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	less := func(i, j int) bool {
		return lessObject(c.storage.values[i], c.storage.values[j], c.storage.comparator, order)
	}

	return sortutil.ByComparator(c.Size(), less), nil
}

// lessObject compares two object values via comparator, with nil (missing)
// always sorting last regardless of order.
func lessObject(a, b any, comparator format.Comparator, order sortutil.Order) bool {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return false
		}

		return a != nil
	}

	c := comparator(a, b)
	if order == sortutil.Ascending {
		return c < 0
	}

	return c > 0
}

type mappedObjectColumn struct {
	storage *objectStorage
	perm    []int
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

func (c *mappedObjectColumn) Size() int                         { return len(c.perm) }
func (c *mappedObjectColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *mappedObjectColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *mappedObjectColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *mappedObjectColumn) valueAt(i int) any {
	p := c.perm[i]
	if mapping.IsOutOfRange(p, len(c.storage.values)) {
		return nil
	}

	return c.storage.values[p]
}

func (c *mappedObjectColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.valueAt(rowStart + k)
	}

	return n
}

func (c *mappedObjectColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.valueAt(rowStart + k)
	}

	return n
}

func (c *mappedObjectColumn) Map(perm []int, preferView bool) Column {
	merged := mapping.Compose(c.perm, perm)

	return mapObject(c.storage, merged, preferView, c.typ)
}

func (c *mappedObjectColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	less := func(i, j int) bool {
		return lessObject(c.valueAt(i), c.valueAt(j), c.storage.comparator, order)
	}

	return sortutil.ByComparator(c.Size(), less), nil
}

func mapObject(storage *objectStorage, perm []int, preferView bool, typ format.TypeDescriptor) Column {
	caps := format.NewCapabilitySet(format.ObjectReadable)
	if storage.comparator != nil {
		caps = caps.With(format.Sortable)
	}

	if preferView || float64(len(perm)) > MappingThreshold*float64(len(storage.values)) {
		return &mappedObjectColumn{storage: storage, perm: clonePerm(perm), typ: typ, caps: caps}
	}

	copied := mapping.CompactAny(storage.values, perm)

	return &denseObjectColumn{storage: &objectStorage{values: copied, comparator: storage.comparator}, typ: typ, caps: caps}
}
