package column

import (
	"math"
	"time"

	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/mapping"
	"github.com/arloliu/coltable/sortutil"
)

// LongMin and LongMax are the sentinel missing markers for date-time
// (seconds == LongMin) and time-of-day (nanos == LongMax) columns,
// mirroring spec §3's Long.MIN_VALUE / Long.MAX_VALUE conventions.
const (
	LongMin = math.MinInt64
	LongMax = math.MaxInt64
)

// dateTimeStorage is the shared backing arrays for a date-time column.
// Nanos is nil for the low-precision variant; when present, len(Nanos) >=
// len(Seconds).
type dateTimeStorage struct {
	seconds []int64
	nanos   []int64 // nil => low precision
}

type denseDateTimeColumn struct {
	storage *dateTimeStorage
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

// NewDateTimeColumn builds a low-precision (seconds only) date-time column,
// taking ownership of seconds.
func NewDateTimeColumn(seconds []int64) Column {
	return &denseDateTimeColumn{
		storage: &dateTimeStorage{seconds: seconds},
		typ:     format.NewDateTimeDescriptor(),
		caps:    format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable),
	}
}

// NewDateTimeColumnHi builds a high-precision (seconds + nanos) date-time
// column. len(nanos) must be >= len(seconds); nanos for a missing second is
// unspecified.
func NewDateTimeColumnHi(seconds, nanos []int64) Column {
	return &denseDateTimeColumn{
		storage: &dateTimeStorage{seconds: seconds, nanos: nanos},
		typ:     format.NewDateTimeDescriptor(),
		caps:    format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable),
	}
}

func (c *denseDateTimeColumn) Size() int                         { return len(c.storage.seconds) }
func (c *denseDateTimeColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *denseDateTimeColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *denseDateTimeColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

// IsHighPrecision reports whether this column carries a nanos array.
func (c *denseDateTimeColumn) IsHighPrecision() bool { return c.storage.nanos != nil }

func (c *denseDateTimeColumn) numericAt(i int) float64 {
	s := c.storage.seconds[i]
	if s == LongMin {
		return math.NaN()
	}

	return float64(s)
}

func (c *denseDateTimeColumn) objectAt(i int) any {
	s := c.storage.seconds[i]
	if s == LongMin {
		return nil
	}

	if c.storage.nanos != nil {
		return time.Unix(s, c.storage.nanos[i]).UTC()
	}

	return time.Unix(s, 0).UTC()
}

func (c *denseDateTimeColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.numericAt(rowStart + k)
	}

	return n
}

func (c *denseDateTimeColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.numericAt(rowStart + k)
	}

	return n
}

func (c *denseDateTimeColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.objectAt(rowStart + k)
	}

	return n
}

func (c *denseDateTimeColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.objectAt(rowStart + k)
	}

	return n
}

func (c *denseDateTimeColumn) Map(perm []int, preferView bool) Column {
	return mapDateTime(c.storage, perm, preferView, c.typ)
}

func (c *denseDateTimeColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	missing := func(v int64) bool { return v == LongMin }

	return sortutil.Longs(c.storage.seconds, order, missing), nil
}

// mappedDateTimeColumn wraps a dateTimeStorage with a row permutation.
type mappedDateTimeColumn struct {
	storage *dateTimeStorage
	perm    []int
	typ     format.TypeDescriptor
	caps    format.CapabilitySet
}

func (c *mappedDateTimeColumn) Size() int                         { return len(c.perm) }
func (c *mappedDateTimeColumn) Type() format.TypeDescriptor        { return c.typ }
func (c *mappedDateTimeColumn) Capabilities() format.CapabilitySet { return c.caps }
func (c *mappedDateTimeColumn) HasCapability(cap format.Capability) bool {
	return c.caps.Has(cap)
}

func (c *mappedDateTimeColumn) secondsAt(i int) (int64, bool) {
	p := c.perm[i]
	if mapping.IsOutOfRange(p, len(c.storage.seconds)) {
		return LongMin, false
	}

	return c.storage.seconds[p], true
}

func (c *mappedDateTimeColumn) numericAt(i int) float64 {
	s, ok := c.secondsAt(i)
	if !ok || s == LongMin {
		return math.NaN()
	}

	return float64(s)
}

func (c *mappedDateTimeColumn) objectAt(i int) any {
	p := c.perm[i]
	if mapping.IsOutOfRange(p, len(c.storage.seconds)) {
		return nil
	}

	s := c.storage.seconds[p]
	if s == LongMin {
		return nil
	}

	if c.storage.nanos != nil {
		return time.Unix(s, c.storage.nanos[p]).UTC()
	}

	return time.Unix(s, 0).UTC()
}

func (c *mappedDateTimeColumn) Fill(dst []float64, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.numericAt(rowStart + k)
	}

	return n
}

func (c *mappedDateTimeColumn) FillStrided(dst []float64, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.numericAt(rowStart + k)
	}

	return n
}

func (c *mappedDateTimeColumn) FillObject(dst []any, rowStart int) int {
	n := clampFillCount(len(dst), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[k] = c.objectAt(rowStart + k)
	}

	return n
}

func (c *mappedDateTimeColumn) FillObjectStrided(dst []any, rowStart, dstOffset, dstStride int) int {
	n := clampFillCount(strideCapacity(len(dst), dstOffset, dstStride), rowStart, c.Size())
	for k := 0; k < n; k++ {
		dst[dstOffset+k*dstStride] = c.objectAt(rowStart + k)
	}

	return n
}

func (c *mappedDateTimeColumn) Map(perm []int, preferView bool) Column {
	merged := mapping.Compose(c.perm, perm)

	return mapDateTime(c.storage, merged, preferView, c.typ)
}

func (c *mappedDateTimeColumn) Sort(order sortutil.Order) ([]int, error) {
	if !c.caps.Has(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	seconds := make([]int64, c.Size())
	for i := range seconds {
		s, ok := c.secondsAt(i)
		if !ok {
			s = LongMin
		}
		seconds[i] = s
	}

	missing := func(v int64) bool { return v == LongMin }

	return sortutil.Longs(seconds, order, missing), nil
}

func mapDateTime(storage *dateTimeStorage, perm []int, preferView bool, typ format.TypeDescriptor) Column {
	caps := format.NewCapabilitySet(format.NumericReadable, format.ObjectReadable, format.Sortable)

	if preferView || float64(len(perm)) > MappingThreshold*float64(len(storage.seconds)) {
		return &mappedDateTimeColumn{storage: storage, perm: clonePerm(perm), typ: typ, caps: caps}
	}

	copiedSeconds := mapping.CompactInt64(storage.seconds, perm, LongMin)

	var copiedNanos []int64
	if storage.nanos != nil {
		copiedNanos = mapping.CompactInt64(storage.nanos, perm, 0)
	}

	return &denseDateTimeColumn{storage: &dateTimeStorage{seconds: copiedSeconds, nanos: copiedNanos}, typ: typ, caps: caps}
}
