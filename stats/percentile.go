package stats

import (
	"math"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/reader"
	"github.com/arloliu/coltable/sortutil"
)

// Percentile computes the p-th percentile (p in [0, 1]) of col using the
// NIST linear-interpolation convention rank = p*(n+1): the column is
// sorted ascending via map(sort(asc), prefer_view=true), out-of-range
// ranks clamp to the endpoints, and the result is read back through a
// numeric reader, per spec §4.7. Returns NaN, nil for an empty column.
func Percentile(col column.Column, p float64) (float64, error) {
	if !col.HasCapability(format.Sortable) {
		return math.NaN(), errs.ErrUnsupportedOperation
	}
	if _, ok := col.(column.NumericFiller); !ok {
		return math.NaN(), errs.ErrUnsupportedOperation
	}

	n := col.Size()
	if n == 0 {
		return math.NaN(), nil
	}

	perm, err := col.Sort(sortutil.Ascending)
	if err != nil {
		return math.NaN(), err
	}
	sorted := col.Map(perm, true)

	rank := p * float64(n+1)
	if rank < 1 {
		rank = 1
	}
	if rank > float64(n) {
		rank = float64(n)
	}

	lowIdx := int(math.Floor(rank)) - 1
	frac := rank - math.Floor(rank)

	r := reader.NewNumericReader(sorted, n, reader.MinBufferSize)
	if err := r.SetPosition(lowIdx - 1); err != nil {
		return math.NaN(), err
	}

	low, _ := r.Read()
	if frac == 0 || lowIdx+1 >= n {
		return low, nil
	}

	high, _ := r.Read()

	return low + frac*(high-low), nil
}
