package operator

import (
	"math"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/sortutil"
)

// ColumnOrder pairs a column with the direction MultiColumnSort should sort
// it in.
type ColumnOrder struct {
	Column column.Column
	Order  sortutil.Order
}

// MultiColumnSort sorts by cols[0], then for each run of equal keys
// recursively sorts by cols[1], and so on, stably overall, per spec §4.6.
// Equality on a numeric key is Double.compare == 0 (so -0.0 and +0.0 are
// distinct, two NaNs are equal). Every column implementing
// column.NumericFiller is keyed by its filled double values, so categorical
// columns compare by dictionary index (first-insertion order), not by
// value; other columns compare through their
// format.TypeDescriptor.Comparator, with missing (nil) values sorting last
// regardless of order. A column lacking Sortable, or a column without
// NumericFiller and with no Comparator, fails with
// errs.ErrUnsupportedOperation. Implemented
// as a single stable lexicographic comparator sort (sortutil.ByComparator
// is already stable), which is equivalent to recursively re-sorting each
// equal-key run by the next column.
func MultiColumnSort(cols []ColumnOrder) ([]int, error) {
	if len(cols) == 0 {
		return nil, nil
	}

	n := cols[0].Column.Size()

	cmps := make([]func(i, j int) int, len(cols))
	for k, co := range cols {
		cmp, err := keyComparator(co)
		if err != nil {
			return nil, err
		}
		cmps[k] = cmp
	}

	less := func(i, j int) bool {
		for _, cmp := range cmps {
			c := cmp(i, j)
			if c != 0 {
				return c < 0
			}
		}

		return false
	}

	return sortutil.ByComparator(n, less), nil
}

// keyComparator builds a three-way (i, j int) int comparator for a single
// ColumnOrder: negative/zero/positive as row i's key sorts before/equal
// to/after row j's, already folding in Order and "missing sorts last".
func keyComparator(co ColumnOrder) (func(i, j int) int, error) {
	if !co.Column.HasCapability(format.Sortable) {
		return nil, errs.ErrUnsupportedOperation
	}

	if filler, ok := co.Column.(column.NumericFiller); ok {
		n := co.Column.Size()
		vals := make([]float64, n)
		filler.Fill(vals, 0)

		return func(i, j int) int {
			c := doubleCompare(vals[i], vals[j])
			if math.IsNaN(vals[i]) || math.IsNaN(vals[j]) {
				// missing always sorts last regardless of requested order
				return c
			}
			if co.Order == sortutil.Descending {
				c = -c
			}

			return c
		}, nil
	}

	filler, ok := co.Column.(column.ObjectFiller)
	if !ok {
		return nil, errs.ErrUnsupportedOperation
	}

	comparator := co.Column.Type().Comparator
	if comparator == nil {
		return nil, errs.ErrUnsupportedOperation
	}

	n := co.Column.Size()
	vals := make([]any, n)
	filler.FillObject(vals, 0)

	return func(i, j int) int {
		a, b := vals[i], vals[j]
		if a == nil || b == nil {
			switch {
			case a == nil && b == nil:
				return 0
			case a == nil:
				return 1
			default:
				return -1
			}
		}

		c := comparator(a, b)
		if co.Order == sortutil.Descending {
			c = -c
		}

		return c
	}, nil
}

// doubleCompare implements Java's Double.compare total order: finite values
// compare numerically, -0.0 sorts before +0.0, and all NaNs are mutually
// equal and greater than every other value.
func doubleCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	// Neither a < b nor a > b held: a, b are equal, ±0.0 of opposite sign,
	// or at least one is NaN. Java's Double.compare breaks this residual
	// case on bit pattern rather than numeric value.
	aBits := canonicalDoubleBits(a)
	bBits := canonicalDoubleBits(b)

	switch {
	case aBits == bBits:
		return 0
	case aBits < bBits:
		return -1
	default:
		return 1
	}
}

func canonicalDoubleBits(v float64) int64 {
	if math.IsNaN(v) {
		return 0x7ff8000000000000
	}

	return int64(math.Float64bits(v))
}
