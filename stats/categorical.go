package stats

import (
	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/operator"
	"github.com/arloliu/coltable/parallelexec"
)

// ModeLeast returns the most- and least-frequent values of a categorical
// column, iterating counts over the dictionary domain [1, dict_size) (index
// 0, the missing marker, is excluded), with ties broken toward the smallest
// index, per spec §4.7 and §9's open-question decision. Returns nil, nil,
// nil for a column whose dictionary carries no real values.
func ModeLeast(ctx parallelexec.ExecutionContext, col column.Column, class parallelexec.WorkloadClass) (mode, least any, err error) {
	cat, ok := col.(column.Categorical)
	if !ok {
		return nil, nil, errs.ErrUnsupportedOperation
	}
	catFiller, ok := col.(column.CategoryFiller)
	if !ok {
		return nil, nil, errs.ErrUnsupportedOperation
	}

	dict := cat.Dictionary()
	size := int(dict.Len())

	r := operator.TReducer[[]int64]{
		Supplier: func() []int64 { return make([]int64, size) },
		Accumulate: func(acc []int64, elem int) []int64 {
			var idx [1]int32
			catFiller.FillCategory(idx[:], elem)
			acc[idx[0]]++

			return acc
		},
		Combine: func(a, b []int64) []int64 {
			for i := range a {
				a[i] += b[i]
			}

			return a
		},
	}

	counts, runErr := r.Run(ctx, col.Size(), class)
	if runErr != nil {
		return nil, nil, runErr
	}

	modeIdx, leastIdx := -1, -1
	for idx := 1; idx < size; idx++ {
		c := counts[idx]
		if modeIdx == -1 || c > counts[modeIdx] {
			modeIdx = idx
		}
		if leastIdx == -1 || c < counts[leastIdx] {
			leastIdx = idx
		}
	}

	if modeIdx == -1 {
		return nil, nil, nil
	}

	return dict.Get(int32(modeIdx)), dict.Get(int32(leastIdx)), nil
}
