// Package stats implements the two-phase column statistics pipeline from
// spec §4.7: a counts phase (count, mean, min, max) driven by a T reducer,
// an optional deviation phase (variance/standard deviation) driven by a
// double reducer, NIST-interpolated percentiles over a sorted view, and
// categorical mode/least-frequent lookups over the dictionary domain.
package stats

import (
	"math"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/operator"
	"github.com/arloliu/coltable/parallelexec"
)

// Counts is the result of the counts phase: the number of non-missing
// values, their mean, and their extents.
type Counts struct {
	Count int64
	Mean  float64
	Min   float64
	Max   float64
}

type countsAcc struct {
	count int64
	mean  float64
	min   float64
	max   float64
}

// ComputeCounts runs the counts phase over col under ctx. Per batch it
// accumulates (count, running mean, min, max), updating the mean
// incrementally as mean += (v-mean)/count; the combine-tree then merges
// batch accumulators with the weighted-mean formula mean_A = w*mean_A +
// (1-w)*mean_B, w = count_A/(count_A+count_B), per spec §4.7. A post-pass
// corrects pathological cases where the combined mean drifted outside
// [min, max], clamping it back in if still finite, else NaN. An empty
// column (or one with no non-missing values) returns Count=0 and
// Mean/Min/Max = NaN.
func ComputeCounts(ctx parallelexec.ExecutionContext, col column.Column, class parallelexec.WorkloadClass) (Counts, error) {
	filler, ok := col.(column.NumericFiller)
	if !ok {
		return Counts{}, errs.ErrUnsupportedOperation
	}

	r := operator.TReducer[countsAcc]{
		Supplier: func() countsAcc {
			return countsAcc{min: math.Inf(1), max: math.Inf(-1)}
		},
		Accumulate: func(acc countsAcc, elem int) countsAcc {
			var buf [1]float64
			filler.Fill(buf[:], elem)
			v := buf[0]
			if math.IsNaN(v) {
				return acc
			}

			acc.count++
			acc.mean += (v - acc.mean) / float64(acc.count)
			if v < acc.min {
				acc.min = v
			}
			if v > acc.max {
				acc.max = v
			}

			return acc
		},
		Combine: combineCounts,
	}

	acc, err := r.Run(ctx, col.Size(), class)
	if err != nil {
		return Counts{}, err
	}

	return finalizeCounts(acc), nil
}

func combineCounts(a, b countsAcc) countsAcc {
	if a.count == 0 {
		return b
	}
	if b.count == 0 {
		return a
	}

	w := float64(a.count) / float64(a.count+b.count)
	mean := w*a.mean + (1-w)*b.mean

	return countsAcc{
		count: a.count + b.count,
		mean:  mean,
		min:   math.Min(a.min, b.min),
		max:   math.Max(a.max, b.max),
	}
}

func finalizeCounts(acc countsAcc) Counts {
	if acc.count == 0 {
		return Counts{Count: 0, Mean: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	}

	mean := acc.mean
	if mean < acc.min || mean > acc.max {
		if math.IsInf(acc.min, 0) || math.IsInf(acc.max, 0) {
			mean = math.NaN()
		} else {
			mean = math.Min(math.Max(mean, acc.min), acc.max)
		}
	}

	return Counts{Count: acc.count, Mean: mean, Min: acc.min, Max: acc.max}
}
