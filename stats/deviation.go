package stats

import (
	"math"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/operator"
	"github.com/arloliu/coltable/parallelexec"
)

// Deviation is the result of the deviation phase: population and sample
// variance/standard deviation about an already-computed mean.
type Deviation struct {
	Variance       float64 // population variance
	SampleVariance float64 // population variance * n/(n-1)
	StdDev         float64
	SampleStdDev   float64
}

var nanDeviation = Deviation{
	Variance:       math.NaN(),
	SampleVariance: math.NaN(),
	StdDev:         math.NaN(),
	SampleStdDev:   math.NaN(),
}

// ComputeDeviation runs the deviation phase over col under ctx, given the
// counts already computed by ComputeCounts. Per batch it accumulates
// sum_of_squared_deviations about counts.Mean; the combine-tree sums
// batches via the same associative combiner. Sample variance is population
// variance * n/(n-1). Only defined for counts.Count >= 2 and a finite
// mean; otherwise every field is NaN, per spec §4.7.
func ComputeDeviation(ctx parallelexec.ExecutionContext, col column.Column, counts Counts, class parallelexec.WorkloadClass) (Deviation, error) {
	filler, ok := col.(column.NumericFiller)
	if !ok {
		return Deviation{}, errs.ErrUnsupportedOperation
	}

	if counts.Count < 2 || math.IsNaN(counts.Mean) {
		return nanDeviation, nil
	}

	mean := counts.Mean
	r := operator.DoubleReducer{
		Identity: 0,
		ValueAt: func(row int) float64 {
			var buf [1]float64
			filler.Fill(buf[:], row)
			v := buf[0]
			if math.IsNaN(v) {
				return 0
			}
			d := v - mean

			return d * d
		},
		Op: func(a, b float64) float64 { return a + b },
	}

	sumSq, err := r.Run(ctx, col.Size(), class)
	if err != nil {
		return Deviation{}, err
	}

	n := float64(counts.Count)
	variance := sumSq / n
	sampleVariance := variance * n / (n - 1)

	return Deviation{
		Variance:       variance,
		SampleVariance: sampleVariance,
		StdDev:         math.Sqrt(variance),
		SampleStdDev:   math.Sqrt(sampleVariance),
	}, nil
}
