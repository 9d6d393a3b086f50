package parallelexec

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/coltable/errs"
)

// u2Alignment is the batch-size padding multiple the equal-part strategy
// rounds up to, matching the U2 bitpack format's 4-elements-per-byte
// alignment constraint.
const u2Alignment = 4

// Run drives calc to completion against ctx, picking a scheduling strategy
// from class and N = calc.NumberOfOperations() per spec §4.5, and returns
// calc.GetResult() once every batch has completed. If any DoPart call
// fails, or ctx's context is canceled mid-run, Run returns the zero value
// of T and the first error observed (errs.ErrTaskAborted for a
// cancellation-triggered abort); every other in-flight worker stops before
// starting its next batch.
func Run[T any](ctx ExecutionContext, calc Calculator[T], class WorkloadClass) (T, error) {
	var zero T

	n := calc.NumberOfOperations()
	nTasks := ctx.Parallelism()
	if nTasks < 1 {
		nTasks = 1
	}

	thresholdParallel, batchSize := class.thresholdAndBatch()

	sentinel := &atomic.Bool{}
	sentinel.Store(true)
	var firstErr error

	abortIfNeeded := func() bool {
		if ctx.Context().Err() == nil && sentinel.Load() {
			return false
		}

		if sentinel.CompareAndSwap(true, false) {
			firstErr = errs.ErrTaskAborted
		}

		return true
	}

	reportFailure := func(err error) {
		if sentinel.CompareAndSwap(true, false) {
			firstErr = err
		}
	}

	switch {
	case n >= batchSize*2*nTasks:
		runBatched(ctx, calc, n, batchSize, nTasks, abortIfNeeded, reportFailure)
	case n < thresholdParallel:
		runSequential(calc, n, abortIfNeeded, reportFailure)
	default:
		runEqualPart(ctx, calc, n, nTasks, abortIfNeeded, reportFailure)
	}

	if firstErr != nil {
		return zero, firstErr
	}

	return calc.GetResult(), nil
}

func runSequential[T any](calc Calculator[T], n int, abortIfNeeded func() bool, reportFailure func(error)) {
	calc.Init(1)

	if abortIfNeeded() {
		return
	}

	if err := calc.DoPart(0, n, 0); err != nil {
		reportFailure(err)
	}
}

func runBatched[T any](
	ctx ExecutionContext, calc Calculator[T], n, batchSize, nTasks int,
	abortIfNeeded func() bool, reportFailure func(error),
) {
	numBatches := ceilDiv(n, batchSize)
	calc.Init(numBatches)

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(nTasks)

	for range nTasks {
		ctx.Go(func() {
			defer wg.Done()

			for {
				batchIndex := int(cursor.Add(1)) - 1
				if batchIndex >= numBatches {
					return
				}

				if abortIfNeeded() {
					return
				}

				start := batchIndex * batchSize
				end := start + batchSize
				if end > n {
					end = n
				}

				if err := calc.DoPart(start, end, batchIndex); err != nil {
					reportFailure(err)

					return
				}
			}
		})
	}

	wg.Wait()
}

func runEqualPart[T any](
	ctx ExecutionContext, calc Calculator[T], n, nTasks int,
	abortIfNeeded func() bool, reportFailure func(error),
) {
	target := ceilDiv(n, nTasks)
	target = roundUpTo(target, u2Alignment)
	nTasks = ceilDiv(n, target)

	calc.Init(nTasks)

	var wg sync.WaitGroup
	wg.Add(nTasks)

	for i := range nTasks {
		batchIndex := i
		start := batchIndex * target
		end := start + target
		if end > n {
			end = n
		}

		ctx.Go(func() {
			defer wg.Done()

			if abortIfNeeded() {
				return
			}

			if err := calc.DoPart(start, end, batchIndex); err != nil {
				reportFailure(err)
			}
		})
	}

	wg.Wait()
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}

	return (a + b - 1) / b
}

func roundUpTo(v, multiple int) int {
	if multiple <= 0 {
		return v
	}

	return ceilDiv(v, multiple) * multiple
}
