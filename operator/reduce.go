package operator

import (
	"reflect"

	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/parallelexec"
)

// TReducer reduces a 0..n-1 element space to a single T value via a
// per-batch supplier (the batch's initial accumulator, which must not be
// nil), an Accumulate fold of one element into the running accumulator, and
// a Combine merge of two batch accumulators, per spec §4.6. elem passed to
// Accumulate is a row index; the caller's closure resolves the actual value
// (typically through a reader positioned at that row).
type TReducer[T any] struct {
	Supplier   func() T
	Accumulate func(acc T, elem int) T
	Combine    func(a, b T) T
}

// Run executes the reducer over elements [0, n) under ctx, returning the
// combine-tree's published root once every batch has finished.
func (r TReducer[T]) Run(ctx parallelexec.ExecutionContext, n int, class parallelexec.WorkloadClass) (T, error) {
	calc := &tReduceCalculator[T]{reducer: r, n: n}

	return parallelexec.Run[T](ctx, calc, class)
}

type tReduceCalculator[T any] struct {
	reducer TReducer[T]
	n       int
	tree    *parallelexec.CombineTree[T]
}

func (c *tReduceCalculator[T]) Init(numBatches int) {
	c.tree = parallelexec.NewCombineTree[T](numBatches)
}

func (c *tReduceCalculator[T]) NumberOfOperations() int { return c.n }

func (c *tReduceCalculator[T]) DoPart(from, to, batchIndex int) error {
	acc := c.reducer.Supplier()
	if isNilT(acc) {
		return errs.ErrInvalidArgument
	}

	for i := from; i < to; i++ {
		acc = c.reducer.Accumulate(acc, i)
	}

	c.tree.Combine(batchIndex, acc, c.reducer.Combine)

	return nil
}

func (c *tReduceCalculator[T]) GetResult() T { return c.tree.Wait() }

// isNilT reports whether v is a nil interface, pointer, map, slice, chan,
// or func — the only T shapes for which "the supplier must not return
// null" (spec §4.6) is a meaningful check. Value types (ints, structs,
// etc.) always report false.
func isNilT[T any](v T) bool {
	var a any = v
	if a == nil {
		return true
	}

	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// DoubleReducer reduces a 0..n-1 element space to a float64 via an explicit
// Identity (the per-batch seed), ValueAt resolving a row index to its
// double value, and a binary Op folding the running accumulator with each
// value. Combiner defaults to Op itself ("the combiner defaults to the same
// operator as the reducer unless a distinct one is provided", spec §4.6).
type DoubleReducer struct {
	Identity float64
	ValueAt  func(elem int) float64
	Op       func(a, b float64) float64
	Combiner func(a, b float64) float64
}

// Run executes the reducer over elements [0, n) under ctx.
func (r DoubleReducer) Run(ctx parallelexec.ExecutionContext, n int, class parallelexec.WorkloadClass) (float64, error) {
	combiner := r.Combiner
	if combiner == nil {
		combiner = r.Op
	}

	calc := &doubleReduceCalculator{reducer: r, combiner: combiner, n: n}

	return parallelexec.Run[float64](ctx, calc, class)
}

type doubleReduceCalculator struct {
	reducer  DoubleReducer
	combiner func(a, b float64) float64
	n        int
	tree     *parallelexec.CombineTree[float64]
}

func (c *doubleReduceCalculator) Init(numBatches int) {
	c.tree = parallelexec.NewCombineTree[float64](numBatches)
}

func (c *doubleReduceCalculator) NumberOfOperations() int { return c.n }

func (c *doubleReduceCalculator) DoPart(from, to, batchIndex int) error {
	acc := c.reducer.Identity
	for i := from; i < to; i++ {
		acc = c.reducer.Op(acc, c.reducer.ValueAt(i))
	}

	c.tree.Combine(batchIndex, acc, c.combiner)

	return nil
}

func (c *doubleReduceCalculator) GetResult() float64 { return c.tree.Wait() }
