// Package operator implements the column-wide operators that run on top of
// parallelexec: map operators writing into a buffer batch-by-batch, T and
// double reducers combined through a combine-tree, and the multi-column
// stable sort. Per spec §4.6.
package operator

import (
	"github.com/arloliu/coltable/buffer"
	"github.com/arloliu/coltable/parallelexec"
)

// Target is satisfied by any buffer a map operator can write batched
// results into: buffer.NumericBuffer (T=float64), buffer.CategoricalBuffer
// and buffer.ObjectBuffer (T=any).
type Target[T any] interface {
	Size() int
	Set(i int, v T) error
}

// Apply is the canonical map-operator entry point: it runs fn(row) for
// every row target spans under ctx, per spec §4.6's "map operators
// transform one or more columns into a buffer; the executor runs a
// per-batch loop" contract. fn typically closes over one or more readers
// from the reader package (or reads source columns directly), positioning
// them via SetPosition since DoPart's [from, to) ranges are not guaranteed
// to start at row 0. It returns target (still unfrozen) once every batch
// has completed without error, or the zero value and the first error
// observed — in which case target must not be read by the caller, since
// some batches may not have been written.
func Apply[T any, B Target[T]](
	ctx parallelexec.ExecutionContext, class parallelexec.WorkloadClass,
	target B, fn func(row int) T,
) (B, error) {
	calc := &mapCalculator[T, B]{target: target, fn: fn, n: target.Size()}

	return parallelexec.Run[B](ctx, calc, class)
}

type mapCalculator[T any, B Target[T]] struct {
	target B
	fn     func(row int) T
	n      int
}

func (c *mapCalculator[T, B]) Init(int) {}

func (c *mapCalculator[T, B]) NumberOfOperations() int { return c.n }

func (c *mapCalculator[T, B]) DoPart(from, to, _ int) error {
	for i := from; i < to; i++ {
		if err := c.target.Set(i, c.fn(i)); err != nil {
			return err
		}
	}

	return nil
}

func (c *mapCalculator[T, B]) GetResult() B { return c.target }

// MapNumeric is Apply specialized for a numeric target, reading row values
// from fn (typically a closure over one or more reader.NumericReader/
// reader.MixedRowReader cursors repositioned per row via SetPosition).
func MapNumeric(
	ctx parallelexec.ExecutionContext, class parallelexec.WorkloadClass,
	target *buffer.NumericBuffer, fn func(row int) float64,
) (*buffer.NumericBuffer, error) {
	return Apply[float64, *buffer.NumericBuffer](ctx, class, target, fn)
}

// MapCategorical is Apply specialized for a categorical target. The
// target's index width is chosen by the caller when it builds the buffer
// (via buffer.NewCategoricalBuffer), not inferred here, per spec §4.6.
func MapCategorical(
	ctx parallelexec.ExecutionContext, class parallelexec.WorkloadClass,
	target *buffer.CategoricalBuffer, fn func(row int) any,
) (*buffer.CategoricalBuffer, error) {
	return Apply[any, *buffer.CategoricalBuffer](ctx, class, target, fn)
}

// MapObject is Apply specialized for an object target.
func MapObject(
	ctx parallelexec.ExecutionContext, class parallelexec.WorkloadClass,
	target *buffer.ObjectBuffer, fn func(row int) any,
) (*buffer.ObjectBuffer, error) {
	return Apply[any, *buffer.ObjectBuffer](ctx, class, target, fn)
}
