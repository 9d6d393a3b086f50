// Package parallelexec implements the columnar batch executor: a
// Calculator abstraction run across a fixed-parallelism worker pool under
// one of three scheduling strategies chosen from the workload size, a
// cooperative sentinel-based abort protocol, and a combine-tree for
// deterministic associative reduction across batches.
package parallelexec

// Calculator is the unit of work a Scheduler drives: it is told up front
// how many batches it will be asked to process, reports how many logical
// operations (rows, cells, ...) it covers in total, does its work range by
// range via DoPart, and finally hands back one aggregated result.
//
// DoPart may be called concurrently by different workers for different
// batches; a Calculator implementation is responsible for making its own
// batch-local state (e.g. an accumulator slot per batchIndex) safe for
// that — the combine-tree (see CombineTree) is the supported way to merge
// those per-batch results back into one.
type Calculator[T any] interface {
	// Init is called once, before any DoPart call, with the total number of
	// batches the scheduler decided on.
	Init(numBatches int)

	// NumberOfOperations returns N, the total amount of work (not the batch
	// count) — used to pick the scheduling strategy and batch size.
	NumberOfOperations() int

	// DoPart processes the half-open range [from, to) as batch batchIndex.
	DoPart(from, to, batchIndex int) error

	// GetResult returns the calculator's final, fully combined result. Only
	// called after every DoPart call has returned (successfully) and, for
	// associative reducers, after the combine-tree has published its root.
	GetResult() T
}
