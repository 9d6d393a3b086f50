// Package sortutil implements the stable indirect sort used by sortable
// columns: it never moves the caller's data, it only returns a permutation
// (an index array) that, applied to the source, yields it in order. Small
// runs are finished with insertion sort, matching the classic indirect
// merge+insertion hybrid; missing values are always pushed to the end
// regardless of the requested order.
package sortutil

// Order selects ascending or descending comparison.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

// insertionThreshold is the run length below which insertion sort finishes
// a partition instead of recursing further into merge sort. Small runs are
// already near-sorted sub-problems once merge sort has split them this far,
// so insertion sort's low constant factor wins.
const insertionThreshold = 16

// Doubles returns a permutation that sorts vals in the given order, with
// NaN values (the column's missing marker) placed last regardless of order.
// The sort is stable: equal (or equally-missing) elements keep their
// original relative order.
func Doubles(vals []float64, order Order) []int {
	n := len(vals)
	perm := identity(n)
	if n < 2 {
		return perm
	}

	less := func(a, b int) bool {
		return lessDouble(vals[a], vals[b], order)
	}
	scratch := make([]int, n)
	mergeSort(perm, scratch, less)

	return perm
}

func lessDouble(a, b float64, order Order) bool {
	aNaN, bNaN := a != a, b != b
	if aNaN || bNaN {
		// Missing values sort last under either order; equal-missing pairs
		// are not "less" so the merge keeps them in original relative order.
		if aNaN == bNaN {
			return false
		}

		return !aNaN
	}

	if order == Ascending {
		return a < b
	}

	return a > b
}

// Longs returns a permutation that sorts vals in the given order. missing
// reports whether a value is the column's missing sentinel; missing values
// are placed last regardless of order.
func Longs(vals []int64, order Order, missing func(int64) bool) []int {
	n := len(vals)
	perm := identity(n)
	if n < 2 {
		return perm
	}

	less := func(a, b int) bool {
		return lessLong(vals[a], vals[b], order, missing)
	}
	scratch := make([]int, n)
	mergeSort(perm, scratch, less)

	return perm
}

func lessLong(a, b int64, order Order, missing func(int64) bool) bool {
	aMiss, bMiss := missing(a), missing(b)
	if aMiss || bMiss {
		if aMiss == bMiss {
			return false
		}

		return !aMiss
	}

	if order == Ascending {
		return a < b
	}

	return a > b
}

// Comparator defines a total order between two elements identified by
// index. It returns true if the element at i sorts before the element at j.
type Comparator func(i, j int) bool

// ByComparator returns a permutation for n elements ordered by less. The
// caller is responsible for encoding "missing sorts last" and the requested
// direction inside less, since a generic comparator has no notion of either.
func ByComparator(n int, less Comparator) []int {
	perm := identity(n)
	if n < 2 {
		return perm
	}

	scratch := make([]int, n)
	mergeSort(perm, scratch, func(a, b int) bool { return less(a, b) })

	return perm
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	return perm
}

// mergeSort stably sorts perm in place (indices into the caller's backing
// data), using scratch as merge workspace. less(a, b) compares two elements
// of perm by value, e.g. less(perm[i], perm[j]).
func mergeSort(perm, scratch []int, less func(a, b int) bool) {
	n := len(perm)
	if n <= insertionThreshold {
		insertionSort(perm, less)
		return
	}

	mid := n / 2
	mergeSort(perm[:mid], scratch[:mid], less)
	mergeSort(perm[mid:], scratch[mid:], less)
	merge(perm, scratch, mid, less)
}

func insertionSort(perm []int, less func(a, b int) bool) {
	for i := 1; i < len(perm); i++ {
		v := perm[i]
		j := i - 1
		for j >= 0 && less(v, perm[j]) {
			perm[j+1] = perm[j]
			j--
		}
		perm[j+1] = v
	}
}

func merge(perm, scratch []int, mid int, less func(a, b int) bool) {
	copy(scratch, perm)

	left, right := scratch[:mid], scratch[mid:]
	i, j, k := 0, 0, 0

	for i < len(left) && j < len(right) {
		// left[i] goes first on a tie, preserving stability since left
		// elements originated earlier in the original sequence.
		if less(right[j], left[i]) {
			perm[k] = right[j]
			j++
		} else {
			perm[k] = left[i]
			i++
		}
		k++
	}

	for i < len(left) {
		perm[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		perm[k] = right[j]
		j++
		k++
	}
}
