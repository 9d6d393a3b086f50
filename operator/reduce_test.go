package operator

import (
	"context"
	"testing"

	"github.com/arloliu/coltable/parallelexec"
	"github.com/stretchr/testify/require"
)

// TestDoubleReducerParallelSumDeterminism exercises spec §8 scenario 2: a
// million-element identity-zero sum reducer must total exactly 1,000,000.0
// regardless of parallelism.
func TestDoubleReducerParallelSumDeterminism(t *testing.T) {
	n := 1_000_000
	ones := func(int) float64 { return 1.0 }

	for _, parallelism := range []int{1, 2, 4, 8} {
		pool := parallelexec.NewPool(context.Background(), parallelism)

		r := DoubleReducer{
			Identity: 0,
			ValueAt:  ones,
			Op:       func(a, b float64) float64 { return a + b },
		}
		result, err := r.Run(pool, n, parallelexec.Huge)
		require.NoError(t, err)
		require.Equal(t, 1_000_000.0, result, "parallelism=%d", parallelism)

		pool.Close()
	}
}

func TestDoubleReducerDistinctCombiner(t *testing.T) {
	pool := parallelexec.NewPool(context.Background(), 4)
	defer pool.Close()

	n := 10
	r := DoubleReducer{
		Identity: 1,
		ValueAt:  func(row int) float64 { return float64(row + 1) },
		Op:       func(a, b float64) float64 { return a * b },
		Combiner: func(a, b float64) float64 { return a * b },
	}
	result, err := r.Run(pool, n, parallelexec.Huge)
	require.NoError(t, err)

	want := 1.0
	for i := 1; i <= n; i++ {
		want *= float64(i)
	}
	require.Equal(t, want, result)
}

func TestTReducerConcatenation(t *testing.T) {
	pool := parallelexec.NewPool(context.Background(), 4)
	defer pool.Close()

	values := []int{0, 1, 2, 3, 4, 5, 6}
	r := TReducer[[]int]{
		Supplier: func() []int { return []int{} },
		Accumulate: func(acc []int, elem int) []int {
			return append(acc, values[elem])
		},
		Combine: func(a, b []int) []int {
			return append(append([]int{}, a...), b...)
		},
	}

	result, err := r.Run(pool, len(values), parallelexec.Huge)
	require.NoError(t, err)
	require.Equal(t, values, result)
}

func TestTReducerRejectsNilSupplierResult(t *testing.T) {
	pool := parallelexec.NewPool(context.Background(), 1)
	defer pool.Close()

	r := TReducer[*int]{
		Supplier:   func() *int { return nil },
		Accumulate: func(acc *int, elem int) *int { return acc },
		Combine:    func(a, b *int) *int { return a },
	}

	_, err := r.Run(pool, 5, parallelexec.Default)
	require.Error(t, err)
}
