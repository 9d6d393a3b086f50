package operator

import (
	"math"
	"testing"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/sortutil"
	"github.com/stretchr/testify/require"
)

// TestMultiColumnSortStableSecondaryKey exercises spec §8 scenario 6.
func TestMultiColumnSortStableSecondaryKey(t *testing.T) {
	col0 := column.NewDoubleColumn([]float64{1, 1, 2, 2}, format.NewNumericDescriptor(format.REAL))
	col1 := column.NewDoubleColumn([]float64{20, 10, 10, 20}, format.NewNumericDescriptor(format.REAL))

	perm, err := MultiColumnSort([]ColumnOrder{
		{Column: col0, Order: sortutil.Ascending},
		{Column: col1, Order: sortutil.Ascending},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 2, 3}, perm)
}

func TestMultiColumnSortSingleColumn(t *testing.T) {
	col := column.NewDoubleColumn([]float64{3, 1, 2}, format.NewNumericDescriptor(format.REAL))

	perm, err := MultiColumnSort([]ColumnOrder{{Column: col, Order: sortutil.Ascending}})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 0}, perm)
}

func TestDoubleCompareDistinguishesSignedZero(t *testing.T) {
	require.Equal(t, -1, doubleCompare(math.Copysign(0, -1), 0))
	require.Equal(t, 1, doubleCompare(0, math.Copysign(0, -1)))
	require.Equal(t, 0, doubleCompare(0, 0))
}

func TestDoubleCompareTreatsAllNaNsEqual(t *testing.T) {
	nan := math.NaN()
	require.Equal(t, 0, doubleCompare(nan, nan))
	require.Equal(t, 1, doubleCompare(nan, 1.0))
	require.Equal(t, -1, doubleCompare(1.0, nan))
}

func TestMultiColumnSortUnsortableColumnFails(t *testing.T) {
	typ := format.NewCustomDescriptor("opaque", "any", nil)
	col := column.NewObjectColumn([]any{1, 2, 3}, typ)

	_, err := MultiColumnSort([]ColumnOrder{{Column: col, Order: sortutil.Ascending}})
	require.Error(t, err)
}
