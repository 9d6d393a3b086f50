package column

import (
	"math"
	"testing"

	"github.com/arloliu/coltable/bitpack"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/sortutil"
	"github.com/stretchr/testify/require"
)

func TestDoubleColumnFillAndMap(t *testing.T) {
	col := NewDoubleColumn([]float64{1, 2, 3, 4, 5}, format.NewNumericDescriptor(format.REAL))
	require.Equal(t, 5, col.Size())
	require.True(t, col.HasCapability(format.NumericReadable))

	dst := make([]float64, 3)
	n := col.(NumericFiller).Fill(dst, 1)
	require.Equal(t, 3, n)
	require.Equal(t, []float64{2, 3, 4}, dst)
}

func TestDoubleColumnMapViewVsCopy(t *testing.T) {
	col := NewDoubleColumn([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, format.NewNumericDescriptor(format.REAL))

	// len(perm)=1, 1 <= 0.1*10 -> dense copy (the boundary is not strictly greater).
	view := col.Map([]int{3}, false)
	dst := make([]float64, 1)
	view.(NumericFiller).Fill(dst, 0)
	require.Equal(t, []float64{4}, dst)

	// len(perm)=9 > 0.1*10=1 -> view, but observably identical values.
	cp := col.Map([]int{0, 1, 2, 3, 4, 5, 6, 7, -1}, false)
	dst2 := make([]float64, 9)
	cp.(NumericFiller).Fill(dst2, 0)
	require.True(t, math.IsNaN(dst2[8]))
	require.Equal(t, 3.0, dst2[2])
}

func TestDoubleColumnMapComposition(t *testing.T) {
	col := NewDoubleColumn([]float64{10, 20, 30, 40}, format.NewNumericDescriptor(format.REAL))

	sigma := []int{3, 2, 1, 0}
	tau := []int{0, 1, 2, 3}

	viaTwoMaps := col.Map(sigma, true).Map(tau, true)
	direct := col.Map([]int{sigma[tau[0]], sigma[tau[1]], sigma[tau[2]], sigma[tau[3]]}, true)

	a := make([]float64, 4)
	b := make([]float64, 4)
	viaTwoMaps.(NumericFiller).Fill(a, 0)
	direct.(NumericFiller).Fill(b, 0)
	require.Equal(t, b, a)
}

func TestDoubleColumnSortMissingLast(t *testing.T) {
	col := NewDoubleColumn([]float64{3, math.NaN(), 1, 2}, format.NewNumericDescriptor(format.REAL))
	perm, err := col.Sort(sortutil.Ascending)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 0, 1}, perm)
}

func buildCategoricalColumn(t *testing.T, rows []string) (Column, *Dictionary) {
	t.Helper()

	dict := NewDictionary()
	indices := make([]int32, len(rows))
	for i, v := range rows {
		if v == "" {
			indices[i] = 0
			continue
		}
		idx, ok := dict.Intern(v, bitpack.U8.MaxValue())
		require.True(t, ok)
		indices[i] = idx
	}

	data := make([]uint8, len(indices))
	for i, v := range indices {
		data[i] = uint8(v)
	}

	return NewCategoricalColumn(NewU8Store(data), dict, bitpack.U8, nil), dict
}

func TestCategoricalMapAndFreezeScenario(t *testing.T) {
	// spec §8 scenario 1: rows ["a", null, "b", "a", "c"], U8 buffer.
	col, dict := buildCategoricalColumn(t, []string{"a", "", "b", "a", "c"})

	catDst := make([]int32, 5)
	col.(CategoryFiller).FillCategory(catDst, 0)
	require.Equal(t, []int32{1, 0, 2, 1, 3}, catDst)
	require.Equal(t, []any{nil, "a", "b", "c"}, dict.Values())

	mapped := col.Map([]int{4, 3, 2, 1, 0}, true)
	objDst := make([]any, 5)
	mapped.(ObjectFiller).FillObject(objDst, 0)
	require.Equal(t, []any{"c", "a", "b", nil, "a"}, objDst)
}

func TestCategoricalNumericFillMissingIsNaN(t *testing.T) {
	col, _ := buildCategoricalColumn(t, []string{"a", ""})
	dst := make([]float64, 2)
	col.(NumericFiller).Fill(dst, 0)
	require.Equal(t, 1.0, dst[0])
	require.True(t, math.IsNaN(dst[1]))
}

func TestDateTimeMissingAndHighPrecision(t *testing.T) {
	col := NewDateTimeColumnHi([]int64{100, LongMin, 200}, []int64{5, 0, 999_999_999})
	dst := make([]float64, 3)
	col.(NumericFiller).Fill(dst, 0)
	require.Equal(t, 100.0, dst[0])
	require.True(t, math.IsNaN(dst[1]))
	require.Equal(t, 200.0, dst[2])

	objDst := make([]any, 3)
	col.(ObjectFiller).FillObject(objDst, 0)
	require.Nil(t, objDst[1])
	require.NotNil(t, objDst[0])
}

func TestTimeOfDayMissingIsLongMax(t *testing.T) {
	col := NewTimeColumn([]int64{10, LongMax, 30})
	perm, err := col.Sort(sortutil.Ascending)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 1}, perm)
}

func TestObjectColumnSortWithComparator(t *testing.T) {
	cmp := func(a, b any) int {
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	typ := format.NewCustomDescriptor("label", "string", cmp)
	col := NewObjectColumn([]any{"banana", "apple", nil, "cherry"}, typ)

	perm, err := col.Sort(sortutil.Ascending)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 3, 2}, perm)
}

func TestNonSortableObjectColumn(t *testing.T) {
	typ := format.NewCustomDescriptor("blob", "[]byte", nil)
	col := NewObjectColumn([]any{[]byte("x")}, typ)
	require.False(t, col.HasCapability(format.Sortable))

	_, err := col.Sort(sortutil.Ascending)
	require.Error(t, err)
}
