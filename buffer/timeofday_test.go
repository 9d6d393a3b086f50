package buffer

import (
	"testing"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/sortutil"
	"github.com/stretchr/testify/require"
)

func TestTimeBufferRangeValidation(t *testing.T) {
	buf := NewTimeBuffer(2)

	err := buf.Set(0, -1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	err = buf.Set(0, NanosPerDay)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	require.NoError(t, buf.Set(0, 12345))
	require.Equal(t, int64(12345), buf.Get(0))
	require.Equal(t, column.LongMax, buf.Get(1))
}

func TestTimeBufferFreezeSortsMissingLast(t *testing.T) {
	buf := NewTimeBuffer(3)
	require.NoError(t, buf.Set(0, 30))
	require.NoError(t, buf.Set(2, 10))
	// row 1 stays missing.

	col := buf.Freeze()
	perm, err := col.Sort(sortutil.Ascending)
	require.NoError(t, err)
	require.Equal(t, []int{2, 0, 1}, perm)

	err = buf.Set(0, 1)
	require.ErrorIs(t, err, errs.ErrBufferFrozen)
}
