package buffer

import (
	"testing"

	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/stretchr/testify/require"
)

func TestObjectBufferSetGetFreeze(t *testing.T) {
	typ := format.NewCustomDescriptor("string", "string", func(a, b any) int {
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	})

	buf := NewObjectBuffer(3, typ)
	require.NoError(t, buf.Set(0, "banana"))
	require.NoError(t, buf.Set(1, "apple"))
	// index 2 left missing (nil)

	col := buf.Freeze()
	require.Equal(t, 3, col.Size())

	dst := make([]any, 3)
	n := col.FillObject(dst, 0)
	require.Equal(t, 3, n)
	require.Equal(t, []any{"banana", "apple", nil}, dst)

	require.ErrorIs(t, buf.Set(0, "x"), errs.ErrBufferFrozen)
}

func TestObjectBufferOutOfRange(t *testing.T) {
	buf := NewObjectBuffer(2, format.NewCustomDescriptor("string", "string", nil))
	require.ErrorIs(t, buf.Set(2, "x"), errs.ErrOutOfRange)
	require.ErrorIs(t, buf.Set(-1, "x"), errs.ErrOutOfRange)
}
