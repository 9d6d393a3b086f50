package reader

import (
	"math"
	"testing"

	"github.com/arloliu/coltable/bitpack"
	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/stretchr/testify/require"
)

func TestNumericReaderBasic(t *testing.T) {
	col := column.NewDoubleColumn([]float64{10, 20, 30, 40, 50}, format.NewNumericDescriptor(format.REAL))
	r := NewNumericReader(col, 0, 2) // buffer hint clamps up to the column length 5 (below MinBufferSize)

	var got []float64
	for {
		v, ok := r.Read()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []float64{10, 20, 30, 40, 50}, got)
	require.Equal(t, 5, r.Position())
}

func TestNumericReaderSetPosition(t *testing.T) {
	col := column.NewDoubleColumn([]float64{1, 2, 3}, format.NewNumericDescriptor(format.REAL))
	r := NewNumericReader(col, 0, 8)

	require.NoError(t, r.SetPosition(1))
	v, ok := r.Read()
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	err := r.SetPosition(-2)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestNumericReaderMoveThenRead(t *testing.T) {
	col := column.NewDoubleColumn([]float64{1, 2, 3}, format.NewNumericDescriptor(format.REAL))
	r := NewNumericReader(col, 0, 8)

	require.True(t, r.Move())
	v, ok := r.Read()
	require.True(t, ok)
	require.Equal(t, 2.0, v)
}

func TestCategoricalReaderBasic(t *testing.T) {
	dict := column.NewDictionary()
	idxA, _ := dict.Intern("a", 255)
	data := []uint8{uint8(idxA), 0}
	col := column.NewCategoricalColumn(column.NewU8Store(data), dict, bitpack.U8, nil)

	r := NewCategoricalReader(col, 0, 8)
	v, ok := r.Read()
	require.True(t, ok)
	require.Equal(t, idxA, v)

	v, ok = r.Read()
	require.True(t, ok)
	require.Equal(t, int32(0), v)

	_, ok = r.Read()
	require.False(t, ok)
}

func TestObjectReaderBasic(t *testing.T) {
	col := column.NewObjectColumn([]any{"x", nil, "y"}, format.NewCustomDescriptor("s", "string", nil))
	r := NewObjectReader[string](col, 0, 8)

	v, ok := r.Read()
	require.True(t, ok)
	require.Equal(t, "x", v)

	_, ok = r.Read() // missing
	require.True(t, ok)

	raw, hasMore := r.RawRead()
	require.True(t, hasMore)
	require.Equal(t, "y", raw)
}

func TestMixedRowReader(t *testing.T) {
	numCol := column.NewDoubleColumn([]float64{1, 2, 3}, format.NewNumericDescriptor(format.REAL))
	objCol := column.NewObjectColumn([]any{"a", "b", "c"}, format.NewCustomDescriptor("s", "string", nil))

	r := NewMixedRowReader([]column.Column{numCol, objCol}, 0)
	require.Equal(t, 2, r.Width())

	require.True(t, r.Move())
	require.Equal(t, 1.0, r.NumericAt(0))
	require.Equal(t, "a", r.ObjectAt(1))
	require.True(t, math.IsNaN(r.NumericAt(1))) // objCol isn't NumericFiller

	require.True(t, r.Move())
	require.Equal(t, 2.0, r.NumericAt(0))

	require.True(t, r.Move())
	require.False(t, r.Move())
}

