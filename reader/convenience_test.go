package reader

import (
	"testing"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/format"
	"github.com/stretchr/testify/require"
)

func TestConvenienceConstructors(t *testing.T) {
	col := column.NewDoubleColumn([]float64{1, 2, 3}, format.NewNumericDescriptor(format.REAL))
	r := Doubles(col)
	v, ok := r.Read()
	require.True(t, ok)
	require.Equal(t, 1.0, v)
}
