package table

import (
	"strings"
	"testing"

	"github.com/arloliu/coltable/bitpack"
	"github.com/arloliu/coltable/buffer"
	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/format"
	"github.com/stretchr/testify/require"
)

func doubleColumn(vals []float64) column.Column {
	return column.NewDoubleColumn(vals, format.NewNumericDescriptor(format.REAL))
}

func categoricalColumn(vals []any) column.Column {
	buf := buffer.NewCategoricalBuffer(len(vals), bitpack.U8, column.NewDictionary())
	for i, v := range vals {
		if err := buf.Set(i, v); err != nil {
			panic(err)
		}
	}

	return buf.Freeze()
}

func TestAddColumnAndAccessors(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("x", doubleColumn([]float64{1, 2, 3}), nil))
	require.NoError(t, tbl.AddColumn("y", doubleColumn([]float64{4, 5, 6}), Meta{"unit": "ms"}))

	require.Equal(t, 2, tbl.Width())
	require.Equal(t, 3, tbl.Height())
	require.Equal(t, []string{"x", "y"}, tbl.Labels())

	col, ok := tbl.Column("y")
	require.True(t, ok)
	require.Equal(t, 3, col.Size())

	meta, ok := tbl.Meta("y")
	require.True(t, ok)
	require.Equal(t, "ms", meta["unit"])

	_, ok = tbl.Meta("x")
	require.False(t, ok)
}

func TestAddColumnRejectsDuplicateLabelAndMismatchedHeight(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("x", doubleColumn([]float64{1, 2, 3}), nil))

	require.Error(t, tbl.AddColumn("x", doubleColumn([]float64{1, 2, 3}), nil))
	require.Error(t, tbl.AddColumn("z", doubleColumn([]float64{1, 2}), nil))
	require.Error(t, tbl.AddColumn("", doubleColumn([]float64{1, 2, 3}), nil))
	require.Error(t, tbl.AddColumn("nilcol", nil, nil))
}

func TestColumnSelectorComposesWithAnd(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("a", doubleColumn([]float64{1, 2}), Meta{"kind": "signal"}))
	require.NoError(t, tbl.AddColumn("b", doubleColumn([]float64{1, 2}), Meta{"kind": "noise"}))
	require.NoError(t, tbl.AddColumn("c", categoricalColumn([]any{"x", "y"}), nil))

	numeric := NewColumnSelector(OfCategory(format.NUMERIC))
	require.Equal(t, []string{"a", "b"}, numeric.Labels(tbl))

	signalNumeric := numeric.And(WithMeta("kind", "signal"))
	require.Equal(t, []string{"a"}, signalNumeric.Labels(tbl))

	sortable := NewColumnSelector(WithCapability(format.Sortable))
	require.Equal(t, []string{"a", "b", "c"}, sortable.Labels(tbl))

	cols := signalNumeric.Columns(tbl)
	require.Len(t, cols, 1)
	require.Equal(t, 2, cols[0].Size())
}

func TestRenderProducesAlignedTable(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("id", doubleColumn([]float64{1, 2}), nil))
	require.NoError(t, tbl.AddColumn("name", categoricalColumn([]any{"alice", "bob"}), nil))

	var buf strings.Builder
	require.NoError(t, Render(&buf, tbl))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "id")
	require.Contains(t, lines[0], "name")
	require.Contains(t, lines[1], "1")
	require.Contains(t, lines[1], "alice")
	require.Contains(t, lines[2], "2")
	require.Contains(t, lines[2], "bob")
}

func TestRenderEmptyTable(t *testing.T) {
	tbl := New()
	var buf strings.Builder
	require.NoError(t, Render(&buf, tbl))
	require.Equal(t, "\n", buf.String())
}
