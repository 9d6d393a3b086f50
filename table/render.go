package table

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/reader"
)

// Render writes t as a column-aligned text table to w: a header row of
// labels, then one line per row, each cell the column's numeric value
// (formatted with strconv) when its type's Category is format.NUMERIC,
// otherwise its resolved object value (formatted with fmt.Sprint). Reuses
// reader.MixedRowReader's strip-fill/move cursor rather than inventing a
// second read path, per SUPPLEMENTED FEATURES.
func Render(w io.Writer, t *Table) error {
	labels := t.Labels()
	cols := t.columns()
	width := len(cols)

	cells := make([][]string, t.Height())
	for i := range cells {
		cells[i] = make([]string, width)
	}

	numericCol := make([]bool, width)
	for j, col := range cols {
		numericCol[j] = col.Type().Category == format.NUMERIC
	}

	rr := reader.NewMixedRowReader(cols, t.Height())
	for rr.Move() {
		row := rr.Position()
		for j := range cols {
			if numericCol[j] {
				cells[row][j] = formatNumeric(rr.NumericAt(j))
			} else {
				cells[row][j] = formatObject(rr.ObjectAt(j))
			}
		}
	}

	widths := make([]int, width)
	for j, label := range labels {
		widths[j] = len(label)
	}
	for _, row := range cells {
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	if err := writeRow(w, labels, widths); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for j, cell := range cells {
		if j > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		if pad := widths[j] - len(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())

	return err
}

func formatNumeric(v float64) string {
	if math.IsNaN(v) {
		return "?"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatObject(v any) string {
	if v == nil {
		return "?"
	}

	return fmt.Sprint(v)
}
