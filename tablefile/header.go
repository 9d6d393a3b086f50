package tablefile

import (
	"fmt"
	"io"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/endian"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/internal/pool"
	"github.com/arloliu/coltable/table"
)

// numericColumns returns the table's columns (and their labels) whose
// Category is format.NUMERIC, in table order. Non-numeric columns are
// silently skipped, per spec §6.
func numericColumns(t *table.Table) (labels []string, cols []column.Column) {
	for i := 0; i < t.Width(); i++ {
		col, _ := t.ColumnAt(i)
		if col.Type().Category != format.NUMERIC {
			continue
		}
		label, _ := t.LabelAt(i)
		labels = append(labels, label)
		cols = append(cols, col)
	}

	return labels, cols
}

// writeHeader appends the magic, version pair, width, height, per-column
// type ids, label lengths, and concatenated label bytes to buf.
func writeHeader(buf *pool.ByteBuffer, engine endian.EndianEngine, labels []string, cols []column.Column, height int) {
	buf.MustWrite([]byte(Magic))
	buf.MustWrite([]byte{MajorVersion, MinorVersion})
	buf.B = engine.AppendUint32(buf.B, uint32(len(cols)))
	buf.B = engine.AppendUint32(buf.B, uint32(height))

	for _, col := range cols {
		buf.B = engine.AppendUint32(buf.B, uint32(col.Type().ID))
	}
	for _, label := range labels {
		buf.B = engine.AppendUint32(buf.B, uint32(len(label)))
	}
	for _, label := range labels {
		buf.MustWrite([]byte(label))
	}
}

// header is the parsed, validated file header.
type header struct {
	width, height int
	typeIDs       []format.TypeID
	labels        []string
}

// readHeader reads and validates the fixed-layout header from r, failing
// with errs.ErrInvalidFormat on a magic/version mismatch or truncated read.
func readHeader(r io.Reader, engine endian.EndianEngine) (header, error) {
	magic := make([]byte, 6)
	if _, err := io.ReadFull(r, magic); err != nil {
		return header{}, fmt.Errorf("%w: reading magic: %v", errs.ErrInvalidFormat, err)
	}
	if string(magic) != Magic {
		return header{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidFormat, magic)
	}

	versions := make([]byte, 2)
	if _, err := io.ReadFull(r, versions); err != nil {
		return header{}, fmt.Errorf("%w: reading version: %v", errs.ErrInvalidFormat, err)
	}
	if versions[0] != MajorVersion || versions[1] != MinorVersion {
		return header{}, fmt.Errorf("%w: unsupported version %d.%d", errs.ErrInvalidFormat, versions[0], versions[1])
	}

	width, err := readUint32(r, engine)
	if err != nil {
		return header{}, err
	}
	height, err := readUint32(r, engine)
	if err != nil {
		return header{}, err
	}

	typeIDs := make([]format.TypeID, width)
	for i := range typeIDs {
		v, err := readUint32(r, engine)
		if err != nil {
			return header{}, err
		}
		typeIDs[i] = format.TypeID(v)
	}

	labelLens := make([]uint32, width)
	for i := range labelLens {
		v, err := readUint32(r, engine)
		if err != nil {
			return header{}, err
		}
		labelLens[i] = v
	}

	labels := make([]string, width)
	for i, n := range labelLens {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return header{}, fmt.Errorf("%w: reading label %d: %v", errs.ErrInvalidFormat, i, err)
		}
		labels[i] = string(buf)
	}

	return header{
		width:   int(width),
		height:  int(height),
		typeIDs: typeIDs,
		labels:  labels,
	}, nil
}

func readUint32(r io.Reader, engine endian.EndianEngine) (uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrInvalidFormat, err)
	}

	return engine.Uint32(buf), nil
}
