package tablefile

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/compress"
	"github.com/arloliu/coltable/endian"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/table"
)

// Read decodes a table previously written by Write. Every persisted
// column comes back as a dense numeric column (format.REAL or
// format.INTEGER, per its stored type id); a header that doesn't match
// Write's exact layout (bad magic, version, or a truncated payload) fails
// with errs.ErrInvalidFormat.
func Read(r io.Reader) (*table.Table, error) {
	engine := endian.GetBigEndianEngine()

	hdr, err := readHeader(r, engine)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, hdr.width*hdr.height*8)
	if len(payload) > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("%w: reading payload: %v", errs.ErrInvalidFormat, err)
		}
	}

	return buildTable(hdr, payload, engine)
}

func buildTable(hdr header, payload []byte, engine endian.EndianEngine) (*table.Table, error) {
	t := table.New()

	for c := 0; c < hdr.width; c++ {
		values := make([]float64, hdr.height)
		base := c * hdr.height * 8
		for row := 0; row < hdr.height; row++ {
			off := base + row*8
			values[row] = math.Float64frombits(engine.Uint64(payload[off : off+8]))
		}

		desc := format.NewNumericDescriptor(hdr.typeIDs[c])
		col := column.NewDoubleColumn(values, desc)
		if err := t.AddColumn(hdr.labels[c], col, nil); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// ReadCompressed decodes a table previously written by WriteCompressed.
// The compression codec is read back from the file's own tag byte, so no
// matching option is required on the read side.
func ReadCompressed(r io.Reader) (*table.Table, error) {
	engine := endian.GetBigEndianEngine()

	hdr, err := readHeader(r, engine)
	if err != nil {
		return nil, err
	}

	tag := make([]byte, 5)
	if _, err := io.ReadFull(r, tag); err != nil {
		return nil, fmt.Errorf("%w: reading compression tag: %v", errs.ErrInvalidFormat, err)
	}
	compression := format.CompressionType(tag[0])
	originalLen := engine.Uint32(tag[1:])

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading compressed payload: %v", errs.ErrInvalidFormat, err)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(rest)
	if err != nil {
		return nil, err
	}
	if uint32(len(payload)) != originalLen {
		return nil, fmt.Errorf("%w: decompressed length mismatch", errs.ErrInvalidFormat)
	}

	return buildTable(hdr, payload, engine)
}
