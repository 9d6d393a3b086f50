package tablefile

import (
	"io"
	"math"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/endian"
	"github.com/arloliu/coltable/internal/pool"
	"github.com/arloliu/coltable/table"
)

// Write encodes t's numeric columns to w in the exact big-endian layout
// spec §6 specifies: non-numeric columns are skipped, and a mapped numeric
// column materializes through its permutation (NaN for out-of-range
// mapping indices, already handled by column.Column.Map's Fill). A table
// with no numeric columns still writes a valid (width=0) header.
func Write(w io.Writer, t *table.Table) error {
	engine := endian.GetBigEndianEngine()
	labels, cols := numericColumns(t)
	height := t.Height()

	buf := pool.GetLarge()
	defer pool.PutLarge(buf)

	writeHeader(buf, engine, labels, cols, height)
	appendPayload(buf, engine, cols, height)

	_, err := buf.WriteTo(w)

	return err
}

// appendPayload fills each column's full height into scratch, then appends
// it column-major as big-endian IEEE-754 doubles.
func appendPayload(buf *pool.ByteBuffer, engine endian.EndianEngine, cols []column.Column, height int) {
	scratch := make([]float64, height)
	for _, col := range cols {
		filler, ok := col.(column.NumericFiller)
		if !ok {
			for i := range scratch {
				scratch[i] = math.NaN()
			}
		} else {
			n := filler.Fill(scratch, 0)
			for i := n; i < height; i++ {
				scratch[i] = math.NaN()
			}
		}

		for _, v := range scratch {
			buf.B = engine.AppendUint64(buf.B, math.Float64bits(v))
		}
	}
}

// WriteCompressed encodes t like Write, but runs the payload block through
// the codec selected by WithCompression (format.CompressionNone if no
// option is given), prefixing it with a one-byte compression-type tag and
// a four-byte big-endian original-length so ReadCompressed can check the
// decompressed length. This is a non-bit-exact variant for out-of-band
// storage, per SPEC_FULL.md's DOMAIN STACK note; the plain Write path above
// is untouched by it.
func WriteCompressed(w io.Writer, t *table.Table, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	codec, err := cfg.codec()
	if err != nil {
		return err
	}

	engine := endian.GetBigEndianEngine()
	labels, cols := numericColumns(t)
	height := t.Height()

	headerBuf := pool.Get()
	defer pool.Put(headerBuf)
	writeHeader(headerBuf, engine, labels, cols, height)

	payloadBuf := pool.GetLarge()
	defer pool.PutLarge(payloadBuf)
	appendPayload(payloadBuf, engine, cols, height)

	compressed, err := codec.Compress(payloadBuf.Bytes())
	if err != nil {
		return err
	}

	if _, err := w.Write(headerBuf.Bytes()); err != nil {
		return err
	}

	tag := []byte{byte(cfg.compression)}
	tag = engine.AppendUint32(tag, uint32(payloadBuf.Len()))
	if _, err := w.Write(tag); err != nil {
		return err
	}

	_, err = w.Write(compressed)

	return err
}
