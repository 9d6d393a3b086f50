package buffer

import (
	"testing"
	"time"

	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/stretchr/testify/require"
)

func TestDateTimeBufferLowPrecisionDiscardsNanos(t *testing.T) {
	buf := NewDateTimeBuffer(2)
	require.False(t, buf.IsHighPrecision())

	instant := time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC)
	require.NoError(t, buf.SetInstant(0, &instant))

	seconds, _, ok := buf.Get(0)
	require.True(t, ok)
	require.Equal(t, instant.Unix(), seconds)

	require.NoError(t, buf.SetInstant(1, nil))
	_, _, ok = buf.Get(1)
	require.False(t, ok)
}

func TestDateTimeBufferHighPrecisionRangeValidation(t *testing.T) {
	buf := NewDateTimeBufferHi(2)

	err := buf.SetSeconds(0, 100, MaxNanoOfSecond+1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	err = buf.SetSeconds(0, InstantMaxSecond+1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	require.NoError(t, buf.SetSeconds(0, 100, 5))
	seconds, nanos, ok := buf.Get(0)
	require.True(t, ok)
	require.Equal(t, int64(100), seconds)
	require.Equal(t, int64(5), nanos)
}

func TestDateTimeBufferFreeze(t *testing.T) {
	buf := NewDateTimeBufferHi(2)
	require.NoError(t, buf.SetSeconds(0, 100, 5))
	require.NoError(t, buf.SetSeconds(1, column.LongMin, 0))

	col := buf.Freeze()
	dst := make([]float64, 2)
	col.(column.NumericFiller).Fill(dst, 0)
	require.Equal(t, 100.0, dst[0])

	err := buf.SetSeconds(0, 1, 0)
	require.ErrorIs(t, err, errs.ErrBufferFrozen)
}
