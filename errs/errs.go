// Package errs defines the sentinel error values shared across the coltable
// packages (column, buffer, reader, parallelexec, operator, stats, table,
// tablefile). Call sites wrap these with fmt.Errorf("...: %w", err) to add
// context; callers test the error kind with errors.Is.
package errs

import "errors"

// Argument / format errors.
var (
	// ErrInvalidArgument is returned when a null is passed where forbidden,
	// a numeric argument is out of range, or a label/format is invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidFormat is returned when a persisted table file fails header
	// validation (magic, version) or its data is truncated or inconsistent.
	ErrInvalidFormat = errors.New("invalid format")
)

// Buffer errors.
var (
	// ErrBufferFrozen is returned when a buffer is mutated after Freeze.
	ErrBufferFrozen = errors.New("buffer is frozen")

	// ErrDictionaryOverflow is returned when a categorical buffer receives
	// more distinct values than its index format can represent.
	ErrDictionaryOverflow = errors.New("dictionary overflow")
)

// Capability / operation errors.
var (
	// ErrUnsupportedOperation is returned when a column lacks the capability
	// an operation requires (sort on a non-sortable column, persistence of a
	// non-numeric column, comparator missing on an object column, ...).
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Reader / range errors.
var (
	// ErrOutOfRange is returned by a reader's SetPosition(p) when p < -1, and
	// by a fixed-size buffer's Set when the row index is out of bounds.
	ErrOutOfRange = errors.New("out of range")
)

// Execution errors.
var (
	// ErrTaskAborted is returned when the executor observes a dead context
	// or a peer worker's failure and stops cooperatively.
	ErrTaskAborted = errors.New("task aborted")
)
