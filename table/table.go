// Package table implements the library-surface façade over the column
// model: Table holds an ordered list of labeled columns with optional
// per-column metadata, ColumnSelector composes predicates over that list,
// and Render pretty-prints a Table through the reader package's row cursor
// rather than a second read path. Grounded on the teacher's BlobSet (the
// closest analogue to a labeled multi-column facade): a label resolves to
// a position the way a metric name resolves to a metric ID, hashed with
// the same internal/hash.ID (xxhash) helper the teacher uses for metric
// IDs, per spec §6.
package table

import (
	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/errs"
	"github.com/arloliu/coltable/internal/hash"
)

// Meta is free-form per-column metadata, since spec §6 mentions "optional
// per-column meta-data" without giving it shape.
type Meta map[string]string

// entry pairs a column with its label, hashed label id, and metadata.
type entry struct {
	label string
	id    uint64
	col   column.Column
	meta  Meta
}

// Table is an ordered list of labeled columns plus optional per-column
// metadata. Columns are immutable; Table only owns the label/column/meta
// association, mirroring the way the teacher's BlobSet owns blobs without
// owning their contents.
type Table struct {
	entries []entry
	byLabel map[string]int // label -> index into entries
	byID    map[uint64]int // hash.ID(label) -> index into entries
}

// New builds an empty Table.
func New() *Table {
	return &Table{
		byLabel: make(map[string]int),
		byID:    make(map[uint64]int),
	}
}

// AddColumn appends a labeled column with optional metadata. Returns
// errs.ErrInvalidArgument if label is empty, col is nil, or the label is
// already present, and errs.ErrInvalidArgument if the column's row count
// disagrees with the existing columns (a Table holds a single rectangular
// row space).
func (t *Table) AddColumn(label string, col column.Column, meta Meta) error {
	if label == "" || col == nil {
		return errs.ErrInvalidArgument
	}
	if _, exists := t.byLabel[label]; exists {
		return errs.ErrInvalidArgument
	}
	if len(t.entries) > 0 && col.Size() != t.entries[0].col.Size() {
		return errs.ErrInvalidArgument
	}

	id := hash.ID(label)
	idx := len(t.entries)
	t.entries = append(t.entries, entry{label: label, id: id, col: col, meta: meta})
	t.byLabel[label] = idx
	t.byID[id] = idx

	return nil
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.entries) }

// Height returns the number of rows, or 0 for an empty Table.
func (t *Table) Height() int {
	if len(t.entries) == 0 {
		return 0
	}

	return t.entries[0].col.Size()
}

// Labels returns the column labels in table order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.label
	}

	return labels
}

// Column returns the column at label, or nil and false if no such label.
func (t *Table) Column(label string) (column.Column, bool) {
	idx, ok := t.byLabel[label]
	if !ok {
		return nil, false
	}

	return t.entries[idx].col, true
}

// ColumnAt returns the column at the given 0-based position, or nil and
// false if out of range.
func (t *Table) ColumnAt(i int) (column.Column, bool) {
	if i < 0 || i >= len(t.entries) {
		return nil, false
	}

	return t.entries[i].col, true
}

// LabelAt returns the label at the given 0-based position, or "" and false
// if out of range.
func (t *Table) LabelAt(i int) (string, bool) {
	if i < 0 || i >= len(t.entries) {
		return "", false
	}

	return t.entries[i].label, true
}

// Meta returns the metadata attached to label, or nil and false if no such
// label or no metadata was attached.
func (t *Table) Meta(label string) (Meta, bool) {
	idx, ok := t.byLabel[label]
	if !ok || t.entries[idx].meta == nil {
		return nil, false
	}

	return t.entries[idx].meta, true
}

// columns returns the backing []column.Column in table order, without
// copying entry metadata. Used internally by Render.
func (t *Table) columns() []column.Column {
	cols := make([]column.Column, len(t.entries))
	for i, e := range t.entries {
		cols[i] = e.col
	}

	return cols
}
