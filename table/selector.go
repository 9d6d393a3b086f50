package table

import (
	"github.com/arloliu/coltable/column"
	"github.com/arloliu/coltable/format"
)

// Predicate is a single selection test against one of the Table's columns.
type Predicate func(t *Table, idx int) bool

// ColumnSelector composes Predicates by logical AND and resolves the
// composition to a label list or column list, per spec §6's "chained
// predicates ... composed by logical AND".
type ColumnSelector struct {
	preds []Predicate
}

// NewColumnSelector builds a selector from zero or more predicates, ANDed
// together. A selector with no predicates matches every column.
func NewColumnSelector(preds ...Predicate) *ColumnSelector {
	return &ColumnSelector{preds: preds}
}

// And returns a new selector with additional predicates appended, ANDed
// with the existing ones.
func (s *ColumnSelector) And(preds ...Predicate) *ColumnSelector {
	combined := make([]Predicate, 0, len(s.preds)+len(preds))
	combined = append(combined, s.preds...)
	combined = append(combined, preds...)

	return &ColumnSelector{preds: combined}
}

func (s *ColumnSelector) matches(t *Table, idx int) bool {
	for _, p := range s.preds {
		if !p(t, idx) {
			return false
		}
	}

	return true
}

// Labels resolves the selector against t, returning the labels of matching
// columns in table order.
func (s *ColumnSelector) Labels(t *Table) []string {
	var out []string
	for i := range t.entries {
		if s.matches(t, i) {
			out = append(out, t.entries[i].label)
		}
	}

	return out
}

// Columns resolves the selector against t, returning the matching columns
// in table order.
func (s *ColumnSelector) Columns(t *Table) []column.Column {
	var out []column.Column
	for i := range t.entries {
		if s.matches(t, i) {
			out = append(out, t.entries[i].col)
		}
	}

	return out
}

// OfTypeID matches columns whose type descriptor has the given TypeID.
func OfTypeID(id format.TypeID) Predicate {
	return func(t *Table, idx int) bool {
		return t.entries[idx].col.Type().ID == id
	}
}

// OfCategory matches columns whose type descriptor has the given Category.
func OfCategory(cat format.Category) Predicate {
	return func(t *Table, idx int) bool {
		return t.entries[idx].col.Type().Category == cat
	}
}

// WithCapability matches columns that carry the given capability.
func WithCapability(c format.Capability) Predicate {
	return func(t *Table, idx int) bool {
		return t.entries[idx].col.HasCapability(c)
	}
}

// WithMeta matches columns that carry the given metadata key with the
// given value.
func WithMeta(key, value string) Predicate {
	return func(t *Table, idx int) bool {
		m := t.entries[idx].meta
		if m == nil {
			return false
		}
		v, ok := m[key]

		return ok && v == value
	}
}
