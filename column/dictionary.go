package column

import "sync"

// Dictionary is the append-only, shared value list backing every
// categorical column width variant. Index 0 is always reserved for the
// missing/null marker; the real values occupy indices [1, Len()).
//
// A Dictionary is safe for concurrent use: Get only reads the append-only
// value slice (read lock), while appends take the write lock and
// double-check for a concurrently-inserted value before growing the list.
// Buffers hold a Dictionary while writable; freezing a buffer hands the
// same Dictionary pointer to the resulting column without copying — the
// column never appends to it again, but nothing in the type prevents reuse
// if a caller still holds the buffer, so buffer.Freeze documents that the
// buffer must not be reused for further writes afterward.
type Dictionary struct {
	mu     sync.RWMutex
	values []any
	index  map[any]int32
}

// NewDictionary creates an empty dictionary: just the null slot at index 0.
func NewDictionary() *Dictionary {
	return &Dictionary{
		values: []any{nil},
		index:  map[any]int32{},
	}
}

// Len returns the number of entries including the null slot at index 0.
func (d *Dictionary) Len() int32 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return int32(len(d.values))
}

// Get returns the value stored at idx, or nil if idx is 0 or out of range.
func (d *Dictionary) Get(idx int32) any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if idx < 0 || int(idx) >= len(d.values) {
		return nil
	}

	return d.values[idx]
}

// Values returns a snapshot copy of the dictionary's entries, including the
// nil null slot at index 0.
func (d *Dictionary) Values() []any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]any, len(d.values))
	copy(out, d.values)

	return out
}

// IndexOf returns the index of v and true if v is already present.
func (d *Dictionary) IndexOf(v any) (int32, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx, ok := d.index[v]

	return idx, ok
}

// Intern returns the index of v, appending it to the dictionary under the
// write lock if not already present. maxValue bounds the format's domain
// (e.g. 3 for U2, 15 for U4); if appending v would exceed it, Intern
// returns false and leaves the dictionary unchanged.
func (d *Dictionary) Intern(v any, maxValue int64) (int32, bool) {
	if idx, ok := d.IndexOf(v); ok {
		return idx, true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-checked: another writer may have interned v while we waited
	// for the write lock.
	if idx, ok := d.index[v]; ok {
		return idx, true
	}

	newIdx := int32(len(d.values))
	if int64(newIdx) > maxValue {
		return 0, false
	}

	d.values = append(d.values, v)
	d.index[v] = newIdx

	return newIdx, true
}
