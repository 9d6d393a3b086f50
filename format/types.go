// Package format defines the small, shared vocabulary every other coltable
// package imports: the compression type used by the optional table-file
// payload compression, and the column type/category/capability vocabulary
// used by the column model. Kept dependency-free, the same role the
// teacher's format package plays for encoding/compression types.
package format

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// TypeID identifies the logical type of a column.
type TypeID uint8

const (
	// REAL columns store IEEE-754 double-precision floating point values.
	REAL TypeID = iota + 1
	// INTEGER columns store whole numbers, backed by the same dense double
	// array representation as REAL but rounded on write.
	INTEGER
	// NOMINAL columns store categorical values resolved through a dictionary.
	NOMINAL
	// DATE_TIME columns store an instant in time (seconds, optionally nanos).
	DATE_TIME
	// TIME columns store a time-of-day value (nanoseconds since midnight).
	TIME
	// CUSTOM columns store application-defined object values.
	CUSTOM
)

// String returns the canonical name of the type id.
func (t TypeID) String() string {
	switch t {
	case REAL:
		return "REAL"
	case INTEGER:
		return "INTEGER"
	case NOMINAL:
		return "NOMINAL"
	case DATE_TIME:
		return "DATE_TIME"
	case TIME:
		return "TIME"
	case CUSTOM:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// Category describes the physical storage family of a column, independent
// of its logical TypeID. Two columns of different TypeID (e.g. REAL and
// INTEGER) can share a Category (NUMERIC).
type Category uint8

const (
	// NUMERIC columns fill into a []float64 target.
	NUMERIC Category = iota + 1
	// CATEGORICAL columns fill into an int category-index target and carry
	// a dictionary for object resolution.
	CATEGORICAL
	// OBJECT columns fill into an object (any) target.
	OBJECT
)

// String returns the canonical name of the category.
func (c Category) String() string {
	switch c {
	case NUMERIC:
		return "NUMERIC"
	case CATEGORICAL:
		return "CATEGORICAL"
	case OBJECT:
		return "OBJECT"
	default:
		return "UNKNOWN"
	}
}

// Capability is a single bit in a column's capability set.
type Capability uint8

const (
	// NumericReadable means the column supports Fill into a []float64.
	NumericReadable Capability = 1 << iota
	// ObjectReadable means the column supports Fill into an object target.
	ObjectReadable
	// Sortable means the column exposes a natural order via Sort.
	Sortable
	// Boolean means the categorical column has exactly a positive/negative
	// pair of non-missing dictionary entries (see column.PositiveIndex).
	Boolean
)

// CapabilitySet is a bit set of Capability values.
type CapabilitySet uint8

// NewCapabilitySet builds a CapabilitySet from individual capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= CapabilitySet(c)
	}

	return s
}

// Has reports whether the set contains the given capability.
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// With returns a new set with the given capability added.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return s | CapabilitySet(c)
}

// TypeDescriptor describes a column's logical type: its TypeID, an optional
// custom-type name (only meaningful when ID == CUSTOM), its storage
// Category, an element-type tag (the Go type of a single decoded value,
// primarily informative), and an optional total order comparator used by
// OBJECT columns that want Sortable.
type TypeDescriptor struct {
	ID         TypeID
	CustomName string
	Category   Category
	ElemType   string
	Comparator Comparator
}

// Comparator defines a total order over two values of the same type.
// It returns a negative number if a < b, zero if equal, positive if a > b.
type Comparator func(a, b any) int

// NewNumericDescriptor builds the descriptor for REAL or INTEGER columns.
func NewNumericDescriptor(id TypeID) TypeDescriptor {
	return TypeDescriptor{ID: id, Category: NUMERIC, ElemType: "float64"}
}

// NewNominalDescriptor builds the descriptor for categorical columns.
func NewNominalDescriptor() TypeDescriptor {
	return TypeDescriptor{ID: NOMINAL, Category: CATEGORICAL, ElemType: "string"}
}

// NewDateTimeDescriptor builds the descriptor for date-time columns.
func NewDateTimeDescriptor() TypeDescriptor {
	return TypeDescriptor{ID: DATE_TIME, Category: NUMERIC, ElemType: "time.Time"}
}

// NewTimeDescriptor builds the descriptor for time-of-day columns.
func NewTimeDescriptor() TypeDescriptor {
	return TypeDescriptor{ID: TIME, Category: NUMERIC, ElemType: "time.Duration"}
}

// NewCustomDescriptor builds the descriptor for an application-defined
// object column with the given custom type name, element type tag and
// optional comparator (nil if the type has no total order).
func NewCustomDescriptor(name, elemType string, cmp Comparator) TypeDescriptor {
	return TypeDescriptor{ID: CUSTOM, CustomName: name, Category: OBJECT, ElemType: elemType, Comparator: cmp}
}
