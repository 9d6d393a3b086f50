package reader

import "github.com/arloliu/coltable/column"

// Doubles builds a NumericReader over col's full length with the default
// buffer size, per §2's "one canonical reader" guidance — a thin
// constructor over NewNumericReader rather than a second read path.
func Doubles(col column.Column) *NumericReader {
	return NewNumericReader(col, 0, MinBufferSize)
}

// Categories builds a CategoricalReader over col's full length with the
// default buffer size.
func Categories(col column.Column) *CategoricalReader {
	return NewCategoricalReader(col, 0, MinBufferSize)
}

// Objects builds an ObjectReader[T] over col's full length with the
// default buffer size.
func Objects[T any](col column.Column) *ObjectReader[T] {
	return NewObjectReader[T](col, 0, MinBufferSize)
}
