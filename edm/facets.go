package edm

import "fmt"

// Facets contains metadata attributes that constrain values of a type
type Facets struct {
	Precision *int // For Decimal: total number of digits
	Scale     *int // For Decimal: digits after decimal point
	MaxLength *int // For String, Binary: maximum length
	SRID      *int // For Geography/Geometry: spatial reference ID
}

// WithSRID returns a copy of the facets with the SRID set.
func (f Facets) WithSRID(srid int) Facets {
	f.SRID = &srid
	return f
}

// Equal compares two facet sets field by field, treating nil as "unset".
func (f Facets) Equal(other Facets) bool {
	return intPtrEqual(f.Precision, other.Precision) &&
		intPtrEqual(f.Scale, other.Scale) &&
		intPtrEqual(f.MaxLength, other.MaxLength) &&
		intPtrEqual(f.SRID, other.SRID)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ValidateDecimalFacets validates that a decimal value's digit counts conform
// to the precision and scale facets.
func ValidateDecimalFacets(totalDigits, fractionalDigits int, facets Facets) error {
	if facets.Precision != nil && totalDigits > *facets.Precision {
		return fmt.Errorf("value exceeds precision: %d digits (max %d)", totalDigits, *facets.Precision)
	}
	if facets.Scale != nil && fractionalDigits > *facets.Scale {
		return fmt.Errorf("value exceeds scale: %d fractional digits (max %d)", fractionalDigits, *facets.Scale)
	}
	return nil
}

// ValidateLengthFacet validates that a value conforms to the maxLength facet.
func ValidateLengthFacet(length int, facets Facets) error {
	if facets.MaxLength != nil && length > *facets.MaxLength {
		return fmt.Errorf("value exceeds maxLength: %d (max %d)", length, *facets.MaxLength)
	}
	return nil
}
