// Package edm provides the entity-data-model type vocabulary consumed by the
// filter parser: type references, facets, comparability families, and
// function signatures. Values are plain structs compared structurally so that
// hand-built resolver stubs and parsed trees can be asserted with simple
// equality in tests.
package edm

import (
	"fmt"
	"strings"
)

// Well-known primitive type names.
const (
	Boolean            = "Edm.Boolean"
	Byte               = "Edm.Byte"
	Date               = "Edm.Date"
	DateTimeOffset     = "Edm.DateTimeOffset"
	Decimal            = "Edm.Decimal"
	Double             = "Edm.Double"
	Duration           = "Edm.Duration"
	GeographyPoint     = "Edm.GeographyPoint"
	GeographyLine      = "Edm.GeographyLineString"
	GeographyPolygon   = "Edm.GeographyPolygon"
	Geography          = "Edm.Geography"
	Guid               = "Edm.Guid"
	Int16              = "Edm.Int16"
	Int32              = "Edm.Int32"
	Int64              = "Edm.Int64"
	SByte              = "Edm.SByte"
	Single             = "Edm.Single"
	String             = "Edm.String"
	TimeOfDay          = "Edm.TimeOfDay"
	Untyped            = "Edm.Untyped"
)

// TypeReference identifies a declared type together with its nullability and
// facets. It is a value type; two references are the same type when they are
// structurally equal.
type TypeReference struct {
	Name     string
	Nullable bool
	Facets   Facets
}

// NewTypeReference returns a non-nullable reference to the named type.
func NewTypeReference(name string) TypeReference {
	return TypeReference{Name: name}
}

// NewGeographyPoint returns a reference to Edm.GeographyPoint carrying the
// given spatial reference system identifier.
func NewGeographyPoint(srid int) TypeReference {
	return TypeReference{Name: GeographyPoint, Facets: Facets{SRID: &srid}}
}

// IsZero reports whether the reference has not been assigned a type name.
func (t TypeReference) IsZero() bool {
	return t.Name == ""
}

// Family returns the comparability family of the referenced type.
func (t TypeReference) Family() FamilyKind {
	return FamilyOf(t.Name)
}

// String renders the reference for diagnostics,
// e.g. "Edm.GeographyPoint[SRID=4326]".
func (t TypeReference) String() string {
	if t.Facets.SRID != nil {
		return fmt.Sprintf("%s[SRID=%d]", t.Name, *t.Facets.SRID)
	}
	return t.Name
}

// FamilyKind classifies primitive types into comparability families.
// Comparison operators only ever relate two values from the same family.
type FamilyKind int

const (
	FamilyUnknown FamilyKind = iota
	FamilyNumeric
	FamilyString
	FamilyBoolean
	FamilyGuid
	FamilyTemporal
	FamilyGeography
	FamilyUntyped
)

// String returns a human readable family name for error messages.
func (f FamilyKind) String() string {
	switch f {
	case FamilyNumeric:
		return "numeric"
	case FamilyString:
		return "string"
	case FamilyBoolean:
		return "boolean"
	case FamilyGuid:
		return "guid"
	case FamilyTemporal:
		return "temporal"
	case FamilyGeography:
		return "geography"
	case FamilyUntyped:
		return "untyped"
	}
	return "unknown"
}

// FamilyOf returns the comparability family for a primitive type name.
// Structured (non-Edm) types report FamilyUnknown.
func FamilyOf(typeName string) FamilyKind {
	switch typeName {
	case SByte, Byte, Int16, Int32, Int64, Single, Double, Decimal:
		return FamilyNumeric
	case String:
		return FamilyString
	case Boolean:
		return FamilyBoolean
	case Guid:
		return FamilyGuid
	case Date, DateTimeOffset, TimeOfDay, Duration:
		return FamilyTemporal
	case Untyped, "":
		return FamilyUntyped
	}
	if strings.HasPrefix(typeName, "Edm.Geography") || strings.HasPrefix(typeName, "Edm.Geometry") {
		return FamilyGeography
	}
	return FamilyUnknown
}

// EqualityComparable reports whether values of the two families may be
// related with eq or ne. Untyped (the null literal) compares against any
// family; geography values are never comparable directly, only through
// function results.
func EqualityComparable(left, right FamilyKind) bool {
	if left == FamilyUntyped || right == FamilyUntyped {
		return true
	}
	if left != right {
		return false
	}
	switch left {
	case FamilyNumeric, FamilyString, FamilyBoolean, FamilyGuid, FamilyTemporal:
		return true
	}
	return false
}

// OrderComparable reports whether values of the two families may be related
// with lt, le, gt or ge.
func OrderComparable(left, right FamilyKind) bool {
	if left != right {
		return false
	}
	switch left {
	case FamilyNumeric, FamilyString, FamilyTemporal:
		return true
	}
	return false
}
