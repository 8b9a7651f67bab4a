package edm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/shopspring/decimal"
)

// DefaultSRID is assumed for geography literals that do not carry an explicit
// SRID prefix, per the OData ABNF.
const DefaultSRID = 4326

// ParseNumericLiteral converts the raw text of a numeric literal into its Go
// value and type reference. Whole numbers become Edm.Int64; fractional or
// exponent forms are kept exact as decimals and typed Edm.Double.
func ParseNumericLiteral(raw string) (interface{}, TypeReference, error) {
	if strings.ContainsAny(raw, ".eE") {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, TypeReference{}, fmt.Errorf("invalid numeric literal %q: %w", raw, err)
		}
		return d, NewTypeReference(Double), nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, TypeReference{}, fmt.Errorf("numeric literal %q out of range for Edm.Int64", raw)
	}
	return v, NewTypeReference(Int64), nil
}

// ParseGuidLiteral validates and converts a guid literal.
func ParseGuidLiteral(raw string) (uuid.UUID, TypeReference, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, TypeReference{}, fmt.Errorf("invalid guid literal %q: %w", raw, err)
	}
	return id, NewTypeReference(Guid), nil
}

// ParseGeographyLiteral converts the body of a geography'...' literal, an
// optionally SRID-prefixed WKT text such as "SRID=4326;POINT(-122.3 47.6)",
// into an orb geometry and the matching Edm geography type reference.
func ParseGeographyLiteral(raw string) (orb.Geometry, TypeReference, error) {
	srid := DefaultSRID
	body := raw
	if strings.HasPrefix(strings.ToUpper(body), "SRID=") {
		parts := strings.SplitN(body, ";", 2)
		if len(parts) != 2 {
			return nil, TypeReference{}, fmt.Errorf("invalid geography literal %q: missing ';' after SRID", raw)
		}
		v, err := strconv.Atoi(strings.TrimSpace(parts[0][len("SRID="):]))
		if err != nil {
			return nil, TypeReference{}, fmt.Errorf("invalid SRID in geography literal %q", raw)
		}
		srid = v
		body = strings.TrimSpace(parts[1])
	}

	geom, err := wkt.Unmarshal(body)
	if err != nil {
		return nil, TypeReference{}, fmt.Errorf("invalid geography literal %q: %w", raw, err)
	}

	name := Geography
	switch geom.(type) {
	case orb.Point:
		name = GeographyPoint
	case orb.LineString:
		name = GeographyLine
	case orb.Polygon:
		name = GeographyPolygon
	}
	return geom, TypeReference{Name: name, Facets: Facets{}.WithSRID(srid)}, nil
}
