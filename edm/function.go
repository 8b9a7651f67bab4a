package edm

import (
	"fmt"
	"strings"
)

// FunctionSignature describes one overload of a callable function: its name,
// ordered parameter types, and return type.
type FunctionSignature struct {
	Name       string
	Parameters []TypeReference
	ReturnType TypeReference
}

// String renders the signature for diagnostics,
// e.g. "geo.distance(Edm.GeographyPoint, Edm.GeographyPoint) -> Edm.Double".
func (s *FunctionSignature) String() string {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s) -> %s", s.Name, strings.Join(params, ", "), s.ReturnType.String())
}

// MatchesExactly reports whether the argument types equal the parameter types
// by primitive type name, position by position.
func (s *FunctionSignature) MatchesExactly(args []TypeReference) bool {
	if len(args) != len(s.Parameters) {
		return false
	}
	for i, p := range s.Parameters {
		if p.Name != args[i].Name {
			return false
		}
	}
	return true
}

// MatchesAssignable reports whether every argument type is assignable to the
// corresponding parameter type.
func (s *FunctionSignature) MatchesAssignable(args []TypeReference) bool {
	if len(args) != len(s.Parameters) {
		return false
	}
	for i, p := range s.Parameters {
		if !AssignableFrom(p, args[i]) {
			return false
		}
	}
	return true
}

// numericRank orders the numeric primitives by representational width so that
// assignability only ever widens. Decimal sits above Double: it can represent
// every integer exactly.
var numericRank = map[string]int{
	SByte:   1,
	Byte:    1,
	Int16:   2,
	Int32:   3,
	Int64:   4,
	Single:  5,
	Double:  6,
	Decimal: 7,
}

// AssignableFrom reports whether an argument of type arg may be passed where
// param is declared. Identical type names are always assignable; within the
// numeric family a narrower type may widen to a wider one. There is no
// implicit conversion across families.
func AssignableFrom(param, arg TypeReference) bool {
	if param.Name == arg.Name {
		return true
	}
	if param.Family() == FamilyNumeric && arg.Family() == FamilyNumeric {
		return numericRank[param.Name] >= numericRank[arg.Name]
	}
	return false
}
