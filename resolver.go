package odatafilter

import "github.com/nlstn/go-odata-filter/edm"

// SchemaResolver supplies declared type information to the parser. It is an
// injected capability so that parsing stays deterministic and testable with
// fixed, hand-built stubs instead of a live model.
//
// Resolvers must be side-effect-free: the parser calls them in strict
// left-to-right, depth-first order and assumes repeated parses of the same
// text observe the same schema.
type SchemaResolver interface {
	// ResolveRangeVariable returns the range variable bound to the given
	// name in the current scope. Unbound names fail with
	// *UnknownIdentifierError.
	ResolveRangeVariable(name string) (*RangeVariable, error)

	// ResolveProperty returns the declared type of the named member of
	// sourceType. Missing members fail with *UnknownPropertyError.
	ResolveProperty(sourceType edm.TypeReference, name string) (edm.TypeReference, error)

	// ResolveFunction returns the overload of the named function matching
	// the argument types: an exact primitive-type match is preferred,
	// falling back to the first overload in declaration order whose
	// parameters are assignable from the arguments. No match fails with
	// *UnknownFunctionError.
	ResolveFunction(name string, args []edm.TypeReference) (*edm.FunctionSignature, error)
}
