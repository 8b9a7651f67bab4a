// Package schema provides an in-memory entity data model implementing
// odatafilter.SchemaResolver. Models can be built programmatically or loaded
// from YAML documents, which makes them convenient as hand-built resolver
// stubs in tests and as configuration for tooling.
package schema

import (
	"fmt"
	"strings"

	odatafilter "github.com/nlstn/go-odata-filter"
	"github.com/nlstn/go-odata-filter/edm"
)

// Property declares one structural property of a structured type.
type Property struct {
	Type     string
	Nullable bool
	Facets   edm.Facets
}

// StructuredType is a named entity or complex type with ordered properties.
type StructuredType struct {
	Name       string
	properties map[string]Property
}

// binding associates a range variable name with an entity set.
type binding struct {
	entitySet string
	typeName  string
}

// Model is an in-memory EDM model: structured types, entity sets, bound range
// variables, and function overloads in declaration order.
type Model struct {
	namespace  string
	types      map[string]*StructuredType
	entitySets map[string]string
	bindings   map[string]binding
	functions  []*edm.FunctionSignature
}

// New creates an empty model. The namespace qualifies unqualified type names,
// e.g. namespace "Sample.Geo" turns "Person" into "Sample.Geo.Person".
func New(namespace string) *Model {
	return &Model{
		namespace:  namespace,
		types:      make(map[string]*StructuredType),
		entitySets: make(map[string]string),
		bindings:   make(map[string]binding),
	}
}

// Namespace returns the model's namespace.
func (m *Model) Namespace() string {
	return m.namespace
}

// qualify prefixes the namespace onto names that are not already qualified.
// Edm primitives are never qualified.
func (m *Model) qualify(name string) string {
	if strings.Contains(name, ".") || m.namespace == "" {
		return name
	}
	return m.namespace + "." + name
}

// AddStructuredType declares an entity or complex type with its properties.
// Redeclaring a type replaces it.
func (m *Model) AddStructuredType(name string, properties map[string]Property) {
	qualified := m.qualify(name)
	st := &StructuredType{
		Name:       qualified,
		properties: make(map[string]Property, len(properties)),
	}
	for propName, prop := range properties {
		prop.Type = m.qualifyPropertyType(prop.Type)
		st.properties[propName] = prop
	}
	m.types[qualified] = st
}

func (m *Model) qualifyPropertyType(typeName string) string {
	if strings.HasPrefix(typeName, "Edm.") {
		return typeName
	}
	return m.qualify(typeName)
}

// AddEntitySet declares a named collection of the given entity type.
func (m *Model) AddEntitySet(name, typeName string) error {
	qualified := m.qualify(typeName)
	if _, ok := m.types[qualified]; !ok {
		return fmt.Errorf("entity set %q references undeclared type %q", name, qualified)
	}
	m.entitySets[name] = qualified
	return nil
}

// Bind binds a range variable name (conventionally "$it") to an entity set so
// that ResolveRangeVariable can answer for it.
func (m *Model) Bind(rangeVar, entitySet string) error {
	typeName, ok := m.entitySets[entitySet]
	if !ok {
		return fmt.Errorf("unknown entity set %q", entitySet)
	}
	m.bindings[rangeVar] = binding{entitySet: entitySet, typeName: typeName}
	return nil
}

// AddFunction declares a function overload. Overloads are matched in
// declaration order.
func (m *Model) AddFunction(sig edm.FunctionSignature) {
	m.functions = append(m.functions, &sig)
}

// ResolveRangeVariable implements odatafilter.SchemaResolver. Each call
// returns a fresh RangeVariable so that concurrent parses never share scope
// state.
func (m *Model) ResolveRangeVariable(name string) (*odatafilter.RangeVariable, error) {
	b, ok := m.bindings[name]
	if !ok {
		return nil, &odatafilter.UnknownIdentifierError{Name: name}
	}
	return &odatafilter.RangeVariable{
		Name:             name,
		NavigationSource: b.entitySet,
		Type:             edm.NewTypeReference(b.typeName),
	}, nil
}

// ResolveProperty implements odatafilter.SchemaResolver.
func (m *Model) ResolveProperty(sourceType edm.TypeReference, name string) (edm.TypeReference, error) {
	st, ok := m.types[sourceType.Name]
	if !ok {
		return edm.TypeReference{}, &odatafilter.UnknownPropertyError{
			Name:       name,
			SourceType: sourceType.Name,
		}
	}
	prop, ok := st.properties[name]
	if !ok {
		return edm.TypeReference{}, &odatafilter.UnknownPropertyError{
			Name:       name,
			SourceType: sourceType.Name,
		}
	}
	return edm.TypeReference{
		Name:     prop.Type,
		Nullable: prop.Nullable,
		Facets:   prop.Facets,
	}, nil
}

// ResolveFunction implements odatafilter.SchemaResolver: exact primitive-type
// match preferred, then the first overload in declaration order whose
// parameter types are assignable from the argument types.
func (m *Model) ResolveFunction(name string, args []edm.TypeReference) (*edm.FunctionSignature, error) {
	for _, sig := range m.functions {
		if sig.Name == name && sig.MatchesExactly(args) {
			return sig, nil
		}
	}
	for _, sig := range m.functions {
		if sig.Name == name && sig.MatchesAssignable(args) {
			return sig, nil
		}
	}
	return nil, &odatafilter.UnknownFunctionError{
		Name:          name,
		ArgumentTypes: args,
	}
}

// RegisterGeoDistance declares the canonical geo.distance overload over
// geography points with the given SRID, returning Edm.Double.
func (m *Model) RegisterGeoDistance(srid int) {
	point := edm.NewGeographyPoint(srid)
	m.AddFunction(edm.FunctionSignature{
		Name:       "geo.distance",
		Parameters: []edm.TypeReference{point, point},
		ReturnType: edm.NewTypeReference(edm.Double),
	})
}
