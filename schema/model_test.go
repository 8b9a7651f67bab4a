package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	odatafilter "github.com/nlstn/go-odata-filter"
	"github.com/nlstn/go-odata-filter/edm"
)

func personModel(t *testing.T) *Model {
	t.Helper()
	m := New("Sample.Geo")
	m.AddStructuredType("Person", map[string]Property{
		"Name":   {Type: edm.String, Nullable: true},
		"Home":   {Type: edm.GeographyPoint, Facets: edm.Facets{}.WithSRID(4326)},
		"Price":  {Type: edm.Double},
		"Active": {Type: edm.Boolean},
	})
	require.NoError(t, m.AddEntitySet("People", "Person"))
	require.NoError(t, m.Bind("$it", "People"))
	m.RegisterGeoDistance(4326)
	return m
}

func TestResolveRangeVariable(t *testing.T) {
	m := personModel(t)

	rv, err := m.ResolveRangeVariable("$it")
	require.NoError(t, err)
	assert.Equal(t, "$it", rv.Name)
	assert.Equal(t, "People", rv.NavigationSource)
	assert.Equal(t, "Sample.Geo.Person", rv.Type.Name)

	second, err := m.ResolveRangeVariable("$it")
	require.NoError(t, err)
	assert.NotSame(t, rv, second, "each resolution gets its own scope value")

	_, err = m.ResolveRangeVariable("$other")
	var unknown *odatafilter.UnknownIdentifierError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "$other", unknown.Name)
}

func TestResolveProperty(t *testing.T) {
	m := personModel(t)
	person := edm.NewTypeReference("Sample.Geo.Person")

	ref, err := m.ResolveProperty(person, "Home")
	require.NoError(t, err)
	assert.Equal(t, edm.GeographyPoint, ref.Name)
	require.NotNil(t, ref.Facets.SRID)
	assert.Equal(t, 4326, *ref.Facets.SRID)

	ref, err = m.ResolveProperty(person, "Name")
	require.NoError(t, err)
	assert.True(t, ref.Nullable)

	_, err = m.ResolveProperty(person, "Nope")
	var unknown *odatafilter.UnknownPropertyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Nope", unknown.Name)
	assert.Equal(t, "Sample.Geo.Person", unknown.SourceType)

	_, err = m.ResolveProperty(edm.NewTypeReference("Sample.Geo.Missing"), "Name")
	assert.Error(t, err)
}

func TestResolveFunctionOverloads(t *testing.T) {
	m := personModel(t)
	m.AddFunction(edm.FunctionSignature{
		Name:       "round",
		Parameters: []edm.TypeReference{edm.NewTypeReference(edm.Double)},
		ReturnType: edm.NewTypeReference(edm.Int64),
	})
	m.AddFunction(edm.FunctionSignature{
		Name:       "round",
		Parameters: []edm.TypeReference{edm.NewTypeReference(edm.Decimal)},
		ReturnType: edm.NewTypeReference(edm.Int64),
	})

	// Exact match wins over declaration order.
	sig, err := m.ResolveFunction("round", []edm.TypeReference{edm.NewTypeReference(edm.Decimal)})
	require.NoError(t, err)
	assert.Equal(t, edm.Decimal, sig.Parameters[0].Name)

	// No exact match: first assignable overload in declaration order.
	sig, err = m.ResolveFunction("round", []edm.TypeReference{edm.NewTypeReference(edm.Int32)})
	require.NoError(t, err)
	assert.Equal(t, edm.Double, sig.Parameters[0].Name)

	_, err = m.ResolveFunction("round", []edm.TypeReference{edm.NewTypeReference(edm.String)})
	var unknown *odatafilter.UnknownFunctionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "round", unknown.Name)
	require.Len(t, unknown.ArgumentTypes, 1)
}

func TestBindRequiresEntitySet(t *testing.T) {
	m := New("Sample.Geo")
	assert.Error(t, m.Bind("$it", "People"))

	err := m.AddEntitySet("People", "Person")
	assert.Error(t, err, "entity set requires a declared type")
}

func TestModelSatisfiesResolver(t *testing.T) {
	var _ odatafilter.SchemaResolver = personModel(t)
}

func TestModelParsesCanonicalFilter(t *testing.T) {
	m := personModel(t)
	m.AddStructuredType("Person", map[string]Property{
		"Name":   {Type: edm.String, Nullable: true},
		"Home":   {Type: edm.GeographyPoint, Facets: edm.Facets{}.WithSRID(4326)},
		"Office": {Type: edm.GeographyPoint, Facets: edm.Facets{}.WithSRID(4326)},
	})

	fq, err := odatafilter.ParseFilter("geo.distance(Home, Office) lt 0.5", "$it", m)
	require.NoError(t, err)

	root, ok := fq.Expression.(*odatafilter.BinaryOperatorNode)
	require.True(t, ok)
	assert.Equal(t, odatafilter.BinaryLessThan, root.Operator)

	call, ok := root.Left.(*odatafilter.FunctionCallNode)
	require.True(t, ok)
	assert.Equal(t, "geo.distance", call.Name)
	assert.Equal(t, edm.Double, call.TypeRef().Name)
}
