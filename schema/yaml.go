package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nlstn/go-odata-filter/edm"
)

// yamlDocument mirrors the on-disk schema format:
//
//	namespace: Sample.Geo
//	entityTypes:
//	  Person:
//	    properties:
//	      Home: { type: Edm.GeographyPoint, srid: 4326 }
//	      Name: { type: Edm.String, nullable: true }
//	entitySets:
//	  People: Person
//	functions:
//	  - name: geo.distance
//	    parameters: [Edm.GeographyPoint, Edm.GeographyPoint]
//	    srid: 4326
//	    returns: Edm.Double
type yamlDocument struct {
	Namespace   string                    `yaml:"namespace"`
	EntityTypes map[string]yamlEntityType `yaml:"entityTypes"`
	EntitySets  map[string]string         `yaml:"entitySets"`
	Functions   []yamlFunction            `yaml:"functions"`
}

type yamlEntityType struct {
	Properties map[string]yamlProperty `yaml:"properties"`
}

type yamlProperty struct {
	Type      string `yaml:"type"`
	Nullable  bool   `yaml:"nullable"`
	SRID      *int   `yaml:"srid"`
	Precision *int   `yaml:"precision"`
	Scale     *int   `yaml:"scale"`
	MaxLength *int   `yaml:"maxLength"`
}

type yamlFunction struct {
	Name       string   `yaml:"name"`
	Parameters []string `yaml:"parameters"`
	SRID       *int     `yaml:"srid"`
	Returns    string   `yaml:"returns"`
}

// LoadYAML builds a model from a YAML schema document.
func LoadYAML(data []byte) (*Model, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}

	m := New(doc.Namespace)

	for typeName, et := range doc.EntityTypes {
		props := make(map[string]Property, len(et.Properties))
		for propName, p := range et.Properties {
			if p.Type == "" {
				return nil, fmt.Errorf("property %s.%s has no type", typeName, propName)
			}
			props[propName] = Property{
				Type:     p.Type,
				Nullable: p.Nullable,
				Facets: edm.Facets{
					Precision: p.Precision,
					Scale:     p.Scale,
					MaxLength: p.MaxLength,
					SRID:      p.SRID,
				},
			}
		}
		m.AddStructuredType(typeName, props)
	}

	for setName, typeName := range doc.EntitySets {
		if err := m.AddEntitySet(setName, typeName); err != nil {
			return nil, err
		}
	}

	for _, fn := range doc.Functions {
		if fn.Name == "" || fn.Returns == "" {
			return nil, fmt.Errorf("function declarations require name and returns")
		}
		params := make([]edm.TypeReference, len(fn.Parameters))
		for i, paramType := range fn.Parameters {
			ref := edm.NewTypeReference(m.qualifyPropertyType(paramType))
			if fn.SRID != nil && ref.Family() == edm.FamilyGeography {
				ref.Facets = ref.Facets.WithSRID(*fn.SRID)
			}
			params[i] = ref
		}
		m.AddFunction(edm.FunctionSignature{
			Name:       fn.Name,
			Parameters: params,
			ReturnType: edm.NewTypeReference(m.qualifyPropertyType(fn.Returns)),
		})
	}

	return m, nil
}

// LoadYAMLFile reads and parses a YAML schema document from disk.
func LoadYAMLFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return LoadYAML(data)
}
