package candidates

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var enumNameExtensions = []string{"x-enum-varnames", "x-enumNames", "x-enum-names"}

// FromOpenAPI builds a Set from the enum of a component schema. When
// property is non-empty the enum is read from that property of the schema.
// Enum name extensions turn the result into a Mapping from name to value.
func FromOpenAPI(data []byte, schemaName, property string) (Set, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Set{}, fmt.Errorf("candidates: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return Set{}, fmt.Errorf("candidates: openapi document has no components")
	}

	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return Set{}, fmt.Errorf("candidates: schema %q not found", schemaName)
	}
	schema := ref.Value
	if property = strings.TrimSpace(property); property != "" {
		prop, ok := schema.Properties[property]
		if !ok || prop == nil || prop.Value == nil {
			return Set{}, fmt.Errorf("candidates: property %q not found in schema %q", property, schemaName)
		}
		schema = prop.Value
	}
	return FromSchema(schema)
}

// FromSchema converts an already loaded schema.
func FromSchema(schema *openapi3.Schema) (Set, error) {
	if schema == nil || len(schema.Enum) == 0 {
		return Set{}, fmt.Errorf("%w: schema has no enum", ErrUnsupported)
	}
	values := stringifyAll(schema.Enum)

	names := enumNames(schema.Extensions)
	if len(names) != len(values) {
		return NewList(values...), nil
	}
	pairs := make([]Pair, 0, len(values))
	for i, v := range values {
		pairs = append(pairs, Pair{Key: names[i], Label: v})
	}
	return NewMapping(pairs...), nil
}

func enumNames(ext map[string]any) []string {
	for _, key := range enumNameExtensions {
		raw, ok := ext[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case []string:
			return v
		case []any:
			return stringifyAll(v)
		}
	}
	return nil
}
