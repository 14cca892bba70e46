// Package openapi assembles the OpenAPI 3.0.3 description of a method
// registry: one operation per HTTP binding, parameters classified under
// HTTP semantics, and a deduplicated schema catalog covering the type
// graph the registered methods reach.
package openapi

import (
	"errors"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blazonapi/blazon/blazongen/ir"
)

// ErrAbsentType reports that a type was required but none was declared.
var ErrAbsentType = errors.New("no type declared")

// componentsPrefix is the reference prefix for schemas registered under
// the document's components.
const componentsPrefix = "#/components/schemas/"

// typeName returns the stable catalog name for t, failing when the caller
// required a type but none is present.
func typeName(t ir.Type) (string, error) {
	if t == nil {
		return "", ErrAbsentType
	}
	return t.TypeName(), nil
}

// primitiveSchemas builds the ready-made fragments for the fifteen scalar
// wire types plus the raw stream marker, keyed by stable name. Every schema
// catalog is seeded with these before any graph walk so composite expansion
// can short-circuit on primitives.
func primitiveSchemas() openapi3.Schemas {
	entries := []struct {
		name   string
		typ    string
		format string
	}{
		{"TYPE_DOUBLE", openapi3.TypeNumber, "double"},
		{"TYPE_FLOAT", openapi3.TypeNumber, "float"},
		{"TYPE_INT64", openapi3.TypeInteger, "int64"},
		{"TYPE_UINT64", openapi3.TypeInteger, "uint64"},
		{"TYPE_INT32", openapi3.TypeInteger, "int32"},
		{"TYPE_FIXED64", openapi3.TypeInteger, "fixed64"},
		{"TYPE_FIXED32", openapi3.TypeInteger, "fixed32"},
		{"TYPE_BOOL", openapi3.TypeBoolean, ""},
		{"TYPE_STRING", openapi3.TypeString, ""},
		{"TYPE_BYTES", openapi3.TypeString, "byte"},
		{"TYPE_UINT32", openapi3.TypeInteger, "uint32"},
		{"TYPE_SFIXED32", openapi3.TypeInteger, "sfixed32"},
		{"TYPE_SFIXED64", openapi3.TypeInteger, "sfixed64"},
		{"TYPE_SINT32", openapi3.TypeInteger, "sint32"},
		{"TYPE_SINT64", openapi3.TypeInteger, "sint64"},
		{ir.StreamName, openapi3.TypeString, "binary"},
	}

	out := make(openapi3.Schemas, len(entries))
	for _, e := range entries {
		out[e.name] = &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type:   &openapi3.Types{e.typ},
			Format: e.format,
		}}
	}
	return out
}
