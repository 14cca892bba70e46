package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blazonapi/blazon/blazongen/ir"
)

// schemaBuilder walks the type graph and accumulates one schema fragment
// per distinct type in catalog. The visiting set tracks names currently
// mid-expansion so a cycle in the graph becomes a reference instead of
// unbounded recursion; it is empty again whenever extract returns.
type schemaBuilder struct {
	catalog    openapi3.Schemas
	primitives map[string]bool
	visiting   map[string]bool
	warnings   []string
}

func newSchemaBuilder() *schemaBuilder {
	seed := primitiveSchemas()
	prim := make(map[string]bool, len(seed))
	for name := range seed {
		prim[name] = true
	}
	return &schemaBuilder{
		catalog:    seed,
		primitives: prim,
		visiting:   make(map[string]bool),
	}
}

// extract ensures t's fragment is in the catalog and returns the
// schema-or-reference callers embed at use sites: an inline fragment for
// primitives and the raw stream, a components reference for messages and
// enums. Each composite is expanded exactly once no matter how many fields
// or methods reach it.
func (b *schemaBuilder) extract(t ir.Type) (*openapi3.SchemaRef, error) {
	name, err := typeName(t)
	if err != nil {
		return nil, err
	}

	switch t.(type) {
	case *ir.Primitive, *ir.Stream:
		seeded, ok := b.catalog[name]
		if !ok {
			return nil, fmt.Errorf("wire type %s has no schema fragment", name)
		}
		return &openapi3.SchemaRef{Value: seeded.Value}, nil
	}

	// A name mid-expansion means this edge closes a cycle. The target is
	// guaranteed to end up registered: it is either already in the catalog
	// or a strict ancestor of this call, so a reference is always safe.
	if b.visiting[name] {
		return refTo(name), nil
	}
	if _, done := b.catalog[name]; done {
		return refTo(name), nil
	}

	switch v := t.(type) {
	case *ir.Message:
		b.visiting[name] = true
		schema, err := b.messageSchema(v)
		delete(b.visiting, name)
		if err != nil {
			return nil, err
		}
		b.catalog[name] = &openapi3.SchemaRef{Value: schema}
	case *ir.Enum:
		b.catalog[name] = &openapi3.SchemaRef{Value: b.enumSchema(v)}
	default:
		return nil, fmt.Errorf("type %s: unsupported descriptor %T", name, t)
	}
	return refTo(name), nil
}

func (b *schemaBuilder) messageSchema(m *ir.Message) (*openapi3.Schema, error) {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: make(openapi3.Schemas, len(m.Fields)),
	}
	for _, f := range m.Fields {
		prop, err := b.fieldSchema(f)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", m.Name, f.Name, err)
		}
		schema.Properties[f.Name] = prop
	}
	return schema, nil
}

// fieldSchema resolves one field to its schema-or-reference, wrapping
// repeated fields in an array.
func (b *schemaBuilder) fieldSchema(f ir.Field) (*openapi3.SchemaRef, error) {
	ref, err := b.extract(f.Type)
	if err != nil {
		return nil, err
	}
	if f.Repeated {
		ref = arrayOf(ref)
	}
	return ref, nil
}

// enumSchema renders an enum as an integer schema restricted to the
// declared numbers, with a description legend naming each one.
func (b *schemaBuilder) enumSchema(e *ir.Enum) *openapi3.Schema {
	if len(e.Values) == 0 {
		b.warnings = append(b.warnings, fmt.Sprintf("enum %s has no declared values", e.Name))
	}
	values := make([]any, 0, len(e.Values))
	legend := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		values = append(values, int64(v.Number))
		legend = append(legend, fmt.Sprintf("%d == %s", v.Number, v.Name))
	}
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeInteger},
		Enum:        values,
		Description: strings.Join(legend, "\n"),
	}
}

// components returns the catalog entries that belong under the document's
// components.schemas: every composite, with the pre-seeded primitive
// fragments dropped because those are always inlined at use sites.
func (b *schemaBuilder) components() openapi3.Schemas {
	out := make(openapi3.Schemas, len(b.catalog))
	for name, ref := range b.catalog {
		if b.primitives[name] {
			continue
		}
		out[name] = ref
	}
	return out
}

func refTo(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(componentsPrefix+name, nil)
}

func arrayOf(items *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: items,
	}}
}
