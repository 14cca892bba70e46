// Package provider converts compiled protobuf descriptors into the ir type
// graph consumed by the document synthesizer. It is the only place that
// inspects wire metadata; everything downstream works on the closed ir
// union.
package provider

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/blazonapi/blazon/blazongen/ir"
)

// DescriptorProvider converts message and enum descriptors into ir types.
// Conversions are memoized by fully-qualified name: a message referenced
// from many fields maps to a single *ir.Message, and recursive message
// definitions terminate because the entry under construction is visible to
// its own field walk.
//
// A provider is not safe for concurrent use. Build the graph up front, then
// hand the resulting ir values around freely; they are never mutated after
// conversion.
type DescriptorProvider struct {
	types map[string]ir.Type
}

// NewDescriptorProvider returns a provider with an empty memo.
func NewDescriptorProvider() *DescriptorProvider {
	return &DescriptorProvider{
		types: make(map[string]ir.Type),
	}
}

// Message converts md and everything reachable from it.
func (p *DescriptorProvider) Message(md protoreflect.MessageDescriptor) (*ir.Message, error) {
	name := string(md.FullName())
	if t, ok := p.types[name]; ok {
		m, ok := t.(*ir.Message)
		if !ok {
			return nil, fmt.Errorf("descriptor %s already converted as %s, not Message", name, t.Kind())
		}
		return m, nil
	}

	m := &ir.Message{Name: name}
	// Memoize before walking fields so a field referencing this message,
	// directly or through a cycle, resolves to the entry under
	// construction instead of recursing forever.
	p.types[name] = m

	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		ft, err := p.fieldType(fd)
		if err != nil {
			delete(p.types, name)
			return nil, fmt.Errorf("field %s.%s: %w", name, fd.Name(), err)
		}
		m.Fields = append(m.Fields, ir.Field{
			Name:     string(fd.Name()),
			Type:     ft,
			Repeated: fd.IsList(),
		})
	}
	return m, nil
}

// Enum converts ed.
func (p *DescriptorProvider) Enum(ed protoreflect.EnumDescriptor) (*ir.Enum, error) {
	name := string(ed.FullName())
	if t, ok := p.types[name]; ok {
		e, ok := t.(*ir.Enum)
		if !ok {
			return nil, fmt.Errorf("descriptor %s already converted as %s, not Enum", name, t.Kind())
		}
		return e, nil
	}

	e := &ir.Enum{Name: name}
	values := ed.Values()
	for i := 0; i < values.Len(); i++ {
		vd := values.Get(i)
		e.Values = append(e.Values, ir.EnumValue{
			Name:   string(vd.Name()),
			Number: int32(vd.Number()),
		})
	}
	p.types[name] = e
	return e, nil
}

// fieldType resolves a field to its ir type: the referenced message or enum
// when the field is composite, the scalar wire type otherwise.
func (p *DescriptorProvider) fieldType(fd protoreflect.FieldDescriptor) (ir.Type, error) {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return p.Message(fd.Message())
	case protoreflect.EnumKind:
		return p.Enum(fd.Enum())
	default:
		code := descriptorpb.FieldDescriptorProto_Type(fd.Kind())
		if !ir.IsScalar(code) {
			return nil, fmt.Errorf("unsupported wire type %v", fd.Kind())
		}
		return ir.PrimitiveOf(code), nil
	}
}
