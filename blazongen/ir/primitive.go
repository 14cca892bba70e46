package ir

import "google.golang.org/protobuf/types/descriptorpb"

// Primitive represents a primitive wire type.
type Primitive struct {
	// Code is the wire type code. Always one of the fifteen scalar codes;
	// message, group and enum codes never appear here because those
	// shapes get their own descriptors.
	Code descriptorpb.FieldDescriptorProto_Type
}

// Kind returns KindPrimitive.
func (p *Primitive) Kind() Kind { return KindPrimitive }

// TypeName returns the wire type code name, e.g. "TYPE_INT64".
func (p *Primitive) TypeName() string { return p.Code.String() }

func (*Primitive) sealed() {}

// PrimitiveOf returns the descriptor for a scalar wire type code.
func PrimitiveOf(code descriptorpb.FieldDescriptorProto_Type) *Primitive {
	return &Primitive{Code: code}
}

// IsScalar reports whether code is one of the fifteen scalar wire type
// codes, i.e. everything except groups, messages and enums.
func IsScalar(code descriptorpb.FieldDescriptorProto_Type) bool {
	if code < descriptorpb.FieldDescriptorProto_TYPE_DOUBLE ||
		code > descriptorpb.FieldDescriptorProto_TYPE_SINT64 {
		return false
	}
	switch code {
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP,
		descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
		descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return false
	}
	return true
}
