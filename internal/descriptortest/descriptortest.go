// Package descriptortest builds in-memory protobuf descriptors for tests.
// No .proto files or generated code are involved: tests assemble a
// FileDescriptorProto, resolve it with protodesc, and hand individual
// message descriptors to the code under test.
package descriptortest

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// File resolves the shared test descriptor file. It declares the shapes the
// synthesizer tests exercise: plain fields, every scalar wire type, repeated
// fields, an enum, nested message references, a self-referential message,
// and a mutually recursive pair.
func File(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()
	fd, err := protodesc.NewFile(FileProto(), nil)
	if err != nil {
		t.Fatalf("building test descriptor file: %v", err)
	}
	return fd
}

// Message returns the named top-level message descriptor from File.
func Message(t *testing.T, name protoreflect.Name) protoreflect.MessageDescriptor {
	t.Helper()
	md := File(t).Messages().ByName(name)
	if md == nil {
		t.Fatalf("test descriptor file has no message %q", name)
	}
	return md
}

// Enum returns the named top-level enum descriptor from File.
func Enum(t *testing.T, name protoreflect.Name) protoreflect.EnumDescriptor {
	t.Helper()
	ed := File(t).Enums().ByName(name)
	if ed == nil {
		t.Fatalf("test descriptor file has no enum %q", name)
	}
	return ed
}

// FileProto returns the raw FileDescriptorProto behind File. Callers that
// need a FileDescriptorSet (e.g. CLI tests) can wrap it themselves.
func FileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("blazon_test.proto"),
		Package: proto.String("blazon.test"),
		Syntax:  proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("SearchArgs"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("client_id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("offset", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("count", 3, descriptorpb.FieldDescriptorProto_TYPE_INT64),
				},
			},
			{
				Name: proto.String("ClientInfo"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("client_id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("hostname", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					repeated(scalarField("labels", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
					enumField("state", 4, ".blazon.test.ClientState"),
				},
			},
			{
				Name: proto.String("SearchResult"),
				Field: []*descriptorpb.FieldDescriptorProto{
					repeated(messageField("items", 1, ".blazon.test.ClientInfo")),
				},
			},
			{
				Name: proto.String("AllScalars"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("field_double", 1, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
					scalarField("field_float", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalarField("field_int64", 3, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					scalarField("field_uint64", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
					scalarField("field_int32", 5, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("field_fixed64", 6, descriptorpb.FieldDescriptorProto_TYPE_FIXED64),
					scalarField("field_fixed32", 7, descriptorpb.FieldDescriptorProto_TYPE_FIXED32),
					scalarField("field_bool", 8, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					scalarField("field_string", 9, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalarField("field_bytes", 10, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
					scalarField("field_uint32", 11, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					scalarField("field_sfixed32", 12, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32),
					scalarField("field_sfixed64", 13, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64),
					scalarField("field_sint32", 14, descriptorpb.FieldDescriptorProto_TYPE_SINT32),
					scalarField("field_sint64", 15, descriptorpb.FieldDescriptorProto_TYPE_SINT64),
				},
			},
			{
				Name: proto.String("Node"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					repeated(messageField("children", 2, ".blazon.test.Node")),
				},
			},
			{
				Name: proto.String("TreeRoot"),
				Field: []*descriptorpb.FieldDescriptorProto{
					messageField("branch", 1, ".blazon.test.Branch"),
				},
			},
			{
				Name: proto.String("Branch"),
				Field: []*descriptorpb.FieldDescriptorProto{
					messageField("root", 1, ".blazon.test.TreeRoot"),
					scalarField("depth", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				},
			},
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("ClientState"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: proto.String("PENDING"), Number: proto.Int32(1)},
					{Name: proto.String("ACTIVE"), Number: proto.Int32(2)},
					{Name: proto.String("RETIRED"), Number: proto.Int32(3)},
				},
			},
		},
	}
}

func scalarField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func messageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String(typeName)
	return f
}

func enumField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	f.TypeName = proto.String(typeName)
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}
