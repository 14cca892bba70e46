package provider

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/blazonapi/blazon/blazongen/ir"
)

// LoadDescriptorSet reads a serialized FileDescriptorSet, as produced by
// protoc --descriptor_set_out, and resolves it into a file registry.
func LoadDescriptorSet(path string) (*protoregistry.Files, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}
	var fds descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(raw, &fds); err != nil {
		return nil, fmt.Errorf("parse descriptor set %s: %w", path, err)
	}
	files, err := protodesc.NewFiles(&fds)
	if err != nil {
		return nil, fmt.Errorf("resolve descriptor set %s: %w", path, err)
	}
	return files, nil
}

// ResolveMessage finds the message named name in files and converts it.
func (p *DescriptorProvider) ResolveMessage(files *protoregistry.Files, name string) (*ir.Message, error) {
	d, err := files.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", name, err)
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("descriptor %s is %T, not a message", name, d)
	}
	return p.Message(md)
}
