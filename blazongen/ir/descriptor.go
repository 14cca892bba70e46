// Package ir defines the intermediate representation of wire type
// descriptors. It is a closed, provider-neutral view of the message graph
// that the document synthesizer walks: structured messages, enumerations,
// primitive wire types, and the raw byte stream marker.
package ir

// Kind identifies the category of a type descriptor.
type Kind int

const (
	KindMessage   Kind = iota // Structured message with named fields
	KindEnum                  // Enumeration of (number, name) pairs
	KindPrimitive             // Primitive wire type
	KindStream                // Raw byte stream result marker
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "Message"
	case KindEnum:
		return "Enum"
	case KindPrimitive:
		return "Primitive"
	case KindStream:
		return "Stream"
	default:
		return "Unknown"
	}
}

// Type is the interface implemented by all type descriptors.
// A nil Type means the method declares no type in that position.
type Type interface {
	// Kind returns the descriptor kind for type switching.
	Kind() Kind

	// TypeName returns the stable, registry-unique name of this type:
	// the fully-qualified declared name for messages and enums, the wire
	// type code name (e.g. "TYPE_INT64") for primitives, and
	// "BinaryStream" for the raw stream marker.
	TypeName() string

	// Ensure only types in this package can implement Type.
	sealed()
}
