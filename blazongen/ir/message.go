package ir

// Message represents a structured message type with named fields.
// Messages may reference themselves or each other through fields, so the
// descriptor graph can contain cycles.
type Message struct {
	// Name is the fully-qualified declared name, e.g. "fleet.SearchClientsArgs".
	Name string

	// Fields contains the message fields in declaration order.
	Fields []Field
}

// Kind returns KindMessage.
func (m *Message) Kind() Kind { return KindMessage }

// TypeName returns the message's fully-qualified name.
func (m *Message) TypeName() string { return m.Name }

func (*Message) sealed() {}

// Field represents a single message field.
type Field struct {
	// Name is the field identifier as declared.
	Name string

	// Type is the field's resolved type: a *Message, *Enum, or *Primitive.
	// Providers resolve field type references at ingestion so consumers
	// never inspect wire metadata themselves.
	Type Type

	// Repeated marks fields holding an ordered list of values.
	Repeated bool
}
