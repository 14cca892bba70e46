package ir

// Enum represents an enumeration type.
type Enum struct {
	// Name is the fully-qualified declared name.
	Name string

	// Values contains the declared values in declaration order.
	Values []EnumValue
}

// Kind returns KindEnum.
func (e *Enum) Kind() Kind { return KindEnum }

// TypeName returns the enum's fully-qualified name.
func (e *Enum) TypeName() string { return e.Name }

func (*Enum) sealed() {}

// EnumValue represents a single declared enum value.
type EnumValue struct {
	// Name is the symbolic constant name.
	Name string

	// Number is the declared integer value.
	Number int32
}
