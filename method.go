package blazon

import "github.com/blazonapi/blazon/blazongen/ir"

// HTTPRule binds a method to one HTTP endpoint.
type HTTPRule struct {
	// Method is the HTTP verb, e.g. "GET" or "POST".
	Method string

	// Path is the router URL template. Parameter segments use angle
	// brackets with an optional converter tag, e.g. "/foo/<int:id>/bar".
	Path string

	// Deprecated marks a binding kept only for older clients. Synthesized
	// operations carry it as the "deprecated" field.
	Deprecated bool
}

// Method describes one remotely-invokable API method. A Method is treated
// as immutable once registered; changing it after registration is not
// supported and the synthesizer assumes a fixed snapshot.
type Method struct {
	// Name is the registry-unique method name, e.g. "SearchClients".
	Name string

	// Category groups related methods, e.g. "Clients".
	Category string

	// Doc is the human-readable description of the method.
	Doc string

	// Rules are the HTTP bindings in declaration order. A method may be
	// reachable through several verb/path pairs.
	Rules []HTTPRule

	// Args is the input message type, or nil when the method takes no
	// input. When set it must be a *ir.Message; anything else is a type
	// error during endpoint synthesis.
	Args ir.Type

	// Result is the output type: a *ir.Message, ir.RawStream for raw
	// byte responses, or nil when the method returns nothing.
	Result ir.Type
}
