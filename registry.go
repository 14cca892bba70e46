// Package blazon maintains a registry of remotely-invokable API methods:
// their documentation, HTTP bindings, and input/output message types. The
// registry is the single source the description synthesizer in
// blazongen/openapi reads when it renders an OpenAPI document.
package blazon

import (
	"log/slog"
	"sync"
)

// Registry is the ordered collection of API methods a document describes.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]*Method
	order   []string
	logger  *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		methods: make(map[string]*Method),
	}
}

// WithLogger sets a custom logger for the registry.
// If not set, slog.Default() will be used.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a method to the registry. Registering a name twice logs a
// warning and replaces the earlier entry without disturbing its position;
// otherwise registration order is preserved for document assembly.
func (r *Registry) Register(m *Method) {
	if m == nil || m.Name == "" {
		panic("blazon: method must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[m.Name]; exists {
		logger := r.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("duplicate method registration",
			slog.String("method", m.Name),
			slog.String("category", m.Category))
	} else {
		r.order = append(r.order, m.Name)
	}
	r.methods[m.Name] = m
}

// Method returns the registered method with the given name.
func (r *Registry) Method(name string) (*Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.methods[name]
	return m, ok
}

// Methods returns all registered methods in registration order.
func (r *Registry) Methods() []*Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Method, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.methods[name])
	}
	return out
}

// Len returns the number of registered methods.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Category returns a registration helper that stamps the given category
// name onto every method registered through it.
func (r *Registry) Category(name string) *Category {
	return &Category{
		registry: r,
		name:     name,
	}
}

// Category registers methods under a fixed category name.
type Category struct {
	registry *Registry
	name     string
}

// Register stamps the category onto m and registers it.
func (c *Category) Register(m *Method) {
	m.Category = c.name
	c.registry.Register(m)
}
