package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/blazonapi/blazon"
)

// openAPIVersion is the description format version the assembler targets.
const openAPIVersion = "3.0.3"

// Generator assembles the OpenAPI description of a method registry.
//
// A generator builds at most once: the first Document, JSON or YAML call
// runs the build, and every later call returns the memoized result, so
// output is byte-stable for the generator's lifetime. Concurrent first
// calls are safe and still build exactly once. Construct a new Generator
// to pick up registry changes.
type Generator struct {
	registry *blazon.Registry
	config   Config

	once     sync.Once
	doc      *openapi3.T
	raw      []byte
	warnings []string
	err      error
}

// NewGenerator validates cfg and returns a generator reading reg.
func NewGenerator(reg *blazon.Registry, cfg Config) (*Generator, error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{registry: reg, config: cfg}, nil
}

// Document returns the assembled document.
func (g *Generator) Document() (*openapi3.T, error) {
	g.once.Do(g.build)
	return g.doc, g.err
}

// JSON returns the document encoded as JSON. The bytes are memoized with
// the document, so repeated calls return identical output.
func (g *Generator) JSON() ([]byte, error) {
	g.once.Do(g.build)
	return g.raw, g.err
}

// YAML returns the document encoded as YAML, with map keys sorted. It
// round-trips through the JSON encoding so the two renderings always agree.
func (g *Generator) YAML() ([]byte, error) {
	raw, err := g.JSON()
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decoding document for yaml: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding document as yaml: %w", err)
	}
	return out, nil
}

// Warnings returns the non-fatal irregularities found by the build, such
// as a method with no HTTP bindings or an enum with no values. Like the
// document itself it is fixed after the first build.
func (g *Generator) Warnings() []string {
	g.once.Do(g.build)
	return g.warnings
}

func (g *Generator) build() {
	doc, warnings, err := assemble(g.registry, g.config)
	if err != nil {
		g.err = err
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		g.err = fmt.Errorf("encoding document: %w", err)
		return
	}
	g.doc = doc
	g.raw = raw
	g.warnings = warnings
}

// assemble runs one full document build against a registry snapshot. It
// never caches anything itself; memoization is the Generator's job.
func assemble(reg *blazon.Registry, cfg Config) (*openapi3.T, []string, error) {
	b := newSchemaBuilder()
	var warnings []string
	methods := reg.Methods()

	// First pass: land every method's args and result types in the catalog
	// so all operations can reference them.
	for _, m := range methods {
		if m.Args != nil {
			if _, err := b.extract(m.Args); err != nil {
				return nil, nil, fmt.Errorf("method %s: args: %w", m.Name, err)
			}
		}
		if m.Result != nil {
			if _, err := b.extract(m.Result); err != nil {
				return nil, nil, fmt.Errorf("method %s: result: %w", m.Name, err)
			}
		}
		if len(m.Rules) == 0 {
			warnings = append(warnings, fmt.Sprintf("method %s has no HTTP bindings", m.Name))
		}
	}

	// Second pass: one operation per (method, rule) pair, grouped by
	// simplified path, then by verb.
	items := make(map[string]*openapi3.PathItem)
	for _, m := range methods {
		for _, rule := range m.Rules {
			verb, err := canonicalVerb(rule.Method)
			if err != nil {
				return nil, nil, fmt.Errorf("method %s: %w", m.Name, err)
			}
			simplePath, pathParams := simplifyTemplate(rule.Path)

			op, err := buildOperation(b, m, rule, verb, simplePath, pathParams)
			if err != nil {
				return nil, nil, err
			}

			item := items[simplePath]
			if item == nil {
				item = &openapi3.PathItem{}
				items[simplePath] = item
			}
			item.SetOperation(verb, op)
		}
	}

	paths := &openapi3.Paths{}
	for path, item := range items {
		paths.Set(path, item)
	}

	info := &openapi3.Info{
		Title:       cfg.Title,
		Description: cfg.Description,
		Version:     cfg.Version.String(),
	}
	if cfg.Contact != (Contact{}) {
		info.Contact = &openapi3.Contact{
			Name:  cfg.Contact.Name,
			URL:   cfg.Contact.URL,
			Email: cfg.Contact.Email,
		}
	}
	if cfg.License != (License{}) {
		info.License = &openapi3.License{
			Name: cfg.License.Name,
			URL:  cfg.License.URL,
		}
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    info,
		Servers: openapi3.Servers{
			{URL: "/", Description: "Root path of the API"},
		},
		Paths: paths,
		Components: &openapi3.Components{
			Schemas: b.components(),
		},
	}
	return doc, append(warnings, b.warnings...), nil
}
