// Package manifest loads the YAML description of an API surface and
// resolves it against a compiled descriptor set into a method registry.
// The manifest carries everything the descriptor set cannot: method names,
// categories, doc strings, HTTP bindings and document metadata.
package manifest

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/reflect/protoregistry"
	"gopkg.in/yaml.v3"

	"github.com/blazonapi/blazon"
	"github.com/blazonapi/blazon/blazongen/ir"
	"github.com/blazonapi/blazon/blazongen/openapi"
	"github.com/blazonapi/blazon/blazongen/provider"
)

// ResultBinary is the manifest result value that marks a method as
// returning a raw byte stream instead of a message.
const ResultBinary = "binary"

// Manifest is the root of the surface description file.
type Manifest struct {
	Title       string     `yaml:"title" validate:"required"`
	Description string     `yaml:"description"`
	Contact     Contact    `yaml:"contact"`
	License     License    `yaml:"license"`
	Version     Version    `yaml:"version"`
	Categories  []Category `yaml:"categories" validate:"required,dive"`
}

// Contact identifies the API maintainer.
type Contact struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url" validate:"omitempty,url"`
	Email string `yaml:"email" validate:"omitempty,email"`
}

// License names the license the API is provided under.
type License struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url" validate:"omitempty,url"`
}

// Version is the build version quadruple.
type Version struct {
	Major    int `yaml:"major" validate:"gte=0"`
	Minor    int `yaml:"minor" validate:"gte=0"`
	Revision int `yaml:"revision" validate:"gte=0"`
	Release  int `yaml:"release" validate:"gte=0"`
}

// Category groups the methods it declares under one tag.
type Category struct {
	Name    string   `yaml:"name" validate:"required"`
	Methods []Method `yaml:"methods" validate:"dive"`
}

// Method describes one remotely invokable method. Args and Result name
// messages in the descriptor set; Result may also be "binary" for raw
// streams or empty for methods that return nothing.
type Method struct {
	Name   string `yaml:"name" validate:"required"`
	Doc    string `yaml:"doc"`
	Args   string `yaml:"args"`
	Result string `yaml:"result"`
	HTTP   []Rule `yaml:"http" validate:"dive"`
}

// Rule is one HTTP binding of a method.
type Rule struct {
	Method     string `yaml:"method" validate:"required"`
	Path       string `yaml:"path" validate:"required"`
	Deprecated bool   `yaml:"deprecated"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Config returns the document metadata carried by the manifest.
func (m *Manifest) Config() openapi.Config {
	return openapi.Config{
		Title:       m.Title,
		Description: m.Description,
		Contact: openapi.Contact{
			Name:  m.Contact.Name,
			URL:   m.Contact.URL,
			Email: m.Contact.Email,
		},
		License: openapi.License{
			Name: m.License.Name,
			URL:  m.License.URL,
		},
		Version: openapi.Version{
			Major:    m.Version.Major,
			Minor:    m.Version.Minor,
			Revision: m.Version.Revision,
			Release:  m.Version.Release,
		},
	}
}

// Registry resolves every declared method against files and returns the
// populated registry. Resolution fails on the first method whose args or
// result name nothing in the descriptor set.
func (m *Manifest) Registry(files *protoregistry.Files) (*blazon.Registry, error) {
	p := provider.NewDescriptorProvider()
	reg := blazon.NewRegistry()

	for _, c := range m.Categories {
		cat := reg.Category(c.Name)
		for _, meth := range c.Methods {
			var args ir.Type
			if meth.Args != "" {
				msg, err := p.ResolveMessage(files, meth.Args)
				if err != nil {
					return nil, fmt.Errorf("method %s: args: %w", meth.Name, err)
				}
				args = msg
			}

			var result ir.Type
			switch meth.Result {
			case "":
			case ResultBinary:
				result = ir.RawStream
			default:
				msg, err := p.ResolveMessage(files, meth.Result)
				if err != nil {
					return nil, fmt.Errorf("method %s: result: %w", meth.Name, err)
				}
				result = msg
			}

			var rules []blazon.HTTPRule
			for _, r := range meth.HTTP {
				rules = append(rules, blazon.HTTPRule{
					Method:     r.Method,
					Path:       r.Path,
					Deprecated: r.Deprecated,
				})
			}

			cat.Register(&blazon.Method{
				Name:   meth.Name,
				Doc:    meth.Doc,
				Args:   args,
				Result: result,
				Rules:  rules,
			})
		}
	}
	return reg, nil
}
