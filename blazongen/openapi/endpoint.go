package openapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blazonapi/blazon"
	"github.com/blazonapi/blazon/blazongen/ir"
)

const (
	mediaJSON        = "application/json"
	mediaOctetStream = "application/octet-stream"
)

// canonicalVerb uppercases verb and rejects anything that is not an HTTP
// method, so a bad binding fails the build instead of panicking deep inside
// the document model.
func canonicalVerb(verb string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(verb))
	switch v {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
		http.MethodTrace, http.MethodConnect:
		return v, nil
	}
	return "", fmt.Errorf("unsupported HTTP verb %q", verb)
}

// isReadVerb reports whether args fields on this verb default to query
// parameters rather than the request body.
func isReadVerb(verb string) bool {
	return verb == http.MethodGet || verb == http.MethodHead
}

// buildOperation synthesizes the operation object for one (method, rule)
// binding. verb is the canonical uppercase verb; simplePath and pathParams
// come from simplifying the rule's template.
func buildOperation(b *schemaBuilder, m *blazon.Method, rule blazon.HTTPRule, verb, simplePath string, pathParams []string) (*openapi3.Operation, error) {
	op := &openapi3.Operation{
		Tags:        []string{m.Category, m.Name},
		Description: m.Doc,
		OperationID: operationID(verb, simplePath, m.Name),
		Parameters:  openapi3.Parameters{},
		Deprecated:  rule.Deprecated,
	}

	pathSet := make(map[string]bool, len(pathParams))
	for _, p := range pathParams {
		pathSet[p] = true
	}

	var bodyFields []ir.Field
	if m.Args != nil {
		args, ok := m.Args.(*ir.Message)
		if !ok {
			return nil, fmt.Errorf("method %s: args type %s is a %s, not a message", m.Name, m.Args.TypeName(), m.Args.Kind())
		}
		for _, f := range args.Fields {
			// Path membership wins over the verb rule: a path parameter
			// stays a path parameter even on GET.
			var param *openapi3.Parameter
			switch {
			case pathSet[f.Name]:
				param = openapi3.NewPathParameter(f.Name)
			case isReadVerb(verb):
				param = openapi3.NewQueryParameter(f.Name)
			default:
				bodyFields = append(bodyFields, f)
				continue
			}

			schema, err := b.fieldSchema(f)
			if err != nil {
				return nil, fmt.Errorf("method %s: parameter %s: %w", m.Name, f.Name, err)
			}
			param.Schema = schema
			op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
		}
	}

	if len(bodyFields) > 0 {
		props := make(openapi3.Schemas, len(bodyFields))
		for _, f := range bodyFields {
			schema, err := b.fieldSchema(f)
			if err != nil {
				return nil, fmt.Errorf("method %s: body field %s: %w", m.Name, f.Name, err)
			}
			props[f.Name] = schema
		}
		op.RequestBody = &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
			Content: openapi3.Content{
				mediaJSON: &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{
					Type:       &openapi3.Types{openapi3.TypeObject},
					Properties: props,
				}}},
			},
		}}
	}

	responses, err := buildResponses(b, m)
	if err != nil {
		return nil, err
	}
	op.Responses = responses
	return op, nil
}

// buildResponses synthesizes the success and fallback responses for m. The
// success shape depends on the result type: a reference for messages, an
// inline octet-stream fragment for raw streams, no content at all when the
// method returns nothing.
func buildResponses(b *schemaBuilder, m *blazon.Method) (*openapi3.Responses, error) {
	success := &openapi3.Response{}
	switch result := m.Result.(type) {
	case nil:
		desc := fmt.Sprintf("The call to the %s API method succeeded.", m.Name)
		success.Description = &desc
	case *ir.Stream:
		desc := fmt.Sprintf("The call to the %s API method succeeded and it returned an instance of %s.", m.Name, result.TypeName())
		success.Description = &desc
		schema, err := b.extract(result)
		if err != nil {
			return nil, fmt.Errorf("method %s: result: %w", m.Name, err)
		}
		success.Content = openapi3.Content{mediaOctetStream: &openapi3.MediaType{Schema: schema}}
	case *ir.Message:
		desc := fmt.Sprintf("The call to the %s API method succeeded and it returned an instance of %s.", m.Name, result.TypeName())
		success.Description = &desc
		schema, err := b.extract(result)
		if err != nil {
			return nil, fmt.Errorf("method %s: result: %w", m.Name, err)
		}
		success.Content = openapi3.Content{mediaJSON: &openapi3.MediaType{Schema: schema}}
	default:
		return nil, fmt.Errorf("method %s: result type %s is a %s, not a message or raw stream", m.Name, m.Result.TypeName(), m.Result.Kind())
	}

	failure := fmt.Sprintf("The call to the %s API method did not succeed.", m.Name)

	responses := &openapi3.Responses{}
	responses.Set("200", &openapi3.ResponseRef{Value: success})
	responses.Set("default", &openapi3.ResponseRef{Value: &openapi3.Response{Description: &failure}})
	return responses, nil
}
