package openapi

import (
	"net/url"
	"strings"
)

// simplifyTemplate converts a router URL template into OpenAPI form: each
// <name> or <converter:name> segment becomes {name} with the converter tag
// stripped. The returned parameter names preserve template order. Pure
// function of the template string.
func simplifyTemplate(tpl string) (string, []string) {
	segments := strings.Split(tpl, "/")
	var params []string
	for i, seg := range segments {
		if len(seg) <= 2 || seg[0] != '<' || seg[len(seg)-1] != '>' {
			continue
		}
		parts := strings.Split(seg[1:len(seg)-1], ":")
		name := parts[len(parts)-1]
		segments[i] = "{" + name + "}"
		params = append(params, name)
	}
	return strings.Join(segments, "/"), params
}

// operationID derives the document-unique identifier for one binding.
// Percent-encoding keeps the identifier usable as an anchor or filename
// regardless of what the template contains.
func operationID(verb, simplePath, method string) string {
	return url.PathEscape(verb + "-" + simplePath + "-" + method)
}
