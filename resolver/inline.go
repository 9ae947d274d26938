package resolver

import "github.com/swagg-dev/swagg/parser"

// The *Of helpers return an inline item unchanged and resolve an item that
// is only a $ref. A nil item resolves to nil.

// SchemaOf returns s, or the schema its $ref points at.
func SchemaOf(doc *parser.Document, s *parser.Schema) (*parser.Schema, error) {
	if s == nil || s.Ref == "" {
		return s, nil
	}
	return Schema(doc, s.Ref)
}

// ParameterOf returns p, or the parameter its $ref points at.
func ParameterOf(doc *parser.Document, p *parser.Parameter) (*parser.Parameter, error) {
	if p == nil || p.Ref == "" {
		return p, nil
	}
	return Parameter(doc, p.Ref)
}

// ResponseOf returns r, or the response its $ref points at.
func ResponseOf(doc *parser.Document, r *parser.Response) (*parser.Response, error) {
	if r == nil || r.Ref == "" {
		return r, nil
	}
	return Response(doc, r.Ref)
}

// RequestBodyOf returns b, or the request body its $ref points at.
func RequestBodyOf(doc *parser.Document, b *parser.RequestBody) (*parser.RequestBody, error) {
	if b == nil || b.Ref == "" {
		return b, nil
	}
	return RequestBody(doc, b.Ref)
}

// HeaderOf returns h, or the header its $ref points at.
func HeaderOf(doc *parser.Document, h *parser.Header) (*parser.Header, error) {
	if h == nil || h.Ref == "" {
		return h, nil
	}
	return Header(doc, h.Ref)
}

// SecuritySchemeOf returns s, or the security scheme its $ref points at.
func SecuritySchemeOf(doc *parser.Document, s *parser.SecurityScheme) (*parser.SecurityScheme, error) {
	if s == nil || s.Ref == "" {
		return s, nil
	}
	return SecurityScheme(doc, s.Ref)
}
