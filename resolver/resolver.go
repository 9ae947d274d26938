// Package resolver resolves local $ref pointers of the form
// "#/components/<kind>/<name>" against a parsed document.
//
// Resolution is a pure function of the reference and the document. A target
// that is itself a reference is followed iteratively; a chain longer than
// MaxDepth is reported as a cycle, which is how self references (A -> A) and
// mutual references (A -> B -> A) terminate.
package resolver

import (
	"strings"

	"github.com/swagg-dev/swagg/oaserrors"
	"github.com/swagg-dev/swagg/parser"
)

// MaxDepth is the maximum number of reference hops followed before a chain
// is reported as a cycle.
const MaxDepth = 32

// Kind is a component namespace under #/components/.
type Kind string

// Component kinds, named as in the document.
const (
	KindSchema         Kind = "schemas"
	KindParameter      Kind = "parameters"
	KindResponse       Kind = "responses"
	KindRequestBody    Kind = "requestBodies"
	KindHeader         Kind = "headers"
	KindSecurityScheme Kind = "securitySchemes"
)

const componentsPrefix = "#/components/"

// Prefix returns the reference prefix of the kind, e.g. "#/components/schemas/".
func (k Kind) Prefix() string {
	return componentsPrefix + string(k) + "/"
}

// Ref builds the reference to the named component.
func Ref(kind Kind, name string) string {
	return kind.Prefix() + escape(name)
}

// Name returns the component name a reference points at without looking it
// up. A reference outside the kind's namespace is a WrongNamespace error.
func Name(kind Kind, ref string) (string, error) {
	prefix := kind.Prefix()
	if !strings.HasPrefix(ref, prefix) {
		msg := ""
		if !strings.HasPrefix(ref, "#") {
			msg = "external references are not supported"
		}
		return "", &oaserrors.ReferenceError{
			Kind:     oaserrors.RefWrongNamespace,
			Ref:      ref,
			ItemKind: string(kind),
			Message:  msg,
		}
	}
	token := strings.TrimPrefix(ref, prefix)
	if token == "" || strings.Contains(token, "/") {
		return "", &oaserrors.ReferenceError{
			Kind:     oaserrors.RefNotFound,
			Ref:      ref,
			ItemKind: string(kind),
			Message:  "reference must name a single component",
		}
	}
	return unescape(token), nil
}

// lookup follows ref through the table of one kind until it reaches an item
// that is not itself a reference.
func lookup[T any](doc *parser.Document, kind Kind, ref string, table func(*parser.Components) *parser.OrderedMap[T], refOf func(T) string) (T, error) {
	var zero T
	current := ref
	for depth := 0; ; depth++ {
		if depth > MaxDepth {
			return zero, &oaserrors.ReferenceError{
				Kind:     oaserrors.RefCycleDetected,
				Ref:      ref,
				ItemKind: string(kind),
				Depth:    depth,
			}
		}
		name, err := Name(kind, current)
		if err != nil {
			return zero, err
		}
		var items *parser.OrderedMap[T]
		if doc != nil && doc.Components != nil {
			items = table(doc.Components)
		}
		item, ok := items.Get(name)
		if !ok {
			return zero, &oaserrors.ReferenceError{
				Kind:     oaserrors.RefNotFound,
				Ref:      current,
				ItemKind: string(kind),
				Name:     name,
			}
		}
		next := refOf(item)
		if next == "" {
			return item, nil
		}
		current = next
	}
}

// Resolve resolves ref in the namespace of kind and returns the typed item
// (*parser.Schema, *parser.Parameter, ...) as any.
func Resolve(doc *parser.Document, kind Kind, ref string) (any, error) {
	switch kind {
	case KindSchema:
		return Schema(doc, ref)
	case KindParameter:
		return Parameter(doc, ref)
	case KindResponse:
		return Response(doc, ref)
	case KindRequestBody:
		return RequestBody(doc, ref)
	case KindHeader:
		return Header(doc, ref)
	case KindSecurityScheme:
		return SecurityScheme(doc, ref)
	}
	return nil, &oaserrors.ReferenceError{Kind: oaserrors.RefWrongNamespace, Ref: ref, ItemKind: string(kind)}
}

// Schema resolves a schema reference.
func Schema(doc *parser.Document, ref string) (*parser.Schema, error) {
	return lookup(doc, KindSchema, ref,
		func(c *parser.Components) *parser.OrderedMap[*parser.Schema] { return c.Schemas },
		func(s *parser.Schema) string { return s.Ref })
}

// Parameter resolves a parameter reference.
func Parameter(doc *parser.Document, ref string) (*parser.Parameter, error) {
	return lookup(doc, KindParameter, ref,
		func(c *parser.Components) *parser.OrderedMap[*parser.Parameter] { return c.Parameters },
		func(p *parser.Parameter) string { return p.Ref })
}

// Response resolves a response reference.
func Response(doc *parser.Document, ref string) (*parser.Response, error) {
	return lookup(doc, KindResponse, ref,
		func(c *parser.Components) *parser.OrderedMap[*parser.Response] { return c.Responses },
		func(r *parser.Response) string { return r.Ref })
}

// RequestBody resolves a request body reference.
func RequestBody(doc *parser.Document, ref string) (*parser.RequestBody, error) {
	return lookup(doc, KindRequestBody, ref,
		func(c *parser.Components) *parser.OrderedMap[*parser.RequestBody] { return c.RequestBodies },
		func(b *parser.RequestBody) string { return b.Ref })
}

// Header resolves a header reference.
func Header(doc *parser.Document, ref string) (*parser.Header, error) {
	return lookup(doc, KindHeader, ref,
		func(c *parser.Components) *parser.OrderedMap[*parser.Header] { return c.Headers },
		func(h *parser.Header) string { return h.Ref })
}

// SecurityScheme resolves a security scheme reference.
func SecurityScheme(doc *parser.Document, ref string) (*parser.SecurityScheme, error) {
	return lookup(doc, KindSecurityScheme, ref,
		func(c *parser.Components) *parser.OrderedMap[*parser.SecurityScheme] { return c.SecuritySchemes },
		func(s *parser.SecurityScheme) string { return s.Ref })
}

// unescape decodes the JSON pointer escapes of a single token.
func unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

func escape(name string) string {
	if !strings.ContainsAny(name, "~/") {
		return name
	}
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}
