package binder

import (
	"strings"

	"github.com/swagg-dev/swagg/internal/httputil"
)

// Operation is one HTTP method bound to one path template, with every
// type it uses resolved to a graph name.
type Operation struct {
	// Name is the Go name fragment of the operation, e.g. "GetSession".
	Name        string
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Deprecated  bool

	// Body is nil when the operation takes no payload.
	Body       *Body
	Responses  []StatusVariant
	Query      []QueryParam
	PathParams []string
}

// Body is the request payload of an operation.
type Body struct {
	// Type is the graph name of the payload component.
	Type      string
	MediaType string
	Content   httputil.MediaKind
	Required  bool
}

// StatusVariant is one declared response of an operation.
type StatusVariant struct {
	Status      int
	Label       string
	Description string
	// Payload is the graph name of the body component, or "" for a response
	// without body.
	Payload   string
	MediaType string
	Content   httputil.MediaKind
}

// QueryParam is a query parameter. Its type is always a parameters
// component.
type QueryParam struct {
	WireName    string
	Required    bool
	Description string
	Deprecated  bool
	// Type is the graph name of the parameter component.
	Type string
}

// ResponseType is the name of the response union of o.
func (o *Operation) ResponseType() string {
	return o.Name + "Response"
}

// VariantType is the name of the union member for v.
func (o *Operation) VariantType(v StatusVariant) string {
	return o.ResponseType() + v.Label
}

// QueryType is the name of the query struct of o. It only exists when o
// has query parameters.
func (o *Operation) QueryType() string {
	return o.Name + "Query"
}

// HTTPMethod returns the upper-case method.
func (o *Operation) HTTPMethod() string {
	return strings.ToUpper(o.Method)
}

// RouteScope holds the operations sharing one path template.
type RouteScope struct {
	Path       string
	Operations []*Operation
}

// Group collects ops into route scopes by path template. Scopes and the
// operations inside them keep first-seen order.
func Group(ops []*Operation) []*RouteScope {
	var (
		scopes []*RouteScope
		index  = make(map[string]*RouteScope)
	)
	for _, op := range ops {
		scope, ok := index[op.Path]
		if !ok {
			scope = &RouteScope{Path: op.Path}
			index[op.Path] = scope
			scopes = append(scopes, scope)
		}
		scope.Operations = append(scope.Operations, op)
	}
	return scopes
}
