package generator

import (
	"github.com/swagg-dev/swagg/binder"
	"github.com/swagg-dev/swagg/highway"
)

// Summary is a serializable overview of a generation, used by the inspect
// command and the MCP inspect tool.
type Summary struct {
	Package    string             `json:"package"`
	Components []ComponentSummary `json:"components"`
	Routes     []RouteSummary     `json:"routes"`
	Warnings   []*Issue           `json:"warnings,omitempty"`
}

// ComponentSummary describes one generated component type.
type ComponentSummary struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Origin string `json:"origin"`
	Path   string `json:"path,omitempty"`
}

// RouteSummary holds the operations bound to one path template.
type RouteSummary struct {
	Path       string             `json:"path"`
	Operations []OperationSummary `json:"operations"`
}

// OperationSummary describes one bound operation.
type OperationSummary struct {
	Method      string `json:"method"`
	Name        string `json:"name"`
	OperationID string `json:"operationId,omitempty"`
	Response    string `json:"response"`
	Query       string `json:"query,omitempty"`
	Body        string `json:"body,omitempty"`
	Statuses    []int  `json:"statuses"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

// Summary returns the overview of r. Components keep graph order and
// routes keep document order.
func (r *Result) Summary() *Summary {
	s := &Summary{Package: r.PackageName, Warnings: r.Warnings}
	if r.graph != nil {
		s.Components = summarizeComponents(r.graph)
	}
	for _, scope := range binder.Group(r.ops) {
		route := RouteSummary{Path: scope.Path}
		for _, op := range scope.Operations {
			route.Operations = append(route.Operations, summarizeOperation(op))
		}
		s.Routes = append(s.Routes, route)
	}
	return s
}

func summarizeComponents(g *highway.Graph) []ComponentSummary {
	comps := g.Components()
	out := make([]ComponentSummary, 0, len(comps))
	for _, c := range comps {
		out = append(out, ComponentSummary{
			Name:   c.Name,
			Kind:   c.Kind.String(),
			Origin: c.Origin.String(),
			Path:   c.Path,
		})
	}
	return out
}

func summarizeOperation(op *binder.Operation) OperationSummary {
	s := OperationSummary{
		Method:      op.HTTPMethod(),
		Name:        op.Name,
		OperationID: op.OperationID,
		Response:    op.ResponseType(),
		Deprecated:  op.Deprecated,
		Statuses:    make([]int, 0, len(op.Responses)),
	}
	if len(op.Query) > 0 {
		s.Query = op.QueryType()
	}
	if op.Body != nil {
		s.Body = op.Body.Type
	}
	for _, v := range op.Responses {
		s.Statuses = append(s.Statuses, v.Status)
	}
	return s
}
