package binder

import (
	"fmt"

	"github.com/swagg-dev/swagg/highway"
	"github.com/swagg-dev/swagg/internal/httputil"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/internal/naming"
	"github.com/swagg-dev/swagg/oaserrors"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/resolver"
)

// Binder binds operations against a finished component graph. Names it
// introduces (response unions, their variants and query structs) are
// registered in a copy of the graph namespace.
type Binder struct {
	doc      *parser.Document
	graph    *highway.Graph
	cfg      config
	names    *highway.NameRegistry
	ops      []*Operation
	warnings []*issues.Issue
}

// New returns a Binder for operations of doc whose types live in graph.
func New(doc *parser.Document, graph *highway.Graph, opts ...Option) *Binder {
	cfg := config{logger: parser.NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Binder{doc: doc, graph: graph, cfg: cfg, names: graph.Names()}
}

// Bind binds every operation of doc, in path order and then method order.
func Bind(doc *parser.Document, graph *highway.Graph, opts ...Option) ([]*Operation, []*issues.Issue, error) {
	b := New(doc, graph, opts...)
	for tmpl, item := range doc.Paths.All() {
		if err := b.AddPathItem(tmpl, item); err != nil {
			return nil, nil, err
		}
	}
	return b.Operations(), b.Warnings(), nil
}

// AddPathItem binds every operation of one path item.
func (b *Binder) AddPathItem(pathTemplate string, item *parser.PathItem) error {
	if item == nil {
		return nil
	}
	if item.Ref != "" {
		b.warn(issues.SkippedPathItem(pathTemplate, item.Ref))
		return nil
	}
	for _, method := range httputil.Methods {
		if err := b.AddOperation(method, pathTemplate, item, item.Operation(method)); err != nil {
			return err
		}
	}
	return nil
}

// Operations returns the operations bound so far, in binding order.
func (b *Binder) Operations() []*Operation {
	return append([]*Operation(nil), b.ops...)
}

// Warnings returns the issues recorded so far.
func (b *Binder) Warnings() []*issues.Issue {
	return append([]*issues.Issue(nil), b.warnings...)
}

// Names returns the namespace after binding: graph names plus every name
// introduced by bound operations.
func (b *Binder) Names() *highway.NameRegistry {
	return b.names
}

// AddOperation binds op, declared for method on the path item at
// pathTemplate. Operations that refer to skipped components are skipped
// with a warning.
func (b *Binder) AddOperation(method, pathTemplate string, item *parser.PathItem, op *parser.Operation) error {
	if op == nil {
		return nil
	}
	name := naming.OperationName(op.OperationID, method, pathTemplate)
	s := &opState{
		b:    b,
		base: issues.JoinPath("paths", pathTemplate, method),
		ctx:  &issues.OperationContext{Method: method, Path: pathTemplate, OperationID: op.OperationID},
		op: &Operation{
			Name:        name,
			Method:      method,
			Path:        pathTemplate,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Description: op.Description,
			Deprecated:  op.Deprecated,
		},
	}

	var params []*parser.Parameter
	if item != nil {
		params = item.Parameters
	}
	bound, err := s.parameters(params, op.Parameters)
	if err != nil || !bound {
		return err
	}
	if bound, err = s.requestBody(op.RequestBody); err != nil || !bound {
		return err
	}
	if bound, err = s.responses(op.Responses); err != nil || !bound {
		return err
	}
	if err := s.register(); err != nil {
		return err
	}

	b.ops = append(b.ops, s.op)
	b.cfg.logger.Debug("operation bound", "operation", name, "method", method, "path", pathTemplate,
		"responses", len(s.op.Responses), "query", len(s.op.Query))
	return nil
}

func (b *Binder) warn(issue *issues.Issue) {
	b.warnings = append(b.warnings, issue)
	args := []any{"path", issue.Path}
	if issue.Operation != nil {
		args = append(args, "operation", issue.Operation.String())
	}
	b.cfg.logger.Warn(issue.Message, args...)
}

// opState carries one operation through binding.
type opState struct {
	b    *Binder
	base string
	ctx  *issues.OperationContext
	op   *Operation
}

func (s *opState) warn(path, message string) {
	issue := issues.Warning(path, s.op.Name, message)
	issue.Operation = s.ctx
	s.b.warn(issue)
}

func (s *opState) fail(path string, err error) error {
	return &oaserrors.GenerationError{Phase: "bind", Operation: s.op.Name, Path: path, Cause: err}
}

// skip records that the operation is dropped because one of its types was
// skipped by the graph builder.
func (s *opState) skip(path, what string) (bool, error) {
	s.warn(path, fmt.Sprintf("%s has no component, operation skipped", what))
	return false, nil
}

type paramKey struct{ name, in string }

// parameters merges path-level and operation-level parameters. An
// operation parameter replaces a path parameter with the same name and
// location.
func (s *opState) parameters(pathLevel, opLevel []*parser.Parameter) (bool, error) {
	type entry struct {
		raw      *parser.Parameter
		resolved *parser.Parameter
		path     string
	}
	var (
		merged []entry
		index  = make(map[paramKey]int)
	)
	add := func(list []*parser.Parameter, base string) error {
		for i, raw := range list {
			path := issues.JoinPath(base, "parameters", fmt.Sprint(i))
			p, err := resolver.ParameterOf(s.b.doc, raw)
			if err != nil {
				return s.fail(path, err)
			}
			if p == nil {
				continue
			}
			key := paramKey{p.Name, p.In}
			if at, ok := index[key]; ok {
				merged[at] = entry{raw, p, path}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, entry{raw, p, path})
		}
		return nil
	}
	if err := add(pathLevel, issues.JoinPath("paths", s.op.Path)); err != nil {
		return false, err
	}
	if err := add(opLevel, s.base); err != nil {
		return false, err
	}

	fields := make(map[string]string)
	for _, e := range merged {
		p := e.resolved
		switch p.In {
		case parser.ParamInPath:
			s.op.PathParams = append(s.op.PathParams, p.Name)
		case parser.ParamInQuery:
			if e.raw.Ref == "" {
				return false, s.fail(e.path, &oaserrors.BuildError{
					Kind:      oaserrors.BuildUnnamedParameterSchema,
					Operation: s.op.Name,
					Parameter: p.Name,
					Path:      e.path,
				})
			}
			typ, ok := s.b.graph.ByRef(resolver.KindParameter, e.raw.Ref)
			if !ok {
				return s.skip(e.path, fmt.Sprintf("query parameter %q", p.Name))
			}
			if !naming.IsTagName(p.Name) {
				s.warn(e.path, fmt.Sprintf("query parameter name %q cannot be kept in a struct tag, operation skipped", p.Name))
				return false, nil
			}
			field := naming.ToFieldName(p.Name)
			if prev, taken := fields[field]; taken {
				return false, s.fail(e.path, &oaserrors.BuildError{
					Kind:      oaserrors.BuildNameCollision,
					Proposed:  s.op.QueryType() + "." + field,
					Existing:  fmt.Sprintf("query parameter %q", prev),
					Operation: s.op.Name,
					Path:      e.path,
				})
			}
			fields[field] = p.Name
			s.op.Query = append(s.op.Query, QueryParam{
				WireName:    p.Name,
				Required:    p.Required,
				Description: p.Description,
				Deprecated:  p.Deprecated,
				Type:        typ,
			})
		default:
			s.b.cfg.logger.Debug("parameter ignored", "operation", s.op.Name, "name", p.Name, "in", p.In)
		}
	}
	return true, nil
}

func (s *opState) requestBody(raw *parser.RequestBody) (bool, error) {
	if raw == nil {
		return true, nil
	}
	path := issues.JoinPath(s.base, "requestBody")
	rb, err := resolver.RequestBodyOf(s.b.doc, raw)
	if err != nil {
		return false, s.fail(path, err)
	}
	mediaType, mt, kind, ok := highway.SelectContent(rb.Content)
	if !ok {
		s.warn(path, "request body has no JSON or form content, payload dropped")
		return true, nil
	}
	if mt.Schema == nil {
		return true, nil
	}
	var typ string
	switch {
	case raw.Ref != "":
		typ, ok = s.b.graph.ByRef(resolver.KindRequestBody, raw.Ref)
	case !inline(mt.Schema):
		typ, ok = s.b.graph.ByRef(resolver.KindSchema, mt.Schema.Ref)
	default:
		typ = highway.BodyName(s.op.Name)
		ok = s.b.graph.Has(typ)
	}
	if !ok {
		return s.skip(path, "request body")
	}
	s.op.Body = &Body{Type: typ, MediaType: mediaType, Content: kind, Required: rb.Required}
	return true, nil
}

func (s *opState) responses(rs *parser.Responses) (bool, error) {
	labels := make(map[string]bool)
	for _, entry := range rs.Entries() {
		path := issues.JoinPath(s.base, "responses", entry.Status)
		code := httputil.NumericStatus(entry.Status)
		if code == 0 {
			s.warn(path, fmt.Sprintf("status %s cannot be bound to a variant, response skipped", entry.Status))
			continue
		}
		label := highway.Label(s.b.doc, entry.Status, entry.Response)
		if labels[label] {
			return false, s.fail(path, &oaserrors.DuplicateStatusError{Operation: s.op.Name, Status: entry.Status, Label: label})
		}
		labels[label] = true

		resp, err := resolver.ResponseOf(s.b.doc, entry.Response)
		if err != nil {
			return false, s.fail(path, err)
		}
		v := StatusVariant{Status: code, Label: label}
		if resp != nil {
			v.Description = resp.Description
		}
		if resp != nil && resp.Content.Len() > 0 {
			mediaType, mt, kind, ok := highway.SelectContent(resp.Content)
			switch {
			case !ok:
				s.warn(path, "response has no JSON or form content, payload dropped")
			case mt.Schema != nil:
				var typ string
				switch {
				case entry.Response.Ref != "":
					typ, ok = s.b.graph.ByRef(resolver.KindResponse, entry.Response.Ref)
				case !inline(mt.Schema):
					typ, ok = s.b.graph.ByRef(resolver.KindSchema, mt.Schema.Ref)
				default:
					typ = highway.ResponseName(s.op.Name, label)
					ok = s.b.graph.Has(typ)
				}
				if !ok {
					return s.skip(path, fmt.Sprintf("response %s", entry.Status))
				}
				v.Payload, v.MediaType, v.Content = typ, mediaType, kind
			}
		}
		s.op.Responses = append(s.op.Responses, v)
	}
	return true, nil
}

// register claims the names the operation introduces.
func (s *opState) register() error {
	claim := func(name, owner string) error {
		if err := s.b.names.Register(name, owner); err != nil {
			return s.fail(s.base, withOperation(err, s.op.Name))
		}
		return nil
	}
	if err := claim(s.op.ResponseType(), s.base+" response union"); err != nil {
		return err
	}
	for _, v := range s.op.Responses {
		if err := claim(s.op.VariantType(v), fmt.Sprintf("%s response %d", s.base, v.Status)); err != nil {
			return err
		}
	}
	if len(s.op.Query) > 0 {
		if err := claim(s.op.QueryType(), s.base+" query parameters"); err != nil {
			return err
		}
	}
	return nil
}

func withOperation(err error, op string) error {
	if be, ok := err.(*oaserrors.BuildError); ok {
		be.Operation = op
	}
	return err
}

func inline(s *parser.Schema) bool {
	return s.Ref == "" || s.GoType() != ""
}
