package highway

import (
	"errors"
	"fmt"

	"github.com/swagg-dev/swagg/internal/httputil"
	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/internal/naming"
	"github.com/swagg-dev/swagg/internal/severity"
	"github.com/swagg-dev/swagg/oaserrors"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/resolver"
)

// BodyName is the name of the component synthesized for an inline request
// body of operation op.
func BodyName(op string) string {
	return op + "Body"
}

// ResponseName is the name of the component synthesized for an inline
// response body of operation op.
func ResponseName(op, label string) string {
	return op + label
}

// SelectContent picks the payload media type of a content map: the first
// JSON media type, else the first form media type. ok is false when the
// map holds neither.
func SelectContent(content *parser.OrderedMap[*parser.MediaType]) (mediaType string, mt *parser.MediaType, kind httputil.MediaKind, ok bool) {
	for _, want := range []httputil.MediaKind{httputil.MediaJSON, httputil.MediaForm} {
		for name, m := range content.All() {
			if httputil.ClassifyMediaType(name) == want {
				return name, m, want, true
			}
		}
	}
	return "", nil, httputil.MediaOther, false
}

// Label returns the variant label of a response entry. An x-variant-name
// on a referenced response component counts.
func Label(doc *parser.Document, status string, r *parser.Response) string {
	override := r.VariantName()
	if override == "" && r != nil && r.Ref != "" {
		if target, err := resolver.Response(doc, r.Ref); err == nil {
			override = target.VariantName()
		}
	}
	return naming.StatusLabel(status, override)
}

type refKey struct {
	kind resolver.Kind
	key  string
}

// Builder assembles a Graph one declared item at a time. Items may be added
// in any order; Finish lays them out as parameters, request bodies,
// responses, schemas, then operation bodies, each in the order added.
type Builder struct {
	doc *parser.Document
	cfg config

	buckets  [OriginSchema + 2][]*Component
	declared map[refKey]string
	warnings []*issues.Issue
	finished bool
}

const operationBucket = OriginSchema + 1

// NewBuilder returns a Builder for doc.
func NewBuilder(doc *parser.Document, opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{
		doc:      doc,
		cfg:      cfg,
		declared: make(map[refKey]string),
	}
}

// Build converts every declared parameter, request body, response and
// schema of doc, plus the inline bodies of its operations, into a Graph.
//
// Unsupported shapes are skipped and reported in the returned issues.
// Unresolvable references, name collisions and duplicate response labels
// are errors.
func Build(doc *parser.Document, opts ...Option) (*Graph, []*issues.Issue, error) {
	b := NewBuilder(doc, opts...)
	if err := b.addDocument(); err != nil {
		return nil, b.Warnings(), err
	}
	g, err := b.Finish()
	return g, b.Warnings(), err
}

func (b *Builder) addDocument() error {
	if c := b.doc.Components; c != nil {
		for key, p := range c.Parameters.All() {
			if err := b.AddParameter(key, p); err != nil {
				return err
			}
		}
		for key, rb := range c.RequestBodies.All() {
			if err := b.AddRequestBody(key, rb); err != nil {
				return err
			}
		}
		for key, r := range c.Responses.All() {
			if err := b.AddResponse(key, r); err != nil {
				return err
			}
		}
		for key, s := range c.Schemas.All() {
			if err := b.AddSchema(key, s); err != nil {
				return err
			}
		}
	}
	for path, item := range b.doc.Paths.All() {
		if item == nil {
			continue
		}
		for _, method := range httputil.Methods {
			if op := item.Operation(method); op != nil {
				if err := b.AddOperation(method, path, op); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Warnings returns the issues collected so far.
func (b *Builder) Warnings() []*issues.Issue {
	return append([]*issues.Issue(nil), b.warnings...)
}

var errFinished = errors.New("highway: builder already finished")

// AddParameter converts the schema of parameter component key.
func (b *Builder) AddParameter(key string, p *parser.Parameter) error {
	path := issues.JoinPath("components", "parameters", key)
	if b.finished {
		return errFinished
	}
	p, err := resolver.ParameterOf(b.doc, p)
	if err != nil {
		return resolveError(key, path, err)
	}
	if p == nil {
		return nil
	}
	return b.declare(resolver.KindParameter, key, OriginParameter, path+".schema", p.Schema, p.Description)
}

// AddRequestBody converts the payload schema of request body component key.
// Bodies without JSON or form content produce no component.
func (b *Builder) AddRequestBody(key string, rb *parser.RequestBody) error {
	path := issues.JoinPath("components", "requestBodies", key)
	if b.finished {
		return errFinished
	}
	rb, err := resolver.RequestBodyOf(b.doc, rb)
	if err != nil {
		return resolveError(key, path, err)
	}
	if rb == nil {
		return nil
	}
	mediaType, mt, _, ok := SelectContent(rb.Content)
	if !ok {
		return nil
	}
	return b.declare(resolver.KindRequestBody, key, OriginRequestBody,
		issues.JoinPath(path, "content", mediaType, "schema"), mt.Schema, rb.Description)
}

// AddResponse converts the payload schema of response component key.
// Responses without JSON or form content produce no component.
func (b *Builder) AddResponse(key string, r *parser.Response) error {
	path := issues.JoinPath("components", "responses", key)
	if b.finished {
		return errFinished
	}
	r, err := resolver.ResponseOf(b.doc, r)
	if err != nil {
		return resolveError(key, path, err)
	}
	if r == nil {
		return nil
	}
	mediaType, mt, _, ok := SelectContent(r.Content)
	if !ok {
		return nil
	}
	return b.declare(resolver.KindResponse, key, OriginResponse,
		issues.JoinPath(path, "content", mediaType, "schema"), mt.Schema, r.Description)
}

// AddSchema converts schema component key.
//
// Like the other Add methods it returns an *oaserrors.GenerationError when
// a reference does not resolve; unsupported shapes are only warnings.
func (b *Builder) AddSchema(key string, s *parser.Schema) error {
	if b.finished {
		return errFinished
	}
	return b.declare(resolver.KindSchema, key, OriginSchema, issues.JoinPath("components", "schemas", key), s, "")
}

// AddOperation converts the inline request and response bodies of an
// operation. Bodies that are references to components need no component of
// their own.
//
// Two responses with the same label are a DuplicateStatusError.
func (b *Builder) AddOperation(method, pathTemplate string, op *parser.Operation) error {
	if b.finished {
		return errFinished
	}
	if op == nil {
		return nil
	}
	name := naming.OperationName(op.OperationID, method, pathTemplate)
	base := issues.JoinPath("paths", pathTemplate, method)

	if rb := op.RequestBody; rb != nil && rb.Ref == "" {
		if mediaType, mt, _, ok := SelectContent(rb.Content); ok && inline(mt.Schema) {
			if _, err := b.convert(OriginRequestBody, operationBucket, BodyName(name),
				issues.JoinPath(base, "requestBody", "content", mediaType, "schema"), mt.Schema, rb.Description); err != nil {
				return err
			}
		}
	}

	labels := make(map[string]bool)
	for _, entry := range op.Responses.Entries() {
		if httputil.NumericStatus(entry.Status) == 0 {
			continue
		}
		label := Label(b.doc, entry.Status, entry.Response)
		if _, ok := labels[label]; ok {
			return &oaserrors.DuplicateStatusError{Operation: name, Status: entry.Status, Label: label}
		}
		labels[label] = true

		r := entry.Response
		if r == nil || r.Ref != "" {
			continue
		}
		if mediaType, mt, _, ok := SelectContent(r.Content); ok && inline(mt.Schema) {
			if _, err := b.convert(OriginResponse, operationBucket, ResponseName(name, label),
				issues.JoinPath(base, "responses", entry.Status, "content", mediaType, "schema"), mt.Schema, r.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

// inline reports whether s needs a synthesized component, i.e. it is not
// a plain reference.
func inline(s *parser.Schema) bool {
	return s != nil && (s.Ref == "" || s.GoType() != "")
}

func (b *Builder) declare(kind resolver.Kind, key string, origin Origin, path string, s *parser.Schema, desc string) error {
	name := naming.ToTypeName(key)
	if !naming.HasIdentifier(key) {
		b.warn(path, name, fmt.Sprintf("component key %q has no identifier characters; using %s", key, name))
	}
	ok, err := b.convert(origin, origin, name, path, s, desc)
	if ok {
		b.declared[refKey{kind, key}] = name
	}
	return err
}

// convert reports whether the component was added. An unsupported shape is
// a warning; any other failure is returned.
func (b *Builder) convert(origin, bucket Origin, name, path string, s *parser.Schema, desc string) (bool, error) {
	c := &conversion{doc: b.doc, origin: origin, maxArrayDepth: b.cfg.maxArrayDepth}
	err := c.named(name, path, s, desc)
	b.warnings = append(b.warnings, c.notes...)
	if err != nil {
		var u *unsupported
		if !errors.As(err, &u) {
			return false, &oaserrors.GenerationError{Phase: "resolve", Component: name, Path: path, Cause: err}
		}
		b.warnings = append(b.warnings, &issues.Issue{
			Path:      u.path,
			Component: name,
			Message:   "unsupported schema, component skipped",
			Detail:    u.detail,
			Severity:  severity.SeverityWarning,
		})
		b.cfg.logger.Warn("component skipped", "component", name, "path", u.path, "detail", u.detail)
		return false, nil
	}
	b.buckets[bucket] = append(b.buckets[bucket], c.out...)
	for _, comp := range c.out {
		b.cfg.logger.Debug("component added", "component", comp.Name, "kind", comp.Kind.String(), "origin", comp.Origin.String())
	}
	return true, nil
}

func resolveError(key, path string, err error) error {
	return &oaserrors.GenerationError{Phase: "resolve", Component: naming.ToTypeName(key), Path: path, Cause: err}
}

func (b *Builder) warn(path, component, message string) {
	b.warnings = append(b.warnings, issues.Warning(path, component, message))
	b.cfg.logger.Warn(message, "component", component, "path", path)
}

// Finish registers every name, drops components that depend on skipped
// components and returns the Graph. The Builder accepts no further items.
func (b *Builder) Finish() (*Graph, error) {
	if b.finished {
		return nil, errFinished
	}
	b.finished = true

	var all []*Component
	for _, bucket := range b.buckets {
		all = append(all, bucket...)
	}

	names := NewNameRegistry()
	for _, comp := range all {
		if err := names.Register(comp.Name, comp.Path); err != nil {
			return nil, err
		}
		if comp.Kind == KindEnum {
			for _, v := range comp.Variants {
				owner := fmt.Sprintf("%s value %q", comp.Path, v.WireName)
				if err := names.Register(comp.Name+naming.ToVariantName(v.WireName), owner); err != nil {
					return nil, err
				}
			}
		}
	}

	alive := b.prune(all)

	g := &Graph{
		byName: make(map[string]*Component, len(all)),
		refs:   make(map[refKey]string, len(b.declared)),
		names:  names,
	}
	for _, comp := range all {
		if alive[comp.Name] {
			g.components = append(g.components, comp)
			g.byName[comp.Name] = comp
		}
	}
	for key, name := range b.declared {
		if alive[name] {
			g.refs[key] = name
		}
	}
	b.cfg.logger.Info("component graph built", "components", len(g.components), "skipped", len(all)-len(g.components))
	return g, nil
}

// prune drops, until nothing changes, components that refer to a missing
// component and components that contain themselves by value.
func (b *Builder) prune(all []*Component) map[string]bool {
	alive := make(map[string]bool, len(all))
	for _, comp := range all {
		alive[comp.Name] = true
	}
	byName := make(map[string]*Component, len(all))
	for _, comp := range all {
		byName[comp.Name] = comp
	}

	for changed := true; changed; {
		changed = false
		for _, comp := range all {
			if !alive[comp.Name] {
				continue
			}
			for _, dep := range comp.References() {
				if !alive[dep] {
					alive[comp.Name] = false
					changed = true
					b.warn(comp.Path, comp.Name, fmt.Sprintf("references skipped component %s, component skipped", dep))
					break
				}
			}
		}
		if changed {
			continue
		}
		for _, comp := range all {
			if alive[comp.Name] && recursive(comp, byName, alive) {
				alive[comp.Name] = false
				changed = true
				b.warn(comp.Path, comp.Name, "component contains itself by value, component skipped")
			}
		}
	}
	return alive
}

// recursive reports whether comp reaches itself through edges Go cannot
// break: a required object field of component type, or an alias. Once an
// alias is on the path every reference counts, slices included.
func recursive(comp *Component, byName map[string]*Component, alive map[string]bool) bool {
	type state struct {
		name     string
		viaAlias bool
	}
	var (
		seen  = make(map[state]bool)
		stack []state
	)
	push := func(from *Component, viaAlias bool) {
		viaAlias = viaAlias || from.Kind == KindAlias
		for _, next := range valueEdges(from, viaAlias) {
			stack = append(stack, state{next, viaAlias})
		}
	}
	push(comp, false)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.name == comp.Name {
			return true
		}
		next := byName[cur.name]
		if seen[cur] || next == nil || !alive[cur.name] {
			continue
		}
		seen[cur] = true
		push(next, cur.viaAlias)
	}
	return false
}

// valueEdges lists the components c holds by value. With anyEdge set every
// reference counts.
func valueEdges(c *Component, anyEdge bool) []string {
	if anyEdge {
		return c.References()
	}
	var out []string
	if c.Kind == KindObject {
		for _, f := range c.Fields {
			if f.Required && f.Type.Kind == TypeComponent {
				out = append(out, f.Type.Name)
			}
		}
	}
	return out
}
