package emit

import (
	"fmt"
	"strings"

	"github.com/swagg-dev/swagg/binder"
	"github.com/swagg-dev/swagg/highway"
	"github.com/swagg-dev/swagg/internal/httputil"
	"github.com/swagg-dev/swagg/internal/naming"
	"github.com/swagg-dev/swagg/oaserrors"
)

const (
	// DefaultPackage is the package name used when Meta names none.
	DefaultPackage = "api"
	// DefaultRuntime is the import path of the runtime package.
	DefaultRuntime = "github.com/swagg-dev/swagg/swaggrt"
	// DefaultServiceName names the service type when the title has no
	// identifier characters.
	DefaultServiceName = "API"
)

// Meta is the document-level input of Emit.
type Meta struct {
	Package        string
	Runtime        string
	Title          string
	Description    string
	TermsOfService string
	Version        string
}

// Emit lays out the component graph and the bound operations as a Tree.
// It is a pure function: equal inputs give equal trees.
//
// The modules always come in the order parameters, request_bodies,
// responses, schemas, paths, api. A second declaration of an identifier is
// a NameCollision.
func Emit(g *highway.Graph, ops []*binder.Operation, meta Meta) (*Tree, error) {
	e := &emitter{graph: g}
	tree := &Tree{
		Package: meta.Package,
		Runtime: meta.Runtime,
		Doc:     packageDoc(meta),
	}
	if tree.Package == "" {
		tree.Package = DefaultPackage
	}
	if tree.Runtime == "" {
		tree.Runtime = DefaultRuntime
	}

	for _, part := range []struct {
		module string
		origin highway.Origin
	}{
		{ModuleParameters, highway.OriginParameter},
		{ModuleRequestBodies, highway.OriginRequestBody},
		{ModuleResponses, highway.OriginResponse},
		{ModuleSchemas, highway.OriginSchema},
	} {
		m := &Module{Name: part.module}
		for _, comp := range g.ByOrigin(part.origin) {
			m.Decls = append(m.Decls, e.component(comp))
		}
		tree.Modules = append(tree.Modules, m)
	}

	paths := &Module{Name: ModulePaths}
	for _, scope := range binder.Group(ops) {
		sd := &ScopeDecl{Path: scope.Path}
		for _, op := range scope.Operations {
			sd.Decls = append(sd.Decls, e.union(op))
			if len(op.Query) > 0 {
				sd.Decls = append(sd.Decls, e.query(op))
			}
		}
		paths.Decls = append(paths.Decls, sd)
	}
	tree.Modules = append(tree.Modules, paths)
	tree.Modules = append(tree.Modules, &Module{Name: ModuleAPI, Decls: []Decl{e.service(ops, meta)}})

	if err := checkNames(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

type emitter struct {
	graph *highway.Graph
}

func (e *emitter) component(c highway.Component) Decl {
	doc := docText(c.Description)
	if len(doc) == 0 {
		doc = Doc{fmt.Sprintf("%s is generated from %s.", c.Name, c.Path)}
	}
	switch c.Kind {
	case highway.KindObject:
		d := &StructDecl{Name: c.Name, Doc: doc}
		for _, f := range c.Fields {
			d.Fields = append(d.Fields, e.field(f))
		}
		return d
	case highway.KindEnum:
		d := &EnumDecl{Name: c.Name, Doc: doc}
		for _, v := range c.Variants {
			d.Values = append(d.Values, EnumValue{
				Name:  c.Name + naming.ToVariantName(v.WireName),
				Value: v.WireName,
				Doc:   docText(v.Description),
			})
		}
		return d
	case highway.KindArray:
		return &SliceDecl{Name: c.Name, Doc: doc, Elem: FromField(c.Item)}
	case highway.KindScalar:
		return &AliasDecl{Name: c.Name, Doc: doc, Target: FromScalar(c.Scalar)}
	default:
		return &AliasDecl{Name: c.Name, Doc: doc, Target: FromField(c.Item)}
	}
}

func (e *emitter) field(f highway.Field) Field {
	name := naming.ToFieldName(f.WireName)
	typ := FromField(f.Type)
	if !f.Required {
		typ = e.optional(typ)
	}
	tag := ""
	if naming.NeedsRename(f.WireName, name) {
		tag = f.WireName
	}
	if !f.Required {
		tag += ",omitempty"
	}
	out := Field{Name: name, Type: typ, Doc: withDeprecation(docText(f.Description), f.Deprecated)}
	if tag != "" {
		out.Attributes = []Attribute{{Key: "json", Value: tag}}
	}
	return out
}

// optional wraps t in a pointer unless nil already means absent.
func (e *emitter) optional(t TypeRef) TypeRef {
	if t.Nillable() || e.nillable(t, 0) {
		return t
	}
	return PointerTo(t)
}

// nillable follows aliases of the graph to find slice components.
func (e *emitter) nillable(t TypeRef, depth int) bool {
	if t.Kind != RefNamed || depth > highway.MaxArrayDepth {
		return t.Nillable()
	}
	c, ok := e.graph.Lookup(t.Name)
	if !ok {
		return false
	}
	switch c.Kind {
	case highway.KindArray:
		return true
	case highway.KindAlias:
		return e.nillable(FromField(c.Item), depth+1)
	}
	return false
}

func (e *emitter) union(op *binder.Operation) *UnionDecl {
	d := &UnionDecl{
		Name:   op.ResponseType(),
		Marker: "is" + op.ResponseType(),
		Doc: Doc{fmt.Sprintf("%s is a response of %s (%s %s). Its concrete type selects the status code.",
			op.ResponseType(), op.Name, op.HTTPMethod(), op.Path)},
	}
	for _, v := range op.Responses {
		uv := UnionVariant{
			Name:        op.VariantType(v),
			Status:      v.Status,
			ContentType: v.MediaType,
			Doc:         Doc{fmt.Sprintf("%s is the %d response of %s.", op.VariantType(v), v.Status, op.Name)},
		}
		if desc := docText(v.Description); len(desc) > 0 {
			uv.Doc = append(uv.Doc, "")
			uv.Doc = append(uv.Doc, desc...)
		}
		if v.Payload != "" {
			ref := Named(v.Payload)
			uv.Payload = &ref
		}
		d.Variants = append(d.Variants, uv)
	}
	return d
}

func (e *emitter) query(op *binder.Operation) *StructDecl {
	d := &StructDecl{
		Name: op.QueryType(),
		Doc:  Doc{fmt.Sprintf("%s holds the query parameters of %s.", op.QueryType(), op.Name)},
	}
	for _, p := range op.Query {
		name := naming.ToFieldName(p.WireName)
		typ := Named(p.Type)
		if !p.Required {
			typ = e.optional(typ)
		}
		tag := ""
		if naming.NeedsRename(p.WireName, name) {
			tag = p.WireName
		}
		if p.Required {
			tag += ",required"
		}
		f := Field{Name: name, Type: typ, Doc: withDeprecation(docText(p.Description), p.Deprecated)}
		if tag != "" {
			f.Attributes = []Attribute{{Key: "query", Value: tag}}
		}
		d.Fields = append(d.Fields, f)
	}
	return d
}

func (e *emitter) service(ops []*binder.Operation, meta Meta) *ServiceDecl {
	name := DefaultServiceName
	if naming.HasIdentifier(meta.Title) {
		name = naming.ToTypeName(meta.Title)
	}
	title := meta.Title
	if strings.TrimSpace(title) == "" {
		title = name
	}
	d := &ServiceDecl{
		Name:        name,
		Constructor: "New" + name,
		Doc:         Doc{fmt.Sprintf("%s binds handlers for the operations of %s.", name, title)},
	}
	if desc := docText(meta.Description); len(desc) > 0 {
		d.Doc = append(d.Doc, "")
		d.Doc = append(d.Doc, desc...)
	}

	for _, scope := range binder.Group(ops) {
		for _, op := range scope.Operations {
			d.Methods = append(d.Methods, bindMethod(op))
		}
	}
	return d
}

func bindMethod(op *binder.Operation) *FuncDecl {
	f := &FuncDecl{
		Name: "Bind" + op.Name,
		Doc:  Doc{fmt.Sprintf("Bind%s registers the handler of %s %s.", op.Name, op.HTTPMethod(), op.Path)},
		Route: Route{
			Method:   op.HTTPMethod(),
			Pattern:  op.Path,
			Response: Named(op.ResponseType()),
		},
	}
	for _, text := range []string{op.Summary, op.Description} {
		if lines := docText(text); len(lines) > 0 {
			f.Doc = append(f.Doc, "")
			f.Doc = append(f.Doc, lines...)
		}
	}
	f.Doc = withDeprecation(f.Doc, op.Deprecated)
	if len(op.Query) > 0 {
		q := Named(op.QueryType())
		f.Route.Query = &q
	}
	if op.Body != nil {
		b := Named(op.Body.Type)
		f.Route.Body = &b
		f.Route.BodyRequired = op.Body.Required
		f.Route.BodyKind = "json"
		if op.Body.Content == httputil.MediaForm {
			f.Route.BodyKind = "form"
		}
	}
	return f
}

func packageDoc(meta Meta) Doc {
	pkg := meta.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	doc := Doc{fmt.Sprintf("Package %s is generated from the OpenAPI description of %s.", pkg, orDefault(meta.Title, "an API"))}
	if desc := docText(meta.Description); len(desc) > 0 {
		doc = append(doc, "")
		doc = append(doc, desc...)
	}
	var extra Doc
	if v := strings.TrimSpace(meta.Version); v != "" {
		extra = append(extra, "API version: "+v)
	}
	if tos := strings.TrimSpace(meta.TermsOfService); tos != "" {
		extra = append(extra, "Terms of service: "+tos)
	}
	if len(extra) > 0 {
		doc = append(doc, "")
		doc = append(doc, extra...)
	}
	return doc
}

// docText splits a description into comment lines, dropping leading and
// trailing blank lines.
func docText(s string) Doc {
	s = strings.Trim(s, "\r\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return Doc(lines)
}

func withDeprecation(doc Doc, deprecated bool) Doc {
	if !deprecated {
		return doc
	}
	if len(doc) > 0 {
		doc = append(doc, "")
	}
	return append(doc, "Deprecated: marked as deprecated in the API description.")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// checkNames rejects trees that declare an identifier twice. The graph
// builder and the binder already claim every name they introduce; this
// also covers the service type.
func checkNames(t *Tree) error {
	owners := make(map[string]string)
	claim := func(name, owner string) error {
		if prev, ok := owners[name]; ok {
			return &oaserrors.BuildError{
				Kind:     oaserrors.BuildNameCollision,
				Proposed: name,
				Existing: prev,
				Path:     owner,
			}
		}
		owners[name] = owner
		return nil
	}
	for _, m := range t.Modules {
		for _, d := range flatten(m.Decls) {
			owner := m.Name + " " + d.DeclName()
			if err := claim(d.DeclName(), owner); err != nil {
				return err
			}
			var extra []string
			switch d := d.(type) {
			case *EnumDecl:
				for _, v := range d.Values {
					extra = append(extra, v.Name)
				}
			case *UnionDecl:
				for _, v := range d.Variants {
					extra = append(extra, v.Name)
				}
			case *ServiceDecl:
				extra = append(extra, d.Constructor)
			}
			for _, name := range extra {
				if err := claim(name, owner); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
