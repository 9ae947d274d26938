package render

import (
	"go/ast"
	"strconv"

	"github.com/swagg-dev/swagg/emit"
)

func (w *writer) decl(d emit.Decl) {
	switch d := d.(type) {
	case *emit.ScopeDecl:
		for _, inner := range d.Decls {
			w.decl(inner)
		}
	case *emit.StructDecl:
		w.structDecl(d)
	case *emit.EnumDecl:
		w.enumDecl(d)
	case *emit.AliasDecl:
		w.doc("", d.Doc)
		w.printf("type %s = %s\n\n", w.ident(d.Name), w.typeString(d.Target))
	case *emit.SliceDecl:
		w.doc("", d.Doc)
		w.printf("type %s []%s\n\n", w.ident(d.Name), w.typeString(d.Elem))
	case *emit.UnionDecl:
		w.unionDecl(d)
	case *emit.ServiceDecl:
		w.serviceDecl(d)
	default:
		w.fail("unknown declaration %T", d)
	}
}

func (w *writer) structDecl(d *emit.StructDecl) {
	w.doc("", d.Doc)
	if len(d.Fields) == 0 {
		w.printf("type %s struct{}\n\n", w.ident(d.Name))
		return
	}
	w.printf("type %s struct {\n", w.ident(d.Name))
	for i, f := range d.Fields {
		if i > 0 && len(f.Doc) > 0 {
			w.printf("\n")
		}
		w.doc("\t", f.Doc)
		w.printf("\t%s %s", w.ident(f.Name), w.typeString(f.Type))
		if len(f.Attributes) > 0 {
			w.printf(" %s", tag(f.Attributes))
		}
		w.printf("\n")
	}
	w.printf("}\n\n")
}

func (w *writer) enumDecl(d *emit.EnumDecl) {
	name := w.ident(d.Name)
	w.doc("", d.Doc)
	w.printf("type %s string\n\n", name)
	if len(d.Values) == 0 {
		return
	}
	w.printf("// Values of %s.\nconst (\n", name)
	for _, v := range d.Values {
		w.doc("\t", v.Doc)
		w.printf("\t%s %s = %s\n", w.ident(v.Name), name, strconv.Quote(v.Value))
	}
	w.printf(")\n\n")
}

func (w *writer) unionDecl(d *emit.UnionDecl) {
	name, marker := w.ident(d.Name), w.ident(d.Marker)
	w.doc("", d.Doc)
	w.printf("type %s interface {\n\t%s\n\t%s()\n}\n\n", name, w.rt("Responder"), marker)

	for _, v := range d.Variants {
		vn := w.ident(v.Name)
		w.doc("", v.Doc)
		if v.Payload == nil {
			w.printf("type %s struct {\n\t%s\n}\n\n", vn, w.rt("Meta"))
		} else {
			w.printf("type %s struct {\n\t%s\n\tBody %s\n}\n\n", vn, w.rt("Meta"), w.typeString(*v.Payload))
		}
		w.printf("// StatusCode returns %d.\nfunc (%s) StatusCode() int { return %d }\n\n", v.Status, vn, v.Status)
		w.printf("// ContentType returns the media type of the body.\nfunc (%s) ContentType() string { return %s }\n\n",
			vn, strconv.Quote(v.ContentType))
		if v.Payload == nil {
			w.printf("// Payload returns nil: the response has no body.\nfunc (%s) Payload() any { return nil }\n\n", vn)
		} else {
			w.printf("// Payload returns the body.\nfunc (r %s) Payload() any { return r.Body }\n\n", vn)
		}
		w.printf("func (%s) %s() {}\n\n", vn, marker)
	}
}

func (w *writer) serviceDecl(d *emit.ServiceDecl) {
	name := w.ident(d.Name)
	api := w.rt("API")
	w.doc("", d.Doc)
	w.printf("type %s struct {\n\tapi *%s\n}\n\n", name, api)
	w.printf("// %s returns a %s registering its handlers on api.\n", w.ident(d.Constructor), name)
	w.printf("func %s(api *%s) *%s {\n\treturn &%s{api: api}\n}\n\n", d.Constructor, api, name, name)
	w.printf("// API returns the runtime the handlers are registered on.\nfunc (s *%s) API() *%s { return s.api }\n\n", name, api)

	for _, m := range d.Methods {
		w.bindMethod(name, m)
	}
}

func (w *writer) bindMethod(service string, f *emit.FuncDecl) {
	r := f.Route
	none := w.rt("None")
	query, body := ast.Expr(ast.NewIdent(none)), ast.Expr(ast.NewIdent(none))
	if r.Query != nil {
		query = w.expr(*r.Query)
	}
	if r.Body != nil {
		body = w.expr(*r.Body)
	}
	handler := &ast.IndexListExpr{
		X:       ast.NewIdent(w.rt("Handler")),
		Indices: []ast.Expr{query, body, w.expr(r.Response)},
	}

	route := "Method: " + strconv.Quote(r.Method) + ", Pattern: " + strconv.Quote(r.Pattern)
	switch r.BodyKind {
	case "":
	case "json":
		route += ", Body: " + w.rt("BodyJSON")
	case "form":
		route += ", Body: " + w.rt("BodyForm")
	default:
		w.fail("unknown body kind %q", r.BodyKind)
	}
	if r.BodyRequired {
		route += ", BodyRequired: true"
	}

	w.doc("", f.Doc)
	w.printf("func (s *%s) %s(h %s) *%s {\n", service, w.ident(f.Name), w.print(handler), service)
	w.printf("\t%s(s.api, %s{%s}, h)\n\treturn s\n}\n\n", w.rt("Bind"), w.rt("Route"), route)
}
