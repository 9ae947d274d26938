package render

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/swagg-dev/swagg/emit"
	"golang.org/x/tools/imports"
)

// Header is the first line of every rendered file.
const Header = "// Code generated by swagg. DO NOT EDIT."

// runtimeName is the import name of the runtime package in rendered files.
const runtimeName = "swaggrt"

// File is one rendered Go source file.
type File struct {
	Name    string
	Content []byte
}

// Render renders every module of tree holding declarations into its own
// file, named after the module. The package documentation goes to the api
// file.
func Render(tree *emit.Tree) ([]File, error) {
	if tree == nil {
		return nil, fmt.Errorf("render: tree is nil")
	}
	if !token.IsIdentifier(tree.Package) {
		return nil, fmt.Errorf("render: invalid package name %q", tree.Package)
	}
	var files []File
	for _, m := range tree.Modules {
		if len(m.Decls) == 0 {
			continue
		}
		f, err := renderFile(tree, m.Name+".go", []*emit.Module{m}, m.Name == emit.ModuleAPI)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// RenderSingle renders the whole tree into one file called name.
func RenderSingle(tree *emit.Tree, name string) (File, error) {
	if tree == nil {
		return File{}, fmt.Errorf("render: tree is nil")
	}
	if name == "" {
		name = tree.Package + ".go"
	}
	return renderFile(tree, name, tree.Modules, true)
}

func renderFile(tree *emit.Tree, name string, modules []*emit.Module, withDoc bool) (File, error) {
	if !token.IsIdentifier(tree.Package) {
		return File{}, fmt.Errorf("render: invalid package name %q", tree.Package)
	}
	w := &writer{runtime: tree.Runtime, imports: make(map[string]string)}
	for _, m := range modules {
		for _, d := range m.Decls {
			w.decl(d)
		}
	}
	if w.err != nil {
		return File{}, fmt.Errorf("render %s: %w", name, w.err)
	}

	var buf bytes.Buffer
	buf.WriteString(Header + "\n\n")
	if withDoc {
		writeDoc(&buf, "", tree.Doc)
	}
	fmt.Fprintf(&buf, "package %s\n\n", tree.Package)
	w.writeImports(&buf)
	buf.Write(w.body.Bytes())

	src, err := imports.Process(name, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return File{}, fmt.Errorf("render %s: generated code does not parse: %w", name, err)
	}
	return File{Name: name, Content: src}, nil
}

// writer accumulates the declarations of one file. The first error sticks.
type writer struct {
	runtime string
	// imports maps import paths to their import name.
	imports map[string]string
	body    bytes.Buffer
	err     error
}

func (w *writer) fail(format string, args ...any) {
	if w.err == nil {
		w.err = fmt.Errorf(format, args...)
	}
}

func (w *writer) printf(format string, args ...any) {
	fmt.Fprintf(&w.body, format, args...)
}

func (w *writer) ident(name string) string {
	if !token.IsIdentifier(name) {
		w.fail("invalid identifier %q", name)
	}
	return name
}

// use records an import and returns its name.
func (w *writer) use(importPath, name string) string {
	if prev, ok := w.imports[importPath]; ok {
		return prev
	}
	for p, n := range w.imports {
		if n == name {
			w.fail("packages %s and %s are both imported as %s", p, importPath, name)
		}
	}
	w.imports[importPath] = name
	return name
}

func (w *writer) rt(sel string) string {
	return w.use(w.runtime, runtimeName) + "." + sel
}

func (w *writer) writeImports(buf *bytes.Buffer) {
	if len(w.imports) == 0 {
		return
	}
	paths := make([]string, 0, len(w.imports))
	for p := range w.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	buf.WriteString("import (\n")
	for _, p := range paths {
		name := w.imports[p]
		if name == path.Base(p) {
			fmt.Fprintf(buf, "\t%s\n", strconv.Quote(p))
		} else {
			fmt.Fprintf(buf, "\t%s %s\n", name, strconv.Quote(p))
		}
	}
	buf.WriteString(")\n\n")
}

// expr converts a type reference to a syntax tree.
func (w *writer) expr(t emit.TypeRef) ast.Expr {
	switch t.Kind {
	case emit.RefBuiltin:
		e, err := parser.ParseExpr(t.Name)
		if err != nil {
			w.fail("invalid type expression %q: %v", t.Name, err)
			return ast.NewIdent("any")
		}
		return e
	case emit.RefQualified:
		pkg := w.use(t.Package, emit.PackageName(t.Package))
		return &ast.SelectorExpr{X: ast.NewIdent(w.ident(pkg)), Sel: ast.NewIdent(w.ident(t.Name))}
	case emit.RefSlice, emit.RefPointer:
		if t.Elem == nil {
			w.fail("type reference %s without element", t.String())
			return ast.NewIdent("any")
		}
		if t.Kind == emit.RefSlice {
			return &ast.ArrayType{Elt: w.expr(*t.Elem)}
		}
		return &ast.StarExpr{X: w.expr(*t.Elem)}
	default:
		return ast.NewIdent(w.ident(t.Name))
	}
}

func (w *writer) typeString(t emit.TypeRef) string {
	return w.print(w.expr(t))
}

func (w *writer) print(e ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), e); err != nil {
		w.fail("print expression: %v", err)
	}
	return buf.String()
}

func writeDoc(buf *bytes.Buffer, indent string, doc emit.Doc) {
	for _, line := range doc {
		line = strings.NewReplacer("\r", " ", "\n", " ").Replace(line)
		if line == "" {
			buf.WriteString(indent + "//\n")
			continue
		}
		buf.WriteString(indent + "// " + line + "\n")
	}
}

func (w *writer) doc(indent string, doc emit.Doc) {
	writeDoc(&w.body, indent, doc)
}

// tag renders struct tag attributes as a Go string literal.
func tag(attrs []emit.Attribute) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Key+":"+strconv.Quote(a.Value))
	}
	s := strings.Join(parts, " ")
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
