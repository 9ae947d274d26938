package emit

// Module names, in the order modules appear in a Tree.
const (
	ModuleParameters    = "parameters"
	ModuleRequestBodies = "request_bodies"
	ModuleResponses     = "responses"
	ModuleSchemas       = "schemas"
	ModulePaths         = "paths"
	ModuleAPI           = "api"
)

// Tree is the structured output of one generation: a Go package split into
// modules, one per generated file.
type Tree struct {
	// Package is the Go package name.
	Package string
	Doc     Doc
	// Runtime is the import path of the runtime package the service type
	// binds through.
	Runtime string
	Modules []*Module
}

// Module returns the module called name, or nil.
func (t *Tree) Module(name string) *Module {
	if t == nil {
		return nil
	}
	for _, m := range t.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Decls returns every top-level declaration of the tree in order, with
// route scopes flattened.
func (t *Tree) Decls() []Decl {
	if t == nil {
		return nil
	}
	var out []Decl
	for _, m := range t.Modules {
		out = append(out, flatten(m.Decls)...)
	}
	return out
}

func flatten(decls []Decl) []Decl {
	var out []Decl
	for _, d := range decls {
		if s, ok := d.(*ScopeDecl); ok {
			out = append(out, flatten(s.Decls)...)
			continue
		}
		out = append(out, d)
	}
	return out
}

// Module is one file of the generated package.
type Module struct {
	Name  string
	Doc   Doc
	Decls []Decl
}

// Doc is a documentation comment, one entry per line, without comment
// markers. Empty entries separate paragraphs.
type Doc []string

// Decl is a top-level declaration.
type Decl interface {
	// DeclName returns the identifier the declaration introduces. Scopes
	// return their path template.
	DeclName() string
	decl()
}

// Attribute is one key of a struct tag, e.g. json:"first_name,omitempty".
type Attribute struct {
	Key   string
	Value string
}

// Field is a struct field.
type Field struct {
	Name       string
	Type       TypeRef
	Doc        Doc
	Attributes []Attribute
}

// StructDecl declares a struct type.
type StructDecl struct {
	Name   string
	Doc    Doc
	Fields []Field
}

// EnumValue is one constant of an enum.
type EnumValue struct {
	// Name is the constant identifier, e.g. "PetKindCat".
	Name  string
	Value string
	Doc   Doc
}

// EnumDecl declares a string type and one constant per value.
type EnumDecl struct {
	Name   string
	Doc    Doc
	Values []EnumValue
}

// AliasDecl declares an alias, type Name = Target.
type AliasDecl struct {
	Name   string
	Doc    Doc
	Target TypeRef
}

// SliceDecl declares a slice type, type Name []Elem.
type SliceDecl struct {
	Name string
	Doc  Doc
	Elem TypeRef
}

// UnionVariant is one member of a union: a struct carrying the payload of
// one response status, if any.
type UnionVariant struct {
	Name        string
	Doc         Doc
	Status      int
	ContentType string
	// Payload is nil for a response without body.
	Payload *TypeRef
}

// UnionDecl declares a sealed interface and its members. Marker is the
// unexported method that seals the interface.
type UnionDecl struct {
	Name     string
	Doc      Doc
	Marker   string
	Variants []UnionVariant
}

// ScopeDecl groups the declarations of the operations on one path.
type ScopeDecl struct {
	Path  string
	Decls []Decl
}

// Route describes what a bind method registers.
type Route struct {
	Method  string
	Pattern string
	// Query is nil when the operation has no query parameters.
	Query *TypeRef
	// Body is nil when the operation has no request payload.
	Body         *TypeRef
	BodyKind     string
	BodyRequired bool
	Response     TypeRef
}

// FuncDecl is a bind method of the service type: it registers a handler
// for one operation.
type FuncDecl struct {
	Name  string
	Doc   Doc
	Route Route
}

// ServiceDecl declares the service type, its constructor and one bind
// method per operation.
type ServiceDecl struct {
	Name        string
	Doc         Doc
	Constructor string
	Methods     []*FuncDecl
}

func (d *StructDecl) DeclName() string  { return d.Name }
func (d *EnumDecl) DeclName() string    { return d.Name }
func (d *AliasDecl) DeclName() string   { return d.Name }
func (d *SliceDecl) DeclName() string   { return d.Name }
func (d *UnionDecl) DeclName() string   { return d.Name }
func (d *ScopeDecl) DeclName() string   { return d.Path }
func (d *ServiceDecl) DeclName() string { return d.Name }

func (*StructDecl) decl()  {}
func (*EnumDecl) decl()    {}
func (*AliasDecl) decl()   {}
func (*SliceDecl) decl()   {}
func (*UnionDecl) decl()   {}
func (*ScopeDecl) decl()   {}
func (*ServiceDecl) decl() {}
