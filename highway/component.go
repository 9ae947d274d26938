package highway

import (
	"fmt"
	"strings"
)

// Kind is the shape of a named component.
type Kind int

const (
	// KindObject is a struct with ordered fields.
	KindObject Kind = iota
	// KindEnum is a closed set of string values.
	KindEnum
	// KindArray is a named slice of Item.
	KindArray
	// KindScalar is a named scalar.
	KindScalar
	// KindAlias names another type.
	KindAlias
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindScalar:
		return "scalar"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Origin is the namespace a component was declared in. Synthesized
// components inherit the origin of the component that produced them.
type Origin int

const (
	OriginParameter Origin = iota
	OriginRequestBody
	OriginResponse
	OriginSchema
)

// String returns the components key of the origin.
func (o Origin) String() string {
	switch o {
	case OriginParameter:
		return "parameters"
	case OriginRequestBody:
		return "requestBodies"
	case OriginResponse:
		return "responses"
	case OriginSchema:
		return "schemas"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// ScalarKind is one of the four JSON scalar types.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarInteger
	ScalarNumber
	ScalarBoolean
)

// String returns the JSON Schema type name.
func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "string"
	case ScalarInteger:
		return "integer"
	case ScalarNumber:
		return "number"
	case ScalarBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
}

// Scalar is a scalar type refined by its format.
type Scalar struct {
	Kind   ScalarKind
	Format string
}

// String returns "kind" or "kind/format".
func (s Scalar) String() string {
	if s.Format == "" {
		return s.Kind.String()
	}
	return s.Kind.String() + "/" + s.Format
}

// GoType returns the package import path (empty for builtins) and the Go
// type expression for the scalar.
//
// Formats the generator does not know fall back to the plain kind.
func (s Scalar) GoType() (pkg, typ string) {
	switch s.Kind {
	case ScalarString:
		switch s.Format {
		case "date-time":
			return "time", "Time"
		case "byte":
			return "", "[]byte"
		}
		return "", "string"
	case ScalarInteger:
		if s.Format == "int32" {
			return "", "int32"
		}
		return "", "int64"
	case ScalarNumber:
		if s.Format == "float" {
			return "", "float32"
		}
		return "", "float64"
	default:
		return "", "bool"
	}
}

// TypeKind tags a FieldType.
type TypeKind int

const (
	// TypeNative is a scalar.
	TypeNative TypeKind = iota
	// TypeComponent refers to another component by graph name.
	TypeComponent
	// TypeArray is a list of Elem.
	TypeArray
	// TypePassthrough is a Go type path taken verbatim from x-go-type.
	TypePassthrough
)

// FieldType is the type of a field, an array item or an alias target.
type FieldType struct {
	Kind   TypeKind
	Scalar Scalar
	// Name is the component name (TypeComponent) or the Go type path
	// (TypePassthrough).
	Name string
	Elem *FieldType
}

// Native returns a scalar field type.
func Native(s Scalar) FieldType {
	return FieldType{Kind: TypeNative, Scalar: s}
}

// ComponentRef returns a field type referring to a named component.
func ComponentRef(name string) FieldType {
	return FieldType{Kind: TypeComponent, Name: name}
}

// ArrayOf returns a list of elem.
func ArrayOf(elem FieldType) FieldType {
	return FieldType{Kind: TypeArray, Elem: &elem}
}

// Passthrough returns a field type for a verbatim Go type path such as
// "github.com/google/uuid.UUID".
func Passthrough(path string) FieldType {
	return FieldType{Kind: TypePassthrough, Name: path}
}

// Depth returns the array nesting depth of t.
func (t FieldType) Depth() int {
	d := 0
	for cur := t; cur.Kind == TypeArray && cur.Elem != nil; cur = *cur.Elem {
		d++
	}
	return d
}

// Innermost returns the non-array type at the bottom of t.
func (t FieldType) Innermost() FieldType {
	cur := t
	for cur.Kind == TypeArray && cur.Elem != nil {
		cur = *cur.Elem
	}
	return cur
}

// String renders t for messages and tests, e.g. "[]Pet" or "string/uuid".
func (t FieldType) String() string {
	switch t.Kind {
	case TypeNative:
		return t.Scalar.String()
	case TypeComponent:
		return t.Name
	case TypeArray:
		if t.Elem == nil {
			return "[]?"
		}
		return "[]" + t.Elem.String()
	case TypePassthrough:
		return "passthrough(" + t.Name + ")"
	default:
		return "?"
	}
}

// Field is one property of an object component.
type Field struct {
	WireName    string
	Required    bool
	Description string
	Deprecated  bool
	Type        FieldType
}

// Variant is one value of an enum component.
type Variant struct {
	WireName    string
	Description string
}

// Component is a named type of the generated namespace.
type Component struct {
	Name        string
	Kind        Kind
	Origin      Origin
	Description string
	// Path is the JSON path of the schema the component was built from.
	Path string

	Fields   []Field   // KindObject
	Variants []Variant // KindEnum
	Scalar   Scalar    // KindScalar
	// Item is the element type (KindArray) or the target (KindAlias).
	Item FieldType
}

// References returns the component names c refers to, in field order,
// without duplicates.
func (c *Component) References() []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	add := func(t FieldType) {
		if in := t.Innermost(); in.Kind == TypeComponent && !seen[in.Name] {
			seen[in.Name] = true
			out = append(out, in.Name)
		}
	}
	switch c.Kind {
	case KindObject:
		for _, f := range c.Fields {
			add(f.Type)
		}
	case KindArray, KindAlias:
		add(c.Item)
	}
	return out
}

// Summary renders a one-line description of c, e.g. "object Pet{name, tag?}".
func (c *Component) Summary() string {
	switch c.Kind {
	case KindObject:
		names := make([]string, len(c.Fields))
		for i, f := range c.Fields {
			names[i] = f.WireName
			if !f.Required {
				names[i] += "?"
			}
		}
		return fmt.Sprintf("object %s{%s}", c.Name, strings.Join(names, ", "))
	case KindEnum:
		names := make([]string, len(c.Variants))
		for i, v := range c.Variants {
			names[i] = v.WireName
		}
		return fmt.Sprintf("enum %s(%s)", c.Name, strings.Join(names, " | "))
	case KindArray:
		return fmt.Sprintf("array %s = []%s", c.Name, c.Item)
	case KindScalar:
		return fmt.Sprintf("scalar %s = %s", c.Name, c.Scalar)
	default:
		return fmt.Sprintf("alias %s = %s", c.Name, c.Item)
	}
}

func (c *Component) clone() Component {
	out := *c
	out.Fields = append([]Field(nil), c.Fields...)
	out.Variants = append([]Variant(nil), c.Variants...)
	return out
}
