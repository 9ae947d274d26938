package emit

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/swagg-dev/swagg/highway"
)

// RefKind tags a TypeRef.
type RefKind int

const (
	// RefBuiltin is a predeclared type or a verbatim type expression.
	RefBuiltin RefKind = iota
	// RefNamed is a type declared in the generated package.
	RefNamed
	// RefQualified is a type of another package.
	RefQualified
	// RefSlice is []Elem.
	RefSlice
	// RefPointer is *Elem.
	RefPointer
)

// TypeRef is a Go type expression.
type TypeRef struct {
	Kind RefKind
	Name string
	// Package is the import path of a RefQualified type.
	Package string
	Elem    *TypeRef
}

// Builtin returns a predeclared type such as "string", or any type
// expression that needs no import.
func Builtin(name string) TypeRef { return TypeRef{Kind: RefBuiltin, Name: name} }

// Named returns a type of the generated package.
func Named(name string) TypeRef { return TypeRef{Kind: RefNamed, Name: name} }

// Qualified returns type name of the package imported from importPath.
func Qualified(importPath, name string) TypeRef {
	return TypeRef{Kind: RefQualified, Package: importPath, Name: name}
}

// SliceOf returns []elem.
func SliceOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefSlice, Elem: &elem} }

// PointerTo returns *elem.
func PointerTo(elem TypeRef) TypeRef { return TypeRef{Kind: RefPointer, Elem: &elem} }

// Nillable reports whether the zero value of t is nil, so optional values
// need no pointer.
func (t TypeRef) Nillable() bool {
	switch t.Kind {
	case RefSlice, RefPointer:
		return true
	case RefBuiltin:
		return strings.HasPrefix(t.Name, "[]") || strings.HasPrefix(t.Name, "map[") ||
			t.Name == "any" || t.Name == "interface{}"
	}
	return false
}

// String renders t as Go source, qualifying foreign types by package name.
func (t TypeRef) String() string {
	switch t.Kind {
	case RefQualified:
		return PackageName(t.Package) + "." + t.Name
	case RefSlice:
		return "[]" + t.Elem.String()
	case RefPointer:
		return "*" + t.Elem.String()
	default:
		return t.Name
	}
}

// Imports returns the import paths t needs, sorted.
func (t TypeRef) Imports() []string {
	set := make(map[string]bool)
	t.collect(set)
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (t TypeRef) collect(set map[string]bool) {
	if t.Kind == RefQualified {
		set[t.Package] = true
	}
	if t.Elem != nil {
		t.Elem.collect(set)
	}
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PackageName guesses the package name of an import path: its last
// element, skipping a major version suffix and a "go-" prefix.
// Example: "github.com/go-chi/chi/v5" -> "chi"
func PackageName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "-", "")
}

// ParseGoType reads an x-go-type value. Qualified types are written with
// their full import path, e.g. "github.com/google/uuid.UUID"; "[]" and "*"
// prefixes are allowed. Anything else is kept verbatim.
func ParseGoType(s string) TypeRef {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "[]"):
		return SliceOf(ParseGoType(s[2:]))
	case strings.HasPrefix(s, "*"):
		return PointerTo(ParseGoType(s[1:]))
	case strings.HasPrefix(s, "map["), strings.ContainsAny(s, " {}()"):
		return Builtin(s)
	}
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return Builtin(s)
	}
	return Qualified(s[:dot], s[dot+1:])
}

// FromField converts a field type of the component graph.
func FromField(t highway.FieldType) TypeRef {
	switch t.Kind {
	case highway.TypeComponent:
		return Named(t.Name)
	case highway.TypeArray:
		if t.Elem == nil {
			return SliceOf(Builtin("any"))
		}
		return SliceOf(FromField(*t.Elem))
	case highway.TypePassthrough:
		return ParseGoType(t.Name)
	default:
		return FromScalar(t.Scalar)
	}
}

// FromScalar converts a scalar of the component graph.
func FromScalar(s highway.Scalar) TypeRef {
	pkg, typ := s.GoType()
	if pkg != "" {
		return Qualified(pkg, typ)
	}
	return Builtin(typ)
}
