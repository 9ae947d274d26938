package highway

import (
	"fmt"
	"strings"

	"github.com/swagg-dev/swagg/internal/issues"
	"github.com/swagg-dev/swagg/internal/naming"
	"github.com/swagg-dev/swagg/parser"
	"github.com/swagg-dev/swagg/resolver"
)

// unsupported aborts the conversion of one declared component. The
// component and everything synthesized from it are skipped.
type unsupported struct {
	path   string
	detail string
}

func (u *unsupported) Error() string {
	return fmt.Sprintf("unsupported schema at %s: %s", u.path, u.detail)
}

func unsupportedf(path, format string, args ...any) error {
	return &unsupported{path: path, detail: fmt.Sprintf(format, args...)}
}

// conversion turns one declared schema into components. Nested anonymous
// objects and enums are promoted, so a single conversion can produce
// several components; they are kept in discovery order, parent first.
type conversion struct {
	doc           *parser.Document
	origin        Origin
	maxArrayDepth int

	out   []*Component
	notes []*issues.Issue
}

// named converts s into the component name. desc overrides the schema
// description when set.
func (c *conversion) named(name, path string, s *parser.Schema, desc string) error {
	slot := len(c.out)
	c.out = append(c.out, nil)

	if s == nil {
		return unsupportedf(path, "missing schema")
	}
	comp := &Component{Name: name, Origin: c.origin, Path: path, Description: s.Description}
	if desc != "" {
		comp.Description = desc
	}

	switch {
	case s.GoType() != "":
		comp.Kind = KindAlias
		comp.Item = Passthrough(s.GoType())
	case s.Ref != "":
		target, err := c.ref(s.Ref)
		if err != nil {
			return err
		}
		comp.Kind = KindAlias
		comp.Item = target
	default:
		if err := checkKeywords(path, s); err != nil {
			return err
		}
		typ, err := s.TypeName()
		if err != nil {
			return unsupportedf(path, "%v", err)
		}
		switch {
		case len(s.Enum) > 0:
			if err := c.enum(comp, path, typ, s); err != nil {
				return err
			}
		case typ == "object" || (typ == "" && s.Properties.Len() > 0):
			if err := c.object(comp, path, s); err != nil {
				return err
			}
		case typ == "array":
			item, err := c.fieldType(name+"Item", path+".items", s.Items, 1)
			if err != nil {
				return err
			}
			comp.Kind = KindArray
			comp.Item = item
		default:
			sc, err := scalar(path, typ, s.Format)
			if err != nil {
				return err
			}
			comp.Kind = KindScalar
			comp.Scalar = sc
		}
	}

	c.out[slot] = comp
	return nil
}

func (c *conversion) object(comp *Component, path string, s *parser.Schema) error {
	if s.Properties.Len() == 0 {
		return unsupportedf(path, "free-form object without properties")
	}
	if !closedObject(s.AdditionalProperties) {
		return unsupportedf(path, "additionalProperties maps")
	}
	comp.Kind = KindObject

	goNames := make(map[string]string, s.Properties.Len())
	for key, prop := range s.Properties.All() {
		fpath := path + ".properties." + key
		if !naming.IsTagName(key) {
			return unsupportedf(fpath, "property name %q cannot be kept in a struct tag", key)
		}
		goName := naming.ToFieldName(key)
		if !naming.HasIdentifier(key) {
			c.notes = append(c.notes, issues.Warning(fpath, comp.Name,
				fmt.Sprintf("property %q has no identifier characters; using %s", key, goName)))
		}
		if prev, ok := goNames[goName]; ok {
			return unsupportedf(fpath, "properties %q and %q both map to field %s", prev, key, goName)
		}
		goNames[goName] = key

		t, err := c.fieldType(comp.Name+naming.ToTypeName(key), fpath, prop, 0)
		if err != nil {
			return err
		}
		f := Field{
			WireName: key,
			Required: s.IsRequired(key),
			Type:     t,
		}
		if prop != nil {
			f.Description = prop.Description
			f.Deprecated = prop.Deprecated
		}
		comp.Fields = append(comp.Fields, f)
	}
	return nil
}

func (c *conversion) enum(comp *Component, path, typ string, s *parser.Schema) error {
	if typ != "" && typ != "string" {
		return unsupportedf(path, "enum of type %s", typ)
	}
	comp.Kind = KindEnum

	descriptions := s.EnumDescriptions()
	variants := make(map[string]string, len(s.Enum))
	for i, v := range s.Enum {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return unsupportedf(path, "non-string enum value %v", v)
		}
		goName := naming.ToVariantName(str)
		if !naming.HasIdentifier(str) {
			c.notes = append(c.notes, issues.Warning(path, comp.Name,
				fmt.Sprintf("enum value %q has no identifier characters; using %s", str, goName)))
		}
		if prev, ok := variants[goName]; ok {
			return unsupportedf(path, "enum values %q and %q both map to %s", prev, str, goName)
		}
		variants[goName] = str
		comp.Variants = append(comp.Variants, Variant{WireName: str, Description: descriptions[i]})
	}
	if len(comp.Variants) == 0 {
		return unsupportedf(path, "enum without values")
	}
	return nil
}

// fieldType converts the schema of a field or array item. synth is the
// name an anonymous object or enum is promoted under; depth counts the
// enclosing arrays.
func (c *conversion) fieldType(synth, path string, s *parser.Schema, depth int) (FieldType, error) {
	if s == nil {
		return FieldType{}, unsupportedf(path, "missing schema")
	}
	if gt := s.GoType(); gt != "" {
		return Passthrough(gt), nil
	}
	if s.Ref != "" {
		return c.ref(s.Ref)
	}
	if err := checkKeywords(path, s); err != nil {
		return FieldType{}, err
	}
	typ, err := s.TypeName()
	if err != nil {
		return FieldType{}, unsupportedf(path, "%v", err)
	}

	switch {
	case len(s.Enum) > 0, typ == "object", typ == "" && s.Properties.Len() > 0:
		if err := c.named(synth, path, s, ""); err != nil {
			return FieldType{}, err
		}
		return ComponentRef(synth), nil
	case typ == "array":
		if depth+1 > c.maxArrayDepth {
			return FieldType{}, unsupportedf(path, "arrays nested deeper than %d", c.maxArrayDepth)
		}
		elem, err := c.fieldType(synth+"Item", path+".items", s.Items, depth+1)
		if err != nil {
			return FieldType{}, err
		}
		return ArrayOf(elem), nil
	}

	sc, err := scalar(path, typ, s.Format)
	if err != nil {
		return FieldType{}, err
	}
	return Native(sc), nil
}

// ref maps a schema reference to the graph name of its target. A reference
// that does not resolve is an *oaserrors.ReferenceError and fails the
// build; whether a resolvable target survives is settled in Finish.
func (c *conversion) ref(ref string) (FieldType, error) {
	key, err := resolver.Name(resolver.KindSchema, ref)
	if err != nil {
		return FieldType{}, err
	}
	if _, err := resolver.Schema(c.doc, ref); err != nil {
		return FieldType{}, err
	}
	return ComponentRef(naming.ToTypeName(key)), nil
}

func scalar(path, typ, format string) (Scalar, error) {
	switch typ {
	case "string":
		if format == "binary" {
			return Scalar{}, unsupportedf(path, "binary strings")
		}
		return Scalar{Kind: ScalarString, Format: format}, nil
	case "integer":
		return Scalar{Kind: ScalarInteger, Format: format}, nil
	case "number":
		return Scalar{Kind: ScalarNumber, Format: format}, nil
	case "boolean":
		return Scalar{Kind: ScalarBoolean, Format: format}, nil
	case "":
		return Scalar{}, unsupportedf(path, "schema without type")
	default:
		return Scalar{}, unsupportedf(path, "unknown type %q", typ)
	}
}

func checkKeywords(path string, s *parser.Schema) error {
	var used []string
	if len(s.AllOf) > 0 {
		used = append(used, "allOf")
	}
	if len(s.AnyOf) > 0 {
		used = append(used, "anyOf")
	}
	if len(s.OneOf) > 0 {
		used = append(used, "oneOf")
	}
	if s.Not != nil {
		used = append(used, "not")
	}
	if len(s.Discriminator) > 0 {
		used = append(used, "discriminator")
	}
	if len(used) > 0 {
		return unsupportedf(path, "composition keyword %s", strings.Join(used, ", "))
	}
	return nil
}

// closedObject reports whether additionalProperties leaves an object a
// plain struct: absent or false.
func closedObject(additional any) bool {
	switch v := additional.(type) {
	case nil:
		return true
	case bool:
		return !v
	}
	return false
}
