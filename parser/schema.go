package parser

import (
	"fmt"
	"strings"
)

// Vendor extensions understood by the generator.
const (
	// ExtGoType replaces a schema with a Go type path, e.g.
	// "github.com/google/uuid.UUID". The value is trusted verbatim.
	ExtGoType = "x-go-type"
	// ExtVariantName overrides the response variant label of a response.
	ExtVariantName = "x-variant-name"
	// ExtEnumDescriptions documents enum values, one string per value.
	ExtEnumDescriptions = "x-enum-descriptions"
)

// Schema is the subset of JSON Schema the generator reads. Keywords it does
// not model land in Extra so they can still be reported.
type Schema struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Type is a string, or a list of strings in OAS 3.1.
	Type   any    `yaml:"type,omitempty" json:"type,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`

	Items                *Schema              `yaml:"items,omitempty" json:"items,omitempty"`
	Properties           *OrderedMap[*Schema] `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string             `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties any                  `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`

	AllOf         []*Schema      `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf         []*Schema      `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf         []*Schema      `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not           *Schema        `yaml:"not,omitempty" json:"not,omitempty"`
	Discriminator map[string]any `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`

	Nullable   bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	ReadOnly   bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly  bool `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`
	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Default    any  `yaml:"default,omitempty" json:"default,omitempty"`
	Example    any  `yaml:"example,omitempty" json:"example,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Types returns the declared types, ignoring "null".
func (s *Schema) Types() []string {
	if s == nil {
		return nil
	}
	var out []string
	switch t := s.Type.(type) {
	case string:
		if t != "" && t != "null" {
			out = append(out, t)
		}
	case []any:
		for _, v := range t {
			if str, ok := v.(string); ok && str != "null" {
				out = append(out, str)
			}
		}
	case []string:
		for _, str := range t {
			if str != "null" {
				out = append(out, str)
			}
		}
	}
	return out
}

// TypeName returns the single declared type. It returns "" when no type is
// declared and an error when the schema is a type union.
func (s *Schema) TypeName() (string, error) {
	types := s.Types()
	switch len(types) {
	case 0:
		return "", nil
	case 1:
		return types[0], nil
	}
	return "", fmt.Errorf("type union [%s]", strings.Join(types, ", "))
}

// IsRequired reports whether prop is listed in the schema's required list.
func (s *Schema) IsRequired(prop string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == prop {
			return true
		}
	}
	return false
}

// GoType returns the x-go-type extension, if any.
func (s *Schema) GoType() string {
	if s == nil {
		return ""
	}
	return StringExtension(s.Extra, ExtGoType)
}

// EnumDescriptions returns the x-enum-descriptions entry for each enum
// value. Missing or non-string entries are empty.
func (s *Schema) EnumDescriptions() []string {
	if s == nil || len(s.Enum) == 0 {
		return nil
	}
	out := make([]string, len(s.Enum))
	list, _ := s.Extra[ExtEnumDescriptions].([]any)
	for i := range out {
		if i < len(list) {
			out[i], _ = list[i].(string)
		}
	}
	return out
}

// StringExtension returns the string value of a vendor extension.
func StringExtension(extra map[string]any, name string) string {
	if v, ok := extra[name]; ok {
		if str, ok := v.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
