package parser

import "strings"

// Document is the root of a parsed OpenAPI 3 document.
// It is treated as read-only once Parse returns.
type Document struct {
	OpenAPI    string                 `yaml:"openapi" json:"openapi"`
	Info       *Info                  `yaml:"info,omitempty" json:"info,omitempty"`
	Servers    []*Server              `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      *OrderedMap[*PathItem] `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components *Components            `yaml:"components,omitempty" json:"components,omitempty"`
	Tags       []*Tag                 `yaml:"tags,omitempty" json:"tags,omitempty"`
	Extra      map[string]any         `yaml:",inline" json:"-"`
}

// Info holds the API metadata used for the generated service type.
type Info struct {
	Title          string         `yaml:"title" json:"title"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string         `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Version        string         `yaml:"version" json:"version"`
	Extra          map[string]any `yaml:",inline" json:"-"`
}

// Server is a server entry. It is carried for completeness and not used by
// the generator.
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Tag is a document level tag.
type Tag struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Components holds the reusable definitions of a document.
type Components struct {
	Schemas         *OrderedMap[*Schema]         `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Responses       *OrderedMap[*Response]       `yaml:"responses,omitempty" json:"responses,omitempty"`
	Parameters      *OrderedMap[*Parameter]      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies   *OrderedMap[*RequestBody]    `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Headers         *OrderedMap[*Header]         `yaml:"headers,omitempty" json:"headers,omitempty"`
	SecuritySchemes *OrderedMap[*SecurityScheme] `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
	Extra           map[string]any               `yaml:",inline" json:"-"`
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Ref         string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Summary     string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Get         *Operation     `yaml:"get,omitempty" json:"get,omitempty"`
	Put         *Operation     `yaml:"put,omitempty" json:"put,omitempty"`
	Post        *Operation     `yaml:"post,omitempty" json:"post,omitempty"`
	Delete      *Operation     `yaml:"delete,omitempty" json:"delete,omitempty"`
	Options     *Operation     `yaml:"options,omitempty" json:"options,omitempty"`
	Head        *Operation     `yaml:"head,omitempty" json:"head,omitempty"`
	Patch       *Operation     `yaml:"patch,omitempty" json:"patch,omitempty"`
	Trace       *Operation     `yaml:"trace,omitempty" json:"trace,omitempty"`
	Parameters  []*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Operation returns the operation registered for an HTTP method (any case),
// or nil.
func (p *PathItem) Operation(method string) *Operation {
	if p == nil {
		return nil
	}
	switch strings.ToLower(method) {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary     string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string         `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody   `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   *Responses     `yaml:"responses,omitempty" json:"responses,omitempty"`
	Deprecated  bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref         string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string         `yaml:"name,omitempty" json:"name,omitempty"`
	In          string         `yaml:"in,omitempty" json:"in,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Schema      *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Parameter locations.
const (
	ParamInQuery  = "query"
	ParamInPath   = "path"
	ParamInHeader = "header"
	ParamInCookie = "cookie"
)

// RequestBody describes an operation request body.
type RequestBody struct {
	Ref         string                  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool                    `yaml:"required,omitempty" json:"required,omitempty"`
	Content     *OrderedMap[*MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any          `yaml:",inline" json:"-"`
}

// Response describes a single response of an operation.
type Response struct {
	Ref         string                  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     *OrderedMap[*Header]    `yaml:"headers,omitempty" json:"headers,omitempty"`
	Content     *OrderedMap[*MediaType] `yaml:"content,omitempty" json:"content,omitempty"`
	Extra       map[string]any          `yaml:",inline" json:"-"`
}

// VariantName returns the x-variant-name extension of the response, if any.
func (r *Response) VariantName() string {
	if r == nil {
		return ""
	}
	return StringExtension(r.Extra, ExtVariantName)
}

// MediaType holds the schema for one content type.
type MediaType struct {
	Schema  *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example any            `yaml:"example,omitempty" json:"example,omitempty"`
	Extra   map[string]any `yaml:",inline" json:"-"`
}

// Header describes a response header.
type Header struct {
	Ref         string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Schema      *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// SecurityScheme describes a security scheme component.
type SecurityScheme struct {
	Ref              string         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type             string         `yaml:"type,omitempty" json:"type,omitempty"`
	Description      string         `yaml:"description,omitempty" json:"description,omitempty"`
	Name             string         `yaml:"name,omitempty" json:"name,omitempty"`
	In               string         `yaml:"in,omitempty" json:"in,omitempty"`
	Scheme           string         `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat     string         `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	OpenIDConnectURL string         `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`
	Flows            map[string]any `yaml:"flows,omitempty" json:"flows,omitempty"`
	Extra            map[string]any `yaml:",inline" json:"-"`
}
