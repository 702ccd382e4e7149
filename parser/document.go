package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/calquist/oasvalid/internal/httputil"
)

// Document is a unified model for OAS 2.0, 3.0, and 3.1 documents. Version
// specific fields coexist on the one struct; the normalize package rewrites
// 2.0 and 3.0 shapes into their 3.1 equivalents in place, so downstream
// packages only ever read the 3.x fields.
type Document struct {
	OpenAPI string `yaml:"openapi,omitempty" json:"openapi,omitempty"` // OAS 3.x
	Swagger string `yaml:"swagger,omitempty" json:"swagger,omitempty"` // OAS 2.0

	Info       *Info       `yaml:"info" json:"info"`
	Servers    []*Server   `yaml:"servers,omitempty" json:"servers,omitempty"` // OAS 3.x
	Paths      *PathMap    `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components *Components `yaml:"components,omitempty" json:"components,omitempty"` // OAS 3.x

	// OAS 2.0 specific
	Host        string                `yaml:"host,omitempty" json:"host,omitempty"`
	BasePath    string                `yaml:"basePath,omitempty" json:"basePath,omitempty"`
	Schemes     []string              `yaml:"schemes,omitempty" json:"schemes,omitempty"`
	Consumes    []string              `yaml:"consumes,omitempty" json:"consumes,omitempty"`
	Produces    []string              `yaml:"produces,omitempty" json:"produces,omitempty"`
	Definitions *SchemaMap            `yaml:"definitions,omitempty" json:"definitions,omitempty"`
	ParamDefs   map[string]*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RespDefs    map[string]*Response  `yaml:"responses,omitempty" json:"responses,omitempty"`

	Tags         []*Tag         `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	OASVersion   OASVersion     `yaml:"-" json:"-"`
	Extra        map[string]any `yaml:",inline" json:"-"`
}

// SchemaFor resolves a component name to its schema, checking
// components.schemas first and falling back to 2.0 definitions.
func (d *Document) SchemaFor(name string) *Schema {
	if d == nil {
		return nil
	}
	if d.Components != nil {
		if s := d.Components.Schemas.Get(name); s != nil {
			return s
		}
	}
	return d.Definitions.Get(name)
}

// Info provides metadata about the API
type Info struct {
	Title          string         `yaml:"title" json:"title"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string         `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Contact        *Contact       `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License       `yaml:"license,omitempty" json:"license,omitempty"`
	Version        string         `yaml:"version" json:"version"`
	Extra          map[string]any `yaml:",inline" json:"-"`
}

// Contact information for the exposed API
type Contact struct {
	Name  string         `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string         `yaml:"url,omitempty" json:"url,omitempty"`
	Email string         `yaml:"email,omitempty" json:"email,omitempty"`
	Extra map[string]any `yaml:",inline" json:"-"`
}

// License information for the exposed API
type License struct {
	Name  string         `yaml:"name" json:"name"`
	URL   string         `yaml:"url,omitempty" json:"url,omitempty"`
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Server represents a server hosting the API (OAS 3.x)
type Server struct {
	URL         string         `yaml:"url" json:"url"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Tag adds metadata to a single tag used by operations
type Tag struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// ExternalDocs references external documentation
type ExternalDocs struct {
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string         `yaml:"url" json:"url"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Components holds reusable objects (OAS 3.x)
type Components struct {
	Schemas       *SchemaMap              `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Responses     map[string]*Response    `yaml:"responses,omitempty" json:"responses,omitempty"`
	Parameters    map[string]*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBodies map[string]*RequestBody `yaml:"requestBodies,omitempty" json:"requestBodies,omitempty"`
	Headers       map[string]*Header      `yaml:"headers,omitempty" json:"headers,omitempty"`
	Extra         map[string]any          `yaml:",inline" json:"-"`
}

// PathMap is an insertion-ordered map of path templates to path items.
// Document order matters: derived operation ids resolve name collisions by
// first occurrence.
type PathMap struct {
	keys   []string
	values map[string]*PathItem
}

// NewPathMap returns an empty ordered path map.
func NewPathMap() *PathMap {
	return &PathMap{values: make(map[string]*PathItem)}
}

// Get returns the path item stored under the path template, or nil.
func (m *PathMap) Get(path string) *PathItem {
	if m == nil {
		return nil
	}
	return m.values[path]
}

// Set stores a path item, appending the key on first insertion.
func (m *PathMap) Set(path string, item *PathItem) {
	if m.values == nil {
		m.values = make(map[string]*PathItem)
	}
	if _, exists := m.values[path]; !exists {
		m.keys = append(m.keys, path)
	}
	m.values[path] = item
}

// Keys returns the path templates in declaration order. The returned slice
// is shared; callers must not modify it.
func (m *PathMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *PathMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// UnmarshalYAML implements yaml.Unmarshaler, decoding mapping pairs in
// document order.
func (m *PathMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("parser: expected a mapping of paths, got %s", value.Tag)
	}
	n := len(value.Content) / 2
	m.keys = make([]string, 0, n)
	m.values = make(map[string]*PathItem, n)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("parser: invalid path key: %w", err)
		}
		var item PathItem
		if err := value.Content[i+1].Decode(&item); err != nil {
			return fmt.Errorf("parser: path %q: %w", key, err)
		}
		m.Set(key, &item)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler. Key order is not preserved through
// marshaling; the YAML encoder sorts map keys, which keeps dumps
// deterministic.
func (m *PathMap) MarshalYAML() (any, error) {
	if m == nil || m.values == nil {
		return nil, nil
	}
	return m.values, nil
}

// PathItem describes the operations available on a single path
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
	Trace       *Operation     `yaml:"trace,omitempty" json:"trace,omitempty"` // OAS 3.x
	Parameters  []*Parameter   `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"-"`
}

// Operation returns the operation for a lowercase HTTP method name, or nil.
func (pi *PathItem) Operation(method string) *Operation {
	if pi == nil {
		return nil
	}
	switch method {
	case httputil.MethodGet:
		return pi.Get
	case httputil.MethodPut:
		return pi.Put
	case httputil.MethodPost:
		return pi.Post
	case httputil.MethodDelete:
		return pi.Delete
	case httputil.MethodOptions:
		return pi.Options
	case httputil.MethodHead:
		return pi.Head
	case httputil.MethodPatch:
		return pi.Patch
	case httputil.MethodTrace:
		return pi.Trace
	default:
		return nil
	}
}

// SetOperation stores an operation under a lowercase HTTP method name.
// Unknown methods are ignored.
func (pi *PathItem) SetOperation(method string, op *Operation) {
	switch method {
	case httputil.MethodGet:
		pi.Get = op
	case httputil.MethodPut:
		pi.Put = op
	case httputil.MethodPost:
		pi.Post = op
	case httputil.MethodDelete:
		pi.Delete = op
	case httputil.MethodOptions:
		pi.Options = op
	case httputil.MethodHead:
		pi.Head = op
	case httputil.MethodPatch:
		pi.Patch = op
	case httputil.MethodTrace:
		pi.Trace = op
	}
}

// Operation describes a single API operation on a path
type Operation struct {
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string       `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody `yaml:"requestBody,omitempty" json:"requestBody,omitempty"` // OAS 3.x
	Responses   *Responses   `yaml:"responses,omitempty" json:"responses,omitempty"`
	Deprecated  bool         `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// OAS 2.0 specific
	Consumes []string       `yaml:"consumes,omitempty" json:"consumes,omitempty"`
	Produces []string       `yaml:"produces,omitempty" json:"produces,omitempty"`
	Extra    map[string]any `yaml:",inline" json:"-"`
}

// Parameter describes a single operation parameter
type Parameter struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	// Name and In use omitempty because parameters can be defined via $ref.
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	In          string `yaml:"in,omitempty" json:"in,omitempty"` // "query", "header", "path", "cookie" (3.x), "formData", "body" (2.0)
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Deprecated  bool   `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Schema holds the parameter schema in OAS 3.x, and the body schema for
	// OAS 2.0 in:body parameters (both spell the key "schema").
	Schema  *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	Explode *bool   `yaml:"explode,omitempty" json:"explode,omitempty"`
	Style   string  `yaml:"style,omitempty" json:"style,omitempty"`

	// OAS 2.0 fields: parameters carry schema facets directly
	Type             string         `yaml:"type,omitempty" json:"type,omitempty"`
	Format           string         `yaml:"format,omitempty" json:"format,omitempty"`
	Items            *Schema        `yaml:"items,omitempty" json:"items,omitempty"`
	CollectionFormat string         `yaml:"collectionFormat,omitempty" json:"collectionFormat,omitempty"`
	Default          any            `yaml:"default,omitempty" json:"default,omitempty"`
	Maximum          *float64       `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum bool           `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"`
	Minimum          *float64       `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum bool           `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`
	MaxLength        *int           `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength        *int           `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern          string         `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	MaxItems         *int           `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems         *int           `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	Enum             []any          `yaml:"enum,omitempty" json:"enum,omitempty"`
	Extra            map[string]any `yaml:",inline" json:"-"`
}

// RequestBody describes a single request body (OAS 3.x)
type RequestBody struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Extra       map[string]any        `yaml:",inline" json:"-"`
}

// MediaType provides the schema for a media type (OAS 3.x)
type MediaType struct {
	Schema *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra  map[string]any `yaml:",inline" json:"-"`
}

// Responses is a container for the expected responses of an operation
type Responses struct {
	Default *Response
	Codes   map[string]*Response
}

// UnmarshalYAML implements custom unmarshaling for Responses to validate
// status codes during parsing. Extension fields (x-) are dropped.
func (r *Responses) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("parser: expected a mapping of responses, got %s", value.Tag)
	}
	r.Codes = make(map[string]*Response, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("parser: invalid response key: %w", err)
		}
		if key == "default" {
			var resp Response
			if err := value.Content[i+1].Decode(&resp); err != nil {
				return fmt.Errorf("parser: default response: %w", err)
			}
			r.Default = &resp
			continue
		}
		if !httputil.ValidateStatusCode(key) {
			return fmt.Errorf("parser: invalid status code %q in responses: must be a valid HTTP status code (e.g., \"200\"), wildcard pattern (e.g., \"2XX\"), or extension field (e.g., \"x-custom\")", key)
		}
		if len(key) >= 2 && key[:2] == "x-" {
			continue
		}
		var resp Response
		if err := value.Content[i+1].Decode(&resp); err != nil {
			return fmt.Errorf("parser: response for status code %s: %w", key, err)
		}
		r.Codes[key] = &resp
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r *Responses) MarshalYAML() (any, error) {
	if r == nil {
		return nil, nil
	}
	out := make(map[string]*Response, len(r.Codes)+1)
	for k, v := range r.Codes {
		out[k] = v
	}
	if r.Default != nil {
		out["default"] = r.Default
	}
	return out, nil
}

// Response describes a single response from an API operation
type Response struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     map[string]*Header    `yaml:"headers,omitempty" json:"headers,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty" json:"content,omitempty"` // OAS 3.x
	// OAS 2.0 specific
	Schema *Schema        `yaml:"schema,omitempty" json:"schema,omitempty"`
	Extra  map[string]any `yaml:",inline" json:"-"`
}

// Header represents a response header object
type Header struct {
	Ref         string  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"` // OAS 3.x
	// OAS 2.0 fields
	Type   string         `yaml:"type,omitempty" json:"type,omitempty"`
	Format string         `yaml:"format,omitempty" json:"format,omitempty"`
	Items  *Schema        `yaml:"items,omitempty" json:"items,omitempty"`
	Extra  map[string]any `yaml:",inline" json:"-"`
}
