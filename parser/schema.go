package parser

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Schema represents a JSON Schema as used by OAS 2.0, 3.0, and 3.1 documents.
// Only the facets the compiler consumes are modeled; vendor extensions land
// in Extra.
type Schema struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Example     any    `yaml:"example,omitempty" json:"example,omitempty"`

	// Type validation
	Type any   `yaml:"type,omitempty" json:"type,omitempty"` // string or []string (OAS 3.1)
	Enum []any `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const any  `yaml:"const,omitempty" json:"const,omitempty"` // OAS 3.1

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"` // bool in 2.0/3.0, number in 3.1
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"` // bool in 2.0/3.0, number in 3.1

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`

	// Array validation
	Items       *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`

	// Object validation
	Properties           *SchemaMap       `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties *AdditionalProps `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`
	Required             []string         `yaml:"required,omitempty" json:"required,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// OAS specific
	Nullable      bool           `yaml:"nullable,omitempty" json:"nullable,omitempty"` // OAS 3.0 only (type: [T, "null"] in 3.1)
	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	ReadOnly      bool           `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly     bool           `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`
	Deprecated    bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Discriminator represents a discriminator for polymorphism (OAS 3.0+)
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	Extra        map[string]any    `yaml:",inline" json:"-"`
}

// extensibleEnumKey is the Zalando-style extension marking an open string
// enum: the listed values are suggestions, any other string is also valid.
const extensibleEnumKey = "x-extensible-enum"

// ExtensibleEnum returns the x-extensible-enum value list, or nil when the
// extension is absent or malformed. Only string entries are kept.
func (s *Schema) ExtensibleEnum() []string {
	if s == nil || s.Extra == nil {
		return nil
	}
	raw, ok := s.Extra[extensibleEnumKey].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			return nil
		}
		values = append(values, str)
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// IsReference reports whether this node is a $ref pointer. Per the OAS spec
// a reference is opaque: sibling facets on the same node are ignored.
func (s *Schema) IsReference() bool {
	return s != nil && s.Ref != ""
}

// SchemaMap is an insertion-ordered map of names to schemas. YAML mappings
// are decoded pair by pair so that declaration order survives parsing;
// generated object field chains and emitted component declarations follow
// document order.
type SchemaMap struct {
	keys   []string
	values map[string]*Schema
}

// NewSchemaMap returns an empty ordered schema map.
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{values: make(map[string]*Schema)}
}

// Get returns the schema stored under name, or nil.
func (m *SchemaMap) Get(name string) *Schema {
	if m == nil {
		return nil
	}
	return m.values[name]
}

// Set stores a schema under name, appending the key on first insertion.
func (m *SchemaMap) Set(name string, s *Schema) {
	if m.values == nil {
		m.values = make(map[string]*Schema)
	}
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = s
}

// Keys returns the names in declaration order. The returned slice is shared;
// callers must not modify it.
func (m *SchemaMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *SchemaMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// UnmarshalYAML implements yaml.Unmarshaler, decoding mapping pairs in
// document order.
func (m *SchemaMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("parser: expected a mapping of schemas, got %s", value.Tag)
	}
	n := len(value.Content) / 2
	m.keys = make([]string, 0, n)
	m.values = make(map[string]*Schema, n)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("parser: invalid schema map key: %w", err)
		}
		var s Schema
		if err := value.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("parser: schema %q: %w", key, err)
		}
		m.Set(key, &s)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler. Key order is not preserved through
// marshaling; the YAML encoder sorts map keys, which keeps dumps
// deterministic.
func (m *SchemaMap) MarshalYAML() (any, error) {
	if m == nil || m.values == nil {
		return nil, nil
	}
	return m.values, nil
}

// AdditionalProps models the additionalProperties keyword, which is either a
// boolean or a schema.
type AdditionalProps struct {
	Allowed *bool
	Schema  *Schema
}

// HasSchema reports whether additionalProperties carried an inline schema.
func (ap *AdditionalProps) HasSchema() bool {
	return ap != nil && ap.Schema != nil
}

// UnmarshalYAML implements yaml.Unmarshaler for the boolean-or-schema form.
func (ap *AdditionalProps) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("parser: additionalProperties must be a boolean or a schema: %w", err)
		}
		ap.Allowed = &b
		return nil
	case yaml.MappingNode:
		var s Schema
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("parser: additionalProperties schema: %w", err)
		}
		ap.Schema = &s
		return nil
	default:
		return fmt.Errorf("parser: additionalProperties must be a boolean or a schema")
	}
}

// MarshalYAML implements yaml.Marshaler.
func (ap *AdditionalProps) MarshalYAML() (any, error) {
	if ap == nil {
		return nil, nil
	}
	if ap.Schema != nil {
		return ap.Schema, nil
	}
	if ap.Allowed != nil {
		return *ap.Allowed, nil
	}
	return nil, nil
}
