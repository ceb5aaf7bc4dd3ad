package jsonschema

import (
	j "github.com/goccy/go-json"
)

// Draft is the JSON Schema dialect written by Export.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Document
	Dialect string             `json:"$schema,omitempty"`
	Title   string             `json:"title,omitempty"`
	Defs    map[string]*Schema `json:"$defs,omitempty"`
	Ref     string             `json:"$ref,omitempty"`

	// Core
	Type   string   `json:"type,omitempty"`
	Format string   `json:"format,omitempty"`
	Enum   []string `json:"enum,omitempty"`

	// String
	MinLength       *int   `json:"minLength,omitempty"`
	MaxLength       *int   `json:"maxLength,omitempty"`
	Pattern         string `json:"pattern,omitempty"`
	ContentEncoding string `json:"contentEncoding,omitempty"`
	WriteOnly       bool   `json:"writeOnly,omitempty"`

	// Number (int64 or float64 values)
	Minimum          any `json:"minimum,omitempty"`
	Maximum          any `json:"maximum,omitempty"`
	ExclusiveMinimum any `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any `json:"exclusiveMaximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
}

// MarshalIndent renders the schema with goccy/go-json. An empty indent gives
// compact output.
func (s *Schema) MarshalIndent(indent string) ([]byte, error) {
	if indent == "" {
		return j.Marshal(s)
	}
	return j.MarshalIndent(s, "", indent)
}
