package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Type  string `json:"type,omitempty"`
	Const any    `json:"const,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Draft is the $schema URI emitted by Document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Document is a top-level schema carrying the $schema keyword.
type Document struct {
	SchemaURI string `json:"$schema"`
	*Schema
}

// NewDocument wraps s as a top-level document.
func NewDocument(s *Schema) Document { return Document{SchemaURI: Draft, Schema: s} }
