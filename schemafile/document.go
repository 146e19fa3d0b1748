package schemafile

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Doc is the serialized form of a schema. Kind selects which of the other
// attributes apply:
//
//	string    trim
//	number    min, max (0 leaves a bound unset)
//	literal   value (string, number or bool)
//	optional  of
//	array     of
//	object    fields
//	union     anyOf
//	transform of, fn
//	ref       ref (name of an entry in the root defs)
//
// description is accepted on any kind and is not compiled.
type Doc struct {
	Kind        string          `json:"kind"`
	Description string          `json:"description,omitempty"`
	Trim        bool            `json:"trim,omitempty"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
	Value       any             `json:"value,omitempty"`
	Of          *Doc            `json:"of,omitempty"`
	Fields      []FieldDoc      `json:"fields,omitempty"`
	AnyOf       []*Doc          `json:"anyOf,omitempty"`
	Fn          string          `json:"fn,omitempty"`
	Ref         string          `json:"ref,omitempty"`
	Defs        map[string]*Doc `json:"defs,omitempty"`
}

// FieldDoc declares one object field. Optional is shorthand for wrapping
// Schema in an optional kind.
type FieldDoc struct {
	Name     string `json:"name"`
	Schema   *Doc   `json:"schema"`
	Optional bool   `json:"optional,omitempty"`
}

// Parse reads a schema document. YAML and JSON are both accepted; unknown
// attributes and duplicate keys are errors.
func Parse(data []byte) (*Doc, error) { return Read(bytes.NewReader(data)) }

// Read is Parse over an io.Reader.
func Read(r io.Reader) (*Doc, error) {
	v, err := readStrict(r)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var d Doc
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return &d, nil
}

// Marshal renders d as indented JSON.
func (d *Doc) Marshal() ([]byte, error) { return json.MarshalIndent(d, "", "  ") }
