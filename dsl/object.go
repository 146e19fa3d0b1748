package dsl

import (
	"fmt"

	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// FieldDef is one declared object field.
type FieldDef struct {
	Name   string
	Schema Node
}

// Field declares an object field. A field whose schema is optional may be
// absent from the input; every other field is required.
func Field(name string, s Node) FieldDef { return FieldDef{Name: name, Schema: s} }

// ObjectSchema accepts string-keyed maps. Declared fields are validated in
// declaration order; undeclared keys are ignored and dropped from the output.
type ObjectSchema struct {
	fields []FieldDef
	index  map[string]int
}

// NewObject builds an object schema. Field names must be unique and every
// field needs a schema.
func NewObject(fields ...FieldDef) (*ObjectSchema, error) {
	o := &ObjectSchema{
		fields: make([]FieldDef, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Schema == nil {
			return nil, fmt.Errorf("dsl: object field %q has no schema", f.Name)
		}
		if _, dup := o.index[f.Name]; dup {
			return nil, fmt.Errorf("dsl: object field %q declared twice", f.Name)
		}
		o.index[f.Name] = i
		o.fields[i] = f
	}
	return o, nil
}

// Object is NewObject that panics on invalid declarations. It is meant for
// package-level schema definitions.
func Object(fields ...FieldDef) *ObjectSchema {
	o, err := NewObject(fields...)
	if err != nil {
		panic(err)
	}
	return o
}

// Fields returns the declared fields in order.
func (o *ObjectSchema) Fields() []FieldDef {
	return append([]FieldDef(nil), o.fields...)
}

// Field looks up a declared field schema by name.
func (o *ObjectSchema) Field(name string) (Node, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.fields[i].Schema, true
}

// Required lists the names of fields that must be present, in declaration
// order.
func (o *ObjectSchema) Required() []string {
	var out []string
	for _, f := range o.fields {
		if !isOptional(f.Schema) {
			out = append(out, f.Name)
		}
	}
	return out
}

func (o *ObjectSchema) Optional() *OptionalSchema[map[string]any] {
	return Optional[map[string]any](o)
}
func (o *ObjectSchema) Array() *ArraySchema[map[string]any] { return Array[map[string]any](o) }

func (o *ObjectSchema) Kind() skema.Kind { return skema.KindObject }

func (o *ObjectSchema) SafeParse(v any) skema.Result[map[string]any] {
	out, iss := o.check(v)
	return result(out, iss)
}

func (o *ObjectSchema) parse(v any) (any, skema.Issues) {
	out, iss := o.check(v)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *ObjectSchema) check(v any) (map[string]any, skema.Issues) {
	in, ok := asMap(v)
	if !ok {
		return nil, skema.Issues{newIssue(skema.CodeNotObject, nil, nil)}
	}
	out := make(map[string]any, len(o.fields))
	var iss skema.Issues
	for _, f := range o.fields {
		seg := skema.Field(f.Name)
		val, present := in[f.Name]
		if !present {
			if isOptional(f.Schema) {
				continue
			}
			iss = append(iss, skema.Issues{newIssue(skema.CodeRequired,
				map[string]string{"key": f.Name},
				map[string]any{"key": f.Name})}.Prefixed(seg)...)
			continue
		}
		x, fi := f.Schema.parse(val)
		if len(fi) > 0 {
			iss = append(iss, fi.Prefixed(seg)...)
			continue
		}
		out[f.Name] = x
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func isOptional(n Node) bool { return n.Kind() == skema.KindOptional }

func (o *ObjectSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(o.fields))}
	for _, f := range o.fields {
		fs, err := f.Schema.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", f.Name, err)
		}
		s.Properties[f.Name] = fs
	}
	s.Required = o.Required()
	return s, nil
}
