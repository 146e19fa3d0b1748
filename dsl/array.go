package dsl

import (
	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// ArraySchema accepts sequences whose every element passes the element
// schema. All elements are checked; issues carry the element index.
type ArraySchema[E any] struct {
	elem Schema[E]
}

// Array returns a schema for sequences of elem.
func Array[E any](elem Schema[E]) *ArraySchema[E] {
	mustNode(elem, "Array")
	return &ArraySchema[E]{elem: elem}
}

// Element returns the element schema.
func (a *ArraySchema[E]) Element() Schema[E] { return a.elem }

func (a *ArraySchema[E]) Optional() *OptionalSchema[[]E] { return Optional[[]E](a) }

// Array returns an array of this array schema with elements typed as any.
func (a *ArraySchema[E]) Array() *ArraySchema[any] { return Array[any](Erase(a)) }

func (a *ArraySchema[E]) Kind() skema.Kind { return skema.KindArray }

func (a *ArraySchema[E]) SafeParse(v any) skema.Result[[]E] {
	items, ok := asSlice(v)
	if !ok {
		return skema.Fail[[]E](notArray())
	}
	out := make([]E, 0, len(items))
	var iss skema.Issues
	for i, it := range items {
		r := a.elem.SafeParse(it)
		if !r.Success {
			iss = append(iss, r.Issues.Prefixed(skema.Index(i))...)
			continue
		}
		out = append(out, r.Data)
	}
	return result(out, iss)
}

func (a *ArraySchema[E]) parse(v any) (any, skema.Issues) {
	items, ok := asSlice(v)
	if !ok {
		return nil, notArray()
	}
	out := make([]any, 0, len(items))
	var iss skema.Issues
	for i, it := range items {
		x, ei := a.elem.parse(it)
		if len(ei) > 0 {
			iss = append(iss, ei.Prefixed(skema.Index(i))...)
			continue
		}
		out = append(out, x)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func notArray() skema.Issues { return skema.Issues{newIssue(skema.CodeArray, nil, nil)} }

func (a *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	items, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: items}, nil
}
