package dsl

import (
	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// TransformSchema validates with a source schema and maps the successful
// output through fn. fn is never called on failure and cannot fail itself.
type TransformSchema[S, T any] struct {
	src Schema[S]
	fn  func(S) T
}

// Transform returns a schema producing fn(out) for every successful output
// of src.
func Transform[S, T any](src Schema[S], fn func(S) T) *TransformSchema[S, T] {
	mustNode(src, "Transform")
	if fn == nil {
		panic("dsl: nil function passed to Transform")
	}
	return &TransformSchema[S, T]{src: src, fn: fn}
}

// Source returns the schema validated before the mapping runs.
func (t *TransformSchema[S, T]) Source() Schema[S] { return t.src }

func (t *TransformSchema[S, T]) Optional() *OptionalSchema[T] { return Optional[T](t) }
func (t *TransformSchema[S, T]) Array() *ArraySchema[T]       { return Array[T](t) }

func (t *TransformSchema[S, T]) Kind() skema.Kind { return skema.KindTransform }

func (t *TransformSchema[S, T]) SafeParse(v any) skema.Result[T] {
	r := t.src.SafeParse(v)
	if !r.Success {
		return skema.Fail[T](r.Issues)
	}
	return skema.Ok(t.fn(r.Data))
}

func (t *TransformSchema[S, T]) parse(v any) (any, skema.Issues) {
	r := t.SafeParse(v)
	if !r.Success {
		return nil, r.Issues
	}
	return r.Data, nil
}

// JSONSchema describes the accepted input, which is the source's.
func (t *TransformSchema[S, T]) JSONSchema() (*js.Schema, error) { return t.src.JSONSchema() }
