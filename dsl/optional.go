package dsl

import (
	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// OptionalSchema accepts an absent value (nil, or a nil pointer) in addition
// to whatever its inner schema accepts. Absent produces a nil pointer;
// anything else is delegated to the inner schema unchanged.
type OptionalSchema[T any] struct {
	inner Schema[T]
}

// Optional wraps s so that nil is accepted.
func Optional[T any](s Schema[T]) *OptionalSchema[T] {
	mustNode(s, "Optional")
	return &OptionalSchema[T]{inner: s}
}

// Inner returns the wrapped schema.
func (o *OptionalSchema[T]) Inner() Schema[T] { return o.inner }

// Optional on an optional schema adds no further level.
func (o *OptionalSchema[T]) Optional() *OptionalSchema[T] { return o }

// Array returns an array of this optional schema. Elements are typed as any;
// absent elements appear as nil.
func (o *OptionalSchema[T]) Array() *ArraySchema[any] { return Array[any](Erase(o)) }

func (o *OptionalSchema[T]) Kind() skema.Kind { return skema.KindOptional }

func (o *OptionalSchema[T]) SafeParse(v any) skema.Result[*T] {
	if isAbsent(v) {
		return skema.Ok[*T](nil)
	}
	r := o.inner.SafeParse(v)
	if !r.Success {
		return skema.Fail[*T](r.Issues)
	}
	return skema.Ok(&r.Data)
}

func (o *OptionalSchema[T]) parse(v any) (any, skema.Issues) {
	if isAbsent(v) {
		return nil, nil
	}
	return o.inner.parse(v)
}

func (o *OptionalSchema[T]) JSONSchema() (*js.Schema, error) { return o.inner.JSONSchema() }
