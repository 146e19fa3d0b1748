package dsl

import (
	"fmt"
	"reflect"

	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// LiteralSchema accepts exactly one value and returns that value.
//
// Numbers compare by value across Go numeric types, so Literal(1) accepts
// json.Number("1") and float64(1). Strings compare by content across named
// string types.
type LiteralSchema[T comparable] struct {
	value T
}

// Literal returns a schema accepting only v.
func Literal[T comparable](v T) *LiteralSchema[T] { return &LiteralSchema[T]{value: v} }

// Value returns the expected value.
func (l *LiteralSchema[T]) Value() T { return l.value }

func (l *LiteralSchema[T]) Optional() *OptionalSchema[T] { return Optional[T](l) }
func (l *LiteralSchema[T]) Array() *ArraySchema[T]       { return Array[T](l) }

func (l *LiteralSchema[T]) Kind() skema.Kind { return skema.KindLiteral }

func (l *LiteralSchema[T]) SafeParse(v any) skema.Result[T] {
	if !literalEqual(v, l.value) {
		var zero T
		return result(zero, l.mismatch())
	}
	return skema.Ok(l.value)
}

func (l *LiteralSchema[T]) parse(v any) (any, skema.Issues) {
	if !literalEqual(v, l.value) {
		return nil, l.mismatch()
	}
	return l.value, nil
}

func (l *LiteralSchema[T]) mismatch() skema.Issues {
	return skema.Issues{newIssue(skema.CodeLiteral,
		map[string]string{"expected": fmt.Sprint(l.value)},
		map[string]any{"expected": l.value})}
}

func literalEqual(in, want any) bool {
	if in == nil || want == nil {
		return in == nil && want == nil
	}
	if a, ok := asFloat(in); ok {
		b, ok := asFloat(want)
		return ok && a == b
	}
	if a, ok := asString(in); ok {
		b, ok := asString(want)
		return ok && a == b
	}
	if !reflect.TypeOf(in).Comparable() {
		return false
	}
	return in == want
}

func (l *LiteralSchema[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Const: l.value}, nil
}
