package dsl

import (
	"errors"
	"fmt"

	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// ErrEmptyUnion is returned by NewUnion when no alternatives are given.
var ErrEmptyUnion = errors.New("dsl: union needs at least one alternative")

// UnionSchema tries its alternatives in order and returns the first success.
// When every alternative fails, the issues of all of them are reported in
// alternative order.
type UnionSchema[T any] struct {
	alts []Schema[T]
}

// NewUnion builds a union of alternatives sharing the output type T.
func NewUnion[T any](alts ...Schema[T]) (*UnionSchema[T], error) {
	if len(alts) == 0 {
		return nil, ErrEmptyUnion
	}
	for i, a := range alts {
		if a == nil {
			return nil, fmt.Errorf("dsl: union alternative %d is nil", i)
		}
	}
	return &UnionSchema[T]{alts: append([]Schema[T](nil), alts...)}, nil
}

// Union is NewUnion that panics on invalid declarations.
func Union[T any](alts ...Schema[T]) *UnionSchema[T] {
	u, err := NewUnion(alts...)
	if err != nil {
		panic(err)
	}
	return u
}

// AnyOf builds a union of schemas with different output types. The output
// is typed as any.
func AnyOf(alts ...Node) *UnionSchema[any] {
	erasedAlts := make([]Schema[any], len(alts))
	for i, a := range alts {
		mustNode(a, "AnyOf")
		erasedAlts[i] = Erase(a)
	}
	return Union(erasedAlts...)
}

// Alternatives returns the alternatives in order.
func (u *UnionSchema[T]) Alternatives() []Schema[T] {
	return append([]Schema[T](nil), u.alts...)
}

func (u *UnionSchema[T]) Optional() *OptionalSchema[T] { return Optional[T](u) }
func (u *UnionSchema[T]) Array() *ArraySchema[T]       { return Array[T](u) }

func (u *UnionSchema[T]) Kind() skema.Kind { return skema.KindUnion }

func (u *UnionSchema[T]) SafeParse(v any) skema.Result[T] {
	var iss skema.Issues
	for _, a := range u.alts {
		r := a.SafeParse(v)
		if r.Success {
			return r
		}
		iss = append(iss, r.Issues...)
	}
	return skema.Fail[T](iss)
}

func (u *UnionSchema[T]) parse(v any) (any, skema.Issues) {
	var iss skema.Issues
	for _, a := range u.alts {
		x, ai := a.parse(v)
		if len(ai) == 0 {
			return x, nil
		}
		iss = append(iss, ai...)
	}
	return nil, iss
}

func (u *UnionSchema[T]) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{AnyOf: make([]*js.Schema, 0, len(u.alts))}
	for i, a := range u.alts {
		as, err := a.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("anyOf[%d]: %w", i, err)
		}
		s.AnyOf = append(s.AnyOf, as)
	}
	return s, nil
}
