package dsl

import (
	"errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// BoundSchema validates with an object schema and copies the output into a
// struct of type T (or *T). Struct fields are matched by the key resolved with
// skema.ResolveStructKey; object keys without a matching field are ignored.
type BoundSchema[T any] struct {
	obj  *ObjectSchema
	ptr  bool
	st   reflect.Type
	keys map[string][]int
}

// Bind ties an object schema to the struct type T. T may be a struct or a
// pointer to a struct.
func Bind[T any](o *ObjectSchema) (*BoundSchema[T], error) {
	if o == nil {
		return nil, errors.New("dsl: nil object passed to Bind")
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	b := &BoundSchema[T]{obj: o, st: t}
	if t.Kind() == reflect.Pointer {
		b.ptr = true
		b.st = t.Elem()
	}
	if b.st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl: Bind target %s is not a struct", t)
	}
	b.keys = skema.StructKeys(b.st)
	for _, f := range o.fields {
		if _, ok := b.keys[f.Name]; !ok {
			return nil, fmt.Errorf("dsl: %s has no field for key %q", b.st, f.Name)
		}
	}
	return b, nil
}

// MustBind is Bind that panics on error.
func MustBind[T any](o *ObjectSchema) *BoundSchema[T] {
	b, err := Bind[T](o)
	if err != nil {
		panic(err)
	}
	return b
}

// Object returns the underlying object schema.
func (b *BoundSchema[T]) Object() *ObjectSchema { return b.obj }

func (b *BoundSchema[T]) Optional() *OptionalSchema[T] { return Optional[T](b) }
func (b *BoundSchema[T]) Array() *ArraySchema[T]       { return Array[T](b) }

func (b *BoundSchema[T]) Kind() skema.Kind { return skema.KindObject }

func (b *BoundSchema[T]) SafeParse(v any) skema.Result[T] {
	var zero T
	m, iss := b.obj.check(v)
	if len(iss) > 0 {
		return skema.Fail[T](iss)
	}
	sv := reflect.New(b.st)
	for _, f := range b.obj.fields {
		val, ok := m[f.Name]
		if !ok || val == nil {
			continue
		}
		if err := assign(fieldByIndex(sv.Elem(), b.keys[f.Name]), val); err != nil {
			iss = append(iss, skema.Issues{newIssue(skema.CodeBindError,
				map[string]string{"key": f.Name},
				map[string]any{"key": f.Name, "error": err.Error()})}.Prefixed(skema.Field(f.Name))...)
		}
	}
	if len(iss) > 0 {
		return result(zero, iss)
	}
	if b.ptr {
		return skema.Ok(sv.Interface().(T))
	}
	return skema.Ok(sv.Elem().Interface().(T))
}

// parse keeps the JSON-like view so bound objects nest like plain ones.
func (b *BoundSchema[T]) parse(v any) (any, skema.Issues) { return b.obj.parse(v) }

func (b *BoundSchema[T]) JSONSchema() (*js.Schema, error) { return b.obj.JSONSchema() }

// fieldByIndex is reflect.Value.FieldByIndex that allocates nil embedded
// pointers on the way.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// assign stores val into dst. Directly assignable or convertible scalars are
// set in place; everything else goes through a JSON round trip.
func assign(dst reflect.Value, val any) error {
	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
		return nil
	case family(rv.Kind()) != 0 && family(rv.Kind()) == family(dst.Kind()):
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst.Addr().Interface())
}

// family groups kinds that convert without loss of meaning. Floats are not
// converted to integers here so that 1.5 is rejected by the JSON fallback
// instead of being truncated.
func family(k reflect.Kind) int {
	switch k {
	case reflect.Bool:
		return 1
	case reflect.String:
		return 2
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 3
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 4
	case reflect.Float32, reflect.Float64:
		return 5
	}
	return 0
}
