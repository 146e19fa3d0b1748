package skema

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by dsl.Bind.
// Priority: skema:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if st := sf.Tag.Get("skema"); st != "" {
		for _, p := range strings.Split(st, ",") {
			p = strings.TrimSpace(p)
			if p == "-" {
				return "-"
			}
			if name, ok := strings.CutPrefix(p, "name="); ok {
				return name
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if name, _, _ := strings.Cut(jt, ","); name != "" {
			return name
		}
	}
	return sf.Name
}

// StructKeys maps external keys to field index paths for the exported fields
// of struct type t, following embedded structs the way encoding/json does.
// Shallower fields win over promoted ones.
func StructKeys(t reflect.Type) map[string][]int {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string][]int{}
	if t.Kind() != reflect.Struct {
		return out
	}
	depth := map[string]int{}
	var walk func(t reflect.Type, prefix []int)
	walk = func(t reflect.Type, prefix []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			idx := append(append([]int(nil), prefix...), i)
			if sf.Anonymous && sf.Tag.Get("json") == "" && sf.Tag.Get("skema") == "" {
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					// a nil unexported pointer cannot be allocated through reflect
					if !sf.IsExported() {
						continue
					}
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					walk(ft, idx)
					continue
				}
			}
			if !sf.IsExported() {
				continue
			}
			key := ResolveStructKey(sf)
			if key == "-" {
				continue
			}
			if d, seen := depth[key]; seen && d <= len(idx) {
				continue
			}
			depth[key] = len(idx)
			out[key] = idx
		}
	}
	walk(t, nil)
	return out
}
