package skema

import (
	"reflect"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object field name or an array index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Field returns a field-name step.
func Field(name string) Segment { return Segment{Name: name} }

// Index returns an element-index step.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// String renders the step the way it appears in Path.String: "name" or "[i]".
func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

// Path locates a value inside nested input. The root is the empty path.
type Path []Segment

// Field returns a new path extended by a field step. The receiver is not modified.
func (p Path) Field(name string) Path { return p.append(Field(name)) }

// Index returns a new path extended by an index step. The receiver is not modified.
func (p Path) Index(i int) Path { return p.append(Index(i)) }

func (p Path) append(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

func (p Path) prepend(seg Segment) Path {
	out := make(Path, len(p)+1)
	out[0] = seg
	copy(out[1:], p)
	return out
}

// String renders the path as "/field/[0]/nested"; the root renders as "".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as an RFC 6901 JSON Pointer ("/items/2/price").
// The root renders as "".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		b.WriteString(pointerEscaper.Replace(s.Name))
	}
	return b.String()
}

// Equal reports whether both paths have the same steps.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Resolve looks the path up in input one step at a time. Field steps index
// string-keyed maps and index steps index slices or arrays.
func (p Path) Resolve(input any) (any, bool) {
	cur := input
	for _, s := range p {
		if s.IsIndex {
			switch t := cur.(type) {
			case []any:
				if s.Index < 0 || s.Index >= len(t) {
					return nil, false
				}
				cur = t[s.Index]
				continue
			}
			rv := reflect.ValueOf(cur)
			if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
				return nil, false
			}
			if s.Index < 0 || s.Index >= rv.Len() {
				return nil, false
			}
			cur = rv.Index(s.Index).Interface()
			continue
		}
		switch t := cur.(type) {
		case map[string]any:
			v, ok := t[s.Name]
			if !ok {
				return nil, false
			}
			cur = v
			continue
		}
		rv := reflect.ValueOf(cur)
		if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(s.Name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		cur = mv.Interface()
	}
	return cur, true
}

// ParsePath parses the String form back into a Path. Steps of the form "[n]"
// become index steps; everything else is a field name.
func ParsePath(s string) Path {
	if s == "" || s == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(s, "/"), "/")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		if len(part) > 2 && part[0] == '[' && part[len(part)-1] == ']' {
			if i, err := strconv.Atoi(part[1 : len(part)-1]); err == nil {
				out = append(out, Index(i))
				continue
			}
		}
		out = append(out, Field(part))
	}
	return out
}
