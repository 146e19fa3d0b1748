package dsl

import (
	"strings"
	"unicode"

	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// StringSchema accepts strings. With Trim it strips leading and trailing
// whitespace from the output.
type StringSchema struct {
	trim bool
}

// String returns a schema accepting any string.
func String() *StringSchema { return &StringSchema{} }

// Trim returns a copy that trims surrounding whitespace on success.
func (s *StringSchema) Trim() *StringSchema {
	c := *s
	c.trim = true
	return &c
}

// Trimmed reports whether the schema trims its output.
func (s *StringSchema) Trimmed() bool { return s.trim }

func (s *StringSchema) Optional() *OptionalSchema[string] { return Optional[string](s) }
func (s *StringSchema) Array() *ArraySchema[string]       { return Array[string](s) }

func (s *StringSchema) Kind() skema.Kind { return skema.KindString }

func (s *StringSchema) SafeParse(v any) skema.Result[string] {
	out, iss := s.check(v)
	return result(out, iss)
}

func (s *StringSchema) parse(v any) (any, skema.Issues) {
	out, iss := s.check(v)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (s *StringSchema) check(v any) (string, skema.Issues) {
	str, ok := asString(v)
	if !ok {
		return "", skema.Issues{newIssue(skema.CodeNotString, nil, nil)}
	}
	if s.trim {
		str = TrimSpace(str)
	}
	return str, nil
}

// TrimSpace removes the characters Trim strips: Unicode white space and the
// byte order mark, but not U+0085 (NEL).
func TrimSpace(s string) string { return strings.TrimFunc(s, isTrimSpace) }

func isTrimSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

func (s *StringSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string"}, nil
}
