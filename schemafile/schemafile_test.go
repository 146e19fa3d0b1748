package schemafile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/schemafile"
)

const userDoc = `
kind: object
defs:
  role:
    kind: union
    anyOf:
      - {kind: literal, value: user}
      - {kind: literal, value: admin}
fields:
  - name: username
    schema: {kind: string, trim: true}
  - name: age
    schema: {kind: number, min: 18, max: 120}
  - name: role
    schema: {kind: ref, ref: role}
  - name: tags
    optional: true
    schema: {kind: array, of: {kind: string}}
  - name: code
    schema:
      kind: transform
      fn: upper
      of: {kind: string}
`

func TestCompile_UserDocument(t *testing.T) {
	s, diag, err := schemafile.CompileBytes([]byte(userDoc), schemafile.Options{})
	require.NoError(t, err)
	require.False(t, diag.HasWarnings(), "warnings: %v", diag.Warnings())
	require.Equal(t, skema.KindObject, s.Kind())

	res := s.SafeParse(map[string]any{"username": "  reo ", "age": 30, "role": "admin", "code": "ab"})
	require.True(t, res.Success, "issues: %v", res.Issues)
	data := res.Data.(map[string]any)
	assert.Equal(t, "reo", data["username"])
	assert.Equal(t, 30.0, data["age"])
	assert.Equal(t, "admin", data["role"])
	assert.Equal(t, "AB", data["code"])
	assert.NotContains(t, data, "tags")

	res = s.SafeParse(map[string]any{"username": 1, "age": 10, "role": "root", "tags": []any{"a", 2}})
	require.False(t, res.Success)
	var got []string
	for _, it := range res.Issues {
		got = append(got, it.Path.String()+" "+it.Code)
	}
	assert.Equal(t, []string{
		"/username not-string",
		"/age number_min",
		"/role literal_error",
		"/role literal_error",
		"/tags/[1] not-string",
		"/code required",
	}, got)
}

func TestCompile_JSONDocument(t *testing.T) {
	doc := `{"kind":"array","of":{"kind":"optional","of":{"kind":"number","max":5}}}`
	s, _, err := schemafile.CompileBytes([]byte(doc), schemafile.Options{})
	require.NoError(t, err)
	res := s.SafeParse([]any{1, nil, 6})
	require.False(t, res.Success)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "/[2]", res.Issues[0].Path.String())
	assert.Equal(t, skema.CodeNumberMax, res.Issues[0].Code)
}

func TestCompile_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown kind":       `{kind: strng}`,
		"unknown attribute":  `{kind: string, trimm: true}`,
		"empty union":        `{kind: union}`,
		"missing of":         `{kind: array}`,
		"literal without":    `{kind: literal}`,
		"unknown transform":  `{kind: transform, fn: reverse, of: {kind: string}}`,
		"unknown ref":        `{kind: ref, ref: nope}`,
		"duplicate field":    `{kind: object, fields: [{name: a, schema: {kind: string}}, {name: a, schema: {kind: number}}]}`,
		"nameless field":     `{kind: object, fields: [{schema: {kind: string}}]}`,
		"cyclic ref":         "kind: ref\nref: a\ndefs:\n  a: {kind: array, of: {kind: ref, ref: a}}\n",
		"literal bad value":  `{kind: literal, value: [1]}`,
		"empty document":     ``,
		"duplicate yaml key": "kind: string\nkind: number\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := schemafile.CompileBytes([]byte(doc), schemafile.Options{})
			require.Error(t, err)
		})
	}
}

func TestCompile_ErrorNamesLocation(t *testing.T) {
	doc := `{kind: object, fields: [{name: a, schema: {kind: array, of: {kind: bogus}}}]}`
	_, _, err := schemafile.CompileBytes([]byte(doc), schemafile.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$.fields[0].schema.of")
}

func TestParse_DuplicateKeyPosition(t *testing.T) {
	_, err := schemafile.Parse([]byte("kind: object\nfields:\n  - name: a\n    name: b\n"))
	var de *schemafile.DuplicateKeyError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "name", de.Key)
	assert.Equal(t, "$.fields[0]", de.At)
	assert.Equal(t, 3, de.FirstLine)
	assert.Equal(t, 4, de.Line)
}

func TestCompile_Warnings(t *testing.T) {
	doc := `{kind: object, fields: [{name: n, schema: {kind: number, min: 0, max: 3}}, {name: s, schema: {kind: string, min: 2}}]}`
	_, diag, err := schemafile.CompileBytes([]byte(doc), schemafile.Options{})
	require.NoError(t, err)
	ws := diag.Warnings()
	require.Len(t, ws, 2)
	assert.Contains(t, ws[0], "min 0 is not enforced")
	assert.Contains(t, ws[1], "min/max is ignored for kind string")

	_, _, err = schemafile.CompileBytes([]byte(doc), schemafile.Options{Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min 0 is not enforced")
	assert.Contains(t, err.Error(), "ignored for kind string")
}

func TestCompile_CustomTransform(t *testing.T) {
	opts := schemafile.Options{Transforms: map[string]schemafile.TransformFunc{
		"double": func(v any) any { return v.(float64) * 2 },
	}}
	s, _, err := schemafile.CompileBytes([]byte(`{kind: transform, fn: double, of: {kind: number}}`), opts)
	require.NoError(t, err)
	v, err := skema.Parse[any](s, 21)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestCompile_FalsyLiterals(t *testing.T) {
	for doc, in := range map[string]any{
		`{kind: literal, value: false}`: false,
		`{kind: literal, value: 0}`:     0,
		`{kind: literal, value: ""}`:    "",
	} {
		s, _, err := schemafile.CompileBytes([]byte(doc), schemafile.Options{})
		require.NoError(t, err, doc)
		assert.True(t, s.SafeParse(in).Success, doc)
	}
}

func TestDoc_MarshalRoundTrip(t *testing.T) {
	d, err := schemafile.Parse([]byte(userDoc))
	require.NoError(t, err)
	raw, err := d.Marshal()
	require.NoError(t, err)
	again, err := schemafile.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, d, again)
}

func TestLoader_CachesUntilFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`{kind: string}`), 0o600))

	l, err := schemafile.NewLoader(2, schemafile.Options{}, nil)
	require.NoError(t, err)

	s1, _, err := l.Load(path)
	require.NoError(t, err)
	s2, _, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, l.Len())

	require.NoError(t, os.WriteFile(path, []byte(`{kind: number, max: 10}`), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	s3, _, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, skema.KindNumber, s3.Kind())

	l.Purge()
	assert.Equal(t, 0, l.Len())
}

func TestLoader_Errors(t *testing.T) {
	l, err := schemafile.NewLoader(0, schemafile.Options{}, nil)
	require.NoError(t, err)
	_, _, err = l.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`{kind: nope}`), 0o600))
	_, _, err = l.Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path), err.Error())
	assert.Equal(t, 0, l.Len())
}

func TestCompile_TrimTransformMatchesStringTrim(t *testing.T) {
	s, _, err := schemafile.CompileBytes([]byte(`{kind: transform, fn: trim, of: {kind: string}}`), schemafile.Options{})
	require.NoError(t, err)
	in := "\uFEFF\u3000 x \u0085"
	v, err := skema.Parse[any](s, in)
	require.NoError(t, err)
	assert.Equal(t, "x \u0085", v)
	assert.Equal(t, dsl.String().Trim().SafeParse(in).Data, v)
}
