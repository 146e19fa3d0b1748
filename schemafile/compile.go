package schemafile

import (
	"errors"
	"fmt"
	"sort"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
)

// Compile builds a schema from a document. Warnings (for example a bound of
// 0, which is not enforced) are returned in the Diag.
func Compile(doc *Doc, opts Options) (dsl.Schema[any], Diag, error) {
	if doc == nil {
		return nil, Diag{}, errors.New("schemafile: nil document")
	}
	c := &compiler{opts: opts, defs: doc.Defs, done: map[string]dsl.Node{}, visiting: map[string]bool{}}
	n, err := c.node(doc, "$")
	if err != nil {
		return nil, c.diag, err
	}
	if opts.Strict {
		if err := c.diag.Err(); err != nil {
			return nil, c.diag, err
		}
	}
	return dsl.Erase(n), c.diag, nil
}

// CompileBytes is Parse followed by Compile.
func CompileBytes(data []byte, opts Options) (dsl.Schema[any], Diag, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, Diag{}, err
	}
	return Compile(doc, opts)
}

type compiler struct {
	opts     Options
	diag     Diag
	defs     map[string]*Doc
	done     map[string]dsl.Node
	visiting map[string]bool
}

func (c *compiler) node(d *Doc, at string) (dsl.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("schemafile: %s: missing schema", at)
	}
	if d.Kind == "ref" {
		return c.ref(d, at)
	}
	if d.Defs != nil && at != "$" {
		c.diag.warnf("%s: defs are only read at the document root", at)
	}
	kind, ok := skema.ParseKind(d.Kind)
	if !ok {
		return nil, fmt.Errorf("schemafile: %s: unknown kind %q", at, d.Kind)
	}
	c.checkAttrs(d, kind, at)
	switch kind {
	case skema.KindString:
		s := dsl.String()
		if d.Trim {
			s = s.Trim()
		}
		return s, nil
	case skema.KindNumber:
		return c.number(d, at), nil
	case skema.KindLiteral:
		return literal(d.Value, at)
	case skema.KindOptional:
		inner, err := c.node(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		return dsl.Optional(dsl.Erase(inner)), nil
	case skema.KindArray:
		elem, err := c.node(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		return dsl.Array(dsl.Erase(elem)), nil
	case skema.KindObject:
		return c.object(d, at)
	case skema.KindUnion:
		if len(d.AnyOf) == 0 {
			return nil, fmt.Errorf("schemafile: %s: union needs at least one alternative in anyOf", at)
		}
		alts := make([]dsl.Node, len(d.AnyOf))
		for i, a := range d.AnyOf {
			n, err := c.node(a, fmt.Sprintf("%s.anyOf[%d]", at, i))
			if err != nil {
				return nil, err
			}
			alts[i] = n
		}
		return dsl.AnyOf(alts...), nil
	case skema.KindTransform:
		fn, ok := c.opts.transform(d.Fn)
		if !ok {
			return nil, fmt.Errorf("schemafile: %s: unknown transform %q", at, d.Fn)
		}
		src, err := c.node(d.Of, at+".of")
		if err != nil {
			return nil, err
		}
		return dsl.Transform(dsl.Erase(src), func(v any) any { return fn(v) }), nil
	}
	return nil, fmt.Errorf("schemafile: %s: kind %q cannot be compiled", at, d.Kind)
}

func (c *compiler) number(d *Doc, at string) *dsl.NumberSchema {
	n := dsl.Number()
	if d.Min != nil {
		if *d.Min == 0 {
			c.diag.warnf("%s: min 0 is not enforced", at)
		}
		n = n.Min(*d.Min)
	}
	if d.Max != nil {
		if *d.Max == 0 {
			c.diag.warnf("%s: max 0 is not enforced", at)
		}
		n = n.Max(*d.Max)
	}
	lo, okLo := n.MinBound()
	hi, okHi := n.MaxBound()
	if okLo && okHi && lo > hi {
		c.diag.warnf("%s: min %v is greater than max %v; no value can pass", at, lo, hi)
	}
	return n
}

func literal(v any, at string) (dsl.Node, error) {
	switch t := v.(type) {
	case string:
		return dsl.Literal(t), nil
	case bool:
		return dsl.Literal(t), nil
	case float64:
		return dsl.Literal(t), nil
	case nil:
		return nil, fmt.Errorf("schemafile: %s: literal needs a value", at)
	default:
		return nil, fmt.Errorf("schemafile: %s: literal value must be a string, number or bool, got %T", at, v)
	}
}

func (c *compiler) object(d *Doc, at string) (dsl.Node, error) {
	fields := make([]dsl.FieldDef, 0, len(d.Fields))
	for i, f := range d.Fields {
		fat := fmt.Sprintf("%s.fields[%d]", at, i)
		if f.Name == "" {
			return nil, fmt.Errorf("schemafile: %s: field needs a name", fat)
		}
		n, err := c.node(f.Schema, fat+".schema")
		if err != nil {
			return nil, err
		}
		if f.Optional && n.Kind() != skema.KindOptional {
			n = dsl.Optional(dsl.Erase(n))
		}
		fields = append(fields, dsl.Field(f.Name, n))
	}
	o, err := dsl.NewObject(fields...)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", at, err)
	}
	return o, nil
}

func (c *compiler) ref(d *Doc, at string) (dsl.Node, error) {
	if n, ok := c.done[d.Ref]; ok {
		return n, nil
	}
	def, ok := c.defs[d.Ref]
	if !ok {
		return nil, fmt.Errorf("schemafile: %s: ref to unknown def %q", at, d.Ref)
	}
	if c.visiting[d.Ref] {
		return nil, fmt.Errorf("schemafile: %s: cyclic ref to %q", at, d.Ref)
	}
	c.visiting[d.Ref] = true
	defer delete(c.visiting, d.Ref)
	n, err := c.node(def, "$.defs."+d.Ref)
	if err != nil {
		return nil, err
	}
	c.done[d.Ref] = n
	return n, nil
}

// checkAttrs warns about attributes that the kind ignores.
func (c *compiler) checkAttrs(d *Doc, kind skema.Kind, at string) {
	var stray []string
	if d.Trim && kind != skema.KindString {
		stray = append(stray, "trim")
	}
	if (d.Min != nil || d.Max != nil) && kind != skema.KindNumber {
		stray = append(stray, "min/max")
	}
	if d.Value != nil && kind != skema.KindLiteral {
		stray = append(stray, "value")
	}
	if d.Of != nil && kind != skema.KindOptional && kind != skema.KindArray && kind != skema.KindTransform {
		stray = append(stray, "of")
	}
	if len(d.Fields) > 0 && kind != skema.KindObject {
		stray = append(stray, "fields")
	}
	if len(d.AnyOf) > 0 && kind != skema.KindUnion {
		stray = append(stray, "anyOf")
	}
	if d.Fn != "" && kind != skema.KindTransform {
		stray = append(stray, "fn")
	}
	if d.Ref != "" {
		stray = append(stray, "ref")
	}
	sort.Strings(stray)
	for _, s := range stray {
		c.diag.warnf("%s: %s is ignored for kind %s", at, s, kind)
	}
}
