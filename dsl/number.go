package dsl

import (
	"strconv"

	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// NumberSchema accepts numbers and produces float64. Bounds are inclusive.
//
// A bound of exactly 0 counts as unset: Min(0) and Max(0) are never
// enforced, so Number().Min(0) still accepts -5.
type NumberSchema struct {
	min, max float64
}

// Number returns an unbounded number schema.
func Number() *NumberSchema { return &NumberSchema{} }

// Min returns a copy with an inclusive lower bound.
func (n *NumberSchema) Min(v float64) *NumberSchema {
	c := *n
	c.min = v
	return &c
}

// Max returns a copy with an inclusive upper bound.
func (n *NumberSchema) Max(v float64) *NumberSchema {
	c := *n
	c.max = v
	return &c
}

// MinBound returns the lower bound and whether it is enforced.
func (n *NumberSchema) MinBound() (float64, bool) { return n.min, n.min != 0 }

// MaxBound returns the upper bound and whether it is enforced.
func (n *NumberSchema) MaxBound() (float64, bool) { return n.max, n.max != 0 }

func (n *NumberSchema) Optional() *OptionalSchema[float64] { return Optional[float64](n) }
func (n *NumberSchema) Array() *ArraySchema[float64]       { return Array[float64](n) }

func (n *NumberSchema) Kind() skema.Kind { return skema.KindNumber }

func (n *NumberSchema) SafeParse(v any) skema.Result[float64] {
	out, iss := n.check(v)
	return result(out, iss)
}

func (n *NumberSchema) parse(v any) (any, skema.Issues) {
	out, iss := n.check(v)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (n *NumberSchema) check(v any) (float64, skema.Issues) {
	f, ok := asFloat(v)
	if !ok {
		return 0, skema.Issues{newIssue(skema.CodeNotNumber, nil, nil)}
	}
	var iss skema.Issues
	if max, ok := n.MaxBound(); ok && f > max {
		iss = append(iss, newIssue(skema.CodeNumberMax,
			map[string]string{"max": formatFloat(max)},
			map[string]any{"max": max, "actual": f}))
	}
	if min, ok := n.MinBound(); ok && f < min {
		iss = append(iss, newIssue(skema.CodeNumberMin,
			map[string]string{"min": formatFloat(min)},
			map[string]any{"min": min, "actual": f}))
	}
	if len(iss) > 0 {
		return 0, iss
	}
	return f, nil
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func (n *NumberSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "number"}
	if min, ok := n.MinBound(); ok {
		s.Minimum = &min
	}
	if max, ok := n.MaxBound(); ok {
		s.Maximum = &max
	}
	return s, nil
}
