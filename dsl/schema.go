package dsl

import (
	skema "github.com/reoring/skema"
	js "github.com/reoring/skema/jsonschema"
)

// Node is a schema of any output type. The set of implementations is closed:
// only the kinds in this package satisfy it, so a switch over Kind() is
// exhaustive.
type Node interface {
	// Kind reports the schema kind.
	Kind() skema.Kind
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)

	// parse is the type-erased form of SafeParse used by combinators. Its
	// output is a JSON-like tree: objects as map[string]any, arrays as []any,
	// absent optionals as nil.
	parse(v any) (any, skema.Issues)
}

// Schema is a Node whose successful output has static type T.
type Schema[T any] interface {
	Node
	// SafeParse validates v and converts it to T. It never panics on input
	// and never returns a failed result without issues.
	SafeParse(v any) skema.Result[T]
}

// Erase returns a view of n whose output is typed as any. The view reports
// the kind of n, so an erased optional is still treated as optional by
// objects.
func Erase(n Node) Schema[any] {
	if s, ok := n.(Schema[any]); ok {
		return s
	}
	return &erased{n: n}
}

type erased struct{ n Node }

func (e *erased) Kind() skema.Kind                { return e.n.Kind() }
func (e *erased) JSONSchema() (*js.Schema, error) { return e.n.JSONSchema() }
func (e *erased) parse(v any) (any, skema.Issues) { return e.n.parse(v) }
func (e *erased) SafeParse(v any) skema.Result[any] {
	out, iss := e.n.parse(v)
	return result(out, iss)
}

// Unwrap returns the erased node.
func (e *erased) Unwrap() Node { return e.n }

func result[T any](v T, iss skema.Issues) skema.Result[T] {
	if len(iss) > 0 {
		return skema.Fail[T](iss)
	}
	return skema.Ok(v)
}

// newIssue builds a root-level issue with a translated message.
func newIssue(code string, data map[string]string, params map[string]any) skema.Issue {
	return skema.NewIssue(nil, code, data, params)
}

func mustNode(n Node, what string) {
	if n == nil {
		panic("dsl: nil schema passed to " + what)
	}
}
