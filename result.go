package skema

// Parser is anything that validates untyped input into T. Every dsl schema
// satisfies it.
type Parser[T any] interface {
	SafeParse(v any) Result[T]
}

// Result is the outcome of a SafeParse call. On success Data holds the
// converted value and Issues is nil; on failure Issues holds at least one
// entry and Data is the zero value.
type Result[T any] struct {
	Success bool
	Data    T
	Issues  Issues
}

// Ok builds a successful result.
func Ok[T any](v T) Result[T] { return Result[T]{Success: true, Data: v} }

// Fail builds a failed result. It panics when iss is empty because a failure
// without issues cannot be reported to callers.
func Fail[T any](iss Issues) Result[T] {
	if len(iss) == 0 {
		panic("skema: Fail called without issues")
	}
	return Result[T]{Issues: iss}
}

// Unwrap returns (Data, nil) on success and (zero, Issues) on failure.
func (r Result[T]) Unwrap() (T, error) {
	if !r.Success {
		var zero T
		return zero, r.Issues
	}
	return r.Data, nil
}

// Parse is SafeParse followed by Unwrap.
func Parse[T any](p Parser[T], v any) (T, error) { return p.SafeParse(v).Unwrap() }

// Is reports whether v passes p.
func Is[T any](p Parser[T], v any) bool { return p.SafeParse(v).Success }
