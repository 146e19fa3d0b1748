// Package dsl provides the schema combinators for skema.
//
// Overview
//   - Primitives: String() (with Trim), Number() (with Min/Max), Literal(v).
//   - Combinators: Optional(s), Array(elem), Object(Field(...)...), Union(alts...), AnyOf(nodes...), Transform(s, fn).
//   - Typed binding: Bind[T](obj) copies a validated object into a struct.
//   - Every schema has Optional() and Array() modifiers returning new schemas; the receiver is never changed.
//
// Static output types
//
// Each constructor returns a concrete type whose SafeParse result is typed:
//
//	String()                      -> skema.Result[string]
//	Number()                      -> skema.Result[float64]
//	Literal("admin")              -> skema.Result[string]
//	Optional(s Schema[T])         -> skema.Result[*T]        (nil when absent)
//	Array(s Schema[E])            -> skema.Result[[]E]
//	Object(...)                   -> skema.Result[map[string]any]
//	Union(alts ...Schema[T])      -> skema.Result[T]
//	Transform(s Schema[S], fn)    -> skema.Result[T]         (fn func(S) T)
//
// Values nested inside objects use the JSON-like view: strings, float64,
// map[string]any, []any and nil for absent optionals. Optional().Array() and
// Array().Array() return arrays typed as any for the same reason.
//
// Error model
//
// SafeParse never panics on input. Failures are reported as skema.Issues with
// paths such as "/users/[2]/name". Siblings are all evaluated: every array
// element, every object field and both number bounds contribute issues.
//
// Example
//
//	role := dsl.Union[string](dsl.Literal("user"), dsl.Literal("admin"))
//	user := dsl.Object(
//	    dsl.Field("username", dsl.String().Trim()),
//	    dsl.Field("age", dsl.Number().Min(18).Max(120)),
//	    dsl.Field("role", role),
//	    dsl.Field("tags", dsl.String().Array().Optional()),
//	)
//	res := user.SafeParse(map[string]any{"username": " ann ", "age": 30, "role": "admin"})
//	if !res.Success {
//	    log.Println(res.Issues)
//	}
package dsl
