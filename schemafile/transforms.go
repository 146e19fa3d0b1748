package schemafile

import (
	"fmt"
	"strings"

	"github.com/reoring/skema/dsl"
)

var builtinTransforms = map[string]TransformFunc{
	"upper":  mapString(strings.ToUpper),
	"lower":  mapString(strings.ToLower),
	"trim":   mapString(dsl.TrimSpace),
	"string": func(v any) any { return fmt.Sprint(v) },
}

// mapString applies fn to string values and passes anything else through.
func mapString(fn func(string) string) TransformFunc {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	}
}

func (o Options) transform(name string) (TransformFunc, bool) {
	if fn, ok := o.Transforms[name]; ok && fn != nil {
		return fn, true
	}
	fn, ok := builtinTransforms[name]
	return fn, ok
}
