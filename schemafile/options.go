package schemafile

import (
	"errors"
	"fmt"
)

// TransformFunc maps a validated value. It is looked up by the fn attribute
// of transform documents.
type TransformFunc func(any) any

// Options controls compilation.
type Options struct {
	// Transforms adds or overrides named transform functions. The built-ins
	// are upper, lower, trim and string.
	Transforms map[string]TransformFunc
	// Strict turns warnings into errors.
	Strict bool
}

// Diag lists the warnings of one compilation, in document order. The zero
// value has none.
type Diag struct {
	warnings []string
}

func (d Diag) HasWarnings() bool  { return len(d.warnings) > 0 }
func (d Diag) Warnings() []string { return append([]string(nil), d.warnings...) }

// Err joins every warning into one error, or returns nil.
func (d Diag) Err() error {
	if len(d.warnings) == 0 {
		return nil
	}
	errs := make([]error, len(d.warnings))
	for i, w := range d.warnings {
		errs[i] = errors.New("schemafile: " + w)
	}
	return errors.Join(errs...)
}

func (d *Diag) warnf(format string, a ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, a...))
}
