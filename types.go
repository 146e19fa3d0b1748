package skema

// Kind is the discriminant of a schema node. The set is closed: every schema
// built by the dsl package reports exactly one of these.
type Kind int

const (
	KindLiteral Kind = iota
	KindString
	KindNumber
	KindOptional
	KindArray
	KindObject
	KindUnion
	KindTransform
)

var kindNames = [...]string{
	KindLiteral:   "literal",
	KindString:    "string",
	KindNumber:    "number",
	KindOptional:  "optional",
	KindArray:     "array",
	KindObject:    "object",
	KindUnion:     "union",
	KindTransform: "transform",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// ParseOpt bundles options for decoding a Source before validation.
type ParseOpt struct {
	// MaxDepth limits object/array nesting; 0 disables the check.
	MaxDepth int
	// MaxBytes caps the encoded input size; 0 disables the check.
	MaxBytes int64
	// RejectDuplicateKeys reports duplicate object keys as issues instead of
	// letting the last occurrence win.
	RejectDuplicateKeys bool
}
