package engine

// Enforcement wrapper for TokenSource to apply duplicate key handling,
// max depth checks, and max bytes truncation in a streaming fashion.

// Step is one path step recorded by the enforcement wrapper.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    []Step
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	RejectDuplicates bool
	MaxDepth         int
	// MaxBytes is compared against the inner source's Location after every
	// token; sources reporting -1 are never truncated.
	MaxBytes int64
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind       containerKind
	keys       map[string]struct{}
	path       []Step
	nextIndex  int
	pendingKey string
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.RejectDuplicates && opt.MaxDepth <= 0 && opt.MaxBytes <= 0 {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "parse_error", Path: path, Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject {
				if _, dup := top.keys[tok.String]; dup && e.opt.RejectDuplicates {
					path := appendStep(top.path, Step{Key: tok.String})
					return Token{}, IssueError{SimpleIssue{Code: "duplicate_key", Path: path, Message: "key '" + tok.String + "' duplicated"}}
				}
				top.keys[tok.String] = struct{}{}
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valuePath()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.inner.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: "truncated", Message: "max bytes exceeded"}}
		}
	}
	return tok, nil
}

// valuePath returns the path of the value that starts with the current token
// and advances the array index of the enclosing frame.
func (e *enforcingTokenSource) valuePath() []Step {
	n := len(e.stack)
	if n == 0 {
		return nil
	}
	top := &e.stack[n-1]
	if top.kind == kindArray {
		p := appendStep(top.path, Step{Index: top.nextIndex, IsIndex: true})
		top.nextIndex++
		return p
	}
	return appendStep(top.path, Step{Key: top.pendingKey})
}

func appendStep(base []Step, s Step) []Step {
	out := make([]Step, len(base)+1)
	copy(out, base)
	out[len(base)] = s
	return out
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
