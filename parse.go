package skema

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/skema/internal/engine"
)

// ParseFrom decodes src into an untyped value and validates it with p.
//
// Problems with the input itself (malformed syntax, duplicate keys when
// rejected, depth or size limits) are reported as issues in the Result. The
// error return is reserved for context cancellation.
func ParseFrom[T any](ctx context.Context, p Parser[T], src Source, opts ...ParseOpt) (Result[T], error) {
	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v, err := DecodeSource(src, opt)
	if err != nil {
		return Fail[T](toIssues(err)), nil
	}
	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}
	return p.SafeParse(v), nil
}

// DecodeSource builds the untyped value (map[string]any, []any, string,
// json.Number, bool, nil) from src while applying opt.
func DecodeSource(src Source, opt ParseOpt) (any, error) {
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		RejectDuplicates: opt.RejectDuplicateKeys,
		MaxDepth:         opt.MaxDepth,
		MaxBytes:         opt.MaxBytes,
	})
	return eng.DecodeDocument(enforced)
}

func toIssues(err error) Issues {
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{NewIssue(fromEngineSteps(ie.Path), ie.Code, nil, map[string]any{"detail": ie.Message})}
	}
	msg := err.Error()
	if errors.Is(err, io.ErrUnexpectedEOF) {
		msg = "unexpected end of input"
	}
	return Issues{NewIssue(nil, CodeParseError, nil, map[string]any{"detail": msg})}
}

func fromEngineSteps(steps []eng.Step) Path {
	if len(steps) == 0 {
		return nil
	}
	p := make(Path, len(steps))
	for i, s := range steps {
		if s.IsIndex {
			p[i] = Index(s.Index)
		} else {
			p[i] = Field(s.Key)
		}
	}
	return p
}
