package skema

import "github.com/reoring/skema/i18n"

// IssueAt creates an Issue at the given path with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p Path, code, msg string, params map[string]any) Issue {
	return Issue{Path: p, Code: code, Message: msg, Params: params}
}

// NewIssue creates an Issue whose message is translated from code with the
// current i18n translator.
func NewIssue(p Path, code string, data map[string]string, params map[string]any) Issue {
	return IssueAt(p, code, i18n.T(code, data), params)
}
