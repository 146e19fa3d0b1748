package skema_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	skema "github.com/reoring/skema"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := skema.Issues{
		{Path: skema.Path{skema.Field("a")}, Code: skema.CodeNotString},
		{Path: nil, Code: skema.CodeNotObject},
		{Path: skema.Path{skema.Field("c"), skema.Index(2)}, Code: skema.CodeRequired},
		{Path: skema.Path{skema.Field("d")}, Code: skema.CodeNumberMax},
	}
	got := iss.Error()
	want := "not-string at /a; not-object at /; required at /c/[2]; ... (total 4)"
	if got != want {
		t.Fatalf("summary:\n got %q\nwant %q", got, want)
	}
	if (skema.Issues{}).Error() != "" {
		t.Fatalf("empty issues must render empty")
	}
}

func TestIssues_PrefixedCopies(t *testing.T) {
	child := skema.Issues{{Path: skema.Path{skema.Index(1)}, Code: skema.CodeNotNumber}}
	out := child.Prefixed(skema.Field("items"))
	if out[0].Path.String() != "/items/[1]" {
		t.Fatalf("prefixed: %s", out[0].Path)
	}
	if child[0].Path.String() != "/[1]" {
		t.Fatalf("receiver modified: %s", child[0].Path)
	}
	if skema.Issues(nil).Prefixed(skema.Field("x")) != nil {
		t.Fatalf("empty stays nil")
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	iss := skema.Issues{skema.NewIssue(nil, skema.CodeRequired, map[string]string{"key": "id"}, nil)}
	err := fmt.Errorf("load: %w", iss)
	got, ok := skema.AsIssues(err)
	if !ok || len(got) != 1 || got[0].Message != "id is required" {
		t.Fatalf("AsIssues: %v %v", got, ok)
	}
	var target skema.Issues
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed")
	}
	if _, ok := skema.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error is not Issues")
	}
	if _, ok := skema.AsIssues(nil); ok {
		t.Fatalf("nil is not Issues")
	}
}

func TestAppendIssues(t *testing.T) {
	var iss skema.Issues
	iss = skema.AppendIssues(iss)
	if iss == nil || len(iss) != 0 {
		t.Fatalf("AppendIssues must initialize")
	}
	iss = skema.AppendIssues(iss, skema.IssueAt(skema.Path{skema.Field("x")}, "custom", "msg", nil))
	if !strings.Contains(iss.Error(), "custom at /x") {
		t.Fatalf("summary: %s", iss.Error())
	}
}
