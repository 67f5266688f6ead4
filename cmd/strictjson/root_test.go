package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	sj "github.com/reoring/strictjson"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFmt_Indent(t *testing.T) {
	out, _, err := run(t, `{"a":1,"b":[1,2]}`, "fmt", "--indent", "2")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestFmt_StrictEscapesQuotes(t *testing.T) {
	out, _, err := run(t, `{"q":"a\"b"}`, "fmt", "--strict")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != `{"q":"a\"b"}`+"\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheck_ReportsSyntaxError(t *testing.T) {
	_, stderr, err := run(t, "{\n  \"a\": 1,\n}", "check")
	if err == nil {
		t.Fatalf("expected error")
	}
	var re reportedError
	if !errors.As(err, &re) {
		t.Fatalf("expected reportedError, got %T", err)
	}
	if _, ok := sj.AsSyntaxError(err); !ok {
		t.Fatalf("expected wrapped SyntaxError, got %v", err)
	}
	if !strings.Contains(stderr, "<stdin>:3:1:") {
		t.Fatalf("expected position in report, got %q", stderr)
	}
	if !strings.Contains(stderr, "unexpected token \"}\"") {
		t.Fatalf("expected message in report, got %q", stderr)
	}
}

func TestCheck_Japanese(t *testing.T) {
	_, stderr, err := run(t, `{"a":1,"a":2}`, "check", "--lang", "ja")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(stderr, "重複") {
		t.Fatalf("expected japanese message, got %q", stderr)
	}
}

func TestYAML_FromJSONAndBack(t *testing.T) {
	out, _, err := run(t, `{"b":1,"a":"x"}`, "yaml")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "b: 1\na: x\n" {
		t.Fatalf("unexpected yaml %q", out)
	}

	out, _, err = run(t, "b: 1\na: x\n", "fmt", "--from", "yaml")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != `{"b":1,"a":"x"}`+"\n" {
		t.Fatalf("unexpected json %q", out)
	}
}

func TestFmt_YAMLDuplicateKey(t *testing.T) {
	_, stderr, err := run(t, "a: 1\na: 2\n", "fmt", "--from", "yaml")
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if !strings.Contains(stderr, "duplicate YAML key") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.HasPrefix(out, "strictjson ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestFmt_RevivesDates(t *testing.T) {
	out, _, err := run(t, `{"at":"2025-01-01T09:00:00+09:00"}`, "fmt", "--dates")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != `{"at":"2025-01-01T00:00:00.000Z"}`+"\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCheck_MaxDepth(t *testing.T) {
	_, stderr, err := run(t, `[[[1]]]`, "check", "--max-depth", "2")
	if err == nil {
		t.Fatalf("expected depth error")
	}
	se, ok := sj.AsSyntaxError(err)
	if !ok || se.Code != sj.CodeTooDeep {
		t.Fatalf("expected too_deep, got %v", err)
	}
	if !strings.Contains(stderr, "nesting deeper than 2 levels") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestCheck_UnsupportedFormat(t *testing.T) {
	_, _, err := run(t, `1`, "check", "--from", "toml")
	if err == nil || !strings.Contains(err.Error(), "unsupported input format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
