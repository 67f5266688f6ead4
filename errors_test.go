package strictjson_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	sj "github.com/reoring/strictjson"
)

func TestSyntaxError_LineColumnSnippet(t *testing.T) {
	in := "{\n  \"a\": 1,\n  \"b\": tru\n}"
	_, err := sj.Parse(in)
	se, ok := sj.AsSyntaxError(err)
	if !ok {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.Line() != 3 || se.Column() != 11 {
		t.Fatalf("expected 3:11, got %d:%d (%s)", se.Line(), se.Column(), se.Message)
	}
	want := "  \"b\": tru\n" + strings.Repeat(" ", 10) + "^"
	if got := se.Snippet(0); got != want {
		t.Fatalf("snippet:\n%s\nwant:\n%s", got, want)
	}
}

func TestSyntaxError_SnippetCutsLongLines(t *testing.T) {
	in := `[` + "1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1" + `,]`
	_, err := sj.Parse(in)
	se, ok := sj.AsSyntaxError(err)
	if !ok {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	got := se.Snippet(10)
	want := ",1,1,1,1,]\n" + strings.Repeat(" ", 9) + "^"
	if got != want {
		t.Fatalf("snippet:\n%q\nwant:\n%q", got, want)
	}
}

func TestSyntaxError_EndOfInput(t *testing.T) {
	_, err := sj.Parse(`[1,`)
	se, _ := sj.AsSyntaxError(err)
	if se == nil {
		t.Fatalf("expected SyntaxError")
	}
	if se.Offset != 3 || se.Column() != 4 {
		t.Fatalf("unexpected position %d col %d", se.Offset, se.Column())
	}
	if se.Snippet(0) != "[1,\n   ^" {
		t.Fatalf("unexpected snippet %q", se.Snippet(0))
	}
}

func TestAsSyntaxError_Wrapped(t *testing.T) {
	_, perr := sj.Parse(`x`)
	err := fmt.Errorf("loading config: %w", perr)
	se, ok := sj.AsSyntaxError(err)
	if !ok || se.Code != sj.CodeUnexpectedToken {
		t.Fatalf("expected wrapped SyntaxError, got %v", err)
	}
	if _, ok := sj.AsSyntaxError(nil); ok {
		t.Fatalf("nil must not be a SyntaxError")
	}
	if _, ok := sj.AsSyntaxError(errors.New("other")); ok {
		t.Fatalf("plain errors must not be SyntaxErrors")
	}
}

func TestSyntaxError_Params(t *testing.T) {
	_, err := sj.Parse(`{"k":1,"k":2}`)
	se, _ := sj.AsSyntaxError(err)
	if se == nil || se.Params["key"] != "k" {
		t.Fatalf("expected key param, got %v", err)
	}
	_, err = sj.Parse(`[1 2]`)
	se, _ = sj.AsSyntaxError(err)
	if se == nil || se.Params["expected"] != "," || se.Params["token"] != "2" {
		t.Fatalf("expected expected/token params, got %+v", se)
	}
}
