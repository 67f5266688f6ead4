package i18n

import (
	"strings"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unexpected_end", nil); msg == "unexpected_end" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unexpected_end", nil); msg == "unexpected end of JSON input" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Params(t *testing.T) {
	tr := New("en")
	msg := tr.Message("expected_char", map[string]string{"expected": ":", "token": "x"})
	if msg != `expected ":" instead of "x"` {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg = tr.Message("unexpected_token", map[string]string{"token": ""})
	if !strings.Contains(msg, "end of input") {
		t.Fatalf("empty token should render as end of input, got %q", msg)
	}
}

func TestTranslator_UnknownCodeAndLanguage(t *testing.T) {
	if msg := New("fr").Message("duplicate_key", map[string]string{"key": "a"}); msg != `repeated key "a" in object` {
		t.Fatalf("unknown language should fall back to en, got %q", msg)
	}
	if msg := New("en").Message("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown code should echo the code, got %q", msg)
	}
}

func TestSetTranslator_NilRestoresDefault(t *testing.T) {
	SetTranslator(stubTranslator{})
	if msg := T("bad_number", nil); msg != "stub" {
		t.Fatalf("expected stub translator, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("bad_number", nil); msg != "number out of range" {
		t.Fatalf("expected default translator, got %q", msg)
	}
}

type stubTranslator struct{}

func (stubTranslator) Message(string, map[string]string) string { return "stub" }
