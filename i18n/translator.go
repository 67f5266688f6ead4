package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for syntax error codes.
// data provides optional parameters to embed in the message ("token",
// "expected", "key", "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"unexpected_end":   "unexpected end of JSON input",
		"unexpected_token": "unexpected token {token}",
		"expected_char":    "expected {expected} instead of {token}",
		"duplicate_key":    "repeated key {key} in object",
		"bad_number":       "number out of range",
		"bad_string":       "unterminated string",
		"bad_object":       "unterminated object",
		"bad_array":        "unterminated array",
		"too_deep":         "nesting deeper than {max} levels",
	},
	"ja": {
		"unexpected_end":   "JSON入力が途中で終わっています",
		"unexpected_token": "予期しないトークン {token} です",
		"expected_char":    "{expected} が必要ですが {token} がありました",
		"duplicate_key":    "オブジェクトのキー {key} が重複しています",
		"bad_number":       "数値が範囲外です",
		"bad_string":       "文字列が閉じられていません",
		"bad_object":       "オブジェクトが閉じられていません",
		"bad_array":        "配列が閉じられていません",
		"too_deep":         "ネストが {max} 階層を超えています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msgs, ok := dict[t.lang]
	if !ok {
		msgs = dict["en"]
	}
	tmpl, ok := msgs[code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		if k != "max" {
			v = quote(v)
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func quote(s string) string {
	if s == "" {
		return "end of input"
	}
	return `"` + s + `"`
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T renders code through the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

// New returns a dictionary Translator for lang without touching the global one.
func New(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}
