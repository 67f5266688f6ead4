package strictjson

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Stringify encodes v as JSON text using indent spaces per nesting level.
// indent <= 0 yields compact output. It returns ok=false, and no text, when v
// itself is Undefined or a Func.
//
// The output follows the native quirks this package mirrors: NaN and ±Inf
// become null, RegExp values become {}, object keys are written verbatim and
// strings are escaped only where they hold a lone surrogate.
func Stringify(v Value, indent int) (text string, ok bool) {
	if v.kind == KindUndefined || v.kind == KindFunc {
		return "", false
	}
	if indent < 0 {
		indent = 0
	}
	e := &encoder{indent: strings.Repeat(" ", indent)}
	e.value(v)
	return e.buf.String(), true
}

// StringifyIndent is Stringify with the indent width coerced by IndentWidth.
func StringifyIndent(v Value, indent any) (string, bool) {
	return Stringify(v, IndentWidth(indent))
}

// IndentWidth coerces x to a non-negative indent width. Numbers are truncated
// toward zero; numeric strings are parsed; anything else, including negative
// and non-finite numbers, yields 0.
func IndentWidth(x any) int {
	switch t := x.(type) {
	case nil, bool:
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return widthOf(f)
	case Value:
		switch t.kind {
		case KindNumber:
			return widthOf(t.n)
		case KindString:
			return IndentWidth(t.s)
		}
		return 0
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n > 0 && n <= math.MaxInt32 {
			return int(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n := rv.Uint(); n <= math.MaxInt32 {
			return int(n)
		}
	case reflect.Float32, reflect.Float64:
		return widthOf(rv.Float())
	}
	return 0
}

func widthOf(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f > math.MaxInt32 {
		return 0
	}
	return int(math.Trunc(f))
}

// encoder carries the per-call output buffer and depth counter.
type encoder struct {
	buf    strings.Builder
	indent string
	depth  int
}

// value dispatches on the variant. Case order follows the classification
// priority: null-like, plain object, pattern, text, date, array, scalar.
func (e *encoder) value(v Value) {
	switch v.kind {
	case KindUndefined, KindNull, KindFunc:
		e.buf.WriteString("null")
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			e.buf.WriteString("null")
			return
		}
		e.buf.WriteString(FormatNumber(v.n))
	case KindObject:
		e.object(v.obj)
	case KindRegExp:
		e.buf.WriteString("{}")
	case KindString:
		e.string(v.s)
	case KindDate:
		e.buf.WriteByte('"')
		e.buf.WriteString(FormatDate(v.t))
		e.buf.WriteByte('"')
	case KindArray:
		e.array(v.arr)
	case KindBool:
		e.buf.WriteString(strconv.FormatBool(v.b))
	}
}

func (e *encoder) newline() {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < e.depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) object(o *Object) {
	n := 0
	if o != nil {
		for _, en := range o.entries {
			if !en.val.IsUndefined() {
				n++
			}
		}
	}
	if n == 0 {
		e.buf.WriteString("{}")
		return
	}
	e.buf.WriteByte('{')
	e.depth++
	first := true
	for _, en := range o.entries {
		if en.val.IsUndefined() {
			continue
		}
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.newline()
		e.buf.WriteByte('"')
		e.buf.WriteString(en.key)
		e.buf.WriteString(`":`)
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		e.value(en.val)
	}
	e.depth--
	e.newline()
	e.buf.WriteByte('}')
}

func (e *encoder) array(elems []Value) {
	n := 0
	for _, x := range elems {
		if !x.IsUndefined() {
			n++
		}
	}
	if n == 0 {
		e.buf.WriteString("[]")
		return
	}
	e.buf.WriteByte('[')
	e.depth++
	first := true
	for _, x := range elems {
		if x.IsUndefined() {
			continue
		}
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		e.newline()
		e.value(x)
	}
	e.depth--
	e.newline()
	e.buf.WriteByte(']')
}

// string quotes s, escaping only lone surrogates. A WTF-8 high surrogate
// directly followed by a low one is written as the scalar they form.
func (e *encoder) string(s string) {
	e.buf.WriteByte('"')
	for i := 0; i < len(s); {
		cu, ok := surrogateAt(s, i)
		if !ok {
			_, w := utf8.DecodeRuneInString(s[i:])
			e.buf.WriteString(s[i : i+w])
			i += w
			continue
		}
		if cu < lowSurrogateLo {
			if lo, ok := surrogateAt(s, i+3); ok && lo >= lowSurrogateLo {
				e.buf.WriteRune(utf16.DecodeRune(cu, lo))
				i += 6
				continue
			}
		}
		e.buf.WriteString(`\u`)
		e.buf.WriteString(strconv.FormatInt(int64(cu), 16))
		i += 3
	}
	e.buf.WriteByte('"')
}
