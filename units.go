package strictjson

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Strings carry UTF-16 code-unit semantics on top of Go strings using WTF-8:
// an isolated surrogate is stored as its 3-byte generalized UTF-8 form
// (ED A0..BF 80..BF), while a high/low pair is always stored as the 4-byte
// UTF-8 encoding of the scalar it forms.

const (
	surrogateMin   = 0xD800
	lowSurrogateLo = 0xDC00
	surrogateMax   = 0xDFFF
)

// StringFromUnits builds a string Value from UTF-16 code units. Paired
// surrogates combine into one scalar; isolated ones are kept as-is.
func StringFromUnits(units []uint16) Value {
	var buf []byte
	for _, u := range units {
		buf = appendUnit(buf, u)
	}
	return String(string(buf))
}

// Units returns the UTF-16 code units of a string Value.
func (v Value) Units() []uint16 {
	if v.kind != KindString {
		return nil
	}
	return encodeUnits(v.s)
}

// HasLoneSurrogate reports whether s carries an isolated surrogate code unit.
func HasLoneSurrogate(s string) bool {
	for i := 0; i < len(s); {
		if _, ok := surrogateAt(s, i); ok {
			return true
		}
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	return false
}

// appendUnit appends one code unit, merging a low surrogate into a directly
// preceding high surrogate.
func appendUnit(buf []byte, u uint16) []byte {
	r := rune(u)
	if r < surrogateMin || r > surrogateMax {
		return utf8.AppendRune(buf, r)
	}
	if r >= lowSurrogateLo {
		if n := len(buf); n >= 3 {
			if hi, ok := surrogateAt(string(buf[n-3:]), 0); ok && hi < lowSurrogateLo {
				return utf8.AppendRune(buf[:n-3], utf16.DecodeRune(hi, r))
			}
		}
	}
	return append(buf, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
}

// surrogateAt decodes a WTF-8 surrogate sequence starting at s[i].
func surrogateAt(s string, i int) (rune, bool) {
	if i+2 >= len(s) || s[i] != 0xED {
		return 0, false
	}
	b1, b2 := s[i+1], s[i+2]
	if b1 < 0xA0 || b1 > 0xBF || b2&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | rune(b1&0x3F)<<6 | rune(b2&0x3F), true
}

func encodeUnits(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		if r, ok := surrogateAt(s, i); ok {
			out = append(out, uint16(r))
			i += 3
			continue
		}
		r, w := utf8.DecodeRuneInString(s[i:])
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			out = append(out, uint16(hi), uint16(lo))
		} else {
			out = append(out, uint16(r))
		}
		i += w
	}
	return out
}
