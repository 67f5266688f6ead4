package strictjson

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf8"
)

// ParseOpt bundles decoder options.
type ParseOpt struct {
	// Reviver, when set, is applied post-parse to every node (see Reviver).
	Reviver Reviver
	// MaxDepth limits container nesting; 0 means unlimited.
	MaxDepth int
}

// Parse decodes text, which must hold exactly one JSON value surrounded by
// optional whitespace. When several options are given the last one wins.
//
// Every grammar violation fails with a *SyntaxError. Objects with a repeated
// key are rejected.
func Parse(text string, opts ...ParseOpt) (Value, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	d := newDecoder(text, opt.MaxDepth)
	v, err := d.value()
	if err != nil {
		return Value{}, err
	}
	d.skipWhitespace()
	if !d.eof {
		return Value{}, d.errToken()
	}
	if opt.Reviver != nil {
		v = revive(v, opt.Reviver)
	}
	return v, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte, opts ...ParseOpt) (Value, error) {
	return Parse(string(data), opts...)
}

var escapes = map[rune]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// decoder is the cursor of a single Parse call: ch is the lookahead character
// found at text[pos:next].
type decoder struct {
	text     string
	pos      int
	next     int
	ch       rune
	eof      bool
	depth    int
	maxDepth int
}

// newDecoder preloads a synthetic space so the first skipWhitespace loads the
// first real character.
func newDecoder(text string, maxDepth int) *decoder {
	return &decoder{text: text, pos: -1, ch: ' ', maxDepth: maxDepth}
}

// advance consumes ch and loads the next character.
func (d *decoder) advance() error {
	if d.eof {
		return d.errEnd()
	}
	d.pos = d.next
	if d.pos >= len(d.text) {
		d.pos = len(d.text)
		d.ch = 0
		d.eof = true
		return nil
	}
	r, w := utf8.DecodeRuneInString(d.text[d.pos:])
	d.ch = r
	d.next = d.pos + w
	return nil
}

// expect consumes ch when it equals c.
func (d *decoder) expect(c rune) error {
	if d.eof {
		return d.errEnd()
	}
	if d.ch != c {
		tok := d.token()
		return d.errorf(CodeExpectedChar, map[string]string{"expected": string(c), "token": tok},
			"Expected %q instead of %q in JSON input", string(c), tok)
	}
	return d.advance()
}

// token returns the raw text of ch.
func (d *decoder) token() string {
	if d.eof {
		return ""
	}
	return d.text[d.pos:d.next]
}

func (d *decoder) skipWhitespace() {
	for !d.eof && (d.ch == ' ' || d.ch == '\t' || d.ch == '\r' || d.ch == '\n') {
		_ = d.advance()
	}
}

func (d *decoder) is(c rune) bool { return !d.eof && d.ch == c }

func (d *decoder) isDigit() bool { return !d.eof && d.ch >= '0' && d.ch <= '9' }

func (d *decoder) value() (Value, error) {
	d.skipWhitespace()
	if d.eof {
		return Value{}, d.errEnd()
	}
	switch d.ch {
	case '{':
		return d.object()
	case '[':
		return d.array()
	case '"':
		s, err := d.string()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case '-':
		return d.number()
	}
	if d.isDigit() {
		return d.number()
	}
	return d.word()
}

func (d *decoder) enter() error {
	d.depth++
	if d.maxDepth > 0 && d.depth > d.maxDepth {
		limit := strconv.Itoa(d.maxDepth)
		return d.errorf(CodeTooDeep, map[string]string{"max": limit}, "Maximum nesting depth %s exceeded", limit)
	}
	return nil
}

func (d *decoder) object() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	obj := NewObject()
	if err := d.expect('{'); err != nil {
		return Value{}, err
	}
	d.skipWhitespace()
	if d.is(',') {
		return Value{}, d.errToken()
	}
	if d.is('}') {
		if err := d.expect('}'); err != nil {
			return Value{}, err
		}
		return FromObject(obj), nil
	}
	for !d.eof {
		key, err := d.string()
		if err != nil {
			return Value{}, err
		}
		d.skipWhitespace()
		if d.eof {
			return Value{}, d.errEnd()
		}
		if err := d.expect(':'); err != nil {
			return Value{}, err
		}
		if obj.Has(key) {
			return Value{}, d.errorf(CodeDuplicateKey, map[string]string{"key": key}, "Repeated key %q in object", key)
		}
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v)
		d.skipWhitespace()
		if d.is('}') {
			if err := d.expect('}'); err != nil {
				return Value{}, err
			}
			return FromObject(obj), nil
		}
		if d.eof {
			return Value{}, d.errEnd()
		}
		if err := d.expect(','); err != nil {
			return Value{}, err
		}
		d.skipWhitespace()
		if d.eof {
			return Value{}, d.errEnd()
		}
		if d.is('}') {
			return Value{}, d.errToken()
		}
	}
	return Value{}, d.errorf(CodeBadObject, nil, "Bad object")
}

func (d *decoder) array() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	elems := []Value{}
	if err := d.expect('['); err != nil {
		return Value{}, err
	}
	d.skipWhitespace()
	if d.is(',') {
		return Value{}, d.errToken()
	}
	if d.is(']') {
		if err := d.expect(']'); err != nil {
			return Value{}, err
		}
		return Array(elems...), nil
	}
	for !d.eof {
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
		d.skipWhitespace()
		if d.is(']') {
			if err := d.expect(']'); err != nil {
				return Value{}, err
			}
			return Array(elems...), nil
		}
		if d.eof {
			return Value{}, d.errEnd()
		}
		if err := d.expect(','); err != nil {
			return Value{}, err
		}
		d.skipWhitespace()
		if d.eof {
			return Value{}, d.errEnd()
		}
		if d.is(']') {
			return Value{}, d.errToken()
		}
	}
	return Value{}, d.errorf(CodeBadArray, nil, "Bad array")
}

func (d *decoder) string() (string, error) {
	if !d.is('"') {
		tok := d.token()
		return "", d.errorf(CodeExpectedChar, map[string]string{"expected": `"`, "token": tok},
			"Expected %q instead of %q in JSON input", `"`, tok)
	}
	var buf []byte
	for {
		if err := d.advance(); err != nil {
			return "", err
		}
		if d.eof {
			break
		}
		switch {
		case d.ch == '"':
			if err := d.expect('"'); err != nil {
				return "", err
			}
			return string(buf), nil
		case d.ch == '\\':
			if err := d.advance(); err != nil {
				return "", err
			}
			if d.eof {
				return "", d.errEnd()
			}
			if d.ch == 'u' {
				var u uint16
				for i := 0; i < 4; i++ {
					if err := d.advance(); err != nil {
						return "", err
					}
					if d.eof {
						return "", d.errEnd()
					}
					h, ok := hexValue(d.ch)
					if !ok {
						return "", d.errToken()
					}
					u = u<<4 | h
				}
				buf = appendUnit(buf, u)
			} else if c, ok := escapes[d.ch]; ok {
				buf = append(buf, c)
			} else {
				return "", d.errToken()
			}
		case d.ch >= 0x20:
			buf = append(buf, d.text[d.pos:d.next]...)
		default:
			return "", d.errToken()
		}
	}
	if len(buf) > 0 {
		return "", d.errEnd()
	}
	return "", d.errorf(CodeBadString, nil, "Bad string")
}

func hexValue(r rune) (uint16, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint16(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint16(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint16(r-'A') + 10, true
	}
	return 0, false
}

func (d *decoder) number() (Value, error) {
	start := d.pos
	if d.is('-') {
		if err := d.advance(); err != nil {
			return Value{}, err
		}
	}
	if d.eof {
		return Value{}, d.errEnd()
	}
	switch {
	case d.ch == '0':
		if err := d.advance(); err != nil {
			return Value{}, err
		}
		if d.isDigit() {
			return Value{}, d.errToken()
		}
	case d.ch >= '1' && d.ch <= '9':
		if err := d.digits(); err != nil {
			return Value{}, err
		}
	default:
		return Value{}, d.errToken()
	}
	if d.is('.') {
		if err := d.advance(); err != nil {
			return Value{}, err
		}
		if d.eof {
			return Value{}, d.errEnd()
		}
		if !d.isDigit() {
			return Value{}, d.errToken()
		}
		if err := d.digits(); err != nil {
			return Value{}, err
		}
	}
	if d.is('e') || d.is('E') {
		if err := d.advance(); err != nil {
			return Value{}, err
		}
		if d.eof {
			return Value{}, d.errEnd()
		}
		if d.is('+') || d.is('-') {
			if err := d.advance(); err != nil {
				return Value{}, err
			}
		}
		if d.eof {
			return Value{}, d.errEnd()
		}
		if !d.isDigit() {
			return Value{}, d.errToken()
		}
		if err := d.digits(); err != nil {
			return Value{}, err
		}
	}
	f, err := strconv.ParseFloat(d.text[start:d.pos], 64)
	if math.IsInf(f, 0) || (err != nil && !errors.Is(err, strconv.ErrRange)) {
		return Value{}, d.errorf(CodeBadNumber, nil, "Bad number")
	}
	return Number(f), nil
}

func (d *decoder) digits() error {
	for d.isDigit() {
		if err := d.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) word() (Value, error) {
	var lit string
	var v Value
	switch d.ch {
	case 't':
		lit, v = "true", Bool(true)
	case 'f':
		lit, v = "false", Bool(false)
	case 'n':
		lit, v = "null", Null()
	default:
		return Value{}, d.errToken()
	}
	for _, c := range lit {
		if err := d.expect(c); err != nil {
			return Value{}, err
		}
	}
	return v, nil
}
