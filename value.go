package strictjson

import (
	"math"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota // Absent value; the zero Value.
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindDate
	KindRegExp
	KindFunc // Callable; encodes as null, or no output at the top level.
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "boolean",
	KindNumber:    "number",
	KindString:    "string",
	KindArray:     "array",
	KindObject:    "object",
	KindDate:      "date",
	KindRegExp:    "regexp",
	KindFunc:      "function",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a tagged variant over the JSON data model plus the host-only kinds
// the encoder has to classify (Undefined, Date, RegExp, Func).
//
// Strings are held as WTF-8: valid UTF-8 that may additionally carry isolated
// surrogate code points, so that a string round-trips as a sequence of UTF-16
// code units. See StringFromUnits and Value.Units.
//
// Arrays and objects are reference-like: copying a Value shares its children.
type Value struct {
	kind  Kind
	b     bool
	n     float64
	s     string // String text, RegExp source
	flags string // RegExp flags
	t     time.Time
	arr   []Value
	obj   *Object
}

func Undefined() Value           { return Value{} }
func Null() Value                { return Value{kind: KindNull} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Number(f float64) Value     { return Value{kind: KindNumber, n: f} }
func String(s string) Value      { return Value{kind: KindString, s: s} }
func Date(t time.Time) Value     { return Value{kind: KindDate, t: t} }
func Func() Value                { return Value{kind: KindFunc} }
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// RegExp returns a pattern value. Only the source and flags are kept.
func RegExp(source, flags string) Value {
	return Value{kind: KindRegExp, s: source, flags: flags}
}

// FromObject wraps o as a Value. A nil o yields an empty object.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind           { return v.kind }
func (v Value) IsUndefined() bool    { return v.kind == KindUndefined }
func (v Value) IsNull() bool         { return v.kind == KindNull }
func (v Value) IsContainer() bool    { return v.kind == KindArray || v.kind == KindObject }
func (v Value) AsBool() bool         { return v.kind == KindBool && v.b }
func (v Value) AsTime() time.Time    { return v.t }
func (v Value) AsArray() []Value     { return v.arr }
func (v Value) AsObject() *Object    { return v.obj }
func (v Value) Len() int             { return v.length() }
func (v Value) RegExpSource() string { return v.s }
func (v Value) RegExpFlags() string  { return v.flags }

// AsNumber returns the numeric payload, or NaN when v is not a number.
func (v Value) AsNumber() float64 {
	if v.kind != KindNumber {
		return math.NaN()
	}
	return v.n
}

// AsString returns the string payload, or "" when v is not a string.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Index returns the i-th array element, or Undefined when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Field returns the value stored under key, or Undefined.
func (v Value) Field(key string) Value {
	if v.kind != KindObject || v.obj == nil {
		return Value{}
	}
	x, _ := v.obj.Get(key)
	return x
}

func (v Value) length() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		if v.obj == nil {
			return 0
		}
		return v.obj.Len()
	case KindString:
		return len(encodeUnits(v.s))
	}
	return 0
}

// Equal reports whether a and b hold the same tree. Objects must carry the
// same keys in the same order. NaN equals NaN.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull, KindFunc:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n || (math.IsNaN(a.n) && math.IsNaN(b.n))
	case KindString:
		return a.s == b.s
	case KindDate:
		return a.t.Equal(b.t)
	case KindRegExp:
		return a.s == b.s && a.flags == b.flags
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ao, bo := a.obj, b.obj
		if ao == nil {
			ao = NewObject()
		}
		if bo == nil {
			bo = NewObject()
		}
		if ao.Len() != bo.Len() {
			return false
		}
		for i := range ao.entries {
			ea, eb := ao.entries[i], bo.entries[i]
			if ea.key != eb.key || !Equal(ea.val, eb.val) {
				return false
			}
		}
		return true
	}
	return false
}
