package strictjson

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

// FromGo converts a Go value into a Value. Maps get their keys sorted;
// values without a direct mapping (structs, typed maps, pointers, ...) are
// marshalled with go-json and decoded back strictly, which keeps struct
// field order.
func FromGo(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Object:
		return FromObject(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case interface{ Float64() (float64, error) }:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("strictjson: number %v: %w", t, err)
		}
		return Number(f), nil
	case time.Time:
		return Date(t), nil
	case *regexp.Regexp:
		return RegExp(t.String(), ""), nil
	case []Value:
		return Array(t...), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := FromGo(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			v, err := FromGo(t[k])
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, v)
		}
		return FromObject(obj), nil
	}
	if reflect.TypeOf(x).Kind() == reflect.Func {
		return Func(), nil
	}
	data, err := json.Marshal(x)
	if err != nil {
		return Value{}, fmt.Errorf("strictjson: marshal %T: %w", x, err)
	}
	return ParseBytes(data)
}

// ToGo converts v into plain Go data: nil, bool, float64, string, []any,
// map[string]any, time.Time. RegExp yields its source; Undefined and Func
// yield nil. Undefined array holes are dropped.
func (v Value) ToGo() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindDate:
		return v.t
	case KindRegExp:
		return v.s
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, e := range v.arr {
			if e.IsUndefined() {
				continue
			}
			out = append(out, e.ToGo())
		}
		return out
	case KindObject:
		out := make(map[string]any)
		if v.obj != nil {
			for _, e := range v.obj.entries {
				if e.val.IsUndefined() {
					continue
				}
				out[e.key] = e.val.ToGo()
			}
		}
		return out
	}
	return nil
}

// MarshalJSON implements json.Marshaler with RFC 8259 conformant output:
// unlike Stringify, keys and strings are fully escaped and non-encodable
// values (Undefined, Func, NaN, ±Inf) become null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler using the strict decoder.
func (v *Value) UnmarshalJSON(data []byte) error {
	x, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*v = x
	return nil
}

// MarshalIndent is MarshalJSON followed by go-json indentation.
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, prefix, indent); err != nil {
		return nil, fmt.Errorf("strictjson: indent: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(FormatNumber(v.n))
	case KindString:
		return marshalString(buf, v.s)
	case KindDate:
		return marshalString(buf, FormatDate(v.t))
	case KindRegExp:
		buf.WriteString("{}")
	case KindArray:
		buf.WriteByte('[')
		first := true
		for _, e := range v.arr {
			if e.IsUndefined() {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := marshalValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		first := true
		if v.obj != nil {
			for _, e := range v.obj.entries {
				if e.val.IsUndefined() {
					continue
				}
				if !first {
					buf.WriteByte(',')
				}
				first = false
				if err := marshalString(buf, e.key); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := marshalValue(buf, e.val); err != nil {
					return err
				}
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// marshalString escapes s with go-json, emitting lone surrogates as \uXXXX
// escapes that go-json would otherwise replace with U+FFFD.
func marshalString(buf *bytes.Buffer, s string) error {
	if !HasLoneSurrogate(s) {
		return appendQuoted(buf, s, true)
	}
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		cu, ok := surrogateAt(s, i)
		if !ok {
			i++
			continue
		}
		if err := appendQuoted(buf, s[start:i], false); err != nil {
			return err
		}
		fmt.Fprintf(buf, `\u%04x`, cu)
		i += 3
		start = i
	}
	if err := appendQuoted(buf, s[start:], false); err != nil {
		return err
	}
	buf.WriteByte('"')
	return nil
}

func appendQuoted(buf *bytes.Buffer, s string, withQuotes bool) error {
	if s == "" {
		if withQuotes {
			buf.WriteString(`""`)
		}
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("strictjson: quote string: %w", err)
	}
	if !withQuotes {
		b = b[1 : len(b)-1]
	}
	buf.Write(b)
	return nil
}
