// Package strictjson is a self-contained JSON codec meant as a drop-in for a
// host platform's native JSON support.
//
//   - Parse: a strict, character-at-a-time decoder. Duplicate object keys,
//     trailing commas, leading zeros, raw control characters in strings and
//     trailing content all fail with a positioned *SyntaxError.
//   - Stringify: a recursive encoder with native quirks (NaN/±Inf as null,
//     RegExp as {}, Date as an ISO-8601 string, only lone surrogates escaped).
//   - MarshalJSON / FromGo / ToGo: bridges to Go data and RFC 8259 conformant
//     output through go-json.
//
// Strings follow UTF-16 code-unit semantics: \uD800 decodes to an isolated
// surrogate stored as WTF-8, and paired surrogates combine into one scalar.
//
// Both entry points keep their cursor and depth state per call, so they are
// safe for concurrent use.
//
// Typical usage:
//
//	v, err := strictjson.Parse(`{"a":1,"b":[1,2]}`)
//	text, ok := strictjson.Stringify(v, 2)
//
//	v, err = strictjson.Parse(src, strictjson.ParseOpt{Reviver: func(k string, v strictjson.Value) strictjson.Value {
//		if k == "secret" {
//			return strictjson.Undefined()
//		}
//		return v
//	}})
package strictjson
