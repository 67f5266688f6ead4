package codec

import sj "github.com/reoring/strictjson"

// Chain applies revivers left to right. The chain stops as soon as one of
// them omits the member.
func Chain(revivers ...sj.Reviver) sj.Reviver {
	return func(key string, v sj.Value) sj.Value {
		for _, r := range revivers {
			if r == nil {
				continue
			}
			v = r(key, v)
			if v.IsUndefined() {
				return v
			}
		}
		return v
	}
}

// OmitKeys drops members whose name is one of keys, at any depth.
func OmitKeys(keys ...string) sj.Reviver {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return func(key string, v sj.Value) sj.Value {
		if _, ok := drop[key]; ok && key != "" {
			return sj.Undefined()
		}
		return v
	}
}
