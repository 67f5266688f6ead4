package strictjson

import "strconv"

// Reviver transforms a decoded node. key is the member name, or the decimal
// index for array elements, or "" for the root. Returning Undefined removes
// the member from its container; array elements become holes that the
// encoder skips, so indices of the remaining elements stay stable during the
// walk.
type Reviver func(key string, v Value) Value

// revive walks root post-order beneath a synthetic holder {"": root} and
// returns the holder's final "" member.
func revive(root Value, fn Reviver) Value {
	return walk("", root, fn)
}

func walk(key string, v Value, fn Reviver) Value {
	switch v.kind {
	case KindObject:
		if v.obj != nil {
			for _, k := range v.obj.Keys() {
				child, ok := v.obj.Get(k)
				if !ok {
					continue
				}
				if nv := walk(k, child, fn); nv.IsUndefined() {
					v.obj.Delete(k)
				} else {
					v.obj.Set(k, nv)
				}
			}
		}
	case KindArray:
		for i := range v.arr {
			if v.arr[i].IsUndefined() {
				continue
			}
			v.arr[i] = walk(strconv.Itoa(i), v.arr[i], fn)
		}
	}
	return fn(key, v)
}
