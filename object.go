package strictjson

type entry struct {
	key string
	val Value
}

// Object is an insertion-ordered mapping with unique string keys.
// Setting an existing key keeps its original position.
type Object struct {
	entries []entry
	index   map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.entries) }

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.entries[i].val, true
}

// Set stores v under key, appending the key when it is new.
func (o *Object) Set(key string, v Value) *Object {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.entries[i].val = v
		return o
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, entry{key: key, val: v})
	return o
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	delete(o.index, key)
	copy(o.entries[i:], o.entries[i+1:])
	o.entries[len(o.entries)-1] = entry{}
	o.entries = o.entries[:len(o.entries)-1]
	for j := i; j < len(o.entries); j++ {
		o.index[o.entries[j].key] = j
	}
	return true
}

// Keys returns a snapshot of the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.key
	}
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for _, e := range o.entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}
