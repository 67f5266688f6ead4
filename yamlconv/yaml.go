// Package yamlconv projects strictjson Values to and from YAML using
// gopkg.in/yaml.v3 nodes, keeping object key order and rejecting duplicate
// mapping keys the same way the JSON decoder does.
package yamlconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	sj "github.com/reoring/strictjson"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Reader decodes a multi-document YAML stream into Values using yaml.Node to
// detect duplicate keys (with positions).
type Reader struct {
	dec *yaml.Decoder
}

// NewReader constructs a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: yaml.NewDecoder(r)}
}

// Next returns the next YAML document converted into a Value. It returns
// io.EOF when the stream is exhausted. An empty document yields Null.
func (r *Reader) Next() (sj.Value, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return sj.Value{}, io.EOF
		}
		return sj.Value{}, err
	}
	if len(root.Content) == 0 {
		return sj.Null(), nil
	}
	return FromNode(root.Content[0])
}

// ReadAll reads all documents from the YAML stream.
func (r *Reader) ReadAll() ([]sj.Value, error) {
	var out []sj.Value
	for {
		v, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// Unmarshal decodes the first document of data.
func Unmarshal(data []byte) (sj.Value, error) {
	v, err := NewReader(bytes.NewReader(data)).Next()
	if errors.Is(err, io.EOF) {
		return sj.Null(), nil
	}
	return v, err
}

// FromNode converts a yaml.Node tree into a Value.
func FromNode(n *yaml.Node) (sj.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return sj.Null(), nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return sj.Null(), nil
		}
		return FromNode(n.Alias)
	case yaml.MappingNode:
		obj := sj.NewObject()
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return sj.Value{}, fmt.Errorf("yamlconv: non-scalar mapping key at %d:%d", k.Line, k.Column)
			}
			key := k.Value
			if pos, dup := first[key]; dup {
				return sj.Value{}, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := FromNode(n.Content[i+1])
			if err != nil {
				return sj.Value{}, err
			}
			obj.Set(key, val)
		}
		return sj.FromObject(obj), nil
	case yaml.SequenceNode:
		elems := make([]sj.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromNode(c)
			if err != nil {
				return sj.Value{}, err
			}
			elems = append(elems, v)
		}
		return sj.Array(elems...), nil
	case yaml.ScalarNode:
		return scalar(n), nil
	}
	return sj.Null(), nil
}

func scalar(n *yaml.Node) sj.Value {
	switch n.ShortTag() {
	case "!!null":
		return sj.Null()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return sj.Bool(b)
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return sj.Number(float64(i))
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return sj.Number(f)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return sj.Number(f)
		}
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return sj.Date(t)
		}
	}
	return sj.String(n.Value)
}

// ToNode converts v into a yaml.Node tree. Undefined members are dropped;
// Func, Undefined, NaN and ±Inf map to null to match Stringify; RegExp maps
// to an empty mapping.
func ToNode(v sj.Value) *yaml.Node {
	switch v.Kind() {
	case sj.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.AsBool())}
	case sj.KindNumber:
		f := v.AsNumber()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nullNode()
		}
		tag := "!!float"
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: sj.FormatNumber(f)}
	case sj.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.AsString()}
	case sj.KindDate:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: sj.FormatDate(v.AsTime())}
	case sj.KindRegExp:
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
	case sj.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.AsArray() {
			if e.IsUndefined() {
				continue
			}
			n.Content = append(n.Content, ToNode(e))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case sj.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if o := v.AsObject(); o != nil {
			o.Range(func(key string, e sj.Value) bool {
				if e.IsUndefined() {
					return true
				}
				n.Content = append(n.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
					ToNode(e))
				return true
			})
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	}
	return nullNode()
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// Marshal renders v as a YAML document indented by two spaces.
func Marshal(v sj.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToNode(v)); err != nil {
		return nil, fmt.Errorf("yamlconv: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlconv: encode: %w", err)
	}
	return buf.Bytes(), nil
}
