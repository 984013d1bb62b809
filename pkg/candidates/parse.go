package candidates

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Parse converts raw configuration input into a Set. Accepted inputs are a
// Set, string slices, []any, Go maps (keys sorted), ordered maps and JSON
// text holding an array or an object.
func Parse(raw any) (Set, error) {
	switch v := raw.(type) {
	case Set:
		return v, nil
	case *Set:
		if v == nil {
			return Set{}, fmt.Errorf("%w: nil set", ErrUnsupported)
		}
		return *v, nil
	case []string:
		return NewList(v...), nil
	case []any:
		return NewList(stringifyAll(v)...), nil
	case map[string]string:
		keys := sortedKeys(v)
		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Label: v[k]})
		}
		return NewMapping(pairs...), nil
	case map[string]any:
		keys := sortedKeys(v)
		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, Pair{Key: k, Label: Stringify(v[k])})
		}
		return NewMapping(pairs...), nil
	case *orderedmap.OrderedMap[string, string]:
		if v == nil {
			return NewMapping(), nil
		}
		pairs := make([]Pair, 0, v.Len())
		for p := v.Oldest(); p != nil; p = p.Next() {
			pairs = append(pairs, Pair{Key: p.Key, Label: p.Value})
		}
		return NewMapping(pairs...), nil
	case *orderedmap.OrderedMap[string, any]:
		return fromOrdered(v), nil
	case string:
		return ParseJSON([]byte(v))
	case []byte:
		return ParseJSON(v)
	default:
		return Set{}, fmt.Errorf("%w: %T", ErrUnsupported, raw)
	}
}

// ParseJSON decodes a JSON array into a List or a JSON object into a
// Mapping. Any other JSON value is rejected.
func ParseJSON(data []byte) (Set, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Set{}, fmt.Errorf("%w: empty input", ErrUnsupported)
	}
	switch trimmed[0] {
	case '[':
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Set{}, fmt.Errorf("candidates: decode array: %w", err)
		}
		return NewList(stringifyAll(items)...), nil
	case '{':
		om := orderedmap.New[string, any]()
		if err := om.UnmarshalJSON(trimmed); err != nil {
			return Set{}, fmt.Errorf("candidates: decode object: %w", err)
		}
		return fromOrdered(om), nil
	default:
		return Set{}, fmt.Errorf("%w: json value is neither an array nor an object", ErrUnsupported)
	}
}

// MarshalJSON encodes lists as arrays and mappings as ordered objects.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.kind != KindMapping {
		return json.Marshal(s.Keys())
	}
	if s.pairs == nil {
		return []byte("{}"), nil
	}
	return s.pairs.MarshalJSON()
}

func (s *Set) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML accepts sequences, mappings (order preserved) and scalar
// strings holding JSON.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []any
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("candidates: decode yaml sequence: %w", err)
		}
		*s = NewList(stringifyAll(items)...)
		return nil
	case yaml.MappingNode:
		om := orderedmap.New[string, any]()
		if err := om.UnmarshalYAML(node); err != nil {
			return fmt.Errorf("candidates: decode yaml mapping: %w", err)
		}
		*s = fromOrdered(om)
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseJSON([]byte(node.Value))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("%w: yaml node kind %d", ErrUnsupported, node.Kind)
	}
}

// Stringify renders a decoded scalar the way it would appear in markup.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return strings.Trim(string(data), `"`)
	}
}

func stringifyAll(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, Stringify(item))
	}
	return out
}

func fromOrdered(om *orderedmap.OrderedMap[string, any]) Set {
	if om == nil {
		return NewMapping()
	}
	pairs := make([]Pair, 0, om.Len())
	for p := om.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, Pair{Key: p.Key, Label: Stringify(p.Value)})
	}
	return NewMapping(pairs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
