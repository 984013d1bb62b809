package candidates

import (
	"errors"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags the two shapes a Set can take.
type Kind int

const (
	KindList Kind = iota
	KindMapping
)

func (k Kind) String() string {
	if k == KindMapping {
		return "mapping"
	}
	return "list"
}

// ErrUnsupported is returned when a raw value cannot become a Set.
var ErrUnsupported = errors.New("candidates: unsupported value")

// Pair is one display key and the label submitted for it.
type Pair struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Set is an immutable candidate collection. The zero value is an empty list.
type Set struct {
	kind  Kind
	list  []string
	pairs *orderedmap.OrderedMap[string, string]
}

// NewList builds a List set.
func NewList(items ...string) Set {
	return Set{kind: KindList, list: append([]string{}, items...)}
}

// NewMapping builds a Mapping set. Later pairs overwrite earlier labels for
// the same key without moving it.
func NewMapping(pairs ...Pair) Set {
	om := orderedmap.New[string, string](orderedmap.WithCapacity[string, string](len(pairs)))
	for _, p := range pairs {
		om.Set(p.Key, p.Label)
	}
	return Set{kind: KindMapping, pairs: om}
}

func (s Set) Kind() Kind { return s.kind }

func (s Set) IsMapping() bool { return s.kind == KindMapping }

// Len reports the number of candidates.
func (s Set) Len() int {
	if s.kind == KindMapping {
		if s.pairs == nil {
			return 0
		}
		return s.pairs.Len()
	}
	return len(s.list)
}

func (s Set) Empty() bool { return s.Len() == 0 }

// Keys returns the display keys in declaration order.
func (s Set) Keys() []string {
	if s.kind != KindMapping {
		return append([]string{}, s.list...)
	}
	out := make([]string, 0, s.Len())
	for p := s.oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Pairs returns key/label pairs. For lists key and label are equal.
func (s Set) Pairs() []Pair {
	if s.kind != KindMapping {
		out := make([]Pair, 0, len(s.list))
		for _, v := range s.list {
			out = append(out, Pair{Key: v, Label: v})
		}
		return out
	}
	out := make([]Pair, 0, s.Len())
	for p := s.oldest(); p != nil; p = p.Next() {
		out = append(out, Pair{Key: p.Key, Label: p.Value})
	}
	return out
}

// Contains reports whether key is a candidate.
func (s Set) Contains(key string) bool {
	if s.kind == KindMapping {
		if s.pairs == nil {
			return false
		}
		_, ok := s.pairs.Get(key)
		return ok
	}
	for _, v := range s.list {
		if v == key {
			return true
		}
	}
	return false
}

// Label returns the submission label for key. Lists return the key itself.
func (s Set) Label(key string) (string, bool) {
	if s.kind != KindMapping {
		if s.Contains(key) {
			return key, true
		}
		return "", false
	}
	if s.pairs == nil {
		return "", false
	}
	return s.pairs.Get(key)
}

// KeyForLabel returns the first key whose label equals label.
func (s Set) KeyForLabel(label string) (string, bool) {
	if s.kind != KindMapping {
		if s.Contains(label) {
			return label, true
		}
		return "", false
	}
	for p := s.oldest(); p != nil; p = p.Next() {
		if p.Value == label {
			return p.Key, true
		}
	}
	return "", false
}

// Append returns a copy of s with value added. Mappings get value as both
// key and label.
func (s Set) Append(value string) Set {
	if s.kind != KindMapping {
		return NewList(append(s.Keys(), value)...)
	}
	pairs := append(s.Pairs(), Pair{Key: value, Label: value})
	return NewMapping(pairs...)
}

func (s Set) String() string {
	return s.kind.String() + "[" + strings.Join(s.Keys(), ", ") + "]"
}

func (s Set) oldest() *orderedmap.Pair[string, string] {
	if s.pairs == nil {
		return nil
	}
	return s.pairs.Oldest()
}
