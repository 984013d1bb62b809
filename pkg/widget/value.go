package widget

import (
	"strings"

	"github.com/goccy/go-json"
)

// Value is what a field submits: one string for single selects and plain
// inputs, a list for multi-selects.
type Value struct {
	Items []string
	List  bool
}

// Scalar wraps a single value.
func Scalar(s string) Value { return Value{Items: []string{s}} }

// List wraps several values.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Items: items, List: true}
}

// String returns the scalar value, or list items joined by commas.
func (v Value) String() string {
	if !v.List {
		if len(v.Items) == 0 {
			return ""
		}
		return v.Items[0]
	}
	return strings.Join(v.Items, ",")
}

// Strings returns the items as a list regardless of shape.
func (v Value) Strings() []string {
	if !v.List && len(v.Items) == 1 && v.Items[0] == "" {
		return []string{}
	}
	return append([]string{}, v.Items...)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.List {
		return json.Marshal(v.Strings())
	}
	return json.Marshal(v.String())
}
