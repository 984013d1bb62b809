package options

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-searchdown/pkg/candidates"
)

// LoadYAML reads a widget configuration document. The values setting is
// decoded as a candidate set so mapping order survives; other settings are
// passed through as plain YAML scalars and sequences for New to coerce, as
// are values that do not decode as a set, so New reports them as issues.
func LoadYAML(r io.Reader) (map[string]any, error) {
	if r == nil {
		return nil, fmt.Errorf("options: missing reader")
	}
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("options: decode yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("options: configuration must be a mapping")
	}

	out := make(map[string]any, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		node := root.Content[i+1]

		if name, ok := ParseName(key); ok && name == Values {
			var set candidates.Set
			if err := node.Decode(&set); err == nil {
				out[key] = set
				continue
			}
		}

		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("options: decode %s: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}
