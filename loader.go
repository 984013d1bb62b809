package searchdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-searchdown/internal/source/loader"
	"github.com/goliatone/go-searchdown/pkg/options"
	"github.com/goliatone/go-searchdown/pkg/source"
)

// NewLoader constructs a configuration loader while keeping the concrete
// type internal.
func NewLoader(opts ...source.LoaderOption) source.Loader {
	return loader.New(source.NewLoaderOptions(opts...))
}

// LoadConfig reads a YAML (or JSON) configuration document into a raw
// configuration map suitable for Create.
func LoadConfig(ctx context.Context, l source.Loader, src source.Source) (map[string]any, error) {
	if l == nil {
		l = NewLoader()
	}
	data, err := l.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("searchdown: load %s: %w", src.Location(), err)
	}
	raw, err := options.LoadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("searchdown: parse %s: %w", src.Location(), err)
	}
	return raw, nil
}
