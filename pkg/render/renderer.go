// Package render defines how a searchdown snapshot is turned into output and
// keeps the available renderers by name.
package render

import (
	"context"

	"github.com/goliatone/go-searchdown/pkg/widget"
)

// Renderer converts a widget snapshot into bytes (HTML, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap widget.Snapshot, options RenderOptions) ([]byte, error)
}
