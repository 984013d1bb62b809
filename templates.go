package searchdown

import (
	"io/fs"

	"github.com/goliatone/go-searchdown/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML template so callers can
// extend it without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the default stylesheet for serving over HTTP.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
