package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request presentation settings that are not part of
// the widget configuration.
type RenderOptions struct {
	// Theme supplies CSS variables applied beneath the widget's own colour
	// overrides, plus the theme name and variant written as data attributes.
	Theme *theme.RendererConfig
	// Stylesheet inlines the default stylesheet before the widget markup.
	Stylesheet bool
	// Label renders a <label> bound to the visible input when non-empty.
	Label string
}
