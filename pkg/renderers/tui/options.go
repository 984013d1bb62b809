package tui

// OutputFormat controls how the collected value is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits {"name": ..., "value": ...}.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits name: value.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the renderer puts in front of messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLabel sets the prompt message. The widget placeholder is used
// otherwise.
func WithLabel(label string) Option {
	return func(r *Renderer) {
		r.label = label
	}
}

// WithPageSize caps how many candidates a select prompt shows at once.
func WithPageSize(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.pageSize = n
		}
	}
}
