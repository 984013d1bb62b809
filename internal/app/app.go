// Package app wires the searchdown command line tool: configuration,
// logging and the cobra command tree.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	searchdown "github.com/goliatone/go-searchdown"
	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/renderers/tui"
	"github.com/goliatone/go-searchdown/pkg/source"
	"github.com/goliatone/go-searchdown/pkg/widget"
)

// App carries the dependencies shared by every command.
type App struct {
	version string

	viper  *viper.Viper
	config *Config
	logger *zerolog.Logger

	out    io.Writer
	errOut io.Writer

	driver    tui.PromptDriver
	loaderOps []source.LoaderOption
}

// Option customizes an App.
type Option func(*App) error

// WithConfig replaces the configuration resolved from flags.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger fixes the logger; flags no longer rebuild it.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = &logger
		return nil
	}
}

// WithOutput redirects command output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) error {
		if out != nil {
			a.out = out
		}
		if errOut != nil {
			a.errOut = errOut
		}
		return nil
	}
}

// WithPromptDriver replaces the terminal driver used by prompt.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *App) error {
		if driver == nil {
			return fmt.Errorf("app: prompt driver is nil")
		}
		a.driver = driver
		return nil
	}
}

// WithLoaderOptions appends options to every configuration loader.
func WithLoaderOptions(opts ...source.LoaderOption) Option {
	return func(a *App) error {
		a.loaderOps = append(a.loaderOps, opts...)
		return nil
	}
}

// New creates an App for version.
func New(version string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		viper:   newViper(),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Version reports the build version.
func (a *App) Version() string { return a.version }

// Config returns the resolved configuration, nil before a command ran.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger, a disabled one before a command ran.
func (a *App) Logger() *zerolog.Logger {
	if a.logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return a.logger
}

// loadRaw fetches a configuration document by path or URL.
func (a *App) loadRaw(ctx context.Context, ref string) (map[string]any, error) {
	src, err := source.Parse(ref)
	if err != nil {
		return nil, err
	}
	opts := append([]source.LoaderOption{}, a.loaderOps...)
	if a.config != nil && a.config.AllowHTTP {
		opts = append(opts, source.WithHTTPFallback(a.config.Timeout))
	}
	raw, err := searchdown.LoadConfig(ctx, searchdown.NewLoader(opts...), src)
	if err != nil {
		return nil, err
	}
	a.Logger().Debug().Str("source", src.Location()).Int("keys", len(raw)).Msg("configuration loaded")
	return raw, nil
}

// newWidget creates a widget from raw in a fresh document.
func (a *App) newWidget(raw map[string]any) (*widget.Widget, error) {
	m := widget.NewManager(widget.WithLogger(*a.Logger()))
	container := dom.New("div")
	container.ID = "searchdown"
	m.Document().Append(container)
	return m.Create(container, raw)
}
