package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	searchdown "github.com/goliatone/go-searchdown"
	"github.com/goliatone/go-searchdown/components/timezones"
	"github.com/goliatone/go-searchdown/pkg/render"
	"github.com/goliatone/go-searchdown/pkg/renderers/vanilla"
)

const shutdownTimeout = 5 * time.Second

func (a *App) newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [config]",
		Short: "Serve a rendered widget, its stylesheet and the timezone suggestions API",
		Long: `serve renders the configured widget at /, the default stylesheet under
/assets/ and timezone suggestions at /api/timezones?q=. Without a
configuration the page shows a timezone picker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.serveConfig(cmd.Context(), args)
			if err != nil {
				return err
			}
			handler, err := a.newServeMux(raw)
			if err != nil {
				return err
			}
			return a.listen(cmd.Context(), addr, handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

func (a *App) serveConfig(ctx context.Context, args []string) (map[string]any, error) {
	if len(args) > 0 {
		return a.loadRaw(ctx, args[0])
	}
	zones, err := timezones.Candidates()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"values":      zones,
		"inputName":   "timezone",
		"placeholder": "Search timezones",
		"limit":       20,
	}, nil
}

// newServeMux builds the HTTP routes. Every page request renders a fresh
// widget with the ?value= selection and the ?q= query applied.
func (a *App) newServeMux(raw map[string]any) (http.Handler, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(searchdown.AssetsFS()))))
	if _, err := timezones.RegisterRoutes(mux, "/", timezones.WithLogger(*a.Logger())); err != nil {
		return nil, err
	}
	mux.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(rw, r)
			return
		}
		w, err := a.newWidget(raw)
		if err != nil {
			a.Logger().Error().Err(err).Msg("create widget")
			http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		q := r.URL.Query()
		if values := q["value"]; len(values) > 0 {
			w.SetValue(values...)
		}
		if text := q.Get("q"); text != "" {
			w.Focus()
			w.Type(text)
		}
		out, err := html.Render(r.Context(), w.Snapshot(), render.RenderOptions{Stylesheet: true, Label: q.Get("label")})
		if err != nil {
			a.Logger().Error().Err(err).Msg("render widget")
			http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		rw.Header().Set("Content-Type", html.ContentType())
		_, _ = rw.Write(out)
	})
	return mux, nil
}

func (a *App) listen(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger().Info().Str("addr", addr).Msg("serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	a.Logger().Info().Msg("server stopped")
	return nil
}
