package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	theme "github.com/goliatone/go-theme"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-searchdown/pkg/dropdown"
	"github.com/goliatone/go-searchdown/pkg/options"
	"github.com/goliatone/go-searchdown/pkg/render"
	"github.com/goliatone/go-searchdown/pkg/renderers/tui"
	"github.com/goliatone/go-searchdown/pkg/renderers/vanilla"
)

// ErrCheckFailed is returned by check --strict when options were rejected.
var ErrCheckFailed = errors.New("configuration has issues")

type checkReport struct {
	Options *orderedmap.OrderedMap[string, any] `json:"options"`
	Issues  []string                            `json:"issues"`
	Ignored []string                            `json:"ignored"`
}

func (a *App) newCheckCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check <config>",
		Short: "Resolve a configuration and report rejected options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.loadRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cfg := options.New(raw, options.WithLogger(*a.Logger()))

			report := checkReport{
				Options: cfg.Resolved(),
				Issues:  []string{},
				Ignored: cfg.Ignored(),
			}
			for _, issue := range cfg.Issues() {
				report.Issues = append(report.Issues, issue.Error())
			}
			if report.Ignored == nil {
				report.Ignored = []string{}
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("app: encode report: %w", err)
			}
			cmd.Println(string(out))

			if strict && len(report.Issues)+len(report.Ignored) > 0 {
				return ErrCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any option is rejected or unknown")
	return cmd
}

func (a *App) newFilterCommand() *cobra.Command {
	var (
		entered []string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "filter <config> [query]",
		Short: "Show the dropdown a query produces",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.loadRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			query := ""
			if len(args) > 1 {
				query = args[1]
			}
			cfg := options.New(raw, options.WithLogger(*a.Logger()))
			view := dropdown.Build(cfg, dropdown.Query{Text: query, Entered: entered})

			switch format {
			case "json":
				out, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return fmt.Errorf("app: encode view: %w", err)
				}
				cmd.Println(string(out))
				return nil
			case "table", "":
				return writeViewTable(cmd, view)
			default:
				return fmt.Errorf("app: unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringSliceVar(&entered, "entered", nil, "display keys already entered")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, json")
	return cmd
}

func writeViewTable(cmd *cobra.Command, view dropdown.View) error {
	if !view.Visible {
		cmd.Println("dropdown hidden")
		return nil
	}
	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header("#", "Key", "Label", "Selected")
	for i, it := range view.Items {
		if err := table.Append(strconv.Itoa(i+1), it.Key, it.Label, mark(it.Selected)); err != nil {
			return err
		}
	}
	if view.Add.Visible {
		if err := table.Append("+", view.Add.Caption, view.Add.Query, mark(view.Add.Selected)); err != nil {
			return err
		}
	}
	return table.Render()
}

func mark(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}

func (a *App) newRenderCommand() *cobra.Command {
	var (
		values     []string
		query      string
		open       bool
		label      string
		stylesheet bool
		renderer   string
		themeName  string
		variant    string
	)
	cmd := &cobra.Command{
		Use:   "render <config>",
		Short: "Print the widget markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.loadRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w, err := a.newWidget(raw)
			if err != nil {
				return err
			}
			if len(values) > 0 {
				w.SetValue(values...)
			}
			if open || query != "" {
				w.Focus()
			}
			if query != "" {
				w.Type(query)
			}

			registry, err := a.renderers()
			if err != nil {
				return err
			}
			opts := render.RenderOptions{Label: label, Stylesheet: stylesheet}
			if themeName != "" || variant != "" {
				opts.Theme = &theme.RendererConfig{Theme: themeName, Variant: variant}
			}
			out, err := registry.Render(cmd.Context(), renderer, w.Snapshot(), opts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&values, "value", nil, "initial selection (repeatable)")
	flags.StringVar(&query, "query", "", "text typed into the input; opens the dropdown")
	flags.BoolVar(&open, "open", false, "render with the dropdown open")
	flags.StringVar(&label, "label", "", "label for the input")
	flags.BoolVar(&stylesheet, "stylesheet", false, "inline the default stylesheet")
	flags.StringVarP(&renderer, "renderer", "r", "vanilla", "renderer: vanilla, tui")
	flags.StringVar(&themeName, "theme", "", "theme name written on the container")
	flags.StringVar(&variant, "variant", "", "theme variant written on the container")
	return cmd
}

func (a *App) renderers() (*render.Registry, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	text, err := a.tuiRenderer()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(text); err != nil {
		return nil, err
	}
	return registry, nil
}

func (a *App) tuiRenderer(opts ...tui.Option) (*tui.Renderer, error) {
	if a.driver != nil {
		opts = append([]tui.Option{tui.WithPromptDriver(a.driver)}, opts...)
	}
	return tui.New(opts...)
}

func (a *App) newPromptCommand() *cobra.Command {
	var (
		format string
		label  string
	)
	cmd := &cobra.Command{
		Use:   "prompt <config>",
		Short: "Pick a value interactively and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.loadRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w, err := a.newWidget(raw)
			if err != nil {
				return err
			}

			outputFormat := tui.OutputFormatJSON
			switch format {
			case "json", "":
			case "text":
				outputFormat = tui.OutputFormatPrettyText
			default:
				return fmt.Errorf("app: unknown format %q", format)
			}

			r, err := a.tuiRenderer(tui.WithOutputFormat(outputFormat), tui.WithLabel(label))
			if err != nil {
				return err
			}
			out, err := r.Run(cmd.Context(), w)
			if err != nil {
				return err
			}
			if outputFormat == tui.OutputFormatJSON {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "json", "output format: json, text")
	cmd.Flags().StringVar(&label, "label", "", "prompt message (defaults to the placeholder)")
	return cmd
}
