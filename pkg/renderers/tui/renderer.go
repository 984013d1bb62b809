package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-searchdown/pkg/dropdown"
	"github.com/goliatone/go-searchdown/pkg/render"
	"github.com/goliatone/go-searchdown/pkg/widget"
)

// Renderer drives a widget from a terminal and prints plain-text views of
// widget snapshots.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	label        string
	pageSize     int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format of Render output.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints the value and the open dropdown of snap as plain text.
func (r *Renderer) Render(ctx context.Context, snap widget.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label := strings.TrimSpace(options.Label)
	if label == "" {
		label = snap.InputName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", label, strings.Join(snap.Value.Strings(), ", "))
	if snap.Query != "" {
		fmt.Fprintf(&b, "  typed: %s\n", snap.Query)
	}
	if !snap.Valid && snap.ValidationMessage != "" {
		fmt.Fprintf(&b, "  ! %s\n", snap.ValidationMessage)
	}
	if snap.Open && snap.View.Visible {
		for _, it := range snap.View.Items {
			fmt.Fprintf(&b, "  %s %s\n", marker(it.Selected), it.Key)
		}
		if snap.View.Add.Visible {
			fmt.Fprintf(&b, "  %s + %s\n", marker(snap.View.Add.Selected), snap.View.Add.Caption)
		}
	}
	return []byte(b.String()), nil
}

func marker(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

// Run prompts for a value and serializes it in the configured format.
func (r *Renderer) Run(ctx context.Context, w *widget.Widget) ([]byte, error) {
	value, err := r.Prompt(ctx, w)
	if err != nil {
		return nil, err
	}
	return r.serialize(w.Config().InputName(), value)
}

// Prompt asks for entries until the widget holds a complete value: one
// confirmed entry for single selects, an empty answer for multi-selects,
// or reaching the entry limit. An empty answer is refused while the widget
// is required and invalid.
func (r *Renderer) Prompt(ctx context.Context, w *widget.Widget) (widget.Value, error) {
	if ctx == nil {
		return widget.Value{}, errors.New("tui: context is required")
	}
	if w == nil {
		return widget.Value{}, ErrNoWidget
	}
	defer w.Close()

	for {
		if err := ctx.Err(); err != nil {
			return widget.Value{}, err
		}
		text, err := r.ask(ctx, w)
		if err != nil {
			return widget.Value{}, err
		}
		text = strings.TrimSpace(text)

		if text == "" {
			if w.Validate() {
				return w.Value(false), nil
			}
			if err := r.info(ctx, r.theme.ErrorPrefix+w.Snapshot().ValidationMessage); err != nil {
				return widget.Value{}, err
			}
			continue
		}

		done, err := r.enter(ctx, w, text)
		if err != nil {
			return widget.Value{}, err
		}
		if done {
			return w.Value(false), nil
		}
	}
}

func (r *Renderer) ask(ctx context.Context, w *widget.Widget) (string, error) {
	cfg := w.Config()
	message := r.message(w)
	if cfg.SimpleInput() && cfg.Textarea() {
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message})
	}
	return r.driver.Input(ctx, InputConfig{
		Message: message,
		Help:    help(w),
		Suggest: func(toComplete string) []string { return suggest(w, toComplete) },
	})
}

func (r *Renderer) message(w *widget.Widget) string {
	cfg := w.Config()
	msg := r.label
	if msg == "" {
		msg = cfg.Placeholder()
	}
	if cfg.Multiple() {
		if labels := tokenLabels(w); len(labels) > 0 {
			msg = fmt.Sprintf("%s [%s]", msg, strings.Join(labels, ", "))
		}
	}
	return r.theme.PromptPrefix + msg
}

func help(w *widget.Widget) string {
	cfg := w.Config()
	switch {
	case cfg.Multiple():
		return "Enter one value per prompt, leave empty to finish"
	case cfg.AddValues():
		return "Pick a value or type a new one"
	default:
		return "Pick a value"
	}
}

// enter applies typed text the way the dropdown would and reports whether
// prompting is finished.
func (r *Renderer) enter(ctx context.Context, w *widget.Widget, text string) (bool, error) {
	cfg := w.Config()
	if cfg.SimpleInput() {
		w.SetQuery(text)
		return true, nil
	}

	w.SetQuery(text)
	view := w.View()
	applied := false
	switch idx := exactMatch(view, text, cfg.CaseSensitive()); {
	case !view.Visible:
	case idx >= 0:
		applied = w.ClickItem(idx)
	case view.Add.Visible:
		applied = w.ClickAdd()
	case len(view.Items) == 1:
		applied = w.ClickItem(0)
	case len(view.Items) > 1:
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:  r.theme.PromptPrefix + fmt.Sprintf("Matches for %q", text),
			Options:  itemKeys(view),
			PageSize: r.pageSize,
		})
		if err != nil {
			return false, err
		}
		if choice >= 0 {
			applied = w.ClickItem(choice)
		}
	default:
		if err := r.info(ctx, r.theme.InfoPrefix+fmt.Sprintf("No option matches %q", text)); err != nil {
			return false, err
		}
	}
	if w.Query() != "" {
		w.SetQuery("")
	}

	if !applied {
		return false, nil
	}
	if !cfg.Multiple() {
		return true, nil
	}
	limit := cfg.EnteredLimit()
	return limit > 0 && len(w.Tokens()) >= limit, nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func (r *Renderer) serialize(name string, value widget.Value) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatPrettyText:
		return []byte(fmt.Sprintf("%s: %s\n", name, strings.Join(value.Strings(), ", "))), nil
	default:
		out, err := json.Marshal(struct {
			Name  string       `json:"name"`
			Value widget.Value `json:"value"`
		}{Name: name, Value: value})
		if err != nil {
			return nil, fmt.Errorf("tui: encode value: %w", err)
		}
		return out, nil
	}
}

func suggest(w *widget.Widget, toComplete string) []string {
	view := dropdown.Build(w.Config(), dropdown.Query{Text: toComplete, Entered: tokenLabels(w)})
	return itemKeys(view)
}

func exactMatch(view dropdown.View, text string, caseSensitive bool) int {
	for i, it := range view.Items {
		if it.Key == text || (!caseSensitive && strings.EqualFold(it.Key, text)) {
			return i
		}
	}
	return -1
}

func itemKeys(view dropdown.View) []string {
	out := make([]string, 0, len(view.Items))
	for _, it := range view.Items {
		out = append(out, it.Key)
	}
	return out
}

func tokenLabels(w *widget.Widget) []string {
	toks := w.Tokens()
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Label)
	}
	return out
}
