// Package widget assembles a searchdown: it builds the element structure
// inside a host container, routes interaction events through the dropdown
// pipeline and the selection machine, and keeps every instance in a
// Manager.
package widget

import (

	"github.com/rs/zerolog"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/dropdown"
	"github.com/goliatone/go-searchdown/pkg/notify"
	"github.com/goliatone/go-searchdown/pkg/options"
	"github.com/goliatone/go-searchdown/pkg/resolver"
	"github.com/goliatone/go-searchdown/pkg/selection"
	"github.com/goliatone/go-searchdown/pkg/validation"
)

// Class names applied to the generated elements.
const (
	ClassRoot            = "searchdown"
	ClassInputWrapper    = "sdInputWrapper"
	ClassInput           = "sdInput"
	ClassEnteredWrapper  = "sdEnteredWrapper"
	ClassEntered         = "sdEntered"
	ClassDropdownWrapper = "sdDropdownWrapper"
	ClassDropdown        = "sdDropdown"
	ClassOption          = "sdOption"
	ClassSelected        = "sdSelected"
	ClassAddOption       = "sdAddOption"
	ClassHide            = "sdHide"
	ClassTop             = "sdTop"
	ClassInvalid         = "sdInvalid"
	ClassEnteredInput    = "sdEnteredInput"
	ClassTextarea        = "textarea"

	// AttrCount links a container to its instance id.
	AttrCount = "data-sdcount"
)

// ChangeFunc is called with the container and the new value after every
// applied selection change.
type ChangeFunc func(container *dom.Element, value Value)

// Option customizes a Widget at creation.
type Option func(*Widget)

// WithOnChange registers a change callback.
func WithOnChange(fn ChangeFunc) Option {
	return func(w *Widget) {
		if w == nil || fn == nil {
			return
		}
		w.onChange = append(w.onChange, fn)
	}
}

// WithGeometry supplies layout measurements used to place the dropdown.
func WithGeometry(fn func() dropdown.Geometry) Option {
	return func(w *Widget) {
		if w == nil {
			return
		}
		w.geometry = fn
	}
}

// Widget is one live searchdown.
type Widget struct {
	id      int
	cfg     *options.Config
	manager *Manager
	logger  zerolog.Logger

	container       *dom.Element
	inputWrapper    *dom.Element
	enteredWrapper  *dom.Element
	input           *dom.Element
	backing         *dom.Element
	dropdownWrapper *dom.Element
	list            *dom.Element
	addRow          *dom.Element

	machine   *selection.Machine
	view      dropdown.View
	placement dropdown.Placement
	open      bool

	onChange []ChangeFunc
	geometry func() dropdown.Geometry
	ready    bool
}

func newWidget(m *Manager, id int, container *dom.Element, cfg *options.Config, opts ...Option) *Widget {
	w := &Widget{
		id:        id,
		cfg:       cfg,
		manager:   m,
		logger:    m.logger.With().Int("instance", id).Logger(),
		container: container,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(w)
	}

	w.build()
	w.machine = selection.New(cfg, w.input, w.backing,
		selection.WithNotifier(notify.Error),
		selection.WithRevalidate(func() { validation.Validate(w.target()) }),
	)
	w.machine.OnChange(w.handleChange)

	w.applyInitialValues()
	validation.Install(w.target(), notify.Error)
	w.ready = true
	return w
}

func (w *Widget) build() {
	c := w.container
	c.AddClass(ClassRoot)
	if w.cfg.Textarea() {
		c.AddClass(ClassTextarea)
	}
	for prop, value := range w.cfg.CSSVars() {
		c.SetStyle(prop, value)
	}

	w.inputWrapper = dom.New("div", ClassInputWrapper)
	w.enteredWrapper = dom.New("div", ClassEnteredWrapper)

	tag := "input"
	if w.cfg.Textarea() {
		tag = "textarea"
	}
	w.input = dom.New(tag, ClassInput)
	w.input.Placeholder = w.cfg.Placeholder()
	w.input.Name = w.cfg.InputName() + "LastInput"
	w.input.SetAttr("autocomplete", "off")
	if w.cfg.SimpleInput() {
		width := "100%"
		if w.cfg.Textarea() {
			width = "280px"
		}
		w.input.SetStyle("width", width)
	}

	if w.cfg.Multiple() {
		w.backing = dom.New("select", ClassHide, ClassEnteredInput)
		w.backing.Multiple = true
	} else {
		w.backing = dom.New("input", ClassHide, ClassEnteredInput)
		w.backing.Type = "text"
	}
	w.backing.Name = w.cfg.InputName()
	w.backing.ID = "sdInput-" + w.cfg.InputName()

	w.dropdownWrapper = dom.New("div", ClassDropdownWrapper, ClassHide)
	w.list = dom.New("ul", ClassDropdown)
	if w.cfg.AddValues() {
		w.addRow = dom.New("li", ClassAddOption)
		w.list.Append(w.addRow)
	}

	w.inputWrapper.Append(w.enteredWrapper, w.input)
	w.dropdownWrapper.Append(w.list)
	c.Append(w.inputWrapper, w.dropdownWrapper, w.backing)
}

func (w *Widget) applyInitialValues() {
	initial := w.cfg.InitialValues()
	if !w.cfg.Multiple() {
		if len(initial) == 0 || initial[0] == "" {
			return
		}
		initial = initial[:1]
	}
	for _, key := range initial {
		if value, ok := resolver.SubmissionValue(w.cfg, key); ok {
			w.machine.Confirm(value, false)
		}
	}
}

func (w *Widget) target() validation.Target {
	return validation.Target{
		Settings:  w.cfg,
		Container: w.container,
		Input:     w.input,
		Backing:   w.backing,
	}
}

func (w *Widget) handleChange(change selection.Change) {
	w.enteredWrapper.Clear()
	for _, tok := range change.Tokens {
		span := dom.New("span", ClassEntered)
		span.Text = tok.Label
		w.enteredWrapper.Append(span)
	}
	if !w.ready || len(w.onChange) == 0 {
		return
	}
	value := w.Value(false)
	for _, fn := range w.onChange {
		fn(w.container, value)
	}
}

// ID returns the instance id.
func (w *Widget) ID() int { return w.id }

// Config returns the widget configuration.
func (w *Widget) Config() *options.Config { return w.cfg }

// Container returns the host element.
func (w *Widget) Container() *dom.Element { return w.container }

// Input returns the visible text input.
func (w *Widget) Input() *dom.Element { return w.input }

// Backing returns the hidden form element that carries the submission.
func (w *Widget) Backing() *dom.Element { return w.backing }

// Tokens returns the entered tokens in order.
func (w *Widget) Tokens() []selection.Token { return w.machine.Tokens() }

// View returns the current dropdown content.
func (w *Widget) View() dropdown.View { return w.view }

// Open reports whether the dropdown is shown.
func (w *Widget) Open() bool { return w.open }

// Placement returns the last computed dropdown placement.
func (w *Widget) Placement() dropdown.Placement { return w.placement }

// Query returns the text currently typed into the input.
func (w *Widget) Query() string { return w.input.Value }

// Value reads the submission. includeUnconfirmed appends the typed but not
// confirmed text; simpleInput widgets always include it.
func (w *Widget) Value(includeUnconfirmed bool) Value {
	if w.cfg.SimpleInput() {
		includeUnconfirmed = true
	}
	if w.cfg.Multiple() {
		items := w.backing.SelectedValues()
		if items == nil {
			items = []string{}
		}
		if includeUnconfirmed && w.input.Value != "" {
			items = append(items, w.input.Value)
		}
		return List(items...)
	}
	if w.backing.Value != "" {
		return Scalar(w.backing.Value)
	}
	if includeUnconfirmed {
		return Scalar(w.input.Value)
	}
	return Scalar("")
}

// SetValue replaces the selection. Each value may be a display key or a
// submission value; values the widget cannot accept are skipped.
func (w *Widget) SetValue(values ...string) {
	resolved := make([]string, 0, len(values))
	for _, v := range values {
		if sv, ok := resolver.SubmissionValue(w.cfg, v); ok {
			resolved = append(resolved, sv)
		}
	}
	w.machine.SetAll(resolved)
	if w.open {
		w.refresh(w.input.Value)
	}
}

// Validate runs the required check; see validation.Validate.
func (w *Widget) Validate() bool { return validation.Validate(w.target()) }

// ReportValidity validates and reports; see validation.ReportValidity.
func (w *Widget) ReportValidity() bool { return validation.ReportValidity(w.target()) }

// Snapshot captures the render state of the widget.
func (w *Widget) Snapshot() Snapshot {
	valid, message := validation.Check(w.target())
	return Snapshot{
		ID:                w.id,
		InputName:         w.cfg.InputName(),
		Placeholder:       w.cfg.Placeholder(),
		Multiple:          w.cfg.Multiple(),
		SimpleInput:       w.cfg.SimpleInput(),
		Textarea:          w.cfg.Textarea(),
		Required:          w.cfg.Required() > 0,
		Classes:           w.container.Classes(),
		CSSVars:           w.cfg.CSSVars(),
		Query:             w.input.Value,
		Tokens:            w.machine.Tokens(),
		Value:             w.Value(false),
		Open:              w.open,
		View:              w.view,
		Placement:         w.placement,
		Valid:             valid,
		ValidationMessage: message,
	}
}

// Snapshot is a read-only copy of what a renderer needs.
type Snapshot struct {
	ID                int
	InputName         string
	Placeholder       string
	Multiple          bool
	SimpleInput       bool
	Textarea          bool
	Required          bool
	Classes           []string
	CSSVars           map[string]string
	Query             string
	Tokens            []selection.Token
	Value             Value
	Open              bool
	View              dropdown.View
	Placement         dropdown.Placement
	Valid             bool
	ValidationMessage string
}
