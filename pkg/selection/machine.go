// Package selection holds the entered tokens of a widget and keeps them in
// step with the backing form element.
package selection

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/resolver"
)

// Settings is the configuration the machine reads.
type Settings interface {
	resolver.Source
	Multiple() bool
	SimpleInput() bool
	EnteredLimit() int
	AllowDuplicates() bool
	CaseSensitive() bool
	Required() int
}

// Token is one entered value.
type Token struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// State is the coarse machine state.
type State int

const (
	Empty State = iota
	HasEntries
)

func (s State) String() string {
	if s == HasEntries {
		return "has-entries"
	}
	return "empty"
}

// Outcome reports what Confirm did.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeLimit
	OutcomeDuplicate
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeLimit:
		return "limit"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Change describes the selection after an applied transition.
type Change struct {
	Values []string
	Tokens []Token
}

// Machine is the selection state of one widget. It is not safe for
// concurrent use; widgets serialize events.
type Machine struct {
	settings Settings
	input    *dom.Element
	backing  *dom.Element

	tokens     []Token
	revalidate func()
	notify     func(text string)
	listeners  []func(Change)
}

// Option customizes a Machine.
type Option func(*Machine)

// WithRevalidate sets the hook run after every count change when the
// widget is required.
func WithRevalidate(fn func()) Option {
	return func(m *Machine) {
		if m == nil {
			return
		}
		m.revalidate = fn
	}
}

// WithNotifier sets where rejection messages go.
func WithNotifier(fn func(text string)) Option {
	return func(m *Machine) {
		if m == nil {
			return
		}
		m.notify = fn
	}
}

// New binds a machine to the visible input and backing element.
func New(settings Settings, input, backing *dom.Element, opts ...Option) *Machine {
	m := &Machine{settings: settings, input: input, backing: backing}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// OnChange registers a listener for applied transitions.
func (m *Machine) OnChange(fn func(Change)) {
	if fn == nil {
		return
	}
	m.listeners = append(m.listeners, fn)
}

func (m *Machine) State() State {
	if len(m.tokens) == 0 {
		return Empty
	}
	return HasEntries
}

func (m *Machine) Len() int { return len(m.tokens) }

func (m *Machine) Tokens() []Token { return append([]Token{}, m.tokens...) }

// Labels returns the display keys of the tokens in entry order.
func (m *Machine) Labels() []string {
	out := make([]string, 0, len(m.tokens))
	for _, t := range m.tokens {
		out = append(out, t.Label)
	}
	return out
}

// Values returns the submission values of the tokens in entry order.
func (m *Machine) Values() []string {
	out := make([]string, 0, len(m.tokens))
	for _, t := range m.tokens {
		out = append(out, t.Value)
	}
	return out
}

// Confirm enters a submission value. clearInput empties the visible input
// once the value is applied.
func (m *Machine) Confirm(value string, clearInput bool) Outcome {
	label, ok := resolver.DisplayKey(m.settings, value)
	if !ok {
		return OutcomeUnknown
	}

	outcome := m.apply(Token{Label: label, Value: value})
	if outcome != OutcomeApplied {
		return outcome
	}
	if clearInput && m.input != nil {
		m.input.Value = ""
	}
	m.changed()
	return OutcomeApplied
}

func (m *Machine) apply(tok Token) Outcome {
	switch {
	case m.settings.SimpleInput():
		if m.input != nil {
			m.input.Value = tok.Value
		}
		m.setScalar(tok.Value)
		return OutcomeApplied

	case !m.settings.Multiple():
		if len(m.tokens) > 0 {
			m.tokens[0] = tok
		} else {
			m.tokens = append(m.tokens, tok)
		}
		m.setScalar(tok.Value)
		return OutcomeApplied
	}

	if limit := m.settings.EnteredLimit(); limit > 0 && len(m.tokens) >= limit {
		m.reject(limitMessage(limit))
		return OutcomeLimit
	}
	if !m.settings.AllowDuplicates() && m.containsLabel(tok.Label) {
		return OutcomeDuplicate
	}
	m.tokens = append(m.tokens, tok)
	if m.backing != nil {
		m.backing.AddOption(dom.Option{Label: tok.Label, Value: tok.Value, Selected: true})
	}
	return OutcomeApplied
}

// Remove drops the token at index together with its backing entry.
func (m *Machine) Remove(index int) bool {
	if index < 0 || index >= len(m.tokens) {
		return false
	}
	m.tokens = append(m.tokens[:index], m.tokens[index+1:]...)
	if m.settings.Multiple() {
		if m.backing != nil {
			m.backing.RemoveOption(index)
		}
	} else {
		m.setScalar("")
	}
	m.changed()
	return true
}

// RemoveLast drops the newest token, as Backspace in an empty input does.
func (m *Machine) RemoveLast() bool {
	return m.Remove(len(m.tokens) - 1)
}

// SetAll replaces the selection with values, each confirmed in order.
// Rejected values are skipped.
func (m *Machine) SetAll(values []string) {
	m.tokens = nil
	if m.backing != nil {
		m.backing.ClearOptions()
		m.backing.Value = ""
	}
	if m.settings.SimpleInput() && m.input != nil {
		m.input.Value = ""
	}
	for _, v := range values {
		label, ok := resolver.DisplayKey(m.settings, v)
		if !ok {
			continue
		}
		m.apply(Token{Label: label, Value: v})
	}
	m.changed()
}

func (m *Machine) setScalar(value string) {
	if m.backing != nil {
		m.backing.Value = value
	}
}

func (m *Machine) containsLabel(label string) bool {
	if m.settings.CaseSensitive() {
		for _, t := range m.tokens {
			if t.Label == label {
				return true
			}
		}
		return false
	}
	fold := cases.Fold()
	want := fold.String(label)
	for _, t := range m.tokens {
		if fold.String(t.Label) == want {
			return true
		}
	}
	return false
}

func (m *Machine) reject(text string) {
	if m.notify != nil {
		m.notify(text)
	}
}

func (m *Machine) changed() {
	if m.settings.Required() > 0 && m.revalidate != nil {
		m.revalidate()
	}
	if len(m.listeners) == 0 {
		return
	}
	change := Change{Values: m.currentValues(), Tokens: m.Tokens()}
	for _, fn := range m.listeners {
		fn(change)
	}
}

func (m *Machine) currentValues() []string {
	if m.settings.SimpleInput() {
		if m.input == nil || m.input.Value == "" {
			return []string{}
		}
		return []string{m.input.Value}
	}
	return m.Values()
}

func limitMessage(limit int) string {
	suffix := "s"
	if limit == 1 {
		suffix = ""
	}
	return fmt.Sprintf("You cannot enter more than %d option%s.", limit, suffix)
}
