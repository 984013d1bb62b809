// Package searchdown is a headless searchable combobox. A widget lives in a
// container element of an in-memory document, filters a candidate set as the
// user types, and mirrors the confirmed entries into a hidden form element.
//
// The package-level functions operate on a default Manager; applications
// that host several documents create their own with widget.NewManager.
package searchdown

import (
	"io"
	"sync"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/notify"
	"github.com/goliatone/go-searchdown/pkg/widget"
)

// Widget is one live searchdown.
type Widget = widget.Widget

// Value is what a field submits.
type Value = widget.Value

// MessageHandler receives user-facing messages from every widget.
type MessageHandler = notify.Handler

// Message kinds passed to a MessageHandler.
const (
	MessageSuccess = notify.KindSuccess
	MessageError   = notify.KindError
)

var (
	defaultMu      sync.RWMutex
	defaultManager = widget.NewManager()
)

// Default returns the manager behind the package-level functions.
func Default() *widget.Manager {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultManager
}

// SetDefault replaces the default manager. A nil m installs a fresh one.
func SetDefault(m *widget.Manager) {
	if m == nil {
		m = widget.NewManager()
	}
	defaultMu.Lock()
	defaultManager = m
	defaultMu.Unlock()
}

// Document returns the document of the default manager.
func Document() *dom.Document { return Default().Document() }

// Create builds a widget in ref, a container id or *dom.Element.
func Create(ref any, config map[string]any, opts ...widget.Option) (*Widget, error) {
	return Default().Create(ref, config, opts...)
}

// GetValue reads the submission of the field behind ref.
func GetValue(ref any, includeUnconfirmed bool) (Value, error) {
	return Default().GetValue(ref, includeUnconfirmed)
}

// SetValue replaces the selection of the widget behind ref.
func SetValue(ref any, values ...string) error {
	return Default().SetValue(ref, values...)
}

// Validate runs the required check of the widget behind ref.
func Validate(ref any) bool { return Default().Validate(ref) }

// ReportValidity validates and reports through the message handler.
func ReportValidity(ref any) bool { return Default().ReportValidity(ref) }

// SetMessageHandler routes messages from every widget to h. A nil h
// restores the default, which logs them.
func SetMessageHandler(h MessageHandler) { notify.SetHandler(h) }

// AutoCreate parses markup into the default document and creates a widget
// for every element with the searchdown class.
func AutoCreate(r io.Reader) ([]*Widget, error) { return Default().AutoCreate(r) }

// Dispose tears down the widget with instance id.
func Dispose(id int) bool { return Default().Dispose(id) }
