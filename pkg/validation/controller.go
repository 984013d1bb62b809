package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-searchdown/pkg/dom"
)

// Settings is the part of a widget configuration validation reads.
type Settings interface {
	Required() int
	Multiple() bool
	SimpleInput() bool
}

// Target bundles the elements of one widget.
type Target struct {
	Settings  Settings
	Container *dom.Element
	Input     *dom.Element
	Backing   *dom.Element
}

const (
	classInvalid = "sdInvalid"
	classHide    = "sdHide"
)

// Minimum returns how many entries a widget needs to be valid.
func Minimum(s Settings) int {
	if s == nil {
		return 0
	}
	return s.Required()
}

// Count returns how many entries the widget currently holds.
func Count(t Target) int {
	switch {
	case t.Settings.SimpleInput():
		if t.Input != nil && strings.TrimSpace(t.Input.Value) != "" {
			return 1
		}
		return 0
	case t.Settings.Multiple():
		if t.Backing == nil {
			return 0
		}
		return t.Backing.OptionCount()
	default:
		if t.Backing != nil && strings.TrimSpace(t.Backing.Value) != "" {
			return 1
		}
		return 0
	}
}

// Message returns the constraint message for a minimum that is not met.
func Message(minimum int) string {
	if minimum == 1 {
		return "Please select an option"
	}
	return fmt.Sprintf("Please select at least %d options", minimum)
}

// Check computes validity without touching the elements.
func Check(t Target) (bool, string) {
	minimum := Minimum(t.Settings)
	if minimum <= 0 {
		return true, ""
	}
	if Count(t) >= minimum {
		return true, ""
	}
	return false, Message(minimum)
}

// Validate sets the backing element's custom validity and toggles the
// invalid class on the container. Widgets that require nothing are always
// valid and left untouched.
func Validate(t Target) bool {
	if t.Settings == nil || Minimum(t.Settings) <= 0 {
		return true
	}
	valid, message := Check(t)
	if t.Backing != nil {
		t.Backing.SetCustomValidity(message)
	}
	if t.Container != nil {
		t.Container.ToggleClass(classInvalid, !valid)
	}
	return valid
}

// ReportValidity validates, then asks the backing element to report its
// validity while it is exposed but invisible. Class and inline style are
// restored on every path.
func ReportValidity(t Target) bool {
	if t.Settings == nil {
		return true
	}
	Validate(t)
	if t.Backing == nil {
		return true
	}

	backing := t.Backing
	classes := backing.Classes()
	saved := map[string]string{}
	for prop, value := range exposeStyle {
		saved[prop] = backing.Style(prop)
		backing.SetStyle(prop, value)
	}
	backing.RemoveClass(classHide)
	defer func() {
		backing.SetClasses(classes)
		for prop, value := range saved {
			backing.SetStyle(prop, value)
		}
	}()

	return backing.ReportValidity()
}

var exposeStyle = map[string]string{
	"position":       "absolute",
	"opacity":        "0",
	"pointer-events": "none",
}

// Install prepares a required widget at creation: the backing element is
// marked required, its validity is computed, and an invalid listener flags
// the container, focuses the input and hands the message to report.
func Install(t Target, report func(message string)) {
	if t.Settings == nil || Minimum(t.Settings) <= 0 || t.Backing == nil {
		return
	}
	t.Backing.Required = true
	_, message := Check(t)
	t.Backing.SetCustomValidity(message)
	t.Backing.OnInvalid(func(el *dom.Element) {
		if t.Container != nil {
			t.Container.AddClass(classInvalid)
		}
		if t.Input != nil {
			t.Input.Focus()
		}
		if report != nil {
			report(el.ValidationMessage())
		}
	})
}
