package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-searchdown/pkg/dom"
)

type settings struct {
	required int
	multiple bool
	simple   bool
}

func (s settings) Required() int     { return s.required }
func (s settings) Multiple() bool    { return s.multiple }
func (s settings) SimpleInput() bool { return s.simple }

func newTarget(s settings) Target {
	backing := dom.New("input", "sdHide", "sdEnteredInput")
	if s.multiple {
		backing = dom.New("select", "sdHide", "sdEnteredInput")
		backing.Multiple = true
	}
	return Target{
		Settings:  s,
		Container: dom.New("div", "searchdown"),
		Input:     dom.New("input", "sdInput"),
		Backing:   backing,
	}
}

func TestValidateSingle(t *testing.T) {
	target := newTarget(settings{required: 1})

	if Validate(target) {
		t.Fatalf("empty single select should be invalid")
	}
	if got := target.Backing.ValidationMessage(); got != "Please select an option" {
		t.Fatalf("unexpected message %q", got)
	}
	if !target.Container.HasClass("sdInvalid") {
		t.Fatalf("container should be flagged")
	}

	target.Backing.Value = " Red "
	if !Validate(target) || target.Container.HasClass("sdInvalid") || target.Backing.ValidationMessage() != "" {
		t.Fatalf("filled single select should be valid and clean")
	}
}

func TestValidateMultiple(t *testing.T) {
	target := newTarget(settings{required: 2, multiple: true})
	target.Backing.AddOption(dom.Option{Label: "a", Value: "a", Selected: true})

	if Validate(target) {
		t.Fatalf("one of two should be invalid")
	}
	if got := target.Backing.ValidationMessage(); got != "Please select at least 2 options" {
		t.Fatalf("unexpected message %q", got)
	}
	target.Backing.AddOption(dom.Option{Label: "b", Value: "b", Selected: true})
	if !Validate(target) {
		t.Fatalf("two of two should be valid")
	}
}

func TestValidateSimpleInputUsesVisibleInput(t *testing.T) {
	target := newTarget(settings{required: 1, simple: true})
	target.Backing.Value = "ignored"
	if Validate(target) {
		t.Fatalf("simple input counts the visible input only")
	}
	target.Input.Value = "typed"
	if !Validate(target) {
		t.Fatalf("typed text should satisfy required")
	}
}

func TestNotRequiredIsAlwaysValid(t *testing.T) {
	target := newTarget(settings{})
	if !Validate(target) || !ReportValidity(target) {
		t.Fatalf("widgets without required are valid")
	}
	if target.Container.HasClass("sdInvalid") {
		t.Fatalf("class must not be toggled")
	}
}

func TestReportValidityRestoresState(t *testing.T) {
	target := newTarget(settings{required: 1})
	var reported []string
	Install(target, func(msg string) { reported = append(reported, msg) })

	if !target.Backing.Required {
		t.Fatalf("install should mark the backing element required")
	}
	target.Container.RemoveClass("sdInvalid")

	if ReportValidity(target) {
		t.Fatalf("expected invalid report")
	}
	if diff := cmp.Diff([]string{"Please select an option"}, reported); diff != "" {
		t.Fatalf("reported mismatch (-want +got):\n%s", diff)
	}
	if !target.Input.Focused() || !target.Container.HasClass("sdInvalid") {
		t.Fatalf("invalid listener should focus input and flag container")
	}
	if diff := cmp.Diff([]string{"sdHide", "sdEnteredInput"}, target.Backing.Classes()); diff != "" {
		t.Fatalf("backing classes not restored (-want +got):\n%s", diff)
	}
	if target.Backing.StyleText() != "" {
		t.Fatalf("backing style not restored: %q", target.Backing.StyleText())
	}
}

func TestInstallPrecomputesValidity(t *testing.T) {
	target := newTarget(settings{required: 1})
	target.Backing.Value = "preset"
	Install(target, nil)
	if target.Backing.ValidationMessage() != "" {
		t.Fatalf("preset value should leave the element valid")
	}
	if target.Container.HasClass("sdInvalid") {
		t.Fatalf("install must not toggle the class")
	}
}
