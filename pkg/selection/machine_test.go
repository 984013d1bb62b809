package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/logging"
	"github.com/goliatone/go-searchdown/pkg/options"
)

type fixture struct {
	machine  *Machine
	input    *dom.Element
	backing  *dom.Element
	messages []string
	checks   int
}

func newFixture(t *testing.T, raw map[string]any) *fixture {
	t.Helper()
	cfg := options.New(raw, options.WithID(1), options.WithLogger(logging.Nop))
	if issues := cfg.Issues(); len(issues) != 0 {
		t.Fatalf("unexpected config issues: %v", issues)
	}
	f := &fixture{input: dom.New("input", "sdInput")}
	f.backing = dom.New("input", "sdEnteredInput")
	if cfg.Multiple() {
		f.backing = dom.New("select", "sdEnteredInput")
		f.backing.Multiple = true
	}
	f.machine = New(cfg, f.input, f.backing,
		WithNotifier(func(text string) { f.messages = append(f.messages, text) }),
		WithRevalidate(func() { f.checks++ }),
	)
	return f
}

func (f *fixture) backingLabels() []string {
	var out []string
	for _, o := range f.backing.Options() {
		out = append(out, o.Label)
	}
	return out
}

func TestMultipleEntryLimit(t *testing.T) {
	f := newFixture(t, map[string]any{
		"values":       []string{"a", "b", "c"},
		"multiple":     true,
		"enteredLimit": 2,
	})

	for _, v := range []string{"a", "b"} {
		if got := f.machine.Confirm(v, true); got != OutcomeApplied {
			t.Fatalf("Confirm(%q) = %v", v, got)
		}
	}
	if got := f.machine.Confirm("c", true); got != OutcomeLimit {
		t.Fatalf("expected limit outcome, got %v", got)
	}
	if diff := cmp.Diff([]string{"You cannot enter more than 2 options."}, f.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, f.machine.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if f.backing.OptionCount() != 2 {
		t.Fatalf("backing out of sync: %v", f.backing.Options())
	}
}

func TestLimitMessageSingular(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"a", "b"}, "multiple": true, "enteredLimit": 1})
	f.machine.Confirm("a", false)
	f.machine.Confirm("b", false)
	if diff := cmp.Diff([]string{"You cannot enter more than 1 option."}, f.messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicatesIgnoreCase(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"Red"}, "multiple": true, "addValues": true})

	f.machine.Confirm("Red", true)
	if got := f.machine.Confirm("red", true); got != OutcomeDuplicate {
		t.Fatalf("expected duplicate, got %v", got)
	}
	if f.machine.Len() != 1 || f.backing.OptionCount() != 1 {
		t.Fatalf("duplicate must not touch tokens or backing")
	}
	if len(f.messages) != 0 {
		t.Fatalf("duplicates are silent, got %v", f.messages)
	}
}

func TestDuplicatesAllowedAndCaseSensitive(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"Red", "red"}, "multiple": true, "caseSensitive": true})
	if f.machine.Confirm("Red", true) != OutcomeApplied || f.machine.Confirm("red", true) != OutcomeApplied {
		t.Fatalf("case sensitive labels are distinct")
	}

	f = newFixture(t, map[string]any{"values": []string{"Red"}, "multiple": true, "allowDuplicates": true})
	f.machine.Confirm("Red", true)
	if f.machine.Confirm("Red", true) != OutcomeApplied || f.machine.Len() != 2 {
		t.Fatalf("duplicates should be allowed")
	}
}

func TestSingleSelectOverwrites(t *testing.T) {
	f := newFixture(t, map[string]any{"values": `{"Red":"#f00","Blue":"#00f"}`})

	f.machine.Confirm("#f00", true)
	f.machine.Confirm("#00f", true)

	if diff := cmp.Diff([]Token{{Label: "Blue", Value: "#00f"}}, f.machine.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if f.backing.Value != "#00f" {
		t.Fatalf("backing value = %q", f.backing.Value)
	}
	if f.machine.State() != HasEntries {
		t.Fatalf("expected has-entries state")
	}
}

func TestUnknownValueIsNoop(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"a"}})
	if got := f.machine.Confirm("z", true); got != OutcomeUnknown {
		t.Fatalf("expected unknown outcome, got %v", got)
	}
	if f.machine.State() != Empty || f.backing.Value != "" {
		t.Fatalf("unknown value must not change state")
	}
}

func TestSimpleInputWritesInput(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"a"}, "simpleInput": true, "addValues": true})
	f.input.Value = "partial"
	f.machine.Confirm("free text", false)
	if f.input.Value != "free text" || f.backing.Value != "free text" || f.machine.Len() != 0 {
		t.Fatalf("simple input should hold the value without tokens: input=%q backing=%q", f.input.Value, f.backing.Value)
	}
}

func TestRemoveKeepsBackingInSync(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"a", "b", "c"}, "multiple": true, "required": 1})
	f.machine.SetAll([]string{"a", "b", "c"})

	if !f.machine.Remove(1) {
		t.Fatalf("remove failed")
	}
	if diff := cmp.Diff([]string{"a", "c"}, f.backingLabels()); diff != "" {
		t.Fatalf("backing mismatch (-want +got):\n%s", diff)
	}
	if !f.machine.RemoveLast() {
		t.Fatalf("remove last failed")
	}
	if diff := cmp.Diff([]string{"a"}, f.backingLabels()); diff != "" {
		t.Fatalf("backing mismatch (-want +got):\n%s", diff)
	}
	if f.machine.Remove(5) {
		t.Fatalf("out of range remove should fail")
	}
	if f.checks != 3 {
		t.Fatalf("expected revalidation on each change, got %d", f.checks)
	}
}

func TestRemoveSingleClearsScalar(t *testing.T) {
	f := newFixture(t, map[string]any{"values": []string{"a"}})
	f.machine.Confirm("a", true)
	f.machine.RemoveLast()
	if f.backing.Value != "" || f.machine.State() != Empty {
		t.Fatalf("single remove should clear the backing value")
	}
	if f.machine.RemoveLast() {
		t.Fatalf("remove on empty should report false")
	}
}

func TestSetAllReplaces(t *testing.T) {
	f := newFixture(t, map[string]any{"values": `{"One":"1","Two":"2"}`, "multiple": true})
	f.machine.Confirm("1", true)

	var changes []Change
	f.machine.OnChange(func(c Change) { changes = append(changes, c) })
	f.machine.SetAll([]string{"2", "9"})

	want := []Token{{Label: "Two", Value: "2"}, {Label: "9", Value: "9"}}
	if diff := cmp.Diff(want, f.machine.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if len(changes) != 1 {
		t.Fatalf("expected one change notification, got %d", len(changes))
	}
	if diff := cmp.Diff([]string{"2", "9"}, changes[0].Values); diff != "" {
		t.Fatalf("change mismatch (-want +got):\n%s", diff)
	}
	if f.checks != 0 {
		t.Fatalf("revalidation only runs for required widgets")
	}
}
