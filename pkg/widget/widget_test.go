package widget

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/dropdown"
	"github.com/goliatone/go-searchdown/pkg/logging"
	"github.com/goliatone/go-searchdown/pkg/notify"
	"github.com/goliatone/go-searchdown/pkg/selection"
)

type message struct {
	Text string
	Kind notify.Kind
}

func captureMessages(t *testing.T) *[]message {
	t.Helper()
	var got []message
	notify.SetHandler(func(text string, kind notify.Kind) {
		got = append(got, message{Text: text, Kind: kind})
	})
	t.Cleanup(func() { notify.SetHandler(nil) })
	return &got
}

func newTestManager() *Manager {
	return NewManager(WithLogger(logging.Nop))
}

func mustCreate(t *testing.T, m *Manager, id string, raw map[string]any, opts ...Option) *Widget {
	t.Helper()
	container := dom.New("div")
	container.ID = id
	m.Document().Append(container)
	w, err := m.Create(id, raw, opts...)
	if err != nil {
		t.Fatalf("create %s: %v", id, err)
	}
	return w
}

func itemKeys(v dropdown.View) []string {
	out := []string{}
	for _, it := range v.Items {
		out = append(out, it.Key)
	}
	return out
}

var countries = []string{"France", "England", "Spain"}

func TestTypingFiltersDropdown(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "country", map[string]any{"values": countries})

	w.Focus()
	if !w.Open() {
		t.Fatalf("expected dropdown to open on focus")
	}
	if diff := cmp.Diff(countries, itemKeys(w.View())); diff != "" {
		t.Fatalf("initial view mismatch (-want +got):\n%s", diff)
	}

	w.Type("an")
	if diff := cmp.Diff([]string{"France", "England"}, itemKeys(w.View())); diff != "" {
		t.Fatalf("filtered view mismatch (-want +got):\n%s", diff)
	}

	var rendered []string
	for _, li := range w.list.Children() {
		rendered = append(rendered, li.Text)
	}
	if diff := cmp.Diff([]string{"France", "England"}, rendered); diff != "" {
		t.Fatalf("rendered list mismatch (-want +got):\n%s", diff)
	}
	if !w.list.Children()[0].HasClass(ClassSelected) {
		t.Fatalf("expected first row to be highlighted")
	}
}

func TestSortDescending(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "country", map[string]any{"values": countries, "sort": "DESC"})
	w.Focus()
	if diff := cmp.Diff([]string{"Spain", "France", "England"}, itemKeys(w.View())); diff != "" {
		t.Fatalf("sorted view mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingConfirmSubmitsLabel(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "region", map[string]any{
		"values": map[string]string{"US": "United States", "UK": "United Kingdom"},
	})

	w.Focus()
	w.Type("king")
	if diff := cmp.Diff([]string{"UK"}, itemKeys(w.View())); diff != "" {
		t.Fatalf("filtered view mismatch (-want +got):\n%s", diff)
	}

	w.KeyDown(KeyEnter)
	got, err := m.GetValue("region", false)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if diff := cmp.Diff(Scalar("United Kingdom"), got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]selection.Token{{Label: "UK", Value: "United Kingdom"}}, w.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if w.Open() {
		t.Fatalf("single select should close after confirm")
	}
	if w.Query() != "" {
		t.Fatalf("expected input to be cleared, got %q", w.Query())
	}
}

func TestSetValueRoundTrip(t *testing.T) {
	m := newTestManager()
	single := mustCreate(t, m, "single", map[string]any{"values": countries})
	multi := mustCreate(t, m, "multi", map[string]any{"values": countries, "multiple": true})

	if err := m.SetValue("single", "Spain"); err != nil {
		t.Fatalf("set single: %v", err)
	}
	if err := m.SetValue("multi", "France", "Spain"); err != nil {
		t.Fatalf("set multi: %v", err)
	}

	got, _ := m.GetValue(single.Container(), false)
	if diff := cmp.Diff(Scalar("Spain"), got); diff != "" {
		t.Fatalf("single mismatch (-want +got):\n%s", diff)
	}
	got, _ = m.GetValue(multi.Container(), false)
	if diff := cmp.Diff(List("France", "Spain"), got); diff != "" {
		t.Fatalf("multi mismatch (-want +got):\n%s", diff)
	}

	multi.SetValue("England")
	if diff := cmp.Diff([]string{"England"}, multi.Value(false).Strings()); diff != "" {
		t.Fatalf("replace mismatch (-want +got):\n%s", diff)
	}
	if got := len(multi.enteredWrapper.Children()); got != 1 {
		t.Fatalf("expected one rendered token, got %d", got)
	}
}

func TestUnconfirmedText(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "multi", map[string]any{"values": countries, "multiple": true})
	w.SetValue("France")
	w.SetQuery("Sp")

	if diff := cmp.Diff(List("France"), w.Value(false)); diff != "" {
		t.Fatalf("confirmed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(List("France", "Sp"), w.Value(true)); diff != "" {
		t.Fatalf("unconfirmed mismatch (-want +got):\n%s", diff)
	}

	simple := mustCreate(t, m, "simple", map[string]any{"values": countries, "simpleInput": true})
	simple.SetQuery("Fr")
	if diff := cmp.Diff(Scalar("Fr"), simple.Value(false)); diff != "" {
		t.Fatalf("simple input mismatch (-want +got):\n%s", diff)
	}
}

func TestEnteredLimitNotifies(t *testing.T) {
	msgs := captureMessages(t)
	m := newTestManager()
	w := mustCreate(t, m, "multi", map[string]any{
		"values":       []string{"a", "b", "c"},
		"multiple":     true,
		"enteredLimit": 2,
	})

	w.Focus()
	for i := 0; i < 3; i++ {
		w.ClickItem(i)
	}

	if diff := cmp.Diff([]string{"a", "b"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("entered mismatch (-want +got):\n%s", diff)
	}
	want := []message{{Text: "You cannot enter more than 2 options.", Kind: notify.KindError}}
	if diff := cmp.Diff(want, *msgs); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateConfirmIsIgnored(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "multi", map[string]any{"values": countries, "multiple": true})

	w.Focus()
	w.ClickItem(0)
	w.ClickItem(0)
	if diff := cmp.Diff([]string{"France"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("entered mismatch (-want +got):\n%s", diff)
	}
}

func TestAddValueAndSave(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "tags", map[string]any{
		"values":      []string{"go"},
		"multiple":    true,
		"addValues":   true,
		"saveEntered": true,
	})

	w.Focus()
	w.Type("zed")
	view := w.View()
	if len(view.Items) != 0 {
		t.Fatalf("expected no matching items, got %v", itemKeys(view))
	}
	wantAdd := dropdown.AddOption{Visible: true, Selected: true, Caption: `Press Enter to add "zed"`, Query: "zed"}
	if diff := cmp.Diff(wantAdd, view.Add); diff != "" {
		t.Fatalf("add row mismatch (-want +got):\n%s", diff)
	}

	w.KeyDown(KeyEnter)
	if diff := cmp.Diff([]string{"zed"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("entered mismatch (-want +got):\n%s", diff)
	}
	if !w.Config().Values().Contains("zed") {
		t.Fatalf("expected entered value to be saved to candidates")
	}
	if w.Query() != "" {
		t.Fatalf("expected input cleared, got %q", w.Query())
	}
	if w.addRow.Text != "Type to enter a new value" {
		t.Fatalf("unexpected caption %q", w.addRow.Text)
	}
}

func TestBackspace(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "multi", map[string]any{"values": countries, "multiple": true})
	w.SetValue("France", "Spain")

	w.SetQuery("ab")
	w.KeyDown(KeyBackspace)
	if w.Query() != "a" {
		t.Fatalf("expected query %q, got %q", "a", w.Query())
	}
	w.KeyDown(KeyBackspace)
	w.KeyDown(KeyBackspace)
	if diff := cmp.Diff([]string{"France"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("entered mismatch (-want +got):\n%s", diff)
	}
}

func TestArrowKeysMoveHighlight(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "country", map[string]any{"values": countries})
	w.Focus()
	w.KeyDown(KeyDown)
	w.KeyDown(KeyDown)
	w.KeyDown(KeyUp)
	w.KeyDown(KeyEnter)

	if diff := cmp.Diff(Scalar("England"), w.Value(false)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestClickTokenRemoves(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "multi", map[string]any{"values": countries, "multiple": true})
	w.SetValue("France", "England", "Spain")
	if !w.ClickToken(1) {
		t.Fatalf("expected token removal")
	}
	if diff := cmp.Diff([]string{"France", "Spain"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("entered mismatch (-want +got):\n%s", diff)
	}
	if w.ClickToken(5) {
		t.Fatalf("out of range removal should fail")
	}
}

func TestRequiredValidation(t *testing.T) {
	msgs := captureMessages(t)
	m := newTestManager()
	w := mustCreate(t, m, "req", map[string]any{"values": countries, "required": 1})

	if !w.Backing().Required {
		t.Fatalf("expected backing element to be required")
	}
	if w.Validate() {
		t.Fatalf("expected empty required widget to be invalid")
	}
	if !w.Container().HasClass(ClassInvalid) {
		t.Fatalf("expected invalid class")
	}

	if w.ReportValidity() {
		t.Fatalf("expected report to fail")
	}
	want := []message{{Text: "Please select an option", Kind: notify.KindError}}
	if diff := cmp.Diff(want, *msgs); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if !w.Backing().HasClass(ClassHide) || w.Backing().Style("opacity") != "" {
		t.Fatalf("backing element not restored: classes=%v style=%q", w.Backing().Classes(), w.Backing().StyleText())
	}
	if !w.Input().Focused() {
		t.Fatalf("expected input to be focused")
	}

	w.Focus()
	w.ClickItem(0)
	if !w.Validate() {
		t.Fatalf("expected widget to be valid after a confirm")
	}
	if w.Container().HasClass(ClassInvalid) {
		t.Fatalf("invalid class should be cleared")
	}
}

func TestOnChangeFromRawConfig(t *testing.T) {
	m := newTestManager()
	var got []Value
	w := mustCreate(t, m, "multi", map[string]any{
		"values":        countries,
		"multiple":      true,
		"initialValues": []string{"France"},
		OnChangeKey: func(_ *dom.Element, v Value) {
			got = append(got, v)
		},
	})
	if len(got) != 0 {
		t.Fatalf("initial values should not fire change, got %v", got)
	}
	if diff := cmp.Diff([]string{"France"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("initial mismatch (-want +got):\n%s", diff)
	}

	w.SetValue("Spain")
	if diff := cmp.Diff([]Value{List("Spain")}, got); diff != "" {
		t.Fatalf("change mismatch (-want +got):\n%s", diff)
	}
}

func TestStructure(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "multi", map[string]any{
		"values":        countries,
		"multiple":      true,
		"inputName":     "country",
		"baseBackColor": "#fff",
	})

	c := w.Container()
	if v, _ := c.Attr(AttrCount); v != "1" {
		t.Fatalf("expected data-sdcount 1, got %q", v)
	}
	if c.Style("--sdBackBase") != "#fff" {
		t.Fatalf("expected colour variable, got %q", c.StyleText())
	}
	if w.Backing().Tag != "select" || !w.Backing().Multiple {
		t.Fatalf("expected a multiple select backing element")
	}
	if w.Backing().Name != "country" || w.Backing().ID != "sdInput-country" {
		t.Fatalf("unexpected backing identity %q %q", w.Backing().Name, w.Backing().ID)
	}
	if w.Input().Name != "countryLastInput" {
		t.Fatalf("unexpected input name %q", w.Input().Name)
	}

	var classes []string
	for _, child := range c.Children() {
		classes = append(classes, child.ClassName())
	}
	want := []string{ClassInputWrapper, ClassDropdownWrapper + " " + ClassHide, ClassHide + " " + ClassEnteredInput}
	if diff := cmp.Diff(want, classes); diff != "" {
		t.Fatalf("structure mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateErrors(t *testing.T) {
	m := newTestManager()
	if _, err := m.Create("missing", map[string]any{"values": countries}); !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("expected ErrContainerNotFound, got %v", err)
	}
	w := mustCreate(t, m, "once", map[string]any{"values": countries})
	if _, err := m.Create(w.Container(), map[string]any{"values": countries}); !errors.Is(err, ErrAlreadyCreated) {
		t.Fatalf("expected ErrAlreadyCreated, got %v", err)
	}
}

func TestDispose(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "gone", map[string]any{"values": countries})
	id := w.ID()

	if !m.Dispose(id) {
		t.Fatalf("expected dispose to succeed")
	}
	if _, ok := m.Get(id); ok {
		t.Fatalf("widget still registered")
	}
	if len(w.Container().Children()) != 0 {
		t.Fatalf("expected container to be emptied")
	}
	if m.Dispose(id) {
		t.Fatalf("second dispose should report false")
	}
	if _, err := m.Create("gone", map[string]any{"values": countries}); err != nil {
		t.Fatalf("recreate after dispose: %v", err)
	}
}

func TestGetValuePlainElements(t *testing.T) {
	m := newTestManager()
	plain := dom.New("input")
	plain.Name = "email"
	plain.Value = "a@example.com"
	empty := dom.New("input")
	empty.ID = "empty"
	m.Document().Append(plain, empty)

	got, err := m.GetValue("email", false)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if diff := cmp.Diff(Scalar("a@example.com"), got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if _, err := m.GetValue("empty", false); !errors.Is(err, ErrNoValue) {
		t.Fatalf("expected ErrNoValue, got %v", err)
	}
	if _, err := m.GetValue("nope", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !m.Validate("nope") || !m.ReportValidity("nope") {
		t.Fatalf("unknown refs should be valid")
	}
}

func TestLookupByBackingName(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "named", map[string]any{"values": countries, "inputName": "pick"})
	w.SetValue("Spain")

	got, err := m.GetValue("pick", false)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if diff := cmp.Diff(Scalar("Spain"), got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleDocumentClick(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, "a", map[string]any{"values": countries, "multiple": true})
	b := mustCreate(t, m, "b", map[string]any{"values": countries})
	a.Focus()
	b.Focus()

	m.HandleDocumentClick(a.ID())
	if !a.Open() || b.Open() {
		t.Fatalf("expected only the origin to stay open: a=%v b=%v", a.Open(), b.Open())
	}
	if !a.Input().Focused() {
		t.Fatalf("expected multi-select input to keep focus")
	}
}

func TestEscapeClosesAndBlurs(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "a", map[string]any{"values": countries})
	w.Focus()
	w.KeyDown(KeyEscape)
	if w.Open() || w.Input().Focused() {
		t.Fatalf("expected closed and blurred")
	}
	if !w.dropdownWrapper.HasClass(ClassHide) {
		t.Fatalf("expected dropdown hidden")
	}
}

func TestPlacementFromGeometry(t *testing.T) {
	m := newTestManager()
	geometry := func() dropdown.Geometry {
		return dropdown.Geometry{ViewportTop: 0, ViewportBottom: 700, Top: 600, Bottom: 650, Width: 240}
	}
	w := mustCreate(t, m, "a", map[string]any{"values": countries}, WithGeometry(geometry))
	w.Focus()

	want := dropdown.Placement{Above: true, MaxHeight: 600, Width: 240}
	if diff := cmp.Diff(want, w.Placement()); diff != "" {
		t.Fatalf("placement mismatch (-want +got):\n%s", diff)
	}
	if !w.dropdownWrapper.HasClass(ClassTop) || w.dropdownWrapper.Style("width") != "240px" {
		t.Fatalf("placement not applied: %v %q", w.dropdownWrapper.Classes(), w.dropdownWrapper.StyleText())
	}
}

func TestAutoCreate(t *testing.T) {
	m := newTestManager()
	markup := `<form>
<div id="tags" class="searchdown" data-sd_values='["go","rust"]' data-sd_multiple="true" data-sd_inputname="tags"></div>
<div id="bare" class="searchdown"></div>
</form>`

	created, err := m.AutoCreate(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("auto create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected one widget, got %d", len(created))
	}
	w := created[0]
	if w.Container().ID != "tags" || !w.Config().Multiple() || w.Config().InputName() != "tags" {
		t.Fatalf("unexpected widget: id=%q multiple=%v name=%q", w.Container().ID, w.Config().Multiple(), w.Config().InputName())
	}
	if _, ok := m.Document().GetByID("bare").Attr(AttrCount); ok {
		t.Fatalf("element without values must be skipped")
	}

	if again := m.Scan(); len(again) != 0 {
		t.Fatalf("scan should not recreate live widgets, got %d", len(again))
	}
}

func TestRejectedEnterKeepsFilteredView(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, "letters", map[string]any{"values": []string{"a", "b"}, "multiple": true})
	w.SetValue("a")
	w.Focus()
	w.Type("a")
	w.KeyDown(KeyEnter)

	if w.Query() != "a" {
		t.Fatalf("rejected entry should keep the typed text, got %q", w.Query())
	}
	if diff := cmp.Diff([]string{"a"}, itemKeys(w.View())); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, w.Value(false).Strings()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentCreateClaimsContainerOnce(t *testing.T) {
	m := newTestManager()
	container := dom.New("div")
	container.ID = "shared"
	m.Document().Append(container)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Create(container, map[string]any{"values": []string{"a"}})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrAlreadyCreated):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 || len(m.Widgets()) != 1 {
		t.Fatalf("expected one widget, created=%d live=%d", created, len(m.Widgets()))
	}
}
