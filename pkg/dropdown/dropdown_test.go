package dropdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-searchdown/pkg/logging"
	"github.com/goliatone/go-searchdown/pkg/options"
)

func config(t *testing.T, raw map[string]any) *options.Config {
	t.Helper()
	cfg := options.New(raw, options.WithID(1), options.WithLogger(logging.Nop))
	if issues := cfg.Issues(); len(issues) != 0 {
		t.Fatalf("unexpected config issues: %v", issues)
	}
	return cfg
}

func keys(v View) []string {
	out := []string{}
	for _, it := range v.Items {
		out = append(out, it.Key)
	}
	return out
}

func TestFilterSortLimit(t *testing.T) {
	cfg := config(t, map[string]any{
		"values": []string{"Banana", "apple", "Grape", "Pineapple", "cherry"},
		"sort":   "ASC",
		"limit":  2,
	})
	view := Build(cfg, Query{Text: "AP"})

	if diff := cmp.Diff([]string{"Grape", "Pineapple"}, keys(view)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !view.Items[0].Selected || view.Items[1].Selected {
		t.Fatalf("first item should be selected")
	}
	if view.Add.Visible {
		t.Fatalf("add row requires addValues")
	}
}

func TestSortDescending(t *testing.T) {
	cfg := config(t, map[string]any{"values": []string{"b", "c", "a"}, "sort": "DESC"})
	if diff := cmp.Diff([]string{"c", "b", "a"}, keys(Build(cfg, Query{}))); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestCaseSensitiveFilter(t *testing.T) {
	cfg := config(t, map[string]any{"values": []string{"Red", "red"}, "caseSensitive": true})
	if diff := cmp.Diff([]string{"red"}, keys(Build(cfg, Query{Text: "re"}))); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingMatchesLabels(t *testing.T) {
	cfg := config(t, map[string]any{"values": `{"Red":"#f00","Blue":"#00f"}`})
	view := Build(cfg, Query{Text: "#00"})
	want := []Item{{Key: "Blue", Label: "#00f", Selected: true}}
	if diff := cmp.Diff(want, view.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	view = Build(cfg, Query{Text: "#"})
	want = []Item{{Key: "Red", Label: "#f00", Selected: true}, {Key: "Blue", Label: "#00f"}}
	if diff := cmp.Diff(want, view.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestHideEntered(t *testing.T) {
	cfg := config(t, map[string]any{"values": []string{"a", "b", "c"}, "multiple": true, "hideEntered": true})
	view := Build(cfg, Query{Entered: []string{"B"}})
	if diff := cmp.Diff([]string{"a", "c"}, keys(view)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	cfg = config(t, map[string]any{"values": []string{"a", "b"}, "multiple": true})
	if got := keys(Build(cfg, Query{Entered: []string{"b"}})); len(got) != 2 {
		t.Fatalf("entered values stay listed without hideEntered, got %v", got)
	}
}

func TestAddOption(t *testing.T) {
	cfg := config(t, map[string]any{"values": []string{"Red", "Green"}, "addValues": true})

	cases := []struct {
		name  string
		query string
		want  AddOption
		items int
	}{
		{"empty query", "", AddOption{Visible: true, Caption: "Type to enter a new value"}, 2},
		{"no match selects add row", "Blue", AddOption{Visible: true, Selected: true, Caption: `Press Enter to add "Blue"`, Query: "Blue"}, 0},
		{"partial match", "re", AddOption{Visible: true, Caption: `Press Enter to add "re"`, Query: "re"}, 2},
		{"exact key hides add row", "Red", AddOption{}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := Build(cfg, Query{Text: tc.query})
			if diff := cmp.Diff(tc.want, view.Add); diff != "" {
				t.Fatalf("add option mismatch (-want +got):\n%s", diff)
			}
			if len(view.Items) != tc.items {
				t.Fatalf("expected %d items, got %v", tc.items, keys(view))
			}
		})
	}
}

func TestEmptyCandidates(t *testing.T) {
	cfg := config(t, nil)
	if Build(cfg, Query{Text: "x"}).Visible {
		t.Fatalf("nothing to show without values or addValues")
	}
	cfg = config(t, map[string]any{"addValues": true})
	view := Build(cfg, Query{Text: "x"})
	if !view.Visible || !view.Add.Selected {
		t.Fatalf("addValues alone should show the add row")
	}
}

func TestMove(t *testing.T) {
	cfg := config(t, map[string]any{"values": []string{"ab", "abc"}, "addValues": true})
	view := Build(cfg, Query{Text: "a"})

	view, ok := view.Move(1)
	if sel, _ := view.Selected(); !ok || sel.Key != "abc" {
		t.Fatalf("expected abc selected, got %+v", sel)
	}
	view, ok = view.Move(1)
	if sel, _ := view.Selected(); !ok || !sel.Add || sel.Key != "a" {
		t.Fatalf("expected add row selected, got %+v", sel)
	}
	if _, ok = view.Move(1); ok {
		t.Fatalf("moving past the last row should fail")
	}
	view, _ = view.Move(-2)
	if sel, _ := view.Selected(); sel.Key != "ab" || view.Add.Selected {
		t.Fatalf("expected first row selected, got %+v", sel)
	}
	if _, ok = view.Move(-1); ok {
		t.Fatalf("moving above the first row should fail")
	}
}

func TestPlace(t *testing.T) {
	below := Place(Geometry{ViewportTop: 0, ViewportBottom: 1000, Top: 100, Bottom: 130, Width: 240}, 600)
	if diff := cmp.Diff(Placement{MaxHeight: 600, Width: 240}, below); diff != "" {
		t.Fatalf("placement mismatch (-want +got):\n%s", diff)
	}

	tight := Place(Geometry{ViewportTop: 0, ViewportBottom: 1000, Top: 700, Bottom: 950, Width: 240}, 300)
	if !tight.Above || tight.MaxHeight != 300 {
		t.Fatalf("expected flip above capped at 300, got %+v", tight)
	}

	short := Place(Geometry{ViewportBottom: 500, Top: 100, Bottom: 200}, 600)
	if short.Above || short.MaxHeight != 300 {
		t.Fatalf("expected below limited by viewport, got %+v", short)
	}
}
