package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-searchdown/pkg/logging"
	"github.com/goliatone/go-searchdown/pkg/renderers/tui"
)

const countriesYAML = `values: [France, England, Spain]
inputName: country
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, opts ...Option) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	base := []Option{WithOutput(&out, &bytes.Buffer{}), WithLogger(logging.Nop)}
	a, err := New("test", append(base, opts...)...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, &out
}

func TestCheckReportsResolvedOptionsAndIssues(t *testing.T) {
	path := writeConfig(t, "values: [a, b]\nsort: sideways\nlimti: 3\n")
	a, out := newTestApp(t)

	if err := a.Execute(context.Background(), []string{"check", path}); err != nil {
		t.Fatalf("check: %v", err)
	}

	var report struct {
		Options map[string]any `json:"options"`
		Issues  []string       `json:"issues"`
		Ignored []string       `json:"ignored"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}
	if diff := cmp.Diff([]any{"a", "b"}, report.Options["values"]); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if report.Options["sort"] != "" {
		t.Fatalf("rejected sort should keep its default, got %v", report.Options["sort"])
	}
	if len(report.Issues) != 1 {
		t.Fatalf("expected one issue, got %v", report.Issues)
	}
	if diff := cmp.Diff([]string{"limti"}, report.Ignored); diff != "" {
		t.Fatalf("ignored mismatch (-want +got):\n%s", diff)
	}

	a, _ = newTestApp(t)
	if err := a.Execute(context.Background(), []string{"check", "--strict", path}); !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
}

func TestFilterPrintsView(t *testing.T) {
	path := writeConfig(t, countriesYAML+"sort: DESC\n")

	a, out := newTestApp(t)
	if err := a.Execute(context.Background(), []string{"filter", "-o", "json", path, "an"}); err != nil {
		t.Fatalf("filter: %v", err)
	}
	var view struct {
		Items []struct {
			Key string `json:"key"`
		} `json:"items"`
	}
	if err := json.Unmarshal(out.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	var keys []string
	for _, it := range view.Items {
		keys = append(keys, it.Key)
	}
	if diff := cmp.Diff([]string{"France", "England"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	a, out = newTestApp(t)
	if err := a.Execute(context.Background(), []string{"filter", path, "spa"}); err != nil {
		t.Fatalf("filter table: %v", err)
	}
	if !strings.Contains(out.String(), "Spain") || strings.Contains(out.String(), "France") {
		t.Fatalf("unexpected table\n%s", out.String())
	}
}

func TestRenderWritesMarkup(t *testing.T) {
	path := writeConfig(t, countriesYAML)
	a, out := newTestApp(t)

	err := a.Execute(context.Background(), []string{"render", "--value", "Spain", "--label", "Country", path})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, part := range []string{`class="searchdown"`, `<label for="sd-country">Country</label>`, `value="Spain"`} {
		if !strings.Contains(out.String(), part) {
			t.Fatalf("expected %q in output\n%s", part, out.String())
		}
	}

	a, out = newTestApp(t)
	if err := a.Execute(context.Background(), []string{"render", "-r", "tui", path}); err != nil {
		t.Fatalf("render tui: %v", err)
	}
	if got := out.String(); got != "country: \n" {
		t.Fatalf("unexpected text render %q", got)
	}

	a, _ = newTestApp(t)
	if err := a.Execute(context.Background(), []string{"render", "-r", "pdf", path}); err == nil {
		t.Fatalf("expected unknown renderer to fail")
	}
}

type scriptedDriver struct {
	inputs []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", tui.ErrAborted
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) { return false, nil }

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) { return 0, nil }

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", tui.ErrAborted
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestPromptPrintsValue(t *testing.T) {
	path := writeConfig(t, countriesYAML)
	a, out := newTestApp(t, WithPromptDriver(&scriptedDriver{inputs: []string{"spain"}}))

	if err := a.Execute(context.Background(), []string{"prompt", path}); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got := out.String(); got != "{\"name\":\"country\",\"value\":\"Spain\"}\n" {
		t.Fatalf("unexpected output %q", got)
	}

	a, _ = newTestApp(t, WithPromptDriver(&scriptedDriver{}))
	if err := a.Execute(context.Background(), []string{"prompt", path}); !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestMissingConfigFails(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.Execute(context.Background(), []string{"check", filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestRemoteConfigNeedsAllowHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(countriesYAML))
	}))
	defer srv.Close()

	a, _ := newTestApp(t)
	if err := a.Execute(context.Background(), []string{"check", srv.URL + "/country.yaml"}); err == nil {
		t.Fatalf("expected URL source to be refused without --allow-http")
	}

	a, out := newTestApp(t)
	if err := a.Execute(context.Background(), []string{"check", "--allow-http", srv.URL + "/country.yaml"}); err != nil {
		t.Fatalf("check remote: %v", err)
	}
	if !strings.Contains(out.String(), `"country"`) {
		t.Fatalf("unexpected report\n%s", out.String())
	}
}

func TestServeMuxRoutes(t *testing.T) {
	a, _ := newTestApp(t)
	raw, err := a.serveConfig(context.Background(), nil)
	if err != nil {
		t.Fatalf("serve config: %v", err)
	}
	handler, err := a.newServeMux(raw)
	if err != nil {
		t.Fatalf("mux: %v", err)
	}

	cases := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/?q=paris", status: http.StatusOK, contains: "Europe/Paris"},
		{path: "/assets/searchdown.css", status: http.StatusOK, contains: ".searchdown"},
		{path: "/api/timezones?q=paris", status: http.StatusOK, contains: `"value":"Europe/Paris"`},
		{path: "/nope", status: http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.path, tc.status, rec.Code)
		}
		if tc.contains != "" && !strings.Contains(rec.Body.String(), tc.contains) {
			t.Fatalf("%s: expected %q in body\n%s", tc.path, tc.contains, rec.Body.String())
		}
	}
}
