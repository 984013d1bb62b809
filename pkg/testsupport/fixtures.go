package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/logging"
	"github.com/goliatone/go-searchdown/pkg/notify"
	"github.com/goliatone/go-searchdown/pkg/options"
	"github.com/goliatone/go-searchdown/pkg/widget"
)

// Message is one delivery to the message handler.
type Message struct {
	Text string
	Kind notify.Kind
}

// Messages collects handler deliveries.
type Messages struct {
	mu  sync.Mutex
	got []Message
}

// All returns the collected messages in delivery order.
func (m *Messages) All() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message{}, m.got...)
}

// CaptureMessages installs a recording message handler for the duration of
// the test.
func CaptureMessages(t *testing.T) *Messages {
	t.Helper()
	rec := &Messages{}
	notify.SetHandler(func(text string, kind notify.Kind) {
		rec.mu.Lock()
		rec.got = append(rec.got, Message{Text: text, Kind: kind})
		rec.mu.Unlock()
	})
	t.Cleanup(func() { notify.SetHandler(nil) })
	return rec
}

// NewManager returns a manager that logs nowhere.
func NewManager(opts ...widget.ManagerOption) *widget.Manager {
	return widget.NewManager(append([]widget.ManagerOption{widget.WithLogger(logging.Nop)}, opts...)...)
}

// MustCreate appends a container with id to the manager document and builds
// a widget in it.
func MustCreate(t *testing.T, m *widget.Manager, id string, raw map[string]any, opts ...widget.Option) *widget.Widget {
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

// MustConfig resolves raw and fails the test on any configuration issue.
func MustConfig(t *testing.T, raw map[string]any) *options.Config {
	t.Helper()
	cfg := options.New(raw, options.WithLogger(logging.Nop))
	if issues := cfg.Issues(); len(issues) > 0 {
		t.Fatalf("unexpected config issues: %v", issues)
	}
	return cfg
}

// LoadConfig reads a YAML configuration file into a resolved Config.
func LoadConfig(path string) (*options.Config, error) {
	if path == "" {
		return nil, errors.New("testsupport: config path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open config: %w", err)
	}
	defer f.Close()

	raw, err := options.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load config: %w", err)
	}
	return options.New(raw, options.WithLogger(logging.Nop)), nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
