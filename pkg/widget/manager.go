package widget

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/logging"
	"github.com/goliatone/go-searchdown/pkg/options"
)

// OnChangeKey is the raw configuration key that may carry a change callback.
const OnChangeKey = "onChange"

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithDocument sets the document used to resolve container ids.
func WithDocument(doc *dom.Document) ManagerOption {
	return func(m *Manager) {
		if m == nil || doc == nil {
			return
		}
		m.doc = doc
	}
}

// WithLogger sets the logger shared by the manager and its widgets.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		if m == nil {
			return
		}
		m.logger = logger
	}
}

// Manager owns the live widgets of one document, keyed by instance id.
type Manager struct {
	mu       sync.RWMutex
	seq      int
	doc      *dom.Document
	widgets  map[int]*Widget
	building map[int]bool
	logger   zerolog.Logger
}

// NewManager returns an empty registry.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		doc:      dom.NewDocument(),
		widgets:  make(map[int]*Widget),
		building: make(map[int]bool),
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Document returns the managed document.
func (m *Manager) Document() *dom.Document { return m.doc }

// Create builds a widget inside ref, a container id or *dom.Element, from a
// raw configuration. A func under the onChange key is registered as a change
// callback.
func (m *Manager) Create(ref any, raw map[string]any, opts ...Option) (*Widget, error) {
	container := m.resolve(ref)
	if container == nil {
		m.logger.Error().Interface("ref", ref).Msg("searchdown container not found")
		return nil, fmt.Errorf("widget: create %v: %w", ref, ErrContainerNotFound)
	}

	clean := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != OnChangeKey {
			clean[k] = v
			continue
		}
		switch fn := v.(type) {
		case ChangeFunc:
			opts = append(opts, WithOnChange(fn))
		case func(*dom.Element, Value):
			opts = append(opts, WithOnChange(fn))
		case nil:
		default:
			m.logger.Warn().Str("option", k).Msgf("ignoring %T, expected a change callback", v)
		}
	}

	return m.create(container, func(id int) *options.Config {
		return options.New(clean, options.WithID(id), options.WithLogger(m.logger))
	}, opts...)
}

// CreateWithConfig builds a widget from an already resolved configuration.
func (m *Manager) CreateWithConfig(ref any, cfg *options.Config, opts ...Option) (*Widget, error) {
	container := m.resolve(ref)
	if container == nil {
		return nil, fmt.Errorf("widget: create %v: %w", ref, ErrContainerNotFound)
	}
	if cfg == nil {
		return nil, fmt.Errorf("widget: create %v: nil config", ref)
	}
	return m.create(container, func(int) *options.Config { return cfg }, opts...)
}

func (m *Manager) create(container *dom.Element, build func(id int) *options.Config, opts ...Option) (*Widget, error) {
	m.mu.Lock()
	if id, ok := countOf(container); ok {
		if _, live := m.widgets[id]; live || m.building[id] {
			m.mu.Unlock()
			return nil, fmt.Errorf("widget: create #%d: %w", id, ErrAlreadyCreated)
		}
	}
	m.seq++
	id := m.seq
	// The claimed container stays taken until the widget is stored.
	container.SetAttr(AttrCount, strconv.Itoa(id))
	m.building[id] = true
	m.mu.Unlock()

	w := newWidget(m, id, container, build(id), opts...)

	m.mu.Lock()
	delete(m.building, id)
	m.widgets[id] = w
	m.mu.Unlock()

	m.logger.Debug().Int("instance", id).Str("input_name", w.cfg.InputName()).Msg("searchdown created")
	return w, nil
}

// Get returns the widget with instance id.
func (m *Manager) Get(id int) (*Widget, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.widgets[id]
	return w, ok
}

// Widgets returns the live widgets ordered by id.
func (m *Manager) Widgets() []*Widget {
	m.mu.RLock()
	out := make([]*Widget, 0, len(m.widgets))
	for _, w := range m.widgets {
		out = append(out, w)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Lookup finds the widget that owns ref. ref may be an instance id, an
// element id or name, or any element inside a searchdown container. The
// element is returned even when no widget owns it.
func (m *Manager) Lookup(ref any) (*Widget, *dom.Element) {
	if id, ok := ref.(int); ok {
		w, _ := m.Get(id)
		if w == nil {
			return nil, nil
		}
		return w, w.container
	}

	el := m.resolve(ref)
	if el == nil {
		return nil, nil
	}
	if root := el.Closest(ClassRoot); root != nil {
		if id, ok := countOf(root); ok {
			if w, ok := m.Get(id); ok {
				return w, el
			}
		}
	}
	for _, w := range m.Widgets() {
		if w.backing == el || (el.Name != "" && w.backing.Name == el.Name) {
			return w, el
		}
	}
	return nil, el
}

// Dispose tears down the widget with instance id and forgets it.
func (m *Manager) Dispose(id int) bool {
	m.mu.Lock()
	w, ok := m.widgets[id]
	delete(m.widgets, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	c := w.container
	c.Remove(w.inputWrapper)
	c.Remove(w.dropdownWrapper)
	c.Remove(w.backing)
	c.RemoveClass(ClassRoot, ClassTextarea, ClassInvalid)
	c.SetAttr(AttrCount, "")
	m.logger.Debug().Int("instance", id).Msg("searchdown disposed")
	return true
}

// GetValue reads the submission of the widget owning ref. For a plain
// element the element value is returned.
func (m *Manager) GetValue(ref any, includeUnconfirmed bool) (Value, error) {
	w, el := m.Lookup(ref)
	if w != nil {
		return w.Value(includeUnconfirmed), nil
	}
	if el == nil {
		return Value{}, fmt.Errorf("widget: get value %v: %w", ref, ErrNotFound)
	}
	if el.Multiple {
		return List(el.SelectedValues()...), nil
	}
	if el.Value == "" {
		return Value{}, fmt.Errorf("widget: get value %v: %w", ref, ErrNoValue)
	}
	return Scalar(el.Value), nil
}

// SetValue replaces the selection of the widget owning ref.
func (m *Manager) SetValue(ref any, values ...string) error {
	w, _ := m.Lookup(ref)
	if w == nil {
		return fmt.Errorf("widget: set value %v: %w", ref, ErrNotFound)
	}
	w.SetValue(values...)
	return nil
}

// Validate runs the required check of the widget owning ref. Unknown refs
// are valid.
func (m *Manager) Validate(ref any) bool {
	w, _ := m.Lookup(ref)
	if w == nil {
		return true
	}
	return w.Validate()
}

// ReportValidity validates and reports for the widget owning ref. Unknown
// refs are valid.
func (m *Manager) ReportValidity(ref any) bool {
	w, _ := m.Lookup(ref)
	if w == nil {
		return true
	}
	return w.ReportValidity()
}

// HandleDocumentClick closes every dropdown except the origin's. A click
// inside a multi-select keeps its input focused.
func (m *Manager) HandleDocumentClick(originID int) {
	for _, w := range m.Widgets() {
		if w.id != originID {
			w.Close()
			continue
		}
		if w.cfg.Multiple() {
			w.input.Focus()
		}
	}
}

// CloseAll hides every dropdown.
func (m *Manager) CloseAll() {
	for _, w := range m.Widgets() {
		w.Close()
	}
}

func (m *Manager) resolve(ref any) *dom.Element {
	switch r := ref.(type) {
	case *dom.Element:
		return r
	case string:
		if r == "" {
			return nil
		}
		if el := m.doc.GetByID(r); el != nil {
			return el
		}
		return m.doc.GetByName(r)
	}
	return nil
}

func countOf(el *dom.Element) (int, bool) {
	raw, ok := el.Attr(AttrCount)
	if !ok || raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
