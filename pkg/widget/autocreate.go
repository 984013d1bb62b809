package widget

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-searchdown/pkg/dom"
)

const dataPrefix = "sd_"

// AutoCreate parses markup, adds it to the managed document and creates a
// widget for every element with the searchdown class that is not yet live.
// Settings come from data-sd_* attributes; elements without data-sd_values
// are skipped.
func (m *Manager) AutoCreate(r io.Reader) ([]*Widget, error) {
	parsed, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("widget: auto create: %w", err)
	}
	m.doc.Append(parsed.Body().Children()...)
	return m.Scan(), nil
}

// Scan creates widgets for searchdown elements already in the document.
func (m *Manager) Scan() []*Widget {
	var created []*Widget
	for _, el := range m.doc.ByClass(ClassRoot) {
		if _, ok := countOf(el); ok {
			continue
		}
		raw := DataConfig(el)
		if _, ok := raw["values"]; !ok {
			m.logger.Warn().Str("id", el.ID).Msg("element must have attribute 'data-sd_values' to be automatically created")
			continue
		}
		w, err := m.Create(el, raw)
		if err != nil {
			m.logger.Error().Err(err).Str("id", el.ID).Msg("searchdown auto create failed")
			continue
		}
		created = append(created, w)
	}
	return created
}

// DataConfig collects the data-sd_* attributes of el as a raw configuration.
func DataConfig(el *dom.Element) map[string]any {
	raw := map[string]any{}
	for key, value := range el.Dataset() {
		if !strings.HasPrefix(key, dataPrefix) {
			continue
		}
		raw[strings.TrimPrefix(key, dataPrefix)] = value
	}
	return raw
}
