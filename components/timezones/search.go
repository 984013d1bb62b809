package timezones

import (
	"github.com/goliatone/go-searchdown/pkg/candidates"
	"github.com/goliatone/go-searchdown/pkg/dropdown"
	"github.com/goliatone/go-searchdown/pkg/options"
)

// Option is one suggestion in a handler response.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// settings adapts Options to the dropdown pipeline.
type settings struct {
	values        candidates.Set
	sort          options.Order
	caseSensitive bool
	limit         int
}

func (s settings) Values() candidates.Set { return s.values }
func (s settings) AddValues() bool { return false }
func (s settings) HideEntered() bool { return false }
func (s settings) CaseSensitive() bool { return s.caseSensitive }
func (s settings) SortOrder() options.Order { return s.sort }
func (s settings) Limit() int { return s.limit }

// View runs the dropdown pipeline over zones. An empty query yields an
// invisible view unless opts.EmptySearchMode is EmptySearchTop.
func View(zones []string, query string, limit int, opts Options) dropdown.View {
	limit = clampLimit(limit, opts)
	if limit == 0 || len(zones) == 0 {
		return dropdown.View{}
	}
	if query == "" && opts.EmptySearchMode != EmptySearchTop {
		return dropdown.View{}
	}
	return dropdown.Build(settings{
		values:        candidates.NewList(zones...),
		sort:          opts.Sort,
		caseSensitive: opts.CaseSensitive,
		limit:         limit,
	}, dropdown.Query{Text: query})
}

// Search returns the zones matching query.
func Search(zones []string, query string, limit int, opts Options) []string {
	view := View(zones, query, limit, opts)
	if len(view.Items) == 0 {
		return nil
	}
	out := make([]string, 0, len(view.Items))
	for _, it := range view.Items {
		out = append(out, it.Key)
	}
	return out
}

// SearchOptions is Search shaped as handler options. The first match is
// marked selected, as the widget highlights it.
func SearchOptions(zones []string, query string, limit int, opts Options) []Option {
	view := View(zones, query, limit, opts)
	if len(view.Items) == 0 {
		return nil
	}
	out := make([]Option, 0, len(view.Items))
	for _, it := range view.Items {
		out = append(out, Option{Value: it.Label, Label: it.Key, Selected: it.Selected})
	}
	return out
}
