// Package dropdown computes what a searchdown's dropdown shows for a query:
// filtered, sorted and limited candidates plus the optional add entry.
package dropdown

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-searchdown/pkg/candidates"
	"github.com/goliatone/go-searchdown/pkg/options"
)

// Settings is the configuration the pipeline reads.
type Settings interface {
	Values() candidates.Set
	AddValues() bool
	HideEntered() bool
	CaseSensitive() bool
	SortOrder() options.Order
	Limit() int
}

// Query is the text typed so far and the display keys already entered.
type Query struct {
	Text    string
	Entered []string
}

// Item is one candidate row.
type Item struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// AddOption is the trailing "add a new value" row.
type AddOption struct {
	Visible  bool   `json:"visible"`
	Selected bool   `json:"selected"`
	Caption  string `json:"caption"`
	Query    string `json:"query"`
}

// View is the dropdown content for one query.
type View struct {
	Visible bool      `json:"visible"`
	Items   []Item    `json:"items"`
	Add     AddOption `json:"add"`
}

const captionEmpty = "Type to enter a new value"

// Caption returns the add row text for query.
func Caption(query string) string {
	if query == "" {
		return captionEmpty
	}
	return fmt.Sprintf(`Press Enter to add "%s"`, query)
}

// Build runs filter, sort, limit and add-row rules for q.
func Build(s Settings, q Query) View {
	set := s.Values()
	if set.Empty() && !s.AddValues() {
		return View{}
	}

	match := matcher(s.CaseSensitive())
	entered := q.Entered
	if !s.HideEntered() {
		entered = nil
	}

	var keys []string
	for _, pair := range set.Pairs() {
		if containsMatch(entered, pair.Key, match.equal) {
			continue
		}
		if match.contains(pair.Key, q.Text) || (set.IsMapping() && match.contains(pair.Label, q.Text)) {
			keys = append(keys, pair.Key)
		}
	}

	switch s.SortOrder() {
	case options.OrderAsc:
		sort.Strings(keys)
	case options.OrderDesc:
		sort.Strings(keys)
		reverse(keys)
	}
	if limit := s.Limit(); limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	view := View{Visible: true, Items: make([]Item, 0, len(keys))}
	for i, key := range keys {
		label, _ := set.Label(key)
		view.Items = append(view.Items, Item{Key: key, Label: label, Selected: i == 0})
	}

	if s.AddValues() && !set.Contains(q.Text) {
		view.Add = AddOption{
			Visible:  true,
			Selected: len(keys) == 0,
			Caption:  Caption(q.Text),
			Query:    q.Text,
		}
	}
	return view
}

type matchRule struct {
	contains func(s, sub string) bool
	equal    func(a, b string) bool
}

func matcher(caseSensitive bool) matchRule {
	if caseSensitive {
		return matchRule{contains: strings.Contains, equal: func(a, b string) bool { return a == b }}
	}
	lower := func(s string) string { return cases.Lower(language.Und).String(s) }
	return matchRule{
		contains: func(s, sub string) bool { return strings.Contains(lower(s), lower(sub)) },
		equal:    func(a, b string) bool { return lower(a) == lower(b) },
	}
}

func containsMatch(list []string, s string, equal func(a, b string) bool) bool {
	for _, v := range list {
		if equal(v, s) {
			return true
		}
	}
	return false
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
