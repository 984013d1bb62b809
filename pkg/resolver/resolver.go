// Package resolver translates between what a searchdown shows (display
// keys) and what it submits (submission values).
package resolver

import "github.com/goliatone/go-searchdown/pkg/candidates"

// Source is the configuration the resolver reads.
type Source interface {
	Values() candidates.Set
	AddValues() bool
}

// SubmissionValue returns the value submitted for display key. Mappings
// fall back to the key itself for keys they do not hold. Lists accept only
// their own entries unless free entry is allowed.
func SubmissionValue(src Source, key string) (string, bool) {
	if src == nil {
		return "", false
	}
	set := src.Values()
	if set.IsMapping() {
		if label, ok := set.Label(key); ok {
			return label, true
		}
		return key, true
	}
	return listLookup(src, set, key)
}

// DisplayKey is the inverse of SubmissionValue: the first key whose label
// equals value for mappings, the value itself otherwise.
func DisplayKey(src Source, value string) (string, bool) {
	if src == nil {
		return "", false
	}
	set := src.Values()
	if set.IsMapping() {
		if key, ok := set.KeyForLabel(value); ok {
			return key, true
		}
		return value, true
	}
	return listLookup(src, set, value)
}

func listLookup(src Source, set candidates.Set, s string) (string, bool) {
	if set.Contains(s) || src.AddValues() {
		return s, true
	}
	return "", false
}
