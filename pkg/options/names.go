package options

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Name identifies a recognised configuration setting.
type Name string

const (
	Values            Name = "values"
	Sort              Name = "sort"
	Limit             Name = "limit"
	SimpleInput       Name = "simpleInput"
	Multiple          Name = "multiple"
	EnteredLimit      Name = "enteredLimit"
	AddValues         Name = "addValues"
	SaveEntered       Name = "saveEntered"
	HideEntered       Name = "hideEntered"
	AllowDuplicates   Name = "allowDuplicates"
	CaseSensitive     Name = "caseSensitive"
	Placeholder       Name = "placeholder"
	Required          Name = "required"
	MaxHeight         Name = "maxHeight"
	InputName         Name = "inputName"
	InitialValues     Name = "initialValues"
	Textarea          Name = "textarea"
	BaseBackColor     Name = "baseBackColor"
	SelectedBackColor Name = "selectedBackColor"
	HoverBackColor    Name = "hoverBackColor"
	BaseTextColor     Name = "baseTextColor"
	SelectedTextColor Name = "selectedTextColor"
	HoverTextColor    Name = "hoverTextColor"
)

// canonical is the order in which raw settings are applied. Settings whose
// validators read siblings come after those siblings, so simpleInput is
// settled before multiple and addValues before saveEntered.
var canonical = []Name{
	Values,
	Sort,
	Limit,
	SimpleInput,
	Multiple,
	EnteredLimit,
	AddValues,
	SaveEntered,
	HideEntered,
	AllowDuplicates,
	CaseSensitive,
	Placeholder,
	Required,
	MaxHeight,
	InputName,
	InitialValues,
	Textarea,
	BaseBackColor,
	SelectedBackColor,
	HoverBackColor,
	BaseTextColor,
	SelectedTextColor,
	HoverTextColor,
}

var byFold = func() map[string]Name {
	out := make(map[string]Name, len(canonical))
	for _, n := range canonical {
		out[foldCase(string(n))] = n
	}
	return out
}()

// foldCase builds a fresh Caser per call; Casers are not safe to share.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Names returns every setting in application order.
func Names() []Name {
	return append([]Name{}, canonical...)
}

func (n Name) String() string { return string(n) }

// ParseName matches raw against the setting names ignoring case, which is
// what markup attributes need since browsers lowercase them.
func ParseName(raw string) (Name, bool) {
	n, ok := byFold[foldCase(strings.TrimSpace(raw))]
	return n, ok
}

// Suggest returns the closest setting name to an unknown key.
func Suggest(raw string) (Name, bool) {
	key := foldCase(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	best := Name("")
	bestDist := -1
	for folded, n := range byFold {
		d := levenshtein.ComputeDistance(key, folded)
		if bestDist < 0 || d < bestDist || (d == bestDist && n < best) {
			best, bestDist = n, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(len(key)) {
		return "", false
	}
	return best, true
}

func maxSuggestDistance(length int) int {
	if length <= 4 {
		return 1
	}
	if length <= 8 {
		return 2
	}
	return 3
}
