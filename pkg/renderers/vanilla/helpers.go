package vanilla

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-searchdown/pkg/render"
	"github.com/goliatone/go-searchdown/pkg/widget"
)

type tokenView struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type itemView struct {
	Key      string `json:"key"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

type addView struct {
	Visible  bool   `json:"visible"`
	Selected bool   `json:"selected"`
	Caption  string `json:"caption"`
}

type viewModel struct {
	ID              int         `json:"id"`
	Classes         []string    `json:"classes"`
	Style           string      `json:"style"`
	Theme           string      `json:"theme"`
	Variant         string      `json:"variant"`
	Stylesheet      string      `json:"stylesheet"`
	Label           string      `json:"label"`
	InputID         string      `json:"input_id"`
	InputName       string      `json:"input_name"`
	InputStyle      string      `json:"input_style"`
	ListID          string      `json:"list_id"`
	BackingID       string      `json:"backing_id"`
	Placeholder     string      `json:"placeholder"`
	Query           string      `json:"query"`
	Textarea        bool        `json:"textarea"`
	Multiple        bool        `json:"multiple"`
	Required        bool        `json:"required"`
	Open            bool        `json:"open"`
	Value           string      `json:"value"`
	Tokens          []tokenView `json:"tokens"`
	Items           []itemView  `json:"items"`
	Add             addView     `json:"add"`
	DropdownClasses []string    `json:"dropdown_classes"`
	DropdownStyle   string      `json:"dropdown_style"`
}

func (r *Renderer) viewModel(snap widget.Snapshot, options render.RenderOptions) viewModel {
	vm := viewModel{
		ID:          snap.ID,
		Classes:     snap.Classes,
		Label:       strings.TrimSpace(options.Label),
		InputName:   snap.InputName,
		InputID:     "sd-" + snap.InputName,
		ListID:      "sd-" + snap.InputName + "-list",
		BackingID:   "sdInput-" + snap.InputName,
		Placeholder: snap.Placeholder,
		Query:       snap.Query,
		Textarea:    snap.Textarea,
		Multiple:    snap.Multiple,
		Required:    snap.Required,
		Open:        snap.Open && snap.View.Visible,
		Tokens:      make([]tokenView, 0, len(snap.Tokens)),
		Items:       make([]itemView, 0, len(snap.View.Items)),
	}
	if !snap.Valid && snap.Required && !hasClass(vm.Classes, widget.ClassInvalid) {
		vm.Classes = append(append([]string{}, vm.Classes...), widget.ClassInvalid)
	}
	if snap.SimpleInput {
		width := "100%"
		if snap.Textarea {
			width = "280px"
		}
		vm.InputStyle = "width: " + width
	}
	if !snap.Multiple {
		vm.Value = snap.Value.String()
	}

	vars := map[string]string{}
	if options.Theme != nil {
		vm.Theme = options.Theme.Theme
		vm.Variant = options.Theme.Variant
		for k, v := range options.Theme.CSSVars {
			vars[k] = v
		}
	}
	for k, v := range snap.CSSVars {
		vars[k] = v
	}
	vm.Style = inlineStyle(vars)
	if options.Stylesheet {
		vm.Stylesheet = Stylesheet()
	}

	for _, tok := range snap.Tokens {
		vm.Tokens = append(vm.Tokens, tokenView{Text: r.sanitize(tok.Label), Value: tok.Value})
	}
	for _, it := range snap.View.Items {
		vm.Items = append(vm.Items, itemView{Key: it.Key, Text: r.sanitize(it.Key), Selected: it.Selected})
	}
	if snap.View.Add.Visible {
		vm.Add = addView{Visible: true, Selected: snap.View.Add.Selected, Caption: r.sanitize(snap.View.Add.Caption)}
	}

	vm.DropdownClasses = []string{widget.ClassDropdownWrapper}
	if !vm.Open {
		vm.DropdownClasses = append(vm.DropdownClasses, widget.ClassHide)
	}
	if snap.Placement.Above {
		vm.DropdownClasses = append(vm.DropdownClasses, widget.ClassTop)
	}
	placement := map[string]string{}
	if snap.Placement.MaxHeight > 0 {
		placement["max-height"] = px(snap.Placement.MaxHeight)
	}
	if snap.Placement.Width > 0 {
		placement["width"] = px(snap.Placement.Width)
	}
	vm.DropdownStyle = inlineStyle(placement)
	return vm
}

func (r *Renderer) sanitize(s string) string {
	return strings.TrimSpace(r.policy.Sanitize(s))
}

func inlineStyle(decls map[string]string) string {
	if len(decls) == 0 {
		return ""
	}
	keys := make([]string, 0, len(decls))
	for k, v := range decls {
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.TrimSpace(decls[k]))
	}
	return strings.Join(parts, "; ")
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

func px(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64) + "px"
}
