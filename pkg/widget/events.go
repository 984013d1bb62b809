package widget

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-searchdown/pkg/dom"
	"github.com/goliatone/go-searchdown/pkg/dropdown"
	"github.com/goliatone/go-searchdown/pkg/resolver"
	"github.com/goliatone/go-searchdown/pkg/selection"
)

// Named keys understood by KeyDown. Any other single printable character is
// typed into the input.
const (
	KeyEnter     = "Enter"
	KeyUp        = "ArrowUp"
	KeyDown      = "ArrowDown"
	KeyBackspace = "Backspace"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
)

// Focus focuses the input and opens the dropdown for the current text.
func (w *Widget) Focus() {
	w.input.Focus()
	w.refresh(w.input.Value)
}

// KeyDown handles one key press in the input.
func (w *Widget) KeyDown(key string) {
	switch key {
	case "", "Unidentified", "Dead", "Process":
		return
	case KeyEnter:
		w.enter()
	case KeyDown, "Down":
		w.move(1)
	case KeyUp, "Up":
		w.move(-1)
	case KeyBackspace:
		if w.input.Value == "" {
			if w.machine.RemoveLast() {
				w.refresh("")
			}
			return
		}
		_, size := utf8.DecodeLastRuneInString(w.input.Value)
		w.input.Value = w.input.Value[:len(w.input.Value)-size]
		w.refresh(w.input.Value)
	case KeyTab:
		w.closeAll()
	case KeyEscape:
		w.closeAll()
		w.input.Blur()
	default:
		r, size := utf8.DecodeRuneInString(key)
		if size != len(key) || !unicode.IsPrint(r) {
			return
		}
		w.input.Value += key
		w.refresh(w.input.Value)
	}
}

// Type presses each character of text in turn.
func (w *Widget) Type(text string) {
	for _, r := range text {
		w.KeyDown(string(r))
	}
}

// SetQuery replaces the typed text, as a paste would, and refreshes the
// dropdown.
func (w *Widget) SetQuery(text string) {
	w.input.Value = text
	w.refresh(text)
}

// ClickItem confirms the candidate at index of the current view.
func (w *Widget) ClickItem(index int) bool {
	if index < 0 || index >= len(w.view.Items) {
		return false
	}
	key := w.view.Items[index].Key
	if key == "" {
		return false
	}
	value, ok := resolver.SubmissionValue(w.cfg, key)
	if !ok {
		return false
	}
	applied := w.confirm(value, false) == selection.OutcomeApplied
	if w.open {
		w.refresh(w.input.Value)
	}
	return applied
}

// ClickAdd confirms the typed text through the add row.
func (w *Widget) ClickAdd() bool {
	if w.addRow == nil {
		return false
	}
	return w.confirmTyped(w.input.Value)
}

// ClickToken removes the entered token at index.
func (w *Widget) ClickToken(index int) bool {
	if !w.machine.Remove(index) {
		return false
	}
	if w.open {
		w.refresh(w.input.Value)
	}
	return true
}

// Close hides this widget's dropdown.
func (w *Widget) Close() {
	w.open = false
	w.dropdownWrapper.AddClass(ClassHide)
}

func (w *Widget) enter() {
	sel, ok := w.view.Selected()
	if !w.open || !ok {
		return
	}
	if sel.Add {
		w.confirmTyped(w.input.Value)
	} else if value, ok := resolver.SubmissionValue(w.cfg, sel.Key); ok {
		w.confirm(value, !w.cfg.SimpleInput())
	}
	if w.cfg.Multiple() {
		w.refresh(w.input.Value)
	}
}

func (w *Widget) confirmTyped(text string) bool {
	if text == "" {
		return false
	}
	if w.confirm(text, !w.cfg.SimpleInput()) != selection.OutcomeApplied {
		return false
	}
	if w.cfg.SaveEntered() && !w.cfg.Values().Contains(text) {
		w.cfg.PushValue(text)
	}
	return true
}

func (w *Widget) confirm(value string, clearInput bool) selection.Outcome {
	outcome := w.machine.Confirm(value, clearInput)
	if outcome == selection.OutcomeApplied && !w.cfg.Multiple() {
		w.closeAll()
	}
	return outcome
}

func (w *Widget) move(delta int) {
	if next, ok := w.view.Move(delta); ok {
		w.view = next
		w.renderList()
	}
}

// refresh rebuilds the dropdown for query and shows it.
func (w *Widget) refresh(query string) {
	view := dropdown.Build(w.cfg, dropdown.Query{Text: query, Entered: w.machine.Labels()})
	if !view.Visible {
		return
	}
	w.view = view
	w.renderList()

	if w.geometry != nil {
		w.placement = dropdown.Place(w.geometry(), w.cfg.MaxHeight())
		w.dropdownWrapper.ToggleClass(ClassTop, w.placement.Above)
		w.dropdownWrapper.SetStyle("max-height", px(w.placement.MaxHeight))
		w.dropdownWrapper.SetStyle("width", px(w.placement.Width))
	}
	w.dropdownWrapper.RemoveClass(ClassHide)
	w.open = true
}

func (w *Widget) renderList() {
	w.list.Clear()
	for _, it := range w.view.Items {
		li := dom.New("li", ClassOption)
		li.Text = it.Key
		li.ToggleClass(ClassSelected, it.Selected)
		w.list.Append(li)
	}
	if w.addRow == nil {
		return
	}
	w.addRow.Text = w.view.Add.Caption
	w.addRow.ToggleClass(ClassHide, !w.view.Add.Visible)
	w.addRow.ToggleClass(ClassSelected, w.view.Add.Selected)
	w.list.Append(w.addRow)
}

func (w *Widget) closeAll() {
	if w.manager != nil {
		w.manager.CloseAll()
		return
	}
	w.Close()
}

func px(n float64) string { return strconv.FormatFloat(n, 'f', -1, 64) + "px" }
