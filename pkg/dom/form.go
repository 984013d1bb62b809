package dom

// AddOption appends an option to a select element.
func (e *Element) AddOption(opt Option) {
	e.options = append(e.options, opt)
}

// RemoveOption drops the option at index.
func (e *Element) RemoveOption(index int) bool {
	if index < 0 || index >= len(e.options) {
		return false
	}
	e.options = append(e.options[:index], e.options[index+1:]...)
	return true
}

func (e *Element) ClearOptions() { e.options = nil }

func (e *Element) Options() []Option { return append([]Option{}, e.options...) }

func (e *Element) OptionCount() int { return len(e.options) }

// SelectedValues returns the value of each selected option, or its label
// when the value is empty.
func (e *Element) SelectedValues() []string {
	var out []string
	for _, o := range e.options {
		if !o.Selected {
			continue
		}
		if o.Value != "" {
			out = append(out, o.Value)
			continue
		}
		out = append(out, o.Label)
	}
	return out
}

// SetCustomValidity sets the constraint message. Empty means valid.
func (e *Element) SetCustomValidity(message string) { e.validity = message }

func (e *Element) ValidationMessage() string { return e.validity }

// Valid reports whether the element passes constraint validation.
func (e *Element) Valid() bool { return e.validity == "" }

// OnInvalid registers a listener fired by ReportValidity on failure.
func (e *Element) OnInvalid(fn func(*Element)) {
	if fn == nil {
		return
	}
	e.invalid = append(e.invalid, fn)
}

// ReportValidity fires invalid listeners when the element is invalid.
func (e *Element) ReportValidity() bool {
	if e.Valid() {
		return true
	}
	for _, fn := range append([]func(*Element){}, e.invalid...) {
		fn(e)
	}
	return false
}
