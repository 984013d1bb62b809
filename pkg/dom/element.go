// Package dom is a small in-memory element tree that stands in for the
// browser document. It models only what a searchdown touches: identity,
// classes, inline style, values, select options and constraint validity.
package dom

import (
	"sort"
	"strings"
)

// Option is one entry of a select element.
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// Element is a node in the tree. Fields are exported for construction;
// use the methods once an element is attached.
type Element struct {
	Tag         string
	ID          string
	Name        string
	Value       string
	Text        string
	Type        string
	Placeholder string
	Multiple    bool
	Required    bool

	attrs    map[string]string
	classes  []string
	style    map[string]string
	options  []Option
	children []*Element
	parent   *Element

	validity string
	invalid  []func(*Element)
	focused  bool
}

// New creates a detached element with optional classes.
func New(tag string, classes ...string) *Element {
	e := &Element{Tag: strings.ToLower(tag)}
	e.AddClass(classes...)
	return e
}

// Append attaches children in order and returns e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// Remove detaches child from e.
func (e *Element) Remove(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Clear detaches every child.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

func (e *Element) Children() []*Element { return append([]*Element{}, e.children...) }

func (e *Element) Parent() *Element { return e.parent }

// Root walks up to the top of the tree.
func (e *Element) Root() *Element {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Walk visits e and its descendants depth first until fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant (or e) matching fn.
func (e *Element) Find(fn func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if fn(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant (and e) matching fn in document order.
func (e *Element) FindAll(fn func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if fn(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// ByClass returns the first element carrying class.
func (e *Element) ByClass(class string) *Element {
	return e.Find(func(el *Element) bool { return el.HasClass(class) })
}

// Closest returns the nearest ancestor (or e) carrying class.
func (e *Element) Closest(class string) *Element {
	for el := e; el != nil; el = el.parent {
		if el.HasClass(class) {
			return el
		}
	}
	return nil
}

func (e *Element) AddClass(names ...string) {
	for _, n := range names {
		for _, f := range strings.Fields(n) {
			if !e.HasClass(f) {
				e.classes = append(e.classes, f)
			}
		}
	}
}

func (e *Element) RemoveClass(names ...string) {
	for _, n := range names {
		for i, c := range e.classes {
			if c == n {
				e.classes = append(e.classes[:i], e.classes[i+1:]...)
				break
			}
		}
	}
}

// ToggleClass adds or removes name depending on on.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) Classes() []string { return append([]string{}, e.classes...) }

// SetClasses replaces the class list, dropping blanks and repeats.
func (e *Element) SetClasses(classes []string) {
	e.classes = nil
	e.AddClass(classes...)
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

func (e *Element) SetStyle(prop, value string) {
	if e.style == nil {
		e.style = map[string]string{}
	}
	if value == "" {
		delete(e.style, prop)
		return
	}
	e.style[prop] = value
}

func (e *Element) Style(prop string) string { return e.style[prop] }

// StyleText renders inline style with properties sorted.
func (e *Element) StyleText() string {
	if len(e.style) == 0 {
		return ""
	}
	props := make([]string, 0, len(e.style))
	for p := range e.style {
		props = append(props, p)
	}
	sort.Strings(props)
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p+": "+e.style[p])
	}
	return strings.Join(parts, "; ")
}

func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[strings.ToLower(name)] = value
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[strings.ToLower(name)]
	return v, ok
}

// Attrs returns a copy of the extra attributes.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// Dataset returns data-* attributes with the prefix removed.
func (e *Element) Dataset() map[string]string {
	out := map[string]string{}
	for k, v := range e.attrs {
		if strings.HasPrefix(k, "data-") {
			out[strings.TrimPrefix(k, "data-")] = v
		}
	}
	return out
}

func (e *Element) Focus() {
	e.Root().Walk(func(el *Element) bool {
		el.focused = false
		return true
	})
	e.focused = true
}

func (e *Element) Blur() { e.focused = false }

func (e *Element) Focused() bool { return e.focused }
