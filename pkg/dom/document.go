package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a tree rooted at a body element and resolves references.
type Document struct {
	mu   sync.RWMutex
	body *Element
}

func NewDocument() *Document {
	return &Document{body: New("body")}
}

// Body returns the root element.
func (d *Document) Body() *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.body
}

// Append attaches elements to the body.
func (d *Document) Append(children ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.body.Append(children...)
}

// GetByID returns the first element with id.
func (d *Document) GetByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.Body().Find(func(el *Element) bool { return el.ID == id })
}

// GetByName returns the first element with name.
func (d *Document) GetByName(name string) *Element {
	if name == "" {
		return nil
	}
	return d.Body().Find(func(el *Element) bool { return el.Name == name })
}

// ByClass returns every element carrying class in document order.
func (d *Document) ByClass(class string) []*Element {
	return d.Body().FindAll(func(el *Element) bool { return el.HasClass(class) })
}

// Parse reads HTML into a Document. Only element nodes are kept; text is
// folded into the owning element's Text.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("dom: missing reader")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}

	doc := NewDocument()
	body := findBody(root)
	if body == nil {
		return doc, nil
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if el := convert(c); el != nil {
			doc.body.Append(el)
		}
	}
	return doc, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func convert(n *html.Node) *Element {
	if n.Type != html.ElementNode {
		return nil
	}
	el := New(n.Data)
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			el.ID = a.Val
		case "name":
			el.Name = a.Val
		case "value":
			el.Value = a.Val
		case "type":
			el.Type = a.Val
		case "placeholder":
			el.Placeholder = a.Val
		case "multiple":
			el.Multiple = true
		case "required":
			el.Required = true
		case "class":
			el.AddClass(a.Val)
		case "style":
			for _, decl := range strings.Split(a.Val, ";") {
				prop, value, ok := strings.Cut(decl, ":")
				if ok {
					el.SetStyle(strings.TrimSpace(prop), strings.TrimSpace(value))
				}
			}
		default:
			el.SetAttr(a.Key, a.Val)
		}
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			text.WriteString(c.Data)
		case n.DataAtom == atom.Select && c.DataAtom == atom.Option:
			el.AddOption(option(c))
		default:
			if child := convert(c); child != nil {
				el.Append(child)
			}
		}
	}
	el.Text = strings.TrimSpace(text.String())
	return el
}

func option(n *html.Node) Option {
	var opt Option
	hasValue := false
	for _, a := range n.Attr {
		switch a.Key {
		case "value":
			opt.Value, hasValue = a.Val, true
		case "selected":
			opt.Selected = true
		}
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	opt.Label = strings.TrimSpace(text.String())
	if !hasValue {
		opt.Value = opt.Label
	}
	return opt
}
