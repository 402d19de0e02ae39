package vdom

import "strings"

// Document is a rendered HTML document: a tree rooted at the <html> element
// with DOM-style accessors for head, body, title and selector queries.
//
// A Document is not safe for concurrent mutation. Platforms hand each render
// its own Document (see Clone).
type Document struct {
	// Doctype is the document type name (e.g., "html"). Empty if none.
	Doctype string

	// Root is the <html> element.
	Root *VNode
}

// NewDocument creates a document around an existing <html> element.
func NewDocument(root *VNode) *Document {
	return &Document{Doctype: "html", Root: root}
}

// Head returns the <head> element, or nil if the document has none.
func (d *Document) Head() *VNode {
	return d.section("head")
}

// Body returns the <body> element, or nil if the document has none.
func (d *Document) Body() *VNode {
	return d.section("body")
}

func (d *Document) section(tag string) *VNode {
	if d == nil || d.Root == nil {
		return nil
	}
	for _, c := range d.Root.ElementChildren() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Title returns the text of the first <title> element with leading and
// trailing whitespace stripped and inner whitespace runs collapsed.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	var title *VNode
	d.Root.Walk(func(n *VNode) bool {
		if n.Kind == KindElement && n.Tag == "title" {
			title = n
			return false
		}
		return true
	})
	if title == nil {
		return ""
	}
	return strings.Join(strings.Fields(title.TextContent()), " ")
}

// QuerySelector returns the first element in document order matching sel.
// It returns nil and no error when nothing matches.
func (d *Document) QuerySelector(sel string) (*VNode, error) {
	s, err := CompileSelector(sel)
	if err != nil {
		return nil, err
	}
	return s.First(d.Root), nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Doctype: d.Doctype, Root: d.Root.Clone()}
}
