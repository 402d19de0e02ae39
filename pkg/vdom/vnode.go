package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <script>, etc.
	KindText                 // Plain text node
	KindComment              // <!-- comment -->
	KindRaw                  // Raw HTML (trusted markup, not escaped)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Attr is a single attribute. Attribute order is preserved so that
// serialized markup matches the order the attributes were written in.
type Attr struct {
	Key   string
	Value string
}

// VNode is a node in a rendered document tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Lower-case element tag name (e.g., "app-root")
	Attrs    []Attr   // Attributes in source order
	Children []*VNode // Child nodes
	Text     string   // For KindText, KindComment and KindRaw
}

// GetAttr returns the value of the named attribute.
func (v *VNode) GetAttr(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, a := range v.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing value in place.
func (v *VNode) SetAttr(key, value string) {
	for i := range v.Attrs {
		if v.Attrs[i].Key == key {
			v.Attrs[i].Value = value
			return
		}
	}
	v.Attrs = append(v.Attrs, Attr{Key: key, Value: value})
}

// HasClass reports whether the class attribute contains name.
func (v *VNode) HasClass(name string) bool {
	class, ok := v.GetAttr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}

// AppendChild adds child as the last child of v. Nil children are ignored.
func (v *VNode) AppendChild(child *VNode) {
	if child == nil {
		return
	}
	v.Children = append(v.Children, child)
}

// ElementChildren returns the element children of v in document order,
// skipping text and comment nodes (the DOM "children" collection).
func (v *VNode) ElementChildren() []*VNode {
	if v == nil {
		return nil
	}
	out := make([]*VNode, 0, len(v.Children))
	for _, c := range v.Children {
		if c != nil && c.Kind == KindElement {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the concatenated text of v and its descendants.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindComment, KindRaw:
		return ""
	}
	var b strings.Builder
	for _, c := range v.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Walk visits v and its descendants depth-first in document order.
// Returning false from fn stops the walk.
func (v *VNode) Walk(fn func(*VNode) bool) bool {
	if v == nil {
		return true
	}
	if !fn(v) {
		return false
	}
	for _, c := range v.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	out := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Text: v.Text,
	}
	if len(v.Attrs) > 0 {
		out.Attrs = make([]Attr, len(v.Attrs))
		copy(out.Attrs, v.Attrs)
	}
	if len(v.Children) > 0 {
		out.Children = make([]*VNode, len(v.Children))
		for i, c := range v.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}
