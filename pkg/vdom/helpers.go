package vdom

// Text returns a text node. Its content is escaped on serialization.
func Text(content string) *VNode { return leaf(KindText, content) }

// Raw returns markup that is serialized verbatim.
func Raw(html string) *VNode { return leaf(KindRaw, html) }

// Comment returns a comment node.
func Comment(text string) *VNode { return leaf(KindComment, text) }

func leaf(kind VKind, s string) *VNode {
	return &VNode{Kind: kind, Text: s}
}
