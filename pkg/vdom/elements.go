package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// rawTextElements hold text that is serialized without escaping.
var rawTextElements = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"xmp":       true,
}

// IsRawTextElement returns true if the element's text children are not escaped.
func IsRawTextElement(tag string) bool {
	return rawTextElements[tag]
}

// El creates an element node.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, or string (text child).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if v.Key != "" {
				node.SetAttr(v.Key, v.Value)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.SetAttr(a.Key, a.Value)
				}
			}
		case *VNode:
			node.AppendChild(v)
		case []*VNode:
			for _, c := range v {
				node.AppendChild(c)
			}
		case string:
			node.AppendChild(Text(v))
		}
	}

	return node
}

// A creates an attribute.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

func HTML(args ...any) *VNode   { return El("html", args...) }
func Head(args ...any) *VNode   { return El("head", args...) }
func Body(args ...any) *VNode   { return El("body", args...) }
func Title(args ...any) *VNode  { return El("title", args...) }
func Meta(args ...any) *VNode   { return El("meta", args...) }
func Link(args ...any) *VNode   { return El("link", args...) }
func Script(args ...any) *VNode { return El("script", args...) }
func Style(args ...any) *VNode  { return El("style", args...) }
func Div(args ...any) *VNode    { return El("div", args...) }
