package vdom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses a complete HTML document. Missing <html>, <head>
// and <body> elements are synthesized, so a bare fragment such as
// "<app-root></app-root>" yields a document with the element in its body.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.DoctypeNode:
			doc.Doctype = c.Data
		case html.ElementNode:
			if doc.Root == nil {
				doc.Root = convert(c)
			}
		}
	}
	return doc, nil
}

// ParseDocumentString parses a complete HTML document from a string.
func ParseDocumentString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}

// ParseFragment parses markup as the content of a <body> element.
func ParseFragment(r io.Reader) ([]*VNode, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, err
	}
	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if v := convert(n); v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// ParseFragmentString parses markup from a string as <body> content.
func ParseFragmentString(s string) ([]*VNode, error) {
	return ParseFragment(strings.NewReader(s))
}

// convert maps an html.Node subtree onto VNodes.
func convert(n *html.Node) *VNode {
	switch n.Type {
	case html.ElementNode:
		v := &VNode{Kind: KindElement, Tag: n.Data}
		if len(n.Attr) > 0 {
			v.Attrs = make([]Attr, 0, len(n.Attr))
			for _, a := range n.Attr {
				key := a.Key
				if a.Namespace != "" {
					key = a.Namespace + ":" + a.Key
				}
				v.Attrs = append(v.Attrs, Attr{Key: key, Value: a.Val})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			v.AppendChild(convert(c))
		}
		return v
	case html.TextNode:
		return &VNode{Kind: KindText, Text: n.Data}
	case html.CommentNode:
		return &VNode{Kind: KindComment, Text: n.Data}
	default:
		return nil
	}
}
