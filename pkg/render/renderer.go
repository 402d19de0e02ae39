package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/universal/pkg/vdom"
)

// RendererConfig configures the HTML serializer.
type RendererConfig struct {
	// MinimizeBooleanAttrs renders boolean attributes whose value is empty
	// as a bare name (defer instead of defer=""). Off by default, which
	// matches DOM outerHTML serialization.
	MinimizeBooleanAttrs bool
}

// Renderer serializes document trees to HTML markup.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	return &Renderer{config: config}
}

var defaultRenderer = NewRenderer(RendererConfig{})

// OuterHTML serializes node and its descendants, the equivalent of the DOM
// outerHTML property.
func OuterHTML(node *vdom.VNode) (string, error) {
	return defaultRenderer.RenderToString(node)
}

// RenderToString renders a node tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, false)
}

// renderNode dispatches rendering based on node kind.
// raw is true for text inside script, style and other raw-text elements.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, raw bool) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node)
	case vdom.KindText:
		if raw {
			_, err := io.WriteString(w, node.Text)
			return err
		}
		_, err := io.WriteString(w, escapeText(node.Text))
		return err
	case vdom.KindComment:
		_, err := fmt.Fprintf(w, "<!--%s-->", node.Text)
		return err
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode) error {
	tag := node.Tag

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	for _, attr := range node.Attrs {
		if err := r.renderAttr(w, attr); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	// Void elements have no children and no closing tag
	if vdom.IsVoidElement(tag) {
		return nil
	}

	raw := vdom.IsRawTextElement(tag)
	for _, child := range node.Children {
		if err := r.renderNode(w, child, raw); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// renderAttr renders a single attribute.
func (r *Renderer) renderAttr(w io.Writer, attr vdom.Attr) error {
	if attr.Key == "" {
		return nil
	}
	if r.config.MinimizeBooleanAttrs && attr.Value == "" && isBooleanAttr(attr.Key) {
		_, err := fmt.Fprintf(w, " %s", attr.Key)
		return err
	}
	_, err := fmt.Fprintf(w, ` %s="%s"`, attr.Key, escapeAttrValue(attr.Value))
	return err
}

// isBooleanAttr reports whether name is an HTML boolean attribute.
func isBooleanAttr(name string) bool {
	switch name {
	case "allowfullscreen", "async", "autofocus", "autoplay", "checked",
		"controls", "default", "defer", "disabled", "formnovalidate",
		"hidden", "ismap", "itemscope", "loop", "multiple", "muted",
		"nomodule", "novalidate", "open", "playsinline", "readonly",
		"required", "reversed", "selected":
		return true
	}
	return false
}
