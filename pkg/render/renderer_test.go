package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/universal/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	html, err := OuterHTML(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	html, err := OuterHTML(vdom.Div("<script>alert('xss')</script> & more"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<div>&lt;script&gt;alert('xss')&lt;/script&gt; &amp; more</div>"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderElementKeepsAttributeOrder(t *testing.T) {
	node := vdom.Link(vdom.A("rel", "stylesheet"), vdom.A("href", "/a.css?x=1&y=2"), vdom.A("title", `say "hi"`))

	html, err := OuterHTML(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<link rel="stylesheet" href="/a.css?x=1&amp;y=2" title="say &quot;hi&quot;">`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderRawTextElements(t *testing.T) {
	node := vdom.Script(vdom.Text("if (a < b && c > d) { run(); }"))

	html, err := OuterHTML(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<script>if (a < b && c > d) { run(); }</script>"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}

	style, _ := OuterHTML(vdom.Style("a > b { color: red }"))
	if style != "<style>a > b { color: red }</style>" {
		t.Errorf("style should not be escaped, got %q", style)
	}
}

func TestRenderVoidElements(t *testing.T) {
	tests := []struct {
		node *vdom.VNode
		want string
	}{
		{vdom.Meta(vdom.A("charset", "utf-8")), `<meta charset="utf-8">`},
		{vdom.El("br"), "<br>"},
		{vdom.El("img", vdom.A("src", "a.png"), vdom.A("alt", "")), `<img src="a.png" alt="">`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := OuterHTML(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCommentAndRaw(t *testing.T) {
	node := vdom.Div(vdom.Comment(" marker "), vdom.Raw("<b>trusted</b>"))
	got, err := OuterHTML(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<div><!-- marker --><b>trusted</b></div>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderBooleanAttrs(t *testing.T) {
	node := vdom.Script(vdom.A("src", "main.js"), vdom.A("defer", ""))

	got, _ := OuterHTML(node)
	if got != `<script src="main.js" defer=""></script>` {
		t.Errorf("default serialization got %q", got)
	}

	r := NewRenderer(RendererConfig{MinimizeBooleanAttrs: true})
	got, _ = r.RenderToString(node)
	if got != `<script src="main.js" defer></script>` {
		t.Errorf("minimized serialization got %q", got)
	}
}

func TestRenderNil(t *testing.T) {
	got, err := OuterHTML(nil)
	if err != nil || got != "" {
		t.Errorf("OuterHTML(nil) = %q, %v", got, err)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := OuterHTML(&vdom.VNode{Kind: vdom.VKind(99)})
	if err == nil {
		t.Fatal("expected error for unknown node kind")
	}
}

func TestRenderParsedRoundTrip(t *testing.T) {
	src := `<html><head><title>T</title><meta charset="utf-8"></head>` +
		`<body><app-root>Hello</app-root><script src="main.js"></script></body></html>`

	doc, err := vdom.ParseDocumentString("<!DOCTYPE html>" + src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderToWriter(&buf, doc.Root); err != nil {
		t.Fatalf("RenderToWriter error: %v", err)
	}
	if buf.String() != src {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", buf.String(), src)
	}
}

func TestRenderWriterError(t *testing.T) {
	err := NewRenderer(RendererConfig{}).RenderToWriter(failingWriter{}, vdom.Div("x"))
	if err == nil || !strings.Contains(err.Error(), "write failed") {
		t.Errorf("expected writer error, got %v", err)
	}
}
