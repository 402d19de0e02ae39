// Package render serializes rendered documents back to HTML markup.
//
// The render package converts vdom trees into HTML strings or streams using
// the HTML fragment serialization rules, so that the markup extracted from a
// server-rendered document matches what the DOM outerHTML property would
// return:
//
//   - Text is escaped (&, <, >, no-break space)
//   - Attribute values are escaped (&, ", no-break space) and keep source order
//   - Void elements (input, br, meta, link, ...) have no closing tag
//   - Text inside script, style and other raw-text elements is not escaped
//
// # Basic Usage
//
//	markup, err := render.OuterHTML(node)
//
// To stream a node tree to a writer:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	err := renderer.RenderToWriter(w, doc.Root)
//
// # Page Assembly
//
// RenderPage assembles the final HTML response from the extracted pieces of
// a render (title, meta, links, styles, app root markup and scripts):
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:   result.Globals.Title,
//	    Meta:    result.Globals.Meta,
//	    Body:    result.HTML,
//	    Scripts: result.Globals.Scripts,
//	})
//
// # Security
//
// Values supplied by the host (Title, Lang, BaseHref) are escaped. Markup
// fragments in PageData come from the rendering platform and are written
// verbatim; they must only carry trusted output.
package render
