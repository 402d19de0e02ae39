package render

import "strings"

var (
	// htmlEscaper covers values the host writes into text content.
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// attrEscaper also encodes whitespace that would break a quoted value.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)

	// The fragment serialization algorithm escapes text nodes and attribute
	// values with these sets and nothing more, so output matches outerHTML.
	textEscaper      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")
	attrValueEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "\u00a0", "&nbsp;")
)

func escapeHTML(s string) string      { return htmlEscaper.Replace(s) }
func escapeAttr(s string) string      { return attrEscaper.Replace(s) }
func escapeText(s string) string      { return textEscaper.Replace(s) }
func escapeAttrValue(s string) string { return attrValueEscaper.Replace(s) }
