// Package vdom provides the document tree used to hold server-rendered output.
//
// A rendering platform produces a Document: an element tree rooted at <html>
// with DOM-style accessors (Head, Body, Title, QuerySelector). Documents can
// be built directly with the element helpers or parsed from serialized HTML.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// comments and trusted raw HTML. Attributes keep their source order so that
// serialized markup round-trips faithfully.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	doc := NewDocument(HTML(
//	    Head(Title("Home"), Meta(A("charset", "utf-8"))),
//	    Body(El("app-root", "Hello")),
//	))
//
// # Parsing
//
// ParseDocument and ParseFragment use golang.org/x/net/html, so documents
// follow the HTML5 tree construction rules (implied <head> and <body>,
// lower-cased tag names).
//
// # Selectors
//
// CompileSelector supports type, universal, id, class and attribute
// selectors joined by descendant or child combinators.
package vdom
