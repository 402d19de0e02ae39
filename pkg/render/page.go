package render

import (
	"fmt"
	"io"
	"strings"
)

// PageData contains everything needed to assemble a server-rendered HTML
// response from an engine result. Markup fields are trusted fragments
// produced by the rendering platform and are written unescaped.
type PageData struct {
	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Title is the page title. It is escaped.
	Title string

	// Meta is pre-rendered <meta> markup, one element per line.
	Meta string

	// Links is pre-rendered <link> markup.
	Links string

	// Styles is pre-rendered <style> markup.
	Styles string

	// Body is the rendered application root element.
	Body string

	// Scripts is pre-rendered <script> markup, placed after Body.
	Scripts string

	// BaseHref sets a <base href> element when non-empty.
	BaseHref string
}

// RenderPage assembles a complete HTML document and writes it to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := writeFragment(w, page.Body); err != nil {
		return err
	}
	if err := writeFragment(w, page.Scripts); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}

	// The platform output usually carries its own charset declaration
	if !strings.Contains(strings.ToLower(page.Meta), "charset") {
		if _, err := io.WriteString(w, `<meta charset="utf-8">`+"\n"); err != nil {
			return err
		}
	}

	if page.BaseHref != "" {
		if _, err := fmt.Fprintf(w, `<base href="%s">`+"\n", escapeAttr(page.BaseHref)); err != nil {
			return err
		}
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, fragment := range []string{page.Meta, page.Links, page.Styles} {
		if err := writeFragment(w, fragment); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// writeFragment writes non-empty markup followed by a newline.
func writeFragment(w io.Writer, markup string) error {
	if markup == "" {
		return nil
	}
	if _, err := io.WriteString(w, markup); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
