package engine

import (
	"strings"

	"github.com/vango-dev/universal/internal/errors"
	"github.com/vango-dev/universal/pkg/render"
	"github.com/vango-dev/universal/pkg/vdom"
)

// Extract collects the script, style, link and meta elements that are
// direct children of head and then body, in document order, and the outer
// markup of the first element matching appSelector. It does not modify doc.
func Extract(doc *vdom.Document, appSelector string) (UniversalData, error) {
	if doc == nil || doc.Root == nil {
		return UniversalData{}, errors.New("E114")
	}

	var b buckets
	if err := b.collect(doc.Head()); err != nil {
		return UniversalData{}, err
	}
	if err := b.collect(doc.Body()); err != nil {
		return UniversalData{}, err
	}

	app, err := doc.QuerySelector(appSelector)
	if err != nil {
		return UniversalData{}, errors.New("E101").Wrap(err)
	}
	if app == nil {
		return UniversalData{}, errors.New("E111").WithContextf("no element matches %q", appSelector)
	}
	appNode, err := render.OuterHTML(app)
	if err != nil {
		return UniversalData{}, err
	}

	return UniversalData{
		Title:   doc.Title(),
		AppNode: appNode,
		Scripts: strings.Join(b.scripts, "\n"),
		Styles:  strings.Join(b.styles, "\n"),
		Meta:    strings.Join(b.meta, "\n"),
		Links:   strings.Join(b.links, "\n"),
	}, nil
}

type buckets struct {
	scripts []string
	styles  []string
	meta    []string
	links   []string
}

func (b *buckets) collect(parent *vdom.VNode) error {
	if parent == nil {
		return nil
	}
	for _, el := range parent.ElementChildren() {
		var dst *[]string
		switch strings.ToUpper(el.Tag) {
		case "SCRIPT":
			dst = &b.scripts
		case "STYLE":
			dst = &b.styles
		case "LINK":
			dst = &b.links
		case "META":
			dst = &b.meta
		default:
			continue
		}
		markup, err := render.OuterHTML(el)
		if err != nil {
			return err
		}
		*dst = append(*dst, markup)
	}
	return nil
}
