package htmlplatform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vango-dev/universal/pkg/engine"
	"github.com/vango-dev/universal/pkg/vdom"
)

// TransferState returns a hook that serializes the value produced by state
// into a JSON script element appended to body, where the client picks it up
// instead of refetching. The element ends up in the extracted scripts.
func TransferState(id string, state func(ctx context.Context, providers []engine.Provider) (any, error)) Hook {
	return func(ctx context.Context, doc *vdom.Document, providers []engine.Provider) error {
		v, err := state(ctx, providers)
		if err != nil {
			return err
		}
		// json.Marshal escapes <, > and &, so the payload cannot close the
		// script element.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("transfer state %q: %w", id, err)
		}
		body := doc.Body()
		if body == nil {
			return fmt.Errorf("transfer state %q: document has no body", id)
		}
		body.AppendChild(vdom.Script(
			vdom.A("id", id),
			vdom.A("type", "application/json"),
			vdom.Text(string(data)),
		))
		return nil
	}
}

// SetTitle returns a hook that sets the document title, creating the
// <title> element if needed.
func SetTitle(title string) Hook {
	return func(ctx context.Context, doc *vdom.Document, providers []engine.Provider) error {
		head := doc.Head()
		if head == nil {
			return fmt.Errorf("set title: document has no head")
		}
		for _, el := range head.ElementChildren() {
			if el.Tag == "title" {
				el.Children = []*vdom.VNode{vdom.Text(title)}
				return nil
			}
		}
		head.AppendChild(vdom.Title(vdom.Text(title)))
		return nil
	}
}
