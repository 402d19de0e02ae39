package htmlplatform

import (
	"context"
	"time"

	"github.com/vango-dev/universal/pkg/engine"
	"github.com/vango-dev/universal/pkg/vdom"
)

// Hook runs before the document is serialized. It may modify doc.
type Hook func(ctx context.Context, doc *vdom.Document, providers []engine.Provider) error

// TemplateModule is a component described by a root selector, a template
// and stylesheets, all loaded through the resource loader at compile time.
type TemplateModule struct {
	// ID is the stable module identity. Defaults to Template.
	ID string

	// Selector is the root element tag the template mounts into,
	// e.g. "app-root".
	Selector string

	// Template is the resource URL of the component markup.
	Template string

	// Styles are resource URLs of component stylesheets, inserted into
	// head in order.
	Styles []string

	// Hooks run before serialization, in order.
	Hooks []Hook

	// Pending delays stability, standing in for outstanding async work.
	Pending time.Duration
}

// ModuleID returns the module's stable identity.
func (m *TemplateModule) ModuleID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.Template
}

// Factory is a compiled TemplateModule.
type Factory struct {
	module *TemplateModule
	nodes  []*vdom.VNode
	styles []string
}

// ModuleID returns the source module's identity.
func (f *Factory) ModuleID() string { return f.module.ModuleID() }

// Source returns the module the factory was compiled from.
func (f *Factory) Source() engine.Module { return f.module }
