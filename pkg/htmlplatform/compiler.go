package htmlplatform

import (
	"context"
	"fmt"

	"github.com/vango-dev/universal/pkg/engine"
	"github.com/vango-dev/universal/pkg/vdom"
)

// Compiler compiles TemplateModules by loading their resources.
type Compiler struct {
	loader engine.ResourceLoader
}

// NewCompilerFactory returns a CompilerFactory producing Compilers bound to
// the given loader.
func NewCompilerFactory() engine.CompilerFactory {
	return engine.CompilerFactoryFunc(func(loader engine.ResourceLoader) engine.Compiler {
		return &Compiler{loader: loader}
	})
}

// CompileModule loads the module's template and stylesheets and parses the
// template markup.
func (c *Compiler) CompileModule(ctx context.Context, module engine.Module) (engine.Factory, error) {
	m, ok := module.(*TemplateModule)
	if !ok {
		return nil, fmt.Errorf("htmlplatform: cannot compile %T", module)
	}
	if m.Selector == "" {
		return nil, fmt.Errorf("htmlplatform: module %q has no selector", m.ModuleID())
	}
	if c.loader == nil {
		return nil, fmt.Errorf("htmlplatform: no resource loader")
	}

	f := &Factory{module: m}
	if m.Template != "" {
		markup, err := c.loader.Get(ctx, m.Template)
		if err != nil {
			return nil, err
		}
		f.nodes, err = vdom.ParseFragmentString(markup)
		if err != nil {
			return nil, fmt.Errorf("htmlplatform: parse %s: %w", m.Template, err)
		}
	}

	for _, url := range m.Styles {
		css, err := c.loader.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		f.styles = append(f.styles, css)
	}
	return f, nil
}
