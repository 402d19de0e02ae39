package htmlplatform

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/universal/pkg/engine"
	"github.com/vango-dev/universal/pkg/vdom"
)

// PlatformFactory creates Platforms that parse the initial document
// template and mount compiled templates into it.
type PlatformFactory struct{}

// NewPlatform parses opts.Document. A bare fragment such as
// "<app-root></app-root>" becomes the body of a synthesized document.
func (PlatformFactory) NewPlatform(ctx context.Context, opts engine.PlatformOptions) (engine.Platform, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := vdom.ParseDocumentString(opts.Document)
	if err != nil {
		return nil, fmt.Errorf("htmlplatform: parse document: %w", err)
	}
	return &Platform{doc: doc, opts: opts}, nil
}

// Platform owns one document for one render.
type Platform struct {
	mu        sync.Mutex
	doc       *vdom.Document
	opts      engine.PlatformOptions
	app       *App
	destroyed bool
}

// Bootstrap mounts the factory's template under its root element, inserts
// the component styles into head and returns the running application.
func (p *Platform) Bootstrap(ctx context.Context, factory engine.Factory) (engine.ApplicationRef, error) {
	f, ok := factory.(*Factory)
	if !ok {
		return nil, fmt.Errorf("htmlplatform: cannot bootstrap %T", factory)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return nil, fmt.Errorf("htmlplatform: platform destroyed")
	}

	root, err := p.doc.QuerySelector(f.module.Selector)
	if err != nil {
		return nil, fmt.Errorf("htmlplatform: selector %q: %w", f.module.Selector, err)
	}
	if root == nil {
		return nil, fmt.Errorf("htmlplatform: no <%s> element in document", f.module.Selector)
	}

	vars := p.variables()
	root.Children = nil
	for _, n := range f.nodes {
		clone := n.Clone()
		interpolate(clone, vars)
		root.AppendChild(clone)
	}

	if head := p.doc.Head(); head != nil {
		for _, css := range f.styles {
			head.AppendChild(vdom.Style(vdom.Text(css)))
		}
	}

	hooks := make([]engine.SerializeHook, 0, len(f.module.Hooks))
	for _, h := range f.module.Hooks {
		h := h
		hooks = append(hooks, func(ctx context.Context) error {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.destroyed {
				return fmt.Errorf("htmlplatform: platform destroyed")
			}
			return h(ctx, p.doc, p.opts.Providers)
		})
	}

	p.app = &App{pending: f.module.Pending, hooks: hooks}
	return p.app, nil
}

// Document returns the rendered document.
func (p *Platform) Document() (*vdom.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return nil, fmt.Errorf("htmlplatform: platform destroyed")
	}
	return p.doc, nil
}

// Destroy releases the document. It is safe to call more than once.
func (p *Platform) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
	p.doc = nil
}

// variables returns the values templates may reference as {{NAME}}: every
// provider with a string value, plus URL.
func (p *Platform) variables() map[string]string {
	vars := map[string]string{"URL": p.opts.URL}
	for _, pr := range p.opts.Providers {
		if s, ok := pr.Value.(string); ok {
			vars[string(pr.Token)] = s
		}
	}
	return vars
}

// interpolate replaces {{NAME}} in text nodes and attribute values.
func interpolate(n *vdom.VNode, vars map[string]string) {
	n.Walk(func(v *vdom.VNode) bool {
		switch v.Kind {
		case vdom.KindText:
			v.Text = expand(v.Text, vars)
		case vdom.KindElement:
			for i := range v.Attrs {
				v.Attrs[i].Value = expand(v.Attrs[i].Value, vars)
			}
		}
		return true
	})
}

func expand(s string, vars map[string]string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	var b strings.Builder
	for {
		start := strings.Index(s, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], "}}")
		if end < 0 {
			break
		}
		name := strings.TrimSpace(s[start+2 : start+end])
		b.WriteString(s[:start])
		if val, ok := vars[name]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(s[start : start+end+2])
		}
		s = s[start+end+2:]
	}
	b.WriteString(s)
	return b.String()
}

// App is a bootstrapped template application.
type App struct {
	pending time.Duration
	hooks   []engine.SerializeHook
}

// Stable reports false and then true once the pending delay has elapsed.
// With no pending work it reports true immediately.
func (a *App) Stable() (<-chan bool, func()) {
	ch := make(chan bool, 2)
	if a.pending <= 0 {
		ch <- true
		return ch, func() {}
	}

	ch <- false
	timer := time.AfterFunc(a.pending, func() { ch <- true })
	return ch, func() { timer.Stop() }
}

// BeforeSerialize returns the module's hooks bound to this render.
func (a *App) BeforeSerialize() []engine.SerializeHook {
	return a.hooks
}
