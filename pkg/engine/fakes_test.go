package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/universal/pkg/vdom"
)

type fakeModule struct{ id string }

func (m fakeModule) ModuleID() string { return m.id }

type fakeFactory struct{ src Module }

func (f *fakeFactory) ModuleID() string { return f.src.ModuleID() }
func (f *fakeFactory) Source() Module   { return f.src }

// fakeCompiler counts compilations. A non-nil gate blocks every compile
// until it is closed.
type fakeCompiler struct {
	calls atomic.Int32
	err   error
	gate  chan struct{}
}

func (c *fakeCompiler) CompileModule(ctx context.Context, m Module) (Factory, error) {
	c.calls.Add(1)
	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return &fakeFactory{src: m}, nil
}

type fakeCompilers struct {
	compiler *fakeCompiler
	calls    atomic.Int32

	mu     sync.Mutex
	loader ResourceLoader
}

func (f *fakeCompilers) CreateCompiler(loader ResourceLoader) Compiler {
	f.calls.Add(1)
	f.mu.Lock()
	f.loader = loader
	f.mu.Unlock()
	return f.compiler
}

// fakeApp emits the values in stable, in order, then blocks.
type fakeApp struct {
	stable       []bool
	closeStable  bool
	hooks        []SerializeHook
	unsubscribed atomic.Bool
}

func (a *fakeApp) Stable() (<-chan bool, func()) {
	ch := make(chan bool, len(a.stable))
	for _, v := range a.stable {
		ch <- v
	}
	if a.closeStable {
		close(ch)
	}
	return ch, func() { a.unsubscribed.Store(true) }
}

func (a *fakeApp) BeforeSerialize() []SerializeHook { return a.hooks }

type fakePlatform struct {
	html         string
	app          *fakeApp
	bootstrapErr error
	documentErr  error
	nilDocument  bool
	destroyed    atomic.Int32
	bootstrapped Factory
}

func (p *fakePlatform) Bootstrap(ctx context.Context, f Factory) (ApplicationRef, error) {
	p.bootstrapped = f
	if p.bootstrapErr != nil {
		return nil, p.bootstrapErr
	}
	return p.app, nil
}

func (p *fakePlatform) Document() (*vdom.Document, error) {
	if p.documentErr != nil {
		return nil, p.documentErr
	}
	if p.nilDocument {
		return nil, nil
	}
	return vdom.ParseDocumentString(p.html)
}

func (p *fakePlatform) Destroy() { p.destroyed.Add(1) }

// fakePlatforms hands out platforms built by newPlatform and records the
// options each one was created with.
type fakePlatforms struct {
	mu          sync.Mutex
	newPlatform func() *fakePlatform
	err         error
	created     []*fakePlatform
	opts        []PlatformOptions
}

func (f *fakePlatforms) NewPlatform(ctx context.Context, opts PlatformOptions) (Platform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	p := f.newPlatform()
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePlatforms) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opts)
}

const scenarioHTML = `<!DOCTYPE html><html><head><title> Hi </title><meta charset="utf-8"><script src="main.js"></script></head><body><app-root>Hello</app-root></body></html>`

func stablePlatform(html string, hooks ...SerializeHook) func() *fakePlatform {
	return func() *fakePlatform {
		return &fakePlatform{
			html: html,
			app:  &fakeApp{stable: []bool{true}, hooks: hooks},
		}
	}
}

type testEngine struct {
	*Engine
	compiler  *fakeCompiler
	compilers *fakeCompilers
	platforms *fakePlatforms
}

func newTestEngine(cfg Config, newPlatform func() *fakePlatform) *testEngine {
	compiler := &fakeCompiler{}
	compilers := &fakeCompilers{compiler: compiler}
	platforms := &fakePlatforms{newPlatform: newPlatform}
	cfg.Compilers = compilers
	if cfg.Loader == nil {
		cfg.Loader = stubLoader{}
	}
	cfg.Platforms = platforms
	return &testEngine{
		Engine:    New(cfg),
		compiler:  compiler,
		compilers: compilers,
		platforms: platforms,
	}
}

func scenarioOptions() Options {
	return Options{
		AppSelector: "<app-root></app-root>",
		Module:      fakeModule{id: "app"},
		Request:     Request{Origin: "https://example.com", URL: "/"},
	}
}

type stubLoader struct{}

func (stubLoader) Get(ctx context.Context, url string) (string, error) { return "", nil }
