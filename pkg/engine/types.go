package engine

import (
	"context"

	"github.com/vango-dev/universal/pkg/vdom"
)

// Module is a reference to an application module. ModuleID identifies the
// module for the lifetime of the process and keys the factory cache.
type Module interface {
	ModuleID() string
}

// Factory is a compiled module, ready to be bootstrapped. A Module that also
// implements Factory is treated as precompiled and never recompiled.
type Factory interface {
	Module

	// Source returns the module this factory was compiled from.
	Source() Module
}

// Token identifies an injectable value handed to the platform.
type Token string

const (
	// TokenRequest carries the opaque host request object.
	TokenRequest Token = "REQUEST"

	// TokenOriginURL carries the request origin (scheme + host).
	TokenOriginURL Token = "ORIGIN_URL"
)

// Provider binds a value to a token for the application's dependency
// injection.
type Provider struct {
	Token Token
	Value any
}

// Request describes the inbound request being rendered.
type Request struct {
	// ID correlates logs and spans. Generated when empty.
	ID string

	// Origin is the scheme and host, e.g. "https://example.com".
	Origin string

	// URL is the request URL handed to the platform.
	URL string

	// Data is the opaque host request object, e.g. *http.Request.
	Data any
}

// Options is a single render request. It must not be modified after it is
// passed to Render.
type Options struct {
	// AppSelector is the root element written as a tag,
	// e.g. "<app-root></app-root>".
	AppSelector string

	// Module is the module to render, or a precompiled Factory.
	Module Module

	// Request is the inbound request.
	Request Request

	// Providers are additional injectable values.
	Providers []Provider

	// Document is the initial document template. Defaults to AppSelector.
	Document string

	// TransferData is copied into Result.Globals.TransferData.
	TransferData map[string]any

	// Globals are copied into Result.Globals.Extra.
	Globals map[string]any
}

// ResourceLoader fetches resources (templates, stylesheets) by URL.
type ResourceLoader interface {
	Get(ctx context.Context, url string) (string, error)
}

// Compiler compiles a module into a factory.
type Compiler interface {
	CompileModule(ctx context.Context, module Module) (Factory, error)
}

// CompilerFactory creates compilers bound to a resource loader.
type CompilerFactory interface {
	CreateCompiler(loader ResourceLoader) Compiler
}

// CompilerFactoryFunc adapts a function to CompilerFactory.
type CompilerFactoryFunc func(loader ResourceLoader) Compiler

// CreateCompiler calls f(loader).
func (f CompilerFactoryFunc) CreateCompiler(loader ResourceLoader) Compiler {
	return f(loader)
}

// PlatformOptions configures a server platform instance.
type PlatformOptions struct {
	// Document is the initial document template.
	Document string

	// URL is the request URL.
	URL string

	// Providers are the merged injectable values.
	Providers []Provider
}

// PlatformFactory creates one platform per render.
type PlatformFactory interface {
	NewPlatform(ctx context.Context, opts PlatformOptions) (Platform, error)
}

// Platform bootstraps a factory into a running application and serializes
// the resulting document. A platform is owned by exactly one render and is
// always destroyed.
type Platform interface {
	Bootstrap(ctx context.Context, factory Factory) (ApplicationRef, error)
	Document() (*vdom.Document, error)
	Destroy()
}

// ApplicationRef is a bootstrapped application.
type ApplicationRef interface {
	// Stable returns a channel that reports stability transitions and a
	// function that releases the subscription.
	Stable() (<-chan bool, func())

	// BeforeSerialize returns the hooks to run once the application is
	// stable, in order.
	BeforeSerialize() []SerializeHook
}

// SerializeHook runs just before the document is serialized. Errors and
// panics are reported and otherwise ignored.
type SerializeHook func(ctx context.Context) error
