// Package engine renders an application module on the server and returns
// its markup together with the document globals a host needs to assemble
// the final page.
//
// The engine does not render anything itself. The framework compiler and
// the server platform are collaborators behind interfaces:
//
//	Compiler         compiles a Module into a Factory
//	CompilerFactory  binds a Compiler to a ResourceLoader
//	PlatformFactory  creates one Platform per render
//	Platform         bootstraps a Factory and serializes the document
//	ApplicationRef   reports stability and before-serialize hooks
//
// A render validates its options, resolves the factory through the
// FactoryCache, bootstraps a platform with the merged providers, waits for
// the application to become stable, runs the hooks, and hands the
// document to Extract.
//
// # Usage
//
//	eng := engine.New(engine.Config{
//	    Compilers: compilers,
//	    Platforms: platforms,
//	    Loader:    loader,
//	})
//
//	res, err := eng.Render(ctx, engine.Options{
//	    AppSelector: "<app-root></app-root>",
//	    Module:      module,
//	    Request:     engine.Request{Origin: "https://example.com", URL: "/"},
//	})
//
// # Errors
//
// Configuration problems (E100, E101, E102, E103) are reported before any
// collaborator runs. A missing app root is E111 and a stability timeout is
// E112. Compiler and platform errors are returned unchanged. Hook failures
// never fail a render; they go to Config.OnHookError.
package engine
