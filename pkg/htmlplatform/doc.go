// Package htmlplatform is a framework-free implementation of the engine's
// compiler and platform collaborators.
//
// A TemplateModule names the element it mounts into, a template and its
// stylesheets. Compiling loads them through the engine's resource loader;
// bootstrapping parses the document template, mounts the template under
// the root element, replaces {{NAME}} placeholders with string-valued
// providers (and {{URL}}), and appends the stylesheets to head.
//
//	eng := engine.New(engine.Config{
//	    Compilers: htmlplatform.NewCompilerFactory(),
//	    Platforms: htmlplatform.PlatformFactory{},
//	    Loader:    loader.New("web"),
//	})
//
//	res, err := eng.Render(ctx, engine.Options{
//	    AppSelector: "<app-root></app-root>",
//	    Module: &htmlplatform.TemplateModule{
//	        Selector: "app-root",
//	        Template: "app.html",
//	        Styles:   []string{"app.css"},
//	    },
//	})
package htmlplatform
