// Package server is an HTTP host for the rendering engine.
//
// Every GET request is rendered through the engine with the inbound
// *http.Request as the opaque request object and scheme://host as the
// origin. The result is assembled into a full page with render.RenderPage.
// A missing app root is a 500 and a stability timeout a 504.
//
// The server also answers /healthz and, when Config.Gatherer is set,
// /metrics in the Prometheus exposition format.
//
//	srv := server.New(eng, server.Config{
//	    AppSelector: "<app-root></app-root>",
//	    Module:      module,
//	    Gatherer:    prometheus.DefaultGatherer,
//	})
//	err := srv.Run(ctx)
package server
