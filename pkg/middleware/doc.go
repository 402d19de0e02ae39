// Package middleware provides HTTP middleware for the rendering host.
//
// Both middlewares have the chi signature func(http.Handler) http.Handler.
//
// # Prometheus Metrics
//
// Prometheus counts requests and observes their duration, labeled by
// route pattern:
//
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// # OpenTelemetry Tracing
//
// OpenTelemetry starts a server span per request, continuing any trace
// context the caller sent in its headers. Spans the engine starts while
// rendering nest under it.
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
package middleware
