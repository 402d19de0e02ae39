package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTracedRouter(t *testing.T, opts ...OTelOption) (chi.Router, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	opts = append([]OTelOption{WithTracerProvider(tp), WithPropagator(propagation.TraceContext{})}, opts...)
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(OpenTelemetry(opts...))
	r.Get("/page/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !trace.SpanFromContext(r.Context()).SpanContext().IsValid() {
			t.Error("handler context carries no span")
		}
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {})
	return r, rec
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOpenTelemetrySpan(t *testing.T) {
	r, rec := newTracedRouter(t)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/page/7?x=1", nil))

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "HTTP GET /page/{id}" {
		t.Errorf("name = %q", span.Name())
	}
	if span.SpanKind() != trace.SpanKindServer {
		t.Errorf("kind = %v", span.SpanKind())
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("status = %v", span.Status().Code)
	}
	if v, ok := attrValue(span.Attributes(), "http.target"); !ok || v.AsString() != "/page/7?x=1" {
		t.Errorf("http.target = %v", v.Emit())
	}
	if v, ok := attrValue(span.Attributes(), "http.status_code"); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status_code = %v", v.Emit())
	}
	if v, ok := attrValue(span.Attributes(), "universal.request_id"); !ok || v.AsString() == "" {
		t.Error("missing request id attribute")
	}
}

func TestOpenTelemetryServerError(t *testing.T) {
	r, rec := newTracedRouter(t)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status().Code)
	}
}

func TestOpenTelemetryContinuesRemoteTrace(t *testing.T) {
	r, rec := newTracedRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/page/1", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if got := spans[0].SpanContext().TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s", got)
	}
	if got := spans[0].Parent().SpanID().String(); got != "00f067aa0ba902b7" {
		t.Errorf("parent span id = %s", got)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	r, rec := newTracedRouter(t, WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if n := len(rec.Ended()); n != 0 {
		t.Errorf("spans = %d, want 0", n)
	}
}
