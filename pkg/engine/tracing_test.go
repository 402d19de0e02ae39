package engine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedEngine(t *testing.T, newPlatform func() *fakePlatform) (*testEngine, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return newTestEngine(Config{TracerProvider: tp}, newPlatform), rec
}

func spansByName(spans []sdktrace.ReadOnlySpan) map[string]sdktrace.ReadOnlySpan {
	out := make(map[string]sdktrace.ReadOnlySpan, len(spans))
	for _, s := range spans {
		out[s.Name()] = s
	}
	return out
}

func TestRenderSpans(t *testing.T) {
	eng, rec := newTracedEngine(t, stablePlatform(scenarioHTML))
	if _, err := eng.Render(context.Background(), scenarioOptions()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	spans := spansByName(rec.Ended())
	var names []string
	for _, name := range []string{spanRender, spanCompile, spanBootstrap, spanStabilize} {
		if _, ok := spans[name]; ok {
			names = append(names, name)
		}
	}
	if diff := cmp.Diff([]string{spanRender, spanCompile, spanBootstrap, spanStabilize}, names); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}

	root := spans[spanRender]
	if root.Status().Code != codes.Ok {
		t.Errorf("render status = %v, want Ok", root.Status().Code)
	}
	for _, name := range []string{spanCompile, spanBootstrap, spanStabilize} {
		if got := spans[name].Parent().SpanID(); got != root.SpanContext().SpanID() {
			t.Errorf("%s parent = %s, want render span %s", name, got, root.SpanContext().SpanID())
		}
	}
}

func TestRenderSpanRecordsErrorCode(t *testing.T) {
	eng, rec := newTracedEngine(t, stablePlatform(`<html><body><other-root></other-root></body></html>`))

	if _, err := eng.Render(context.Background(), scenarioOptions()); err == nil {
		t.Fatal("expected error")
	}

	root, ok := spansByName(rec.Ended())[spanRender]
	if !ok {
		t.Fatal("no render span")
	}
	if root.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", root.Status().Code)
	}
	var code string
	for _, kv := range root.Attributes() {
		if kv.Key == attrErrorCode {
			code = kv.Value.AsString()
		}
	}
	if code != "E111" {
		t.Errorf("error code attribute = %q, want E111", code)
	}
}
