package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is the tracer used when Config.TracerName is empty.
const DefaultTracerName = "universal"

// Span names.
const (
	spanRender    = "universal.render"
	spanCompile   = "universal.compile"
	spanBootstrap = "universal.bootstrap"
	spanStabilize = "universal.stabilize"
)

// Span attribute keys.
const (
	attrRequestID = attribute.Key("universal.request_id")
	attrURL       = attribute.Key("universal.url")
	attrSelector  = attribute.Key("universal.app_selector")
	attrModule    = attribute.Key("universal.module")
	attrHooks     = attribute.Key("universal.hooks")
	attrErrorCode = attribute.Key("universal.error_code")
)

func tracerFor(tp trace.TracerProvider, name string) trace.Tracer {
	if name == "" {
		name = DefaultTracerName
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(name)
}

func startSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// endSpan records err on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if code := errorCode(err); code != "" {
			span.SetAttributes(attrErrorCode.String(code))
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
