package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/universal/internal/errors"
)

// DefaultStabilityTimeout bounds the stability wait when Config leaves it
// unset.
const DefaultStabilityTimeout = 30 * time.Second

// HookErrorHandler receives before-serialization hook failures. The error
// carries code E113 and wraps the hook's error or panic.
type HookErrorHandler func(ctx context.Context, err error)

// Config configures an Engine.
type Config struct {
	// Compilers creates compilers bound to Loader. Required.
	Compilers CompilerFactory

	// Platforms creates one platform per render. Required.
	Platforms PlatformFactory

	// Loader is handed to every compiler.
	Loader ResourceLoader

	// Cache memoizes compiled factories. Defaults to an unbounded cache
	// sharing the engine's metrics.
	Cache *FactoryCache

	// StabilityTimeout bounds the wait for the application to become
	// stable. Default: DefaultStabilityTimeout.
	StabilityTimeout time.Duration

	// OnHookError receives ignored hook failures. Default: log a warning.
	OnHookError HookErrorHandler

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records render metrics. Nil disables metrics.
	Metrics *Metrics

	// TracerName names the otel tracer. Default: DefaultTracerName.
	TracerName string

	// TracerProvider supplies the tracer. Default: otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
}

// Engine renders modules to markup plus extracted document globals. It is
// safe for concurrent use.
type Engine struct {
	compilers   CompilerFactory
	platforms   PlatformFactory
	loader      ResourceLoader
	cache       *FactoryCache
	timeout     time.Duration
	onHookError HookErrorHandler
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
}

// New creates an engine. Missing collaborators are reported by Render.
func New(cfg Config) *Engine {
	e := &Engine{
		compilers:   cfg.Compilers,
		platforms:   cfg.Platforms,
		loader:      cfg.Loader,
		cache:       cfg.Cache,
		timeout:     cfg.StabilityTimeout,
		onHookError: cfg.OnHookError,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		tracer:      tracerFor(cfg.TracerProvider, cfg.TracerName),
	}
	if e.logger == nil {
		e.logger = slog.Default().With("component", "engine")
	}
	if e.timeout <= 0 {
		e.timeout = DefaultStabilityTimeout
	}
	if e.cache == nil {
		e.cache = NewFactoryCache(0, WithCacheMetrics(e.metrics), WithCacheTracer(e.tracer))
	}
	if e.onHookError == nil {
		e.onHookError = e.logHookError
	}
	return e
}

// Cache returns the engine's factory cache.
func (e *Engine) Cache() *FactoryCache {
	return e.cache
}

// Render bootstraps opts.Module for opts.Request, waits for the
// application to become stable, runs its before-serialization hooks and
// extracts the app markup and document globals.
//
// Configuration errors are returned before any collaborator is called.
// Errors from collaborators are returned unchanged. The platform is always
// destroyed once created.
func (e *Engine) Render(ctx context.Context, opts Options) (*Result, error) {
	if opts.Request.ID == "" {
		opts.Request.ID = uuid.NewString()
	}
	log := e.logger.With("request_id", opts.Request.ID, "url", opts.Request.URL)

	start := time.Now()
	ctx, span := startSpan(ctx, e.tracer, spanRender,
		attrRequestID.String(opts.Request.ID),
		attrURL.String(opts.Request.URL),
		attrSelector.String(opts.AppSelector),
	)

	res, err := e.render(ctx, opts)

	elapsed := time.Since(start)
	e.metrics.observeRender(renderStatus(err), elapsed)
	endSpan(span, err)

	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			log.Debug("render canceled", "duration", elapsed)
		} else {
			log.Error("render failed", "error", err, "duration", elapsed)
		}
		return nil, err
	}
	log.Debug("render complete", "duration", elapsed)
	return res, nil
}

func (e *Engine) render(ctx context.Context, opts Options) (*Result, error) {
	tag, err := ParseAppSelector(opts.AppSelector)
	if err != nil {
		return nil, err
	}
	if opts.Module == nil {
		return nil, errors.New("E102")
	}
	if e.compilers == nil || e.platforms == nil {
		return nil, errors.New("E103")
	}

	compiler := e.compilers.CreateCompiler(e.loader)
	factory, err := e.cache.Get(ctx, opts.Module, compiler)
	if err != nil {
		return nil, err
	}

	document := opts.Document
	if document == "" {
		document = opts.AppSelector
	}
	platform, err := e.platforms.NewPlatform(ctx, PlatformOptions{
		Document:  document,
		URL:       opts.Request.URL,
		Providers: MergeProviders(opts.Providers, ContextProviders(opts.Request)),
	})
	if err != nil {
		return nil, err
	}
	defer platform.Destroy()

	app, err := e.bootstrap(ctx, platform, factory)
	if err != nil {
		return nil, err
	}
	if err := e.waitStable(ctx, app); err != nil {
		return nil, err
	}
	e.runHooks(ctx, app)

	doc, err := platform.Document()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("E114")
	}

	data, err := Extract(doc, tag)
	if err != nil {
		return nil, err
	}

	return &Result{
		HTML: data.AppNode,
		Globals: Globals{
			Styles:       data.Styles,
			Title:        data.Title,
			Meta:         data.Meta,
			Scripts:      data.Scripts,
			Links:        data.Links,
			TransferData: copyMap(opts.TransferData),
			Extra:        copyMap(opts.Globals),
		},
	}, nil
}

func (e *Engine) bootstrap(ctx context.Context, platform Platform, factory Factory) (app ApplicationRef, err error) {
	ctx, span := startSpan(ctx, e.tracer, spanBootstrap, attrModule.String(factory.ModuleID()))
	defer func() { endSpan(span, err) }()
	return platform.Bootstrap(ctx, factory)
}

// waitStable blocks until app reports stable, the stability timeout
// elapses or ctx is done.
func (e *Engine) waitStable(ctx context.Context, app ApplicationRef) (err error) {
	_, span := startSpan(ctx, e.tracer, spanStabilize)
	defer func() { endSpan(span, err) }()

	stable, unsubscribe := app.Stable()
	if unsubscribe != nil {
		defer unsubscribe()
	}

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	for {
		select {
		case ok, open := <-stable:
			if !open {
				return errors.New("E112").WithContextf("stability stream closed before the application became stable")
			}
			if ok {
				return nil
			}
		case <-timer.C:
			return errors.New("E112").WithContextf("not stable after %s", e.timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (e *Engine) runHooks(ctx context.Context, app ApplicationRef) {
	hooks := app.BeforeSerialize()
	trace.SpanFromContext(ctx).SetAttributes(attrHooks.Int(len(hooks)))

	for i, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := callHook(ctx, hook); err != nil {
			e.metrics.hookError()
			e.onHookError(ctx, errors.New("E113").WithContextf("hook %d", i).Wrap(err))
		}
	}
}

func callHook(ctx context.Context, hook SerializeHook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return hook(ctx)
}

func (e *Engine) logHookError(ctx context.Context, err error) {
	e.logger.WarnContext(ctx, "ignoring before-serialize hook error", "error", err)
}

func renderStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case stderrors.Is(err, ErrStabilityTimeout):
		return "timeout"
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

func errorCode(err error) string {
	return errors.Code(err)
}
