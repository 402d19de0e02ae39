package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/universal/internal/config"
	"github.com/vango-dev/universal/pkg/engine"
	"github.com/vango-dev/universal/pkg/htmlplatform"
	"github.com/vango-dev/universal/pkg/loader"
)

// app is everything a command needs to render.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *engine.Engine
	loader *loader.FileLoader
	module *htmlplatform.TemplateModule
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires the engine from cfg. reg receives the engine's metrics; nil
// disables them.
func newApp(cfg *config.Config, reg prometheus.Registerer) (*app, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	timeout, err := cfg.StabilityTimeoutDuration()
	if err != nil {
		return nil, err
	}
	selector, err := engine.ParseAppSelector(cfg.AppSelector)
	if err != nil {
		return nil, err
	}

	var opts []loader.Option
	opts = append(opts, loader.WithLogger(logger.With("component", "loader")))
	if path := cfg.ManifestPath(); path != "" {
		manifest, err := loader.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, loader.WithManifest(manifest))
	}
	files := loader.New(cfg.ResourceRoot(), opts...)

	var metrics *engine.Metrics
	if reg != nil {
		metrics = engine.NewMetrics(engine.WithRegistry(reg))
	}

	eng := engine.New(engine.Config{
		Compilers:        htmlplatform.NewCompilerFactory(),
		Platforms:        htmlplatform.PlatformFactory{},
		Loader:           files,
		Cache:            engine.NewFactoryCache(cfg.Cache.MaxEntries, engine.WithCacheMetrics(metrics)),
		StabilityTimeout: timeout,
		Logger:           logger.With("component", "engine"),
		Metrics:          metrics,
	})

	return &app{
		cfg:    cfg,
		logger: logger,
		engine: eng,
		loader: files,
		module: &htmlplatform.TemplateModule{
			ID:       cfg.Module.ID,
			Selector: selector,
			Template: cfg.Module.Template,
			Styles:   cfg.Module.Styles,
		},
	}, nil
}

// options returns render options for one request.
func (a *app) options(req engine.Request) engine.Options {
	return engine.Options{
		AppSelector: a.cfg.AppSelector,
		Document:    a.cfg.Document,
		Module:      a.module,
		Request:     req,
	}
}
