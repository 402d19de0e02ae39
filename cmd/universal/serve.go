package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/universal/pkg/loader"
	"github.com/vango-dev/universal/pkg/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the rendering server",
		Long: `Start an HTTP server that renders every GET request.

With --watch, changes under the resource root purge the compiled module
cache and reload the asset manifest, so edits show up on the next request.

Examples:
  universal serve
  universal serve --addr=:8080 --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watch
			}

			a, err := newApp(cfg, prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Watch {
				if _, err := a.watch(ctx, cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			srv := server.New(a.engine, server.Config{
				Address:     cfg.Server.Addr,
				AppSelector: cfg.AppSelector,
				Document:    cfg.Document,
				Module:      a.module,
				Gatherer:    prometheus.DefaultGatherer,
				Registerer:  prometheus.DefaultRegisterer,
				Logger:      a.logger.With("component", "server"),
			})

			status(cmd.OutOrStdout(), true, "Serving %s on %s", a.module.ModuleID(), cfg.Server.Addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Purge compiled modules when resources change")

	return cmd
}

// watch starts a resource watcher that runs until ctx is done. The returned
// channel is closed once the watcher has been stopped.
func (a *app) watch(ctx context.Context, out io.Writer) (<-chan struct{}, error) {
	w, err := loader.NewWatcher(loader.DefaultWatcherConfig(a.loader.Root()), a.logger.With("component", "watcher"))
	if err != nil {
		return nil, err
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer func() {
			if err := w.Stop(); err != nil {
				a.logger.Warn("watcher close failed", "error", err)
			}
		}()
		err := w.Watch(ctx, func(paths []string) error {
			a.engine.Cache().Purge()
			if m := a.loader.Manifest(); m != nil && m.Path() != "" {
				if err := m.Reload(); err != nil {
					a.logger.Warn("manifest reload failed", "error", err)
				}
			}
			a.logger.Info("resources changed", "files", len(paths))
			return nil
		})
		if err != nil && ctx.Err() == nil {
			a.logger.Error("watcher stopped", "error", err)
		}
	}()

	status(out, false, "Watching %s", a.loader.Root())
	return stopped, nil
}
