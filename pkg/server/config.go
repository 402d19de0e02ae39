package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/universal/pkg/engine"
)

// Config configures the host server.
type Config struct {
	// Address is the listen address.
	// Default: ":4000".
	Address string

	// AppSelector is the root element written as a tag. Required.
	AppSelector string

	// Document is the initial document template. Defaults to AppSelector.
	Document string

	// Module is rendered for every page request. Required.
	Module engine.Module

	// Providers are added to every render.
	Providers []engine.Provider

	// Lang is the html lang attribute.
	// Default: "en".
	Lang string

	// TrustForwardedHeaders derives the request origin from
	// X-Forwarded-Proto and X-Forwarded-Host. Enable only behind a proxy
	// that sets them.
	TrustForwardedHeaders bool

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// Registerer receives HTTP request metrics. Nil disables them.
	Registerer prometheus.Registerer

	// TracerName names the otel tracer for request spans.
	// Default: "universal".
	TracerName string

	// Logger is the structured logger.
	// Default: slog.Default().
	Logger *slog.Logger

	// ReadHeaderTimeout, WriteTimeout and IdleTimeout configure the
	// http.Server.
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           ":4000",
		Lang:              "en",
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   30 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "server")
	}
}
