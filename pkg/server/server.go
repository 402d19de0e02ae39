package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/universal/pkg/engine"
	"github.com/vango-dev/universal/pkg/middleware"
	"github.com/vango-dev/universal/pkg/render"
)

// Renderer renders a request. *engine.Engine implements it.
type Renderer interface {
	Render(ctx context.Context, opts engine.Options) (*engine.Result, error)
}

// Server renders every GET request through the engine and writes the
// assembled page.
type Server struct {
	config     Config
	renderer   Renderer
	page       *render.Renderer
	router     chi.Router
	httpServer *http.Server
}

// New creates a server.
func New(r Renderer, config Config) *Server {
	config.applyDefaults()
	s := &Server{
		config:   config,
		renderer: r,
		page:     render.NewRenderer(render.RendererConfig{}),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerName(s.config.TracerName),
		middleware.WithFilter(traced),
	))
	if s.config.Registerer != nil {
		r.Use(middleware.Prometheus(middleware.WithRegistry(s.config.Registerer)))
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			s.config.Logger.Warn("write error", "error", err)
		}
	})
	if s.config.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		}))
	}
	r.Get("/*", s.handleRender)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	res, err := s.renderer.Render(r.Context(), engine.Options{
		AppSelector: s.config.AppSelector,
		Document:    s.config.Document,
		Module:      s.config.Module,
		Providers:   s.config.Providers,
		Request: engine.Request{
			ID:     chimw.GetReqID(r.Context()),
			Origin: s.origin(r),
			URL:    r.URL.RequestURI(),
			Data:   r,
		},
	})
	if err != nil {
		if r.Context().Err() != nil {
			s.config.Logger.Debug("client gone before render finished", "path", r.URL.Path)
			return
		}
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	var buf bytes.Buffer
	if err := s.page.RenderPage(&buf, render.PageData{
		Lang:    s.config.Lang,
		Title:   res.Globals.Title,
		Meta:    res.Globals.Meta,
		Links:   res.Globals.Links,
		Styles:  res.Globals.Styles,
		Body:    res.HTML,
		Scripts: res.Globals.Scripts,
	}); err != nil {
		s.config.Logger.Error("page assembly failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.config.Logger.Warn("write error", "error", err)
	}
}

// traced skips probes and scrapes.
func traced(r *http.Request) bool {
	return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
}

// statusFor maps a render error to an HTTP status.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, engine.ErrStabilityTimeout), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// origin returns scheme://host for r.
func (s *Server) origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if s.config.TrustForwardedHeaders {
		if proto := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); proto == "http" || proto == "https" {
			scheme = proto
		}
		if fwd := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); fwd != "" {
			host = fwd
		}
	}
	return scheme + "://" + host
}

func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}
